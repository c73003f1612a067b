package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const fearGreedBaseURL = "https://api.alternative.me"

// FearGreedSource lê o índice Crypto Fear & Greed da alternative.me
type FearGreedSource struct {
	client  *http.Client
	baseURL string
}

func NewFearGreedSource(baseURL string, timeout time.Duration) *FearGreedSource {
	if baseURL == "" {
		baseURL = fearGreedBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &FearGreedSource{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

func (p *FearGreedSource) Latest(ctx context.Context) (Sample, error) {
	rows, err := p.fetch(ctx, 1)
	if err != nil {
		return Sample{}, err
	}
	return rows[len(rows)-1], nil
}

// History retorna as últimas n leituras diárias, a mais antiga primeiro
func (p *FearGreedSource) History(ctx context.Context, n int) ([]Sample, error) {
	return p.fetch(ctx, n)
}

func (p *FearGreedSource) fetch(ctx context.Context, limit int) ([]Sample, error) {
	url := strings.TrimRight(p.baseURL, "/") + "/fng/?limit=" + strconv.Itoa(limit)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fear & greed API error %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Data []struct {
			Value     string `json:"value"`
			Timestamp string `json:"timestamp"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode fear & greed response: %w", err)
	}
	if len(payload.Data) == 0 {
		return nil, fmt.Errorf("fear & greed response has no rows")
	}

	// a API devolve a mais recente primeiro
	out := make([]Sample, len(payload.Data))
	for i, row := range payload.Data {
		value, err := strconv.Atoi(strings.TrimSpace(row.Value))
		if err != nil {
			return nil, fmt.Errorf("parse fear & greed value: %w", err)
		}
		ts, err := strconv.ParseInt(strings.TrimSpace(row.Timestamp), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse fear & greed timestamp: %w", err)
		}
		if ts > 1_000_000_000_000 {
			ts = ts / 1000
		}
		out[len(out)-1-i] = Sample{Index: Clamp(value), TakenAt: time.Unix(ts, 0).UTC()}
	}
	return out, nil
}
