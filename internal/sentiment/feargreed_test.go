package sentiment

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"
	"time"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func stubClient(t *testing.T, status int, body string, wantLimit string) *http.Client {
	t.Helper()
	return &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/fng/" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		if got := req.URL.Query().Get("limit"); got != wantLimit {
			t.Fatalf("unexpected limit: %s", got)
		}
		return &http.Response{
			StatusCode: status,
			Body:       io.NopCloser(bytes.NewBufferString(body)),
			Header:     make(http.Header),
		}, nil
	})}
}

func TestFearGreedLatest(t *testing.T) {
	p := NewFearGreedSource("https://example.com", time.Second)
	p.client = stubClient(t, http.StatusOK,
		`{"data":[{"value":"63","value_classification":"Greed","timestamp":"1771009800"}]}`, "1")

	s, err := p.Latest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Index != 63 || !s.TakenAt.Equal(time.Unix(1771009800, 0).UTC()) {
		t.Fatalf("unexpected sample: %+v", s)
	}
}

func TestFearGreedHistoryIsOldestFirst(t *testing.T) {
	p := NewFearGreedSource("https://example.com", time.Second)
	p.client = stubClient(t, http.StatusOK,
		`{"data":[{"value":"40","timestamp":"1771009800000"},{"value":"35","timestamp":"1770923400"}]}`, "2")

	out, err := p.History(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 || out[0].Index != 35 || out[1].Index != 40 {
		t.Fatalf("unexpected history: %+v", out)
	}
	if !out[1].TakenAt.Equal(time.Unix(1771009800, 0).UTC()) {
		t.Fatalf("millisecond timestamps should be normalised: %v", out[1].TakenAt)
	}
}

func TestFearGreedErrors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"http error", http.StatusBadGateway, "bad gateway"},
		{"empty rows", http.StatusOK, `{"data":[]}`},
		{"bad value", http.StatusOK, `{"data":[{"value":"x","timestamp":"1"}]}`},
		{"bad json", http.StatusOK, `{`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewFearGreedSource("https://example.com", time.Second)
			p.client = stubClient(t, tc.status, tc.body, "1")
			if _, err := p.Latest(context.Background()); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
