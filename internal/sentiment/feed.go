package sentiment

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Snapshot é a visão do índice exposta pela API
type Snapshot struct {
	Index          int       `json:"index"`
	Classification string    `json:"classification"`
	Trend          Trend     `json:"trend"`
	Baseline       int       `json:"baseline"`
	Series         []Sample  `json:"series"`
	UpdatedAt      time.Time `json:"updatedAt"`
	Stale          bool      `json:"stale"`
}

// Feed mantém a série recente do índice com capacidade fixa.
// Leituras que falham nunca derrubam o feed: o último valor conhecido é mantido.
type Feed struct {
	log      *zap.Logger
	src      Source
	store    LastKnownStore // opcional
	capacity int
	baseline int // quantas amostras mais antigas entram na média de referência

	mu        sync.RWMutex
	series    []Sample
	stale     bool
	updatedAt time.Time
}

// NewFeed cria o feed. capacity padrão 30, baseline padrão 24.
func NewFeed(log *zap.Logger, src Source, store LastKnownStore, capacity, baseline int) *Feed {
	if capacity <= 0 {
		capacity = 30
	}
	if baseline <= 0 {
		baseline = 24
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Feed{log: log, src: src, store: store, capacity: capacity, baseline: baseline}
}

// Push acrescenta uma leitura e descarta a mais antiga quando passa da capacidade
func (f *Feed) Push(s Sample) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.push(s)
}

func (f *Feed) push(s Sample) {
	s.Index = Clamp(s.Index)
	f.series = append(f.series, s)
	if over := len(f.series) - f.capacity; over > 0 {
		f.series = append(f.series[:0:0], f.series[over:]...)
	}
	f.updatedAt = s.TakenAt
}

// Refresh busca uma leitura na fonte. Em falha mantém o último valor
// (memória, depois store externo, depois neutro) e devolve ErrFeedUnavailable.
func (f *Feed) Refresh(ctx context.Context) (Sample, error) {
	s, err := f.src.Latest(ctx)
	if err == nil {
		f.mu.Lock()
		f.push(s)
		f.stale = false
		f.mu.Unlock()

		if f.store != nil {
			if serr := f.store.SaveLast(ctx, s); serr != nil {
				f.log.Warn("sentiment last-known save failed", zap.Error(serr))
			}
		}
		return s, nil
	}

	f.log.Warn("sentiment source failed, keeping last known value", zap.Error(err))
	fallback := f.fallback(ctx)

	f.mu.Lock()
	f.stale = true
	if len(f.series) == 0 {
		f.push(fallback)
	}
	f.mu.Unlock()

	return fallback, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
}

func (f *Feed) fallback(ctx context.Context) Sample {
	if last, ok := f.Latest(); ok {
		return last
	}
	if f.store != nil {
		s, ok, err := f.store.LoadLast(ctx)
		if err != nil {
			f.log.Warn("sentiment last-known load failed", zap.Error(err))
		} else if ok {
			return s
		}
	}
	return Sample{Index: NeutralIndex, TakenAt: time.Now().UTC()}
}

// Prime preenche a série com o histórico da fonte, quando ela oferece um
func (f *Feed) Prime(ctx context.Context, n int) error {
	hs, ok := f.src.(HistorySource)
	if !ok {
		return nil
	}
	if n <= 0 || n > f.capacity {
		n = f.capacity
	}
	samples, err := hs.History(ctx, n)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range samples {
		f.push(s)
	}
	return nil
}

// Latest retorna a leitura mais recente, se houver
func (f *Feed) Latest() (Sample, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if len(f.series) == 0 {
		return Sample{}, false
	}
	return f.series[len(f.series)-1], true
}

// Trend compara as duas últimas leituras (estritamente maior/menor)
func (f *Feed) Trend() Trend {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.trend()
}

func (f *Feed) trend() Trend {
	n := len(f.series)
	if n < 2 {
		return TrendNeutral
	}
	cur, prev := f.series[n-1].Index, f.series[n-2].Index
	switch {
	case cur > prev:
		return TrendUp
	case cur < prev:
		return TrendDown
	}
	return TrendNeutral
}

// BaselineAverage é a média arredondada das amostras mais antigas da série
// ("vs yesterday avg" na tela original).
func (f *Feed) BaselineAverage() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.baselineAverage()
}

func (f *Feed) baselineAverage() int {
	if len(f.series) == 0 {
		return NeutralIndex
	}
	n := f.baseline
	if n > len(f.series) {
		n = len(f.series)
	}
	sum := 0
	for _, s := range f.series[:n] {
		sum += s.Index
	}
	return int(math.Round(float64(sum) / float64(n)))
}

// Series retorna uma cópia da série, mais antiga primeiro
func (f *Feed) Series() []Sample {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]Sample, len(f.series))
	copy(out, f.series)
	return out
}

func (f *Feed) Snapshot() Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()

	idx := NeutralIndex
	if n := len(f.series); n > 0 {
		idx = f.series[n-1].Index
	}
	series := make([]Sample, len(f.series))
	copy(series, f.series)

	return Snapshot{
		Index:          idx,
		Classification: Classify(idx),
		Trend:          f.trend(),
		Baseline:       f.baselineAverage(),
		Series:         series,
		UpdatedAt:      f.updatedAt,
		Stale:          f.stale,
	}
}
