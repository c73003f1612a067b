package sentiment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/radieske/fear-greed-oracle/internal/shared/random"
)

type scriptedSource struct {
	values []int
	errs   []error
	calls  int
}

func (s *scriptedSource) Latest(context.Context) (Sample, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return Sample{}, s.errs[i]
	}
	return Sample{Index: s.values[i%len(s.values)], TakenAt: time.Unix(int64(i), 0)}, nil
}

type memStore struct {
	last  Sample
	ok    bool
	saves int
}

func (m *memStore) SaveLast(_ context.Context, s Sample) error {
	m.last, m.ok = s, true
	m.saves++
	return nil
}

func (m *memStore) LoadLast(context.Context) (Sample, bool, error) { return m.last, m.ok, nil }

func TestFeedSeriesIsCapped(t *testing.T) {
	f := NewFeed(nil, &scriptedSource{values: []int{1}}, nil, 3, 2)
	for i := 1; i <= 5; i++ {
		f.Push(Sample{Index: i * 10})
	}
	series := f.Series()
	if len(series) != 3 || series[0].Index != 30 || series[2].Index != 50 {
		t.Fatalf("unexpected series: %+v", series)
	}
}

func TestFeedTrend(t *testing.T) {
	cases := []struct {
		name   string
		values []int
		want   Trend
	}{
		{"empty", nil, TrendNeutral},
		{"single", []int{40}, TrendNeutral},
		{"rising", []int{40, 41}, TrendUp},
		{"falling", []int{41, 40}, TrendDown},
		{"flat", []int{41, 41}, TrendNeutral},
		{"only last two count", []int{90, 10, 11}, TrendUp},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := NewFeed(nil, &scriptedSource{values: []int{1}}, nil, 30, 24)
			for _, v := range tc.values {
				f.Push(Sample{Index: v})
			}
			if got := f.Trend(); got != tc.want {
				t.Fatalf("got %s want %s", got, tc.want)
			}
		})
	}
}

func TestFeedClampsIndex(t *testing.T) {
	f := NewFeed(nil, &scriptedSource{values: []int{1}}, nil, 30, 24)
	f.Push(Sample{Index: 140})
	f.Push(Sample{Index: -3})
	series := f.Series()
	if series[0].Index != 100 || series[1].Index != 0 {
		t.Fatalf("unexpected series: %+v", series)
	}
}

func TestRefreshSavesLastKnown(t *testing.T) {
	store := &memStore{}
	f := NewFeed(nil, &scriptedSource{values: []int{63}}, store, 30, 24)

	s, err := f.Refresh(context.Background())
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if s.Index != 63 || store.saves != 1 || store.last.Index != 63 {
		t.Fatalf("unexpected state: sample=%+v store=%+v", s, store)
	}
	if f.Snapshot().Stale {
		t.Fatal("fresh sample should not be stale")
	}
}

func TestRefreshKeepsLastValueOnFailure(t *testing.T) {
	boom := errors.New("boom")
	src := &scriptedSource{values: []int{70}, errs: []error{nil, boom}}
	f := NewFeed(nil, src, nil, 30, 24)

	if _, err := f.Refresh(context.Background()); err != nil {
		t.Fatalf("first refresh: %v", err)
	}
	s, err := f.Refresh(context.Background())
	if !errors.Is(err, ErrFeedUnavailable) {
		t.Fatalf("expected ErrFeedUnavailable, got %v", err)
	}
	if s.Index != 70 {
		t.Fatalf("expected last known 70, got %d", s.Index)
	}
	snap := f.Snapshot()
	if !snap.Stale || snap.Index != 70 || len(snap.Series) != 1 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestRefreshFallsBackToStoreThenNeutral(t *testing.T) {
	boom := errors.New("down")

	store := &memStore{last: Sample{Index: 22}, ok: true}
	f := NewFeed(nil, &scriptedSource{errs: []error{boom}}, store, 30, 24)
	s, err := f.Refresh(context.Background())
	if !errors.Is(err, ErrFeedUnavailable) || s.Index != 22 {
		t.Fatalf("expected store fallback 22, got %d (%v)", s.Index, err)
	}

	f = NewFeed(nil, &scriptedSource{errs: []error{boom}}, &memStore{}, 30, 24)
	s, _ = f.Refresh(context.Background())
	if s.Index != NeutralIndex {
		t.Fatalf("expected neutral fallback, got %d", s.Index)
	}
	if snap := f.Snapshot(); snap.Index != NeutralIndex || snap.Classification != "Neutral" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestBaselineAverageUsesOldestSamples(t *testing.T) {
	f := NewFeed(nil, &scriptedSource{values: []int{1}}, nil, 30, 2)
	if got := f.BaselineAverage(); got != NeutralIndex {
		t.Fatalf("empty series should give neutral, got %d", got)
	}
	for _, v := range []int{40, 45, 90} {
		f.Push(Sample{Index: v})
	}
	if got := f.BaselineAverage(); got != 43 {
		t.Fatalf("expected round((40+45)/2)=43, got %d", got)
	}
}

func TestPrimeFromHistory(t *testing.T) {
	src := NewSimulatedSource(&random.Script{Floats: []float64{0.5}})
	src.Now = func() time.Time { return time.Unix(1000, 0) }
	f := NewFeed(nil, src, nil, 30, 24)

	if err := f.Prime(context.Background(), 50); err != nil {
		t.Fatalf("prime: %v", err)
	}
	series := f.Series()
	if len(series) != 30 {
		t.Fatalf("prime should fill up to capacity, got %d", len(series))
	}
	if series[0].Index != 55 || !series[0].TakenAt.Before(series[29].TakenAt) {
		t.Fatalf("unexpected history: first=%+v last=%+v", series[0], series[29])
	}
}

func TestClassify(t *testing.T) {
	cases := map[int]string{
		0: "Extreme Fear", 25: "Extreme Fear", 26: "Fear", 45: "Fear",
		46: "Neutral", 55: "Neutral", 56: "Greed", 75: "Greed", 76: "Extreme Greed", 100: "Extreme Greed",
	}
	for idx, want := range cases {
		if got := Classify(idx); got != want {
			t.Errorf("Classify(%d) = %s, want %s", idx, got, want)
		}
	}
}

func TestSimulatedSourceRange(t *testing.T) {
	src := NewSimulatedSource(&random.Script{Floats: []float64{0, 0.999, 0.5}})
	want := []int{45, 65, 55}
	for i, w := range want {
		s, _ := src.Latest(context.Background())
		if s.Index != w {
			t.Fatalf("sample %d: got %d want %d", i, s.Index, w)
		}
	}
}
