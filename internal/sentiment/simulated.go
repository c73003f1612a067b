package sentiment

import (
	"context"
	"math"
	"time"

	"github.com/radieske/fear-greed-oracle/internal/shared/random"
)

// SimulatedSource gera leituras em torno de um centro (55 ± 10 por padrão)
type SimulatedSource struct {
	Rand   random.Rand
	Center float64
	Spread float64
	Now    func() time.Time
}

func NewSimulatedSource(r random.Rand) *SimulatedSource {
	return &SimulatedSource{Rand: r, Center: 55, Spread: 20, Now: time.Now}
}

func (s *SimulatedSource) sample() int {
	v := s.Center + (s.Rand.Float64()-0.5)*s.Spread
	return Clamp(int(math.Round(v)))
}

func (s *SimulatedSource) Latest(_ context.Context) (Sample, error) {
	return Sample{Index: s.sample(), TakenAt: s.Now().UTC()}, nil
}

// History gera n leituras espaçadas de um minuto, a mais antiga primeiro
func (s *SimulatedSource) History(_ context.Context, n int) ([]Sample, error) {
	now := s.Now().UTC()
	out := make([]Sample, n)
	for i := range out {
		out[i] = Sample{Index: s.sample(), TakenAt: now.Add(-time.Duration(n-1-i) * time.Minute)}
	}
	return out, nil
}
