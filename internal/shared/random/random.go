package random

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Rand é a fonte pseudoaleatória injetada nas simulações.
// Testes passam uma sequência roteirizada; produção usa PCG com semente.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// New cria uma fonte PCG. seed == 0 usa o relógio.
func New(seed uint64) Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &lockedRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

// Script devolve valores fixos em ordem, reiniciando ao final. Usado em testes.
type Script struct {
	Floats []float64
	Ints   []int
	fi, ii int
}

func (s *Script) Float64() float64 {
	if len(s.Floats) == 0 {
		return 0
	}
	v := s.Floats[s.fi%len(s.Floats)]
	s.fi++
	return v
}

func (s *Script) IntN(n int) int {
	if len(s.Ints) == 0 || n <= 0 {
		return 0
	}
	v := s.Ints[s.ii%len(s.Ints)]
	s.ii++
	return v % n
}
