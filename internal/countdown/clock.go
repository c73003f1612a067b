package countdown

import (
	"fmt"
	"sync"
	"time"
)

// DefaultDuration é a rodada de 24h da tela original
const DefaultDuration = 24 * time.Hour

// Clock é um contador regressivo em segundos inteiros. Ao chegar a zero,
// o próximo tick volta para a duração configurada. A volta não liquida nada.
type Clock struct {
	mu        sync.Mutex
	duration  int64
	remaining int64
	rounds    int64
}

func New(d time.Duration) *Clock {
	secs := int64(d / time.Second)
	if secs <= 0 {
		secs = int64(DefaultDuration / time.Second)
	}
	return &Clock{duration: secs, remaining: secs}
}

// Tick avança um segundo. wrapped=true quando o contador estava em zero e reiniciou.
func (c *Clock) Tick() (remaining int64, wrapped bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.remaining > 0 {
		c.remaining--
		return c.remaining, false
	}
	c.remaining = c.duration
	c.rounds++
	return c.remaining, true
}

func (c *Clock) Remaining() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Round é o número de voltas completas desde a partida
func (c *Clock) Round() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rounds
}

func (c *Clock) Duration() int64 { return c.duration }

// Format devolve HH:MM:SS
func (c *Clock) Format() string { return Format(c.Remaining()) }

func Format(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
