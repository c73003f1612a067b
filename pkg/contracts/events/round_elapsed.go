package events

import "time"

// Emitido quando o contador da rodada chega a zero e reinicia.
// Não existe liquidação: o evento é apenas informativo.
type RoundElapsed struct {
	Round       int64     `json:"round"`
	DurationSec int64     `json:"duration_sec"`
	PoolUp      string    `json:"pool_up"`
	PoolDown    string    `json:"pool_down"`
	Ts          time.Time `json:"ts"`
}
