package events

import "time"

// Evento publicado no tópico "sentiment_updates" a cada leitura do índice
type SentimentUpdate struct {
	Index          int       `json:"index"`
	Classification string    `json:"classification"`
	Trend          string    `json:"trend"` // "up" | "down" | "neutral"
	Stale          bool      `json:"stale"` // true quando a fonte falhou e o último valor foi mantido
	Source         string    `json:"source"`
	TakenAt        time.Time `json:"taken_at"`
}
