package events

// Evento publicado no tópico "bet_placed" a cada aposta aceita pelo pool.
type BetPlaced struct {
	BetID           string `json:"bet_id"`
	BettorID        string `json:"bettor_id,omitempty"` // vazio para apostas simuladas
	Bettor          string `json:"bettor"`
	Direction       string `json:"direction"` // "up" | "down"
	Amount          string `json:"amount"`    // decimal em string para não perder precisão
	OddsAtPlacement string `json:"odds_at_placement"`
	Comment         string `json:"comment,omitempty"`
	Simulated       bool   `json:"simulated"`
	PoolUp          string `json:"pool_up"`
	PoolDown        string `json:"pool_down"`
	TsUnixMs        int64  `json:"ts_unix_ms"`
}
