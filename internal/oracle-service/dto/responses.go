package dto

import "github.com/radieske/fear-greed-oracle/internal/pool"

type PlaceBetResponse struct {
	pool.Confirmation
	Message string `json:"message,omitempty"`
}

// BetView é a aposta como aparece nos feeds
type BetView struct {
	ID        string `json:"id"`
	User      string `json:"user"`
	Direction string `json:"direction"`
	Amount    string `json:"amount"`
	Odds      string `json:"odds"`
	Comment   string `json:"comment"`
	PlacedAt  int64  `json:"placedAtUnixMs,omitempty"`
}

func NewBetViews(bets []pool.Bet) []BetView {
	out := make([]BetView, 0, len(bets))
	for _, b := range bets {
		v := BetView{
			ID:        b.ID,
			User:      b.Bettor,
			Direction: string(b.Direction),
			Amount:    b.Amount.String(),
			Comment:   b.Comment,
		}
		if !b.OddsAtPlacement.IsZero() {
			v.Odds = b.OddsAtPlacement.StringFixed(2)
		}
		if !b.PlacedAt.IsZero() {
			v.PlacedAt = b.PlacedAt.UnixMilli()
		}
		out = append(out, v)
	}
	return out
}

type ErrorResponse struct {
	Error string `json:"error"`
}
