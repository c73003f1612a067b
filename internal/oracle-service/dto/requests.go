package dto

import "github.com/shopspring/decimal"

// PlaceBetRequest é o corpo de POST /v1/bets.
// A identidade vem do host da mini app (FID + carteira conectada).
type PlaceBetRequest struct {
	FID         string          `json:"fid"`
	Username    string          `json:"username,omitempty"`
	DisplayName string          `json:"displayName,omitempty"`
	Address     string          `json:"address,omitempty"`
	Direction   string          `json:"direction"` // "up" | "down"
	Amount      decimal.Decimal `json:"amount"`
	Comment     string          `json:"comment,omitempty"`
}
