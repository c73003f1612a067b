package pool

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Direction é o lado da aposta: o índice sobe ou desce.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ParseDirection aceita "up"/"down" sem diferenciar maiúsculas.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case Up:
		return Up, nil
	case Down:
		return Down, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// Pool guarda o total apostado em cada lado
type Pool struct {
	Up   decimal.Decimal `json:"up"`
	Down decimal.Decimal `json:"down"`
}

// Odds é o multiplicador de pagamento de cada lado, com 2 casas decimais
type Odds struct {
	Up   decimal.Decimal `json:"up"`
	Down decimal.Decimal `json:"down"`
}

// For retorna a odd do lado informado
func (o Odds) For(d Direction) decimal.Decimal {
	if d == Up {
		return o.Up
	}
	return o.Down
}

// Bettor é a identidade de quem aposta. A implementação concreta
// (carteira EVM, Solana, usuário demo, simulação) fica fora do pool.
type Bettor interface {
	Connected() bool
	// BettorID identifica o histórico pessoal; vazio = sem histórico
	BettorID() string
	Label() string
}

// Bet é imutável depois de criada.
type Bet struct {
	ID              string          `json:"id"`
	Direction       Direction       `json:"direction"`
	Amount          decimal.Decimal `json:"amount"`
	OddsAtPlacement decimal.Decimal `json:"oddsAtPlacement"`
	Comment         string          `json:"comment,omitempty"`
	PlacedAt        time.Time       `json:"placedAt"`
	Bettor          string          `json:"bettor"`
	BettorID        string          `json:"-"`
}

// Confirmation é o payload devolvido ao usuário após a aposta
type Confirmation struct {
	BetID           string          `json:"betId"`
	Amount          decimal.Decimal `json:"amount"`
	Direction       Direction       `json:"direction"`
	Odds            decimal.Decimal `json:"odds"`
	PotentialPayout decimal.Decimal `json:"potentialPayout"`
}

// Confirm monta a confirmação; payout potencial = valor × odd travada.
func Confirm(b Bet) Confirmation {
	return Confirmation{
		BetID:           b.ID,
		Amount:          b.Amount,
		Direction:       b.Direction,
		Odds:            b.OddsAtPlacement,
		PotentialPayout: b.Amount.Mul(b.OddsAtPlacement).Round(2),
	}
}
