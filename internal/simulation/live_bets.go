package simulation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/radieske/fear-greed-oracle/internal/pool"
	"github.com/radieske/fear-greed-oracle/internal/shared/random"
)

// Placer é o subconjunto do pool usado pelo injetor
type Placer interface {
	PlaceBet(b pool.Bettor, d pool.Direction, amount decimal.Decimal, comment string) (pool.Bet, error)
	Tiers() []decimal.Decimal
}

var defaultComments = []string{
	"",
	"HODL strong!",
	"Market looks bullish",
	"Time to buy the dip",
	"Feeling lucky today",
	"Let's go!",
}

// anonBettor representa um apostador simulado: conectado, sem histórico pessoal
type anonBettor struct{ label string }

func (a anonBettor) Connected() bool  { return true }
func (a anonBettor) BettorID() string { return "" }
func (a anonBettor) Label() string    { return a.label }

// LiveBets injeta apostas aleatórias para dar movimento ao feed
type LiveBets struct {
	placer      Placer
	rand        random.Rand
	threshold   float64 // aposta quando o sorteio passa deste valor
	comments    []string
}

// NewLiveBets cria o injetor. threshold fora de [0,1) vira 0.7 (30% de chance por tick).
func NewLiveBets(p Placer, r random.Rand, threshold float64) *LiveBets {
	if threshold < 0 || threshold >= 1 {
		threshold = 0.7
	}
	return &LiveBets{placer: p, rand: r, threshold: threshold, comments: defaultComments}
}

// Tick sorteia se uma aposta acontece e, se sim, coloca no pool.
// placed=false quando o sorteio não gerou aposta.
func (l *LiveBets) Tick() (bet pool.Bet, placed bool, err error) {
	if l.rand.Float64() <= l.threshold {
		return pool.Bet{}, false, nil
	}

	dir := pool.Up
	if l.rand.IntN(2) == 1 {
		dir = pool.Down
	}
	tiers := l.placer.Tiers()
	amount := tiers[l.rand.IntN(len(tiers))]
	comment := l.comments[l.rand.IntN(len(l.comments))]
	who := anonBettor{label: fmt.Sprintf("0x%04x...", l.rand.IntN(0x10000))}

	bet, err = l.placer.PlaceBet(who, dir, amount, comment)
	if err != nil {
		return pool.Bet{}, false, err
	}
	return bet, true, nil
}

// DemoFeed é o feed inicial exibido antes de qualquer aposta real,
// da mais antiga para a mais nova.
func DemoFeed() []pool.Bet {
	mk := func(user string, d pool.Direction, amount int64, comment string) pool.Bet {
		return pool.Bet{
			ID:        "demo-" + user,
			Bettor:    user,
			Direction: d,
			Amount:    decimal.NewFromInt(amount),
			Comment:   comment,
		}
	}
	return []pool.Bet{
		mk("0x4593...", pool.Down, 5, "Market correction incoming"),
		mk("0x26c4...", pool.Up, 1, ""),
		mk("0x916f...", pool.Up, 5, "Bullish on crypto"),
		mk("0xb548...", pool.Up, 10, "Bitcoin to the moon! 🚀"),
	}
}
