package simulation

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/radieske/fear-greed-oracle/internal/pool"
	"github.com/radieske/fear-greed-oracle/internal/shared/random"
)

func newPool(t *testing.T) *pool.Model {
	t.Helper()
	m, err := pool.New(pool.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestTickSkipsBelowThreshold(t *testing.T) {
	m := newPool(t)
	l := NewLiveBets(m, &random.Script{Floats: []float64{0.7}}, 0.7)

	_, placed, err := l.Tick()
	if err != nil || placed {
		t.Fatalf("0.7 should not place a bet (placed=%v err=%v)", placed, err)
	}
	if len(m.RecentBets()) != 0 {
		t.Fatal("feed should be untouched")
	}
}

func TestTickPlacesScriptedBet(t *testing.T) {
	m := newPool(t)
	// ints: direção=1 (down), tier=2 (10), comentário=3, usuário=0xbeef
	l := NewLiveBets(m, &random.Script{Floats: []float64{0.95}, Ints: []int{1, 2, 3, 0xbeef}}, 0.7)

	bet, placed, err := l.Tick()
	if err != nil || !placed {
		t.Fatalf("expected a bet, placed=%v err=%v", placed, err)
	}
	if bet.Direction != pool.Down || !bet.Amount.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("unexpected bet: %+v", bet)
	}
	if bet.Comment != "Time to buy the dip" || bet.Bettor != "0xbeef..." {
		t.Fatalf("unexpected bet: %+v", bet)
	}
	if !m.Totals().Down.Equal(decimal.NewFromInt(204)) {
		t.Fatalf("down pool should grow by 10, got %s", m.Totals().Down)
	}
	if !bet.OddsAtPlacement.Equal(decimal.RequireFromString("1.54")) {
		t.Fatalf("unexpected locked odds %s", bet.OddsAtPlacement)
	}
	if len(m.UserBets("", 0)) != 0 {
		t.Fatal("simulated bets must not create a personal history")
	}
}

func TestDemoFeedFillsCapacity(t *testing.T) {
	m := newPool(t)
	m.InjectFeed(DemoFeed()...)
	recent := m.RecentBets()
	if len(recent) != 4 || recent[0].Bettor != "0xb548..." || recent[3].Bettor != "0x4593..." {
		t.Fatalf("unexpected demo feed: %+v", recent)
	}
}
