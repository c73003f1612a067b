package pool

import (
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Config define os valores iniciais do pool e os limites de entrada
type Config struct {
	SeedUp        decimal.Decimal
	SeedDown      decimal.Decimal
	FeedCapacity  int
	Tiers         []decimal.Decimal
	MaxCommentLen int
}

// DefaultConfig reproduz os valores da tela original: 299/194, feed de 4, tiers 1/5/10.
func DefaultConfig() Config {
	return Config{
		SeedUp:        decimal.NewFromInt(299),
		SeedDown:      decimal.NewFromInt(194),
		FeedCapacity:  4,
		Tiers:         []decimal.Decimal{decimal.NewFromInt(1), decimal.NewFromInt(5), decimal.NewFromInt(10)},
		MaxCommentLen: 100,
	}
}

// Model mantém os dois totais, o feed global e o histórico por usuário.
// Todas as operações passam pelo mesmo mutex: cada evento roda até o fim
// antes do próximo.
type Model struct {
	mu     sync.Mutex
	cfg    Config
	totals Pool
	recent []Bet            // mais nova primeiro, no máximo cfg.FeedCapacity
	byUser map[string][]Bet // append-only, sem limite
	now    func() time.Time
	newID  func() string
}

// New cria o modelo com os totais semente. Sementes precisam ser > 0,
// senão as odds não existem desde o início.
func New(cfg Config) (*Model, error) {
	def := DefaultConfig()
	if cfg.FeedCapacity <= 0 {
		cfg.FeedCapacity = def.FeedCapacity
	}
	if len(cfg.Tiers) == 0 {
		cfg.Tiers = def.Tiers
	}
	if cfg.MaxCommentLen <= 0 {
		cfg.MaxCommentLen = def.MaxCommentLen
	}
	if !cfg.SeedUp.IsPositive() || !cfg.SeedDown.IsPositive() {
		return nil, fmt.Errorf("%w: up=%s down=%s", ErrInvalidSeed, cfg.SeedUp, cfg.SeedDown)
	}
	return &Model{
		cfg:    cfg,
		totals: Pool{Up: cfg.SeedUp, Down: cfg.SeedDown},
		byUser: make(map[string][]Bet),
		now:    time.Now,
		newID:  uuid.NewString,
	}, nil
}

// Tiers retorna os valores de aposta aceitos
func (m *Model) Tiers() []decimal.Decimal {
	out := make([]decimal.Decimal, len(m.cfg.Tiers))
	copy(out, m.cfg.Tiers)
	return out
}

// Totals retorna uma cópia dos totais atuais
func (m *Model) Totals() Pool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totals
}

// CurrentOdds calcula up = down/up e down = up/down, arredondados em 2 casas.
// ok=false quando algum total é zero.
func (m *Model) CurrentOdds() (Odds, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return oddsFor(m.totals)
}

func oddsFor(p Pool) (Odds, bool) {
	if !p.Up.IsPositive() || !p.Down.IsPositive() {
		return Odds{}, false
	}
	return Odds{
		Up:   p.Down.Div(p.Up).Round(2),
		Down: p.Up.Div(p.Down).Round(2),
	}, true
}

// PlaceBet valida, trava a odd anterior à aposta e atualiza pool e históricos.
// Em qualquer erro nada é alterado.
func (m *Model) PlaceBet(b Bettor, d Direction, amount decimal.Decimal, comment string) (Bet, error) {
	if b == nil || !b.Connected() {
		return Bet{}, ErrNotConnected
	}
	if d != Up && d != Down {
		return Bet{}, fmt.Errorf("%w: %q", ErrInvalidDirection, d)
	}
	if !m.validTier(amount) {
		return Bet{}, fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}
	if utf8.RuneCountInString(comment) > m.cfg.MaxCommentLen {
		return Bet{}, fmt.Errorf("%w: max %d chars", ErrCommentTooLong, m.cfg.MaxCommentLen)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	odds, ok := oddsFor(m.totals)
	if !ok {
		return Bet{}, ErrOddsUnavailable
	}

	bet := Bet{
		ID:              m.newID(),
		Direction:       d,
		Amount:          amount,
		OddsAtPlacement: odds.For(d),
		Comment:         comment,
		PlacedAt:        m.now(),
		Bettor:          b.Label(),
		BettorID:        b.BettorID(),
	}

	if d == Up {
		m.totals.Up = m.totals.Up.Add(amount)
	} else {
		m.totals.Down = m.totals.Down.Add(amount)
	}

	if bet.BettorID != "" {
		m.byUser[bet.BettorID] = append(m.byUser[bet.BettorID], bet)
	}
	m.pushRecent(bet)
	return bet, nil
}

func (m *Model) validTier(amount decimal.Decimal) bool {
	if !amount.IsPositive() {
		return false
	}
	for _, t := range m.cfg.Tiers {
		if t.Equal(amount) {
			return true
		}
	}
	return false
}

// pushRecent insere na frente e descarta a mais antiga além da capacidade.
// Chamado com o lock já adquirido.
func (m *Model) pushRecent(b Bet) {
	next := make([]Bet, 0, m.cfg.FeedCapacity)
	next = append(next, b)
	for _, old := range m.recent {
		if len(next) == m.cfg.FeedCapacity {
			break
		}
		next = append(next, old)
	}
	m.recent = next
}

// InjectFeed preenche o feed global sem mexer nos totais (feed inicial de demo).
// As apostas são informadas da mais antiga para a mais nova.
func (m *Model) InjectFeed(bets ...Bet) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range bets {
		m.pushRecent(b)
	}
}

// RecentBets retorna o feed global, mais nova primeiro
func (m *Model) RecentBets() []Bet {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Bet, len(m.recent))
	copy(out, m.recent)
	return out
}

// UserBets retorna as últimas `limit` apostas do usuário (ordem cronológica).
// limit <= 0 retorna tudo.
func (m *Model) UserBets(bettorID string, limit int) []Bet {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.byUser[bettorID]
	if limit > 0 && len(all) > limit {
		all = all[len(all)-limit:]
	}
	out := make([]Bet, len(all))
	copy(out, all)
	return out
}
