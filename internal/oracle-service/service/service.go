package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/radieske/fear-greed-oracle/internal/countdown"
	"github.com/radieske/fear-greed-oracle/internal/pool"
	"github.com/radieske/fear-greed-oracle/internal/scheduler"
	"github.com/radieske/fear-greed-oracle/internal/sentiment"
	"github.com/radieske/fear-greed-oracle/internal/shared/metrics"
	"github.com/radieske/fear-greed-oracle/internal/simulation"
	"github.com/radieske/fear-greed-oracle/internal/wallet"
	"github.com/radieske/fear-greed-oracle/pkg/contracts/events"
)

// Deps agrupa os componentes que o serviço orquestra
type Deps struct {
	Log        *zap.Logger
	Pool       *pool.Model
	Feed       *sentiment.Feed
	Clock      *countdown.Clock
	LiveBets   *simulation.LiveBets // opcional
	Connector  *wallet.Connector
	SourceName string
	Metrics    *metrics.Oracle // opcional
	Notifiers  []Notifier
}

// Service é a fachada usada pela API HTTP e pelo scheduler
type Service struct {
	log       *zap.Logger
	pool      *pool.Model
	feed      *sentiment.Feed
	clock     *countdown.Clock
	live      *simulation.LiveBets
	conn      *wallet.Connector
	source    string
	metrics   *metrics.Oracle
	notifiers []Notifier
	now       func() time.Time
}

func New(d Deps) *Service {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{
		log:       log,
		pool:      d.Pool,
		feed:      d.Feed,
		clock:     d.Clock,
		live:      d.LiveBets,
		conn:      d.Connector,
		source:    d.SourceName,
		metrics:   d.Metrics,
		notifiers: d.Notifiers,
		now:       time.Now,
	}
	if d.Metrics != nil {
		s.notifiers = append(s.notifiers, metricsNotifier{m: d.Metrics})
		s.observePool()
	}
	return s
}

// PoolView é o estado do pool exposto para leitura
type PoolView struct {
	Totals        pool.Pool  `json:"totals"`
	Odds          *pool.Odds `json:"odds,omitempty"`
	OddsAvailable bool       `json:"oddsAvailable"`
	Tiers         []string   `json:"tiers"`
}

func (s *Service) Pool() PoolView {
	v := PoolView{Totals: s.pool.Totals()}
	if o, ok := s.pool.CurrentOdds(); ok {
		v.Odds = &o
		v.OddsAvailable = true
	}
	for _, t := range s.pool.Tiers() {
		v.Tiers = append(v.Tiers, t.String())
	}
	return v
}

// PlaceBet resolve a sessão pelo conector de carteira e aposta no pool.
// Erros do pool voltam intactos para o mapeamento HTTP.
func (s *Service) PlaceBet(ctx context.Context, sess wallet.Session, direction string, amount decimal.Decimal, comment string) (pool.Confirmation, error) {
	who := s.conn.Resolve(sess)

	// direção inválida segue para o pool, que checa a conexão antes
	dir, perr := pool.ParseDirection(direction)
	if perr != nil {
		dir = pool.Direction(direction)
	}

	bet, err := s.pool.PlaceBet(who, dir, amount, comment)
	if err == nil {
		s.log.Info("bet placed",
			zap.String("bet_id", bet.ID),
			zap.String("bettor", bet.Bettor),
			zap.String("direction", string(bet.Direction)),
			zap.String("amount", bet.Amount.String()),
			zap.String("odds", bet.OddsAtPlacement.String()),
		)
		s.notifyBet(ctx, bet, false)
		return pool.Confirm(bet), nil
	}

	s.log.Debug("bet rejected", zap.String("fid", who.FID), zap.Error(err))
	if s.metrics != nil {
		s.metrics.BetsRejected.WithLabelValues(RejectReason(err)).Inc()
	}
	return pool.Confirmation{}, err
}

// RejectReason dá um rótulo curto para cada erro de aposta
func RejectReason(err error) string {
	switch {
	case errors.Is(err, pool.ErrNotConnected):
		return "not_connected"
	case errors.Is(err, pool.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, pool.ErrInvalidDirection):
		return "invalid_direction"
	case errors.Is(err, pool.ErrCommentTooLong):
		return "comment_too_long"
	case errors.Is(err, pool.ErrOddsUnavailable):
		return "odds_unavailable"
	}
	return "other"
}

func (s *Service) RecentBets() []pool.Bet { return s.pool.RecentBets() }

// UserBets lista o histórico de um FID (as últimas limit apostas)
func (s *Service) UserBets(fid string, limit int) []pool.Bet {
	id := wallet.Session{FID: fid}.BettorID()
	if id == "" {
		return []pool.Bet{}
	}
	return s.pool.UserBets(id, limit)
}

func (s *Service) Sentiment() sentiment.Snapshot { return s.feed.Snapshot() }

// RoundView é o estado do countdown
type RoundView struct {
	Round        int64  `json:"round"`
	RemainingSec int64  `json:"remainingSec"`
	Remaining    string `json:"remaining"`
	DurationSec  int64  `json:"durationSec"`
}

func (s *Service) Round() RoundView {
	rem := s.clock.Remaining()
	return RoundView{
		Round:        s.clock.Round(),
		RemainingSec: rem,
		Remaining:    countdown.Format(rem),
		DurationSec:  s.clock.Duration(),
	}
}

// Prime preenche a série do índice na partida; falha não é fatal
func (s *Service) Prime(ctx context.Context, n int) {
	if err := s.feed.Prime(ctx, n); err != nil {
		s.log.Warn("sentiment prime failed", zap.Error(err))
	}
}

// RefreshSentiment busca uma leitura nova e propaga o snapshot
func (s *Service) RefreshSentiment(ctx context.Context) {
	sample, err := s.feed.Refresh(ctx)
	if err != nil && s.metrics != nil {
		s.metrics.SentimentErrors.Inc()
	}
	snap := s.feed.Snapshot()
	ev := events.SentimentUpdate{
		Index:          snap.Index,
		Classification: snap.Classification,
		Trend:          string(snap.Trend),
		Stale:          snap.Stale,
		Source:         s.source,
		TakenAt:        sample.TakenAt,
	}
	for _, n := range s.notifiers {
		if err := n.OnSentiment(ctx, ev); err != nil {
			s.log.Warn("sentiment notify failed", zap.Error(err))
		}
	}
}

// TickCountdown avança o relógio um segundo. Na virada só notifica:
// não há liquidação do pool.
func (s *Service) TickCountdown(ctx context.Context) {
	remaining, wrapped := s.clock.Tick()
	if s.metrics != nil {
		s.metrics.RoundRemaining.Set(float64(remaining))
	}
	if !wrapped {
		return
	}
	totals := s.pool.Totals()
	ev := events.RoundElapsed{
		Round:       s.clock.Round(),
		DurationSec: s.clock.Duration(),
		PoolUp:      totals.Up.String(),
		PoolDown:    totals.Down.String(),
		Ts:          s.now(),
	}
	s.log.Info("round elapsed", zap.Int64("round", ev.Round), zap.String("pool_up", ev.PoolUp), zap.String("pool_down", ev.PoolDown))
	for _, n := range s.notifiers {
		if err := n.OnRoundElapsed(ctx, ev); err != nil {
			s.log.Warn("round notify failed", zap.Error(err))
		}
	}
}

// InjectLiveBet roda um sorteio do injetor de apostas simuladas
func (s *Service) InjectLiveBet(ctx context.Context) {
	if s.live == nil {
		return
	}
	bet, placed, err := s.live.Tick()
	if err != nil {
		s.log.Warn("live bet failed", zap.Error(err))
		return
	}
	if !placed {
		return
	}
	s.log.Debug("live bet injected", zap.String("bettor", bet.Bettor), zap.String("direction", string(bet.Direction)))
	s.notifyBet(ctx, bet, true)
}

func (s *Service) notifyBet(ctx context.Context, bet pool.Bet, simulated bool) {
	totals := s.pool.Totals()
	ev := events.BetPlaced{
		BetID:           bet.ID,
		BettorID:        bet.BettorID,
		Bettor:          bet.Bettor,
		Direction:       string(bet.Direction),
		Amount:          bet.Amount.String(),
		OddsAtPlacement: bet.OddsAtPlacement.StringFixed(2),
		Comment:         bet.Comment,
		Simulated:       simulated,
		PoolUp:          totals.Up.String(),
		PoolDown:        totals.Down.String(),
		TsUnixMs:        bet.PlacedAt.UnixMilli(),
	}
	for _, n := range s.notifiers {
		if err := n.OnBetPlaced(ctx, ev); err != nil {
			s.log.Warn("bet notify failed", zap.String("bet_id", bet.ID), zap.Error(err))
		}
	}
	if s.metrics != nil {
		s.observePool()
	}
}

func (s *Service) observePool() {
	totals := s.pool.Totals()
	s.metrics.PoolTotal.WithLabelValues(string(pool.Up)).Set(totals.Up.InexactFloat64())
	s.metrics.PoolTotal.WithLabelValues(string(pool.Down)).Set(totals.Down.InexactFloat64())
	if o, ok := s.pool.CurrentOdds(); ok {
		s.metrics.Odds.WithLabelValues(string(pool.Up)).Set(o.Up.InexactFloat64())
		s.metrics.Odds.WithLabelValues(string(pool.Down)).Set(o.Down.InexactFloat64())
	}
}

// Intervals define a cadência das tarefas periódicas
type Intervals struct {
	IndexRefresh time.Duration
	Countdown    time.Duration
	LiveBets     time.Duration
}

// Tasks devolve as tarefas para o scheduler. A leitura do índice também roda na partida.
func (s *Service) Tasks(iv Intervals) []scheduler.Task {
	tasks := []scheduler.Task{
		{Name: "index-refresh", Interval: iv.IndexRefresh, RunAtStart: true, Fn: s.RefreshSentiment},
		{Name: "countdown", Interval: iv.Countdown, Fn: s.TickCountdown},
	}
	if s.live != nil {
		tasks = append(tasks, scheduler.Task{Name: "live-bets", Interval: iv.LiveBets, Fn: s.InjectLiveBet})
	}
	return tasks
}
