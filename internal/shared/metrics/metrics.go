package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Oracle reúne os coletores do oracle-service
type Oracle struct {
	BetsPlaced      *prometheus.CounterVec // direction, origin
	BetsRejected    *prometheus.CounterVec // reason
	PoolTotal       *prometheus.GaugeVec   // direction
	Odds            *prometheus.GaugeVec   // direction
	SentimentIndex  prometheus.Gauge
	SentimentStale  prometheus.Gauge
	SentimentErrors prometheus.Counter
	RoundsElapsed   prometheus.Counter
	RoundRemaining  prometheus.Gauge
	WSClients       prometheus.Gauge
	WebhookEvents   *prometheus.CounterVec // type
	PublishErrors   *prometheus.CounterVec // topic
}

// NewOracle cria e registra os coletores no registry informado
func NewOracle(reg prometheus.Registerer) *Oracle {
	m := &Oracle{
		BetsPlaced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "oracle_bets_placed_total", Help: "apostas aceitas",
		}, []string{"direction", "origin"}),
		BetsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "oracle_bets_rejected_total", Help: "apostas rejeitadas por motivo",
		}, []string{"reason"}),
		PoolTotal: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "oracle_pool_total", Help: "total apostado por lado",
		}, []string{"direction"}),
		Odds: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "oracle_odds", Help: "odd corrente por lado",
		}, []string{"direction"}),
		SentimentIndex: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "oracle_sentiment_index", Help: "último índice fear & greed",
		}),
		SentimentStale: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "oracle_sentiment_stale", Help: "1 quando o índice exibido é um fallback",
		}),
		SentimentErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "oracle_sentiment_refresh_errors_total", Help: "falhas ao buscar o índice",
		}),
		RoundsElapsed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "oracle_rounds_elapsed_total", Help: "rodadas encerradas pelo countdown",
		}),
		RoundRemaining: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "oracle_round_remaining_seconds", Help: "segundos restantes da rodada",
		}),
		WSClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "oracle_ws_clients", Help: "conexões websocket abertas",
		}),
		WebhookEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "oracle_webhook_events_total", Help: "eventos recebidos no webhook",
		}, []string{"type"}),
		PublishErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "oracle_publish_errors_total", Help: "falhas ao publicar no kafka",
		}, []string{"topic"}),
	}
	reg.MustRegister(
		m.BetsPlaced, m.BetsRejected, m.PoolTotal, m.Odds,
		m.SentimentIndex, m.SentimentStale, m.SentimentErrors,
		m.RoundsElapsed, m.RoundRemaining, m.WSClients,
		m.WebhookEvents, m.PublishErrors,
	)
	return m
}

// Journal reúne os coletores do bet-journal-worker
type Journal struct {
	Consumed  prometheus.Counter
	Persisted prometheus.Counter
	Errors    *prometheus.CounterVec // stage
}

func NewJournal(reg prometheus.Registerer) *Journal {
	m := &Journal{
		Consumed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "journal_messages_consumed_total", Help: "mensagens consumidas",
		}),
		Persisted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "journal_db_writes_total", Help: "apostas gravadas no journal",
		}),
		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "journal_errors_total", Help: "erros por estágio",
		}, []string{"stage"}),
	}
	reg.MustRegister(m.Consumed, m.Persisted, m.Errors)
	return m
}
