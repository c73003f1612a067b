package service

import (
	"context"

	"github.com/radieske/fear-greed-oracle/internal/shared/metrics"
	"github.com/radieske/fear-greed-oracle/pkg/contracts/events"
)

type metricsNotifier struct{ m *metrics.Oracle }

func (n metricsNotifier) OnBetPlaced(_ context.Context, e events.BetPlaced) error {
	origin := "user"
	if e.Simulated {
		origin = "simulated"
	}
	n.m.BetsPlaced.WithLabelValues(e.Direction, origin).Inc()
	return nil
}

func (n metricsNotifier) OnSentiment(_ context.Context, e events.SentimentUpdate) error {
	n.m.SentimentIndex.Set(float64(e.Index))
	if e.Stale {
		n.m.SentimentStale.Set(1)
	} else {
		n.m.SentimentStale.Set(0)
	}
	return nil
}

func (n metricsNotifier) OnRoundElapsed(_ context.Context, _ events.RoundElapsed) error {
	n.m.RoundsElapsed.Inc()
	return nil
}
