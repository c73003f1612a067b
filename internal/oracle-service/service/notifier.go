package service

import (
	"context"

	"github.com/radieske/fear-greed-oracle/pkg/contracts/events"
)

// Notifier recebe os fatos produzidos pelo serviço (hub WS, kafka, métricas).
// Erros são só logados; nunca voltam para quem apostou.
type Notifier interface {
	OnBetPlaced(ctx context.Context, e events.BetPlaced) error
	OnSentiment(ctx context.Context, e events.SentimentUpdate) error
	OnRoundElapsed(ctx context.Context, e events.RoundElapsed) error
}
