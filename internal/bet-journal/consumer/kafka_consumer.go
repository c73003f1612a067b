package consumer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/radieske/fear-greed-oracle/pkg/contracts/events"
)

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Journal é o destino das apostas consumidas
type Journal interface {
	Append(ctx context.Context, e events.BetPlaced) (bool, error)
}

const maxAttempts = 3

// Processor consome bet_placed do Kafka e grava no journal.
// Após maxAttempts falhas a mensagem vai para a DLQ (quando configurada).
type Processor struct {
	Log     *zap.Logger
	Reader  messageReader
	Journal Journal
	DLQ     messageWriter // opcional

	OnConsumed func()       // métricas (counter++)
	OnPersist  func()       // métricas
	OnError    func(string) // métricas por fase

	backoff time.Duration
}

// Run inicia o loop principal de consumo até o contexto ser cancelado
func (p *Processor) Run(ctx context.Context) error {
	if p.backoff == 0 {
		p.backoff = 500 * time.Millisecond
	}
	for {
		m, err := p.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err() // encerra se o contexto for cancelado
			}
			p.Log.Warn("kafka read failed", zap.Error(err))
			p.fail("read")
			if !sleep(ctx, p.backoff) {
				return ctx.Err()
			}
			continue
		}

		if p.OnConsumed != nil {
			p.OnConsumed()
		}

		var ev events.BetPlaced
		if err := json.Unmarshal(m.Value, &ev); err != nil || ev.BetID == "" {
			p.Log.Warn("invalid message", zap.Error(err), zap.ByteString("key", m.Key))
			p.fail("decode")
			p.deadLetter(ctx, m)
			continue
		}

		if err := p.persist(ctx, ev); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.Log.Error("journal append failed, sending to dlq", zap.String("bet_id", ev.BetID), zap.Error(err))
			p.fail("db")
			p.deadLetter(ctx, m)
		}
	}
}

// persist tenta gravar até maxAttempts vezes com backoff linear
func (p *Processor) persist(ctx context.Context, ev events.BetPlaced) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		var inserted bool
		inserted, err = p.Journal.Append(ctx, ev)
		if err == nil {
			if inserted && p.OnPersist != nil {
				p.OnPersist()
			}
			if !inserted {
				p.Log.Debug("bet already journaled", zap.String("bet_id", ev.BetID))
			}
			return nil
		}
		p.Log.Warn("journal append retry", zap.Int("attempt", attempt), zap.Error(err))
		if attempt < maxAttempts && !sleep(ctx, time.Duration(attempt)*p.backoff) {
			return ctx.Err()
		}
	}
	return err
}

func (p *Processor) deadLetter(ctx context.Context, m kafka.Message) {
	if p.DLQ == nil {
		return
	}
	dm := kafka.Message{Key: m.Key, Value: m.Value, Time: time.Now()}
	if err := p.DLQ.WriteMessages(ctx, dm); err != nil {
		p.Log.Error("dlq publish failed", zap.Error(err))
		p.fail("dlq")
	}
}

func (p *Processor) fail(stage string) {
	if p.OnError != nil {
		p.OnError(stage)
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
