package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/radieske/fear-greed-oracle/pkg/contracts/events"
)

// messageWriter é o subconjunto do kafka.Writer usado aqui
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Topics nomeia os tópicos de saída
type Topics struct {
	BetPlaced        string
	SentimentUpdates string
	RoundElapsed     string
	AppLifecycle     string
}

// KafkaPublisher publica os eventos do oracle em JSON.
// OnError é opcional (métrica por tópico).
type KafkaPublisher struct {
	Writer  messageWriter
	Topics  Topics
	Log     *zap.Logger
	OnError func(topic string)
}

func NewKafkaPublisher(w messageWriter, topics Topics, log *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{Writer: w, Topics: topics, Log: log}
}

func (p *KafkaPublisher) publish(ctx context.Context, topic, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: b,
		Time:  time.Now(),
	}
	if err := p.Writer.WriteMessages(ctx, msg); err != nil {
		if p.OnError != nil {
			p.OnError(topic)
		}
		return err
	}
	p.Log.Debug("event published", zap.String("topic", topic), zap.String("key", key))
	return nil
}

// OnBetPlaced usa o id da aposta como chave
func (p *KafkaPublisher) OnBetPlaced(ctx context.Context, e events.BetPlaced) error {
	if e.TsUnixMs == 0 {
		e.TsUnixMs = time.Now().UnixMilli()
	}
	return p.publish(ctx, p.Topics.BetPlaced, e.BetID, e)
}

func (p *KafkaPublisher) OnSentiment(ctx context.Context, e events.SentimentUpdate) error {
	return p.publish(ctx, p.Topics.SentimentUpdates, e.Source, e)
}

func (p *KafkaPublisher) OnRoundElapsed(ctx context.Context, e events.RoundElapsed) error {
	return p.publish(ctx, p.Topics.RoundElapsed, "round", e)
}

// PublishAppLifecycle repassa eventos do webhook do host
func (p *KafkaPublisher) PublishAppLifecycle(ctx context.Context, e events.AppLifecycle) error {
	if e.Ts.IsZero() {
		e.Ts = time.Now().UTC()
	}
	return p.publish(ctx, p.Topics.AppLifecycle, e.Type, e)
}
