package producer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/radieske/fear-greed-oracle/pkg/contracts/events"
	"github.com/radieske/fear-greed-oracle/pkg/contracts/topics"
)

type stubWriter struct {
	msgs []kafka.Message
	err  error
}

func (s *stubWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if s.err != nil {
		return s.err
	}
	s.msgs = append(s.msgs, msgs...)
	return nil
}

func newPublisher(w *stubWriter) *KafkaPublisher {
	return NewKafkaPublisher(w, Topics{
		BetPlaced:        topics.BetPlaced,
		SentimentUpdates: topics.SentimentUpdates,
		RoundElapsed:     topics.RoundElapsed,
		AppLifecycle:     topics.AppLifecycle,
	}, zap.NewNop())
}

func TestPublishBetPlaced(t *testing.T) {
	w := &stubWriter{}
	p := newPublisher(w)

	if err := p.OnBetPlaced(context.Background(), events.BetPlaced{BetID: "b-1", Direction: "down", Amount: "10"}); err != nil {
		t.Fatal(err)
	}
	if len(w.msgs) != 1 {
		t.Fatalf("expected one message, got %d", len(w.msgs))
	}
	m := w.msgs[0]
	if m.Topic != topics.BetPlaced || string(m.Key) != "b-1" {
		t.Fatalf("unexpected message %s/%s", m.Topic, m.Key)
	}
	var got events.BetPlaced
	if err := json.Unmarshal(m.Value, &got); err != nil {
		t.Fatal(err)
	}
	if got.TsUnixMs == 0 || got.Amount != "10" {
		t.Fatalf("unexpected payload %+v", got)
	}
}

func TestPublishRoutesByTopic(t *testing.T) {
	w := &stubWriter{}
	p := newPublisher(w)
	ctx := context.Background()

	_ = p.OnSentiment(ctx, events.SentimentUpdate{Index: 63, Source: "feargreed"})
	_ = p.OnRoundElapsed(ctx, events.RoundElapsed{Round: 2})
	_ = p.PublishAppLifecycle(ctx, events.AppLifecycle{Type: "mini_app_install"})

	want := []string{topics.SentimentUpdates, topics.RoundElapsed, topics.AppLifecycle}
	if len(w.msgs) != len(want) {
		t.Fatalf("expected %d messages, got %d", len(want), len(w.msgs))
	}
	for i, topic := range want {
		if w.msgs[i].Topic != topic {
			t.Fatalf("message %d went to %s, want %s", i, w.msgs[i].Topic, topic)
		}
	}
}

func TestPublishErrorCallsHook(t *testing.T) {
	w := &stubWriter{err: errors.New("broker down")}
	p := newPublisher(w)
	var failed []string
	p.OnError = func(topic string) { failed = append(failed, topic) }

	if err := p.OnRoundElapsed(context.Background(), events.RoundElapsed{}); err == nil {
		t.Fatal("expected error")
	}
	if len(failed) != 1 || failed[0] != topics.RoundElapsed {
		t.Fatalf("unexpected hook calls %v", failed)
	}
}
