package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/radieske/fear-greed-oracle/internal/bet-journal/consumer"
	"github.com/radieske/fear-greed-oracle/internal/bet-journal/repo"
	"github.com/radieske/fear-greed-oracle/internal/shared/config"
	"github.com/radieske/fear-greed-oracle/internal/shared/db"
	"github.com/radieske/fear-greed-oracle/internal/shared/kafka"
	"github.com/radieske/fear-greed-oracle/internal/shared/logger"
	"github.com/radieske/fear-greed-oracle/internal/shared/metrics"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Sinalização para shutdown gracioso (SIGINT/SIGTERM)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := db.ConnectPostgres(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal("postgres connect", zap.Error(err))
	}
	defer pg.Close()

	journal := repo.NewPostgres(pg)
	if err := journal.EnsureSchema(ctx); err != nil {
		log.Fatal("journal schema", zap.Error(err))
	}

	// Consumer group próprio: o journal não concorre com outros leitores
	brokers := cfg.Brokers()
	reader := kafka.NewReader(brokers, cfg.TopicBetPlaced, "bet-journal")
	defer reader.Close()

	dlq := kafka.NewWriter(brokers)
	dlq.Topic = cfg.TopicBetPlacedDLQ
	defer dlq.Close()

	m := metrics.NewJournal(prometheus.DefaultRegisterer)

	proc := &consumer.Processor{
		Log:        log,
		Reader:     reader,
		Journal:    journal,
		DLQ:        dlq,
		OnConsumed: func() { m.Consumed.Inc() },
		OnPersist:  func() { m.Persisted.Inc() },
		OnError:    func(stage string) { m.Errors.WithLabelValues(stage).Inc() },
	}

	// Servidor HTTP para métricas e health check
	metricsSrv := metrics.StartMetricsServer(cfg.MetricsPort, prometheus.DefaultGatherer, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		return nil
	})
	defer metricsSrv.Close()
	log.Info("metrics/health listening", zap.String("port", cfg.MetricsPort))

	log.Info("bet-journal started", zap.String("topic", cfg.TopicBetPlaced))
	if err := proc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("journal stopped with error", zap.Error(err))
	}
	log.Info("bet-journal stopped")
}
