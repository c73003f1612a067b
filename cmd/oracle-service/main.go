package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/radieske/fear-greed-oracle/internal/countdown"
	"github.com/radieske/fear-greed-oracle/internal/miniapp"
	ocache "github.com/radieske/fear-greed-oracle/internal/oracle-service/cache"
	httpapi "github.com/radieske/fear-greed-oracle/internal/oracle-service/http"
	"github.com/radieske/fear-greed-oracle/internal/oracle-service/producer"
	"github.com/radieske/fear-greed-oracle/internal/oracle-service/service"
	"github.com/radieske/fear-greed-oracle/internal/oracle-service/ws"
	"github.com/radieske/fear-greed-oracle/internal/pool"
	"github.com/radieske/fear-greed-oracle/internal/scheduler"
	"github.com/radieske/fear-greed-oracle/internal/sentiment"
	sharedcache "github.com/radieske/fear-greed-oracle/internal/shared/cache"
	"github.com/radieske/fear-greed-oracle/internal/shared/config"
	"github.com/radieske/fear-greed-oracle/internal/shared/kafka"
	"github.com/radieske/fear-greed-oracle/internal/shared/logger"
	"github.com/radieske/fear-greed-oracle/internal/shared/metrics"
	"github.com/radieske/fear-greed-oracle/internal/shared/random"
	"github.com/radieske/fear-greed-oracle/internal/simulation"
	"github.com/radieske/fear-greed-oracle/internal/wallet"
	"github.com/radieske/fear-greed-oracle/pkg/contracts/events"
)

func main() {
	// carrega config
	cfg := config.Load()

	// inicia logger
	log, err := logger.New(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	log.Info("starting service", zap.String("service", cfg.ServiceName), zap.String("env", cfg.Env))

	// Sinalização para shutdown gracioso (SIGINT/SIGTERM)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.NewOracle(prometheus.DefaultRegisterer)

	// Pool em memória: sempre parte das sementes
	poolCfg, err := poolConfig(cfg)
	if err != nil {
		log.Fatal("invalid pool config", zap.Error(err))
	}
	bets, err := pool.New(poolCfg)
	if err != nil {
		log.Fatal("pool init", zap.Error(err))
	}
	if cfg.DemoFeed {
		bets.InjectFeed(simulation.DemoFeed()...)
	}

	rnd := random.New(cfg.RandomSeed)

	// Redis é opcional: guarda a última leitura boa do índice
	var (
		rdb   *redis.Client
		store sentiment.LastKnownStore
	)
	if cfg.RedisAddr != "" {
		rdb, err = sharedcache.ConnectRedis(ctx, cfg.RedisAddr)
		if err != nil {
			log.Fatal("failed to connect redis", zap.Error(err))
		}
		defer rdb.Close()
		store = ocache.NewSentimentCache(rdb, cfg.SentimentTTL)
		log.Info("redis connected")
	}

	var src sentiment.Source
	switch cfg.SentimentSource {
	case "feargreed":
		src = sentiment.NewFearGreedSource(cfg.FearGreedURL, 10*time.Second)
	default:
		src = sentiment.NewSimulatedSource(rnd)
	}
	feed := sentiment.NewFeed(log, src, store, cfg.SeriesSize, cfg.BaselineSamples)

	conn, err := wallet.NewConnector(cfg.WalletEcosystem, cfg.DemoMode)
	if err != nil {
		log.Fatal("wallet connector", zap.String("ecosystem", cfg.WalletEcosystem), zap.Error(err))
	}

	hub := ws.NewHub(log, func(*http.Request) bool { return true })
	hub.OnClients = func(n int) { m.WSClients.Set(float64(n)) }
	notifiers := []service.Notifier{hub}

	// Kafka é opcional: publica apostas, índice, rodadas e eventos da mini app
	var (
		writer *kafka.Writer
		pub    *producer.KafkaPublisher
	)
	if brokers := cfg.Brokers(); len(brokers) > 0 {
		if cfg.Env == "local" || cfg.Env == "dev" {
			tctx, cancel := context.WithTimeout(ctx, 10*time.Second)
			if err := kafka.EnsureTopics(tctx, brokers, cfg.TopicBetPlaced, cfg.TopicSentimentUpdates, cfg.TopicRoundElapsed, cfg.TopicAppLifecycle); err != nil {
				log.Warn("kafka topic setup failed", zap.Error(err))
			}
			cancel()
		}
		writer = kafka.NewWriter(brokers)
		defer writer.Close()
		pub = producer.NewKafkaPublisher(writer, producer.Topics{
			BetPlaced:        cfg.TopicBetPlaced,
			SentimentUpdates: cfg.TopicSentimentUpdates,
			RoundElapsed:     cfg.TopicRoundElapsed,
			AppLifecycle:     cfg.TopicAppLifecycle,
		}, log)
		pub.OnError = func(topic string) { m.PublishErrors.WithLabelValues(topic).Inc() }
		notifiers = append(notifiers, pub)
		log.Info("kafka publisher ready", zap.Strings("brokers", brokers))
	}

	svc := service.New(service.Deps{
		Log:        log,
		Pool:       bets,
		Feed:       feed,
		Clock:      countdown.New(cfg.RoundDuration),
		LiveBets:   simulation.NewLiveBets(bets, rnd, cfg.LiveBetThreshold),
		Connector:  conn,
		SourceName: cfg.SentimentSource,
		Metrics:    m,
		Notifiers:  notifiers,
	})
	svc.Prime(ctx, cfg.SeriesSize)

	webhook := &miniapp.WebhookHandler{
		Log: log,
		OnEvent: func(ctx context.Context, ev miniapp.Event) {
			label := ev.Type
			if !ev.Known() {
				label = "other"
			}
			m.WebhookEvents.WithLabelValues(label).Inc()
			if pub == nil {
				return
			}
			if err := pub.PublishAppLifecycle(ctx, events.AppLifecycle{Type: ev.Type, Data: ev.Data}); err != nil {
				log.Warn("app lifecycle publish failed", zap.Error(err))
			}
		},
	}

	api := &httpapi.API{
		Log:      log,
		Oracle:   svc,
		WS:       hub.HandleWS,
		Manifest: miniapp.ManifestHandler(miniapp.NewManifest(cfg.Manifest)),
		Webhook:  webhook,
	}

	// Tarefas periódicas: índice, countdown e apostas simuladas
	sched := scheduler.New(log)
	for _, t := range svc.Tasks(service.Intervals{
		IndexRefresh: cfg.IndexRefreshTick,
		Countdown:    cfg.CountdownTick,
		LiveBets:     cfg.LiveBetTick,
	}) {
		sched.Add(t)
	}
	if err := sched.Start(ctx); err != nil {
		log.Fatal("scheduler start", zap.Error(err))
	}
	log.Info("scheduler started", zap.Strings("tasks", sched.Names()))

	// sobe servidor de métricas e health
	metricsSrv := metrics.StartMetricsServer(cfg.MetricsPort, prometheus.DefaultGatherer, func(ctx context.Context) error {
		if rdb != nil {
			if err := rdb.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("redis: %w", err)
			}
		}
		return nil
	})
	log.Info("metrics/health listening", zap.String("port", cfg.MetricsPort))

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           api.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("oracle-service listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	// Stop só retorna quando nenhuma tarefa está rodando
	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	_ = metricsSrv.Shutdown(shutdownCtx)

	log.Info("oracle-service stopped")
}

// poolConfig converte as strings da config em decimais
func poolConfig(cfg config.Config) (pool.Config, error) {
	up, err := decimal.NewFromString(cfg.SeedUp)
	if err != nil {
		return pool.Config{}, fmt.Errorf("POOL_SEED_UP: %w", err)
	}
	down, err := decimal.NewFromString(cfg.SeedDown)
	if err != nil {
		return pool.Config{}, fmt.Errorf("POOL_SEED_DOWN: %w", err)
	}
	tiers := make([]decimal.Decimal, 0, len(cfg.Tiers))
	for _, t := range cfg.Tiers {
		d, err := decimal.NewFromString(t)
		if err != nil {
			return pool.Config{}, fmt.Errorf("POOL_TIERS %q: %w", t, err)
		}
		tiers = append(tiers, d)
	}
	return pool.Config{
		SeedUp:        up,
		SeedDown:      down,
		FeedCapacity:  cfg.FeedCapacity,
		Tiers:         tiers,
		MaxCommentLen: cfg.MaxCommentLen,
	}, nil
}
