package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/pkbattle/internal/common/clock"
	"github.com/KirkDiggler/pkbattle/internal/common/uuid"
	"github.com/KirkDiggler/pkbattle/internal/config"
	"github.com/KirkDiggler/pkbattle/internal/events"
	httpHandler "github.com/KirkDiggler/pkbattle/internal/handlers/http"
	"github.com/KirkDiggler/pkbattle/internal/lock"
	"github.com/KirkDiggler/pkbattle/internal/models"
	"github.com/KirkDiggler/pkbattle/internal/notifications"
	"github.com/KirkDiggler/pkbattle/internal/observability"
	"github.com/KirkDiggler/pkbattle/internal/repositories/battle"
	"github.com/KirkDiggler/pkbattle/internal/repositories/counter"
	"github.com/KirkDiggler/pkbattle/internal/repositories/profile"
	"github.com/KirkDiggler/pkbattle/internal/repositories/stream"
	battleService "github.com/KirkDiggler/pkbattle/internal/services/battle"
	"github.com/KirkDiggler/pkbattle/internal/services/fanout"
	"github.com/KirkDiggler/pkbattle/internal/services/gift"
	"github.com/KirkDiggler/pkbattle/internal/services/leaderboard"
	"github.com/KirkDiggler/pkbattle/internal/services/messaging"
	"github.com/KirkDiggler/pkbattle/internal/services/ratelimit"
	"github.com/KirkDiggler/pkbattle/internal/services/scheduler"
	"github.com/KirkDiggler/pkbattle/internal/services/scoring"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

func main() {
	configPath := flag.String("config", "", "optional config file")
	flag.Parse()

	logger := observability.NewLogger("server")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	defer redisClient.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	cancel()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(registry)

	clk := clock.New()
	uuidGen := uuid.New()

	// Initialize repositories
	store, err := openStore(cfg, redisClient)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open store")
	}
	defer store.close()

	battleRepo, err := battle.NewRedis(&battle.Config{RedisClient: redisClient})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create battle repository")
	}

	streamRepo, err := stream.NewRedis(&stream.Config{RedisClient: redisClient})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create stream repository")
	}

	profileRepo, err := profile.NewRedis(&profile.Config{RedisClient: redisClient})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create profile repository")
	}

	rankings, err := counter.NewRedis(&counter.Config{RedisClient: redisClient, Prefix: "leaderboard:"})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create leaderboard counter")
	}

	rates, err := counter.NewRedis(&counter.Config{RedisClient: redisClient, Prefix: "rate:"})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create rate counter")
	}

	locker, err := lock.NewRedis(&lock.Config{
		RedisClient: redisClient,
		TTL:         cfg.Lock.TTL,
		WaitTimeout: cfg.Lock.WaitTimeout,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create locker")
	}

	// Initialize services
	limiter, err := ratelimit.New(&ratelimit.Config{
		Counter: rates,
		Clock:   clk,
		Limit:   cfg.Gifts.RateLimit,
		Window:  cfg.Gifts.RateWindow,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create rate limiter")
	}

	boardLogger := observability.NewLogger("leaderboard")
	board, err := leaderboard.New(&leaderboard.Config{
		Counter:     rankings,
		ProfileRepo: profileRepo,
		BattleTTL:   cfg.Gifts.LeaderboardTTL,
		Logger:      &boardLogger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create leaderboard")
	}

	scorer, err := scoring.New(&scoring.Config{GiftRepo: store.gifts})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create scoring service")
	}

	giftLogger := observability.NewLogger("gift")
	giftSvc, err := gift.New(&gift.Config{
		LedgerRepo:    store.ledger,
		Limiter:       limiter,
		EffectTimeout: cfg.Gifts.EffectTimeout,
		Clock:         clk,
		UUIDGenerator: uuidGen,
		Logger:        &giftLogger,
		Metrics:       metrics,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create gift service")
	}

	schedLogger := observability.NewLogger("scheduler")
	sched, err := scheduler.New(&scheduler.Config{
		Clock:   clk,
		Logger:  &schedLogger,
		Metrics: metrics,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create scheduler")
	}

	transport, err := fanout.NewRedis(&fanout.RedisConfig{RedisClient: redisClient})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create fanout transport")
	}

	fanoutLogger := observability.NewLogger("fanout")
	broadcaster, err := fanout.New(&fanout.Config{
		Transport: transport,
		Workers:   cfg.Fanout.Workers,
		QueueSize: cfg.Fanout.QueueSize,
		Prefix:    cfg.Fanout.Prefix,
		Logger:    &fanoutLogger,
		Metrics:   metrics,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create broadcaster")
	}

	msgs, err := messaging.New(&messaging.Config{})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create messaging service")
	}

	notifier, err := newNotifier(cfg, profileRepo, msgs)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create notifier")
	}

	battleLogger := observability.NewLogger("battle")
	battleSvc, err := battleService.New(&battleService.Config{
		BattleRepo:  battleRepo,
		StreamRepo:  streamRepo,
		GiftService: giftSvc,
		Scoring:     scorer,
		Leaderboard: board,
		Locker:      locker,
		Scheduler:   sched,
		Broadcaster: broadcaster,
		Notifier:    notifier,
		Defaults: models.BattleConfig{
			Rounds:               cfg.Battle.Rounds,
			RoundDuration:        cfg.Battle.RoundDuration,
			CountdownDuration:    cfg.Battle.CountdownDuration,
			IntermissionDuration: cfg.Battle.IntermissionDuration,
			ScoreRatio:           cfg.Battle.ScoreRatio,
		},
		LockTTL:       cfg.Lock.TTL,
		LockWait:      cfg.Lock.WaitTimeout,
		NotifyTimeout: cfg.Battle.NotifyTimeout,
		Clock:         clk,
		UUIDGenerator: uuidGen,
		Logger:        &battleLogger,
		Metrics:       metrics,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create battle service")
	}

	// Post-commit effects run in registration order
	giftSvc.RegisterEffect(gift.NewEffect("leaderboard", func(ctx context.Context, in *gift.EffectInput) error {
		return board.RecordGift(ctx, in.Event)
	}))
	giftSvc.RegisterEffect(gift.NewEffect("battle", battleSvc.ScoreGift))

	var publisher events.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		publisher, err = events.NewKafka(&events.KafkaConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create gift publisher")
		}
		giftSvc.RegisterEffect(events.GiftEffect(publisher))
	}

	giftSvc.SetBattleLocator(battleSvc)
	sched.SetHandler(battleSvc.HandleTimer)

	broadcaster.Start()
	sched.Start()

	recoverCtx, recoverCancel := context.WithTimeout(context.Background(), 30*time.Second)
	recovered, err := battleSvc.RecoverTimers(recoverCtx)
	recoverCancel()
	if err != nil {
		logger.Error().Err(err).Msg("failed to recover battle timers")
	} else {
		logger.Info().Int("armed", recovered.Armed).Msg("recovered battle timers")
	}

	httpLogger := observability.NewLogger("http")
	handler, err := httpHandler.New(&httpHandler.Config{
		BattleService: battleSvc,
		GiftService:   giftSvc,
		Leaderboard:   board,
		StreamRepo:    streamRepo,
		Transport:     transport,
		Broadcaster:   broadcaster,
		Messaging:     msgs,
		Gatherer:      registry,
		Logger:        &httpLogger,
		Metrics:       metrics,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create HTTP handler")
	}

	app := handler.NewApp(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout)

	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Msg("listening")
		if err := app.Listen(cfg.Server.Addr); err != nil {
			logger.Fatal().Err(err).Msg("server stopped")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	logger.Info().Msg("shutting down")

	if err := app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout); err != nil {
		logger.Error().Err(err).Msg("error stopping HTTP server")
	}

	if err := sched.Shutdown(); err != nil {
		logger.Error().Err(err).Msg("error stopping scheduler")
	}

	broadcaster.Stop()

	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error().Err(err).Msg("error closing gift publisher")
		}
	}

	logger.Info().Msg("server has been shut down")
}

// newNotifier sends Discord DMs when a bot token is configured, otherwise notices are only logged
func newNotifier(cfg *config.Config, profiles profile.Repository, msgs messaging.Service) (notifications.Notifier, error) {
	notifyLogger := observability.NewLogger("notifications")

	if cfg.Discord.Token == "" {
		return notifications.NewLog(&notifications.LogConfig{
			ProfileRepo: profiles,
			Messaging:   msgs,
			Logger:      &notifyLogger,
		})
	}

	return notifications.NewDiscord(&notifications.DiscordConfig{
		Token:       cfg.Discord.Token,
		ProfileRepo: profiles,
		Messaging:   msgs,
		Logger:      &notifyLogger,
	})
}
