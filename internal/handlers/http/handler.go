package http

import (
	"errors"
	"time"

	"github.com/KirkDiggler/pkbattle/internal/observability"
	streamRepo "github.com/KirkDiggler/pkbattle/internal/repositories/stream"
	"github.com/KirkDiggler/pkbattle/internal/services/battle"
	"github.com/KirkDiggler/pkbattle/internal/services/fanout"
	"github.com/KirkDiggler/pkbattle/internal/services/gift"
	"github.com/KirkDiggler/pkbattle/internal/services/leaderboard"
	"github.com/KirkDiggler/pkbattle/internal/services/messaging"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Config holds the configuration for the HTTP API
type Config struct {
	BattleService battle.Service
	GiftService   gift.Service
	Leaderboard   leaderboard.Service
	StreamRepo    streamRepo.Repository

	// Transport and Broadcaster back the server-sent events relay
	Transport   fanout.Transport
	Broadcaster fanout.Broadcaster

	// Messaging turns error codes into user-facing text
	Messaging messaging.Service

	// Gatherer serves /metrics, nil disables the route
	Gatherer prometheus.Gatherer

	// KeepAlive is the SSE comment interval
	KeepAlive time.Duration

	// Now is used for stream registration timestamps
	Now func() time.Time

	Logger  *zerolog.Logger
	Metrics *observability.Metrics
}

// Handler serves the battle API
type Handler struct {
	battles     battle.Service
	gifts       gift.Service
	leaderboard leaderboard.Service
	streams     streamRepo.Repository
	transport   fanout.Transport
	broadcaster fanout.Broadcaster
	messaging   messaging.Service
	gatherer    prometheus.Gatherer
	keepAlive   time.Duration
	now         func() time.Time
	logger      *zerolog.Logger
	metrics     *observability.Metrics
}

// New creates a new HTTP handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.BattleService == nil {
		return nil, errors.New("battle service cannot be nil")
	}

	if cfg.GiftService == nil {
		return nil, errors.New("gift service cannot be nil")
	}

	if cfg.Leaderboard == nil {
		return nil, errors.New("leaderboard service cannot be nil")
	}

	if cfg.StreamRepo == nil {
		return nil, errors.New("stream repository cannot be nil")
	}

	if cfg.Transport == nil || cfg.Broadcaster == nil {
		return nil, errors.New("transport and broadcaster cannot be nil")
	}

	if cfg.Messaging == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	keepAlive := cfg.KeepAlive
	if keepAlive <= 0 {
		keepAlive = 15 * time.Second
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	logger := cfg.Logger
	if logger == nil {
		logger = observability.NopLogger()
	}

	metrics := cfg.Metrics
	if metrics == nil {
		metrics = observability.NewMetrics(prometheus.NewRegistry())
	}

	return &Handler{
		battles:     cfg.BattleService,
		gifts:       cfg.GiftService,
		leaderboard: cfg.Leaderboard,
		streams:     cfg.StreamRepo,
		transport:   cfg.Transport,
		broadcaster: cfg.Broadcaster,
		messaging:   cfg.Messaging,
		gatherer:    cfg.Gatherer,
		keepAlive:   keepAlive,
		now:         now,
		logger:      logger,
		metrics:     metrics,
	}, nil
}

// Register mounts every route on app
func (h *Handler) Register(app *fiber.App) {
	app.Use(h.observe())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	if h.gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})))
	}

	v1 := app.Group("/v1")

	// Public reads
	v1.Get("/battles/:id", h.getBattle)
	v1.Get("/battles/:id/stats", h.getBattleStats)
	v1.Get("/streams/:id/top-senders", h.getTopSenders)
	v1.Get("/streams/:id/events", h.streamEvents)

	// Internal routes called by the stream registry and the billing system
	v1.Put("/streams/:id", h.putStream)
	v1.Post("/streams/:id/liveness", h.updateLiveness)
	v1.Post("/wallets/:userId/credit", h.creditWallet)
	v1.Get("/wallets/:userId", h.getWallet)

	// Gateway authenticated routes
	auth := requireUser()
	v1.Post("/battles", auth, h.startBattle)
	v1.Post("/battles/:id/accept", auth, h.acceptBattle)
	v1.Post("/battles/:id/gifts", auth, h.sendBattleGift)
	v1.Post("/battles/:id/rounds/end", auth, h.endRound)
	v1.Post("/battles/:id/end", auth, h.endBattle)
	v1.Post("/streams/:id/gifts", auth, h.sendStreamGift)
}

// NewApp creates a Fiber app with the handler's routes
func (h *Handler) NewApp(readTimeout, writeTimeout time.Duration) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "pkbattle",
		ReadTimeout:           readTimeout,
		WriteTimeout:          writeTimeout,
		DisableStartupMessage: true,
		ErrorHandler:          h.handleFiberError,
	})

	h.Register(app)

	return app
}
