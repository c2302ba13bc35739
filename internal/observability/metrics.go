package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the battle engine
type Metrics struct {
	// --- Gifts & ledger ---
	GiftsSent         *prometheus.CounterVec
	GiftsRejected     *prometheus.CounterVec
	CoinsTransferred  prometheus.Counter
	EffectFailures    *prometheus.CounterVec
	IdempotentReplays prometheus.Counter

	// --- Battles ---
	BattleTransitions *prometheus.CounterVec
	StaleTimers       *prometheus.CounterVec
	TimerFailures     prometheus.Counter
	LockContention    prometheus.Counter

	// --- Fanout ---
	FanoutPublished *prometheus.CounterVec
	FanoutDropped   prometheus.Counter
	FanoutFailures  prometheus.Counter
	NotifyFailures  *prometheus.CounterVec

	// --- HTTP ---
	RequestDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers all metrics on reg.
// Each test passes its own registry so registration never collides.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		GiftsSent: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pkbattle",
			Name:      "gifts_sent_total",
			Help:      "Gift events committed, by origin",
		}, []string{"origin"}),
		GiftsRejected: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pkbattle",
			Name:      "gifts_rejected_total",
			Help:      "Gift sends rejected before commit, by reason",
		}, []string{"reason"}),
		CoinsTransferred: f.NewCounter(prometheus.CounterOpts{
			Namespace: "pkbattle",
			Name:      "coins_transferred_total",
			Help:      "Coins moved from sender default to recipient earned compartments",
		}),
		EffectFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pkbattle",
			Name:      "gift_effect_failures_total",
			Help:      "Post-commit gift effects that failed, by effect",
		}, []string{"effect"}),
		IdempotentReplays: f.NewCounter(prometheus.CounterOpts{
			Namespace: "pkbattle",
			Name:      "gift_idempotent_replays_total",
			Help:      "Gift sends answered from an earlier commit with the same idempotency key",
		}),
		BattleTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pkbattle",
			Name:      "battle_transitions_total",
			Help:      "Battle phase transitions, by target phase",
		}, []string{"phase"}),
		StaleTimers: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pkbattle",
			Name:      "battle_stale_timers_total",
			Help:      "Timer firings discarded because the battle moved on, by timer kind",
		}, []string{"kind"}),
		TimerFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: "pkbattle",
			Name:      "battle_timer_failures_total",
			Help:      "Timer firings that returned an error",
		}),
		LockContention: f.NewCounter(prometheus.CounterOpts{
			Namespace: "pkbattle",
			Name:      "battle_lock_timeouts_total",
			Help:      "Battle lock acquisitions that timed out",
		}),
		FanoutPublished: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pkbattle",
			Name:      "fanout_published_total",
			Help:      "Battle events published per channel, by event type",
		}, []string{"type"}),
		FanoutDropped: f.NewCounter(prometheus.CounterOpts{
			Namespace: "pkbattle",
			Name:      "fanout_dropped_total",
			Help:      "Battle events dropped because a worker queue was full",
		}),
		FanoutFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: "pkbattle",
			Name:      "fanout_failures_total",
			Help:      "Channel publishes that returned an error",
		}),
		NotifyFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pkbattle",
			Name:      "notify_failures_total",
			Help:      "Notifications that could not be delivered, by kind",
		}, []string{"kind"}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "pkbattle",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency, by route and status",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}
