package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the complete service configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Store    StoreConfig    `mapstructure:"store"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Discord  DiscordConfig  `mapstructure:"discord"`
	Battle   BattleConfig   `mapstructure:"battle"`
	Gifts    GiftsConfig    `mapstructure:"gifts"`
	Fanout   FanoutConfig   `mapstructure:"fanout"`
	Lock     LockConfig     `mapstructure:"lock"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// StoreConfig selects the durable store for the coin ledger and gift events
type StoreConfig struct {
	// Driver is "redis" or "postgres"
	Driver string `mapstructure:"driver"`
}

type PostgresConfig struct {
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

type KafkaConfig struct {
	// Brokers empty disables gift event publishing
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type DiscordConfig struct {
	// Token empty falls back to log-only notifications
	Token string `mapstructure:"token"`
}

// BattleConfig holds the defaults applied to new battles
type BattleConfig struct {
	Rounds               int           `mapstructure:"rounds"`
	RoundDuration        time.Duration `mapstructure:"round_duration"`
	CountdownDuration    time.Duration `mapstructure:"countdown_duration"`
	IntermissionDuration time.Duration `mapstructure:"intermission_duration"`
	ScoreRatio           float64       `mapstructure:"score_ratio"`
	NotifyTimeout        time.Duration `mapstructure:"notify_timeout"`
}

type GiftsConfig struct {
	// RateLimit is the number of sends allowed per sender per window, zero disables limiting
	RateLimit      int64         `mapstructure:"rate_limit"`
	RateWindow     time.Duration `mapstructure:"rate_window"`
	LeaderboardTTL time.Duration `mapstructure:"leaderboard_ttl"`
	EffectTimeout  time.Duration `mapstructure:"effect_timeout"`
}

type FanoutConfig struct {
	Workers   int    `mapstructure:"workers"`
	QueueSize int    `mapstructure:"queue_size"`
	Prefix    string `mapstructure:"channel_prefix"`
}

type LockConfig struct {
	TTL         time.Duration `mapstructure:"ttl"`
	WaitTimeout time.Duration `mapstructure:"wait_timeout"`
}

// Load reads an optional .env file, an optional config file and PKB_* environment variables.
// An empty path skips the config file.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("PKB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that would make the engine misbehave
func (c *Config) Validate() error {
	if c.Battle.Rounds < 1 {
		return errors.New("battle.rounds must be at least 1")
	}

	if c.Battle.RoundDuration <= 0 {
		return errors.New("battle.round_duration must be positive")
	}

	if c.Battle.ScoreRatio <= 0 {
		return errors.New("battle.score_ratio must be positive")
	}

	if c.Battle.CountdownDuration < 0 || c.Battle.IntermissionDuration < 0 {
		return errors.New("battle countdown and intermission cannot be negative")
	}

	switch c.Store.Driver {
	case "redis":
	case "postgres":
		if c.Postgres.DSN == "" {
			return errors.New("postgres.dsn is required when store.driver is postgres")
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}

	if c.Fanout.Workers < 1 || c.Fanout.QueueSize < 1 {
		return errors.New("fanout workers and queue size must be at least 1")
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	// SSE responses stream for as long as the viewer watches
	v.SetDefault("server.write_timeout", 0)
	v.SetDefault("server.shutdown_timeout", 15*time.Second)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 20)

	v.SetDefault("store.driver", "redis")

	v.SetDefault("postgres.dsn", "")
	v.SetDefault("postgres.max_open_conns", 20)
	v.SetDefault("postgres.max_idle_conns", 5)

	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "gift.sent")

	v.SetDefault("discord.token", "")

	v.SetDefault("battle.rounds", 3)
	v.SetDefault("battle.round_duration", 5*time.Minute)
	v.SetDefault("battle.countdown_duration", 5*time.Second)
	v.SetDefault("battle.intermission_duration", 0)
	v.SetDefault("battle.score_ratio", 0.5)
	v.SetDefault("battle.notify_timeout", 5*time.Second)

	v.SetDefault("gifts.rate_limit", 20)
	v.SetDefault("gifts.rate_window", time.Second)
	v.SetDefault("gifts.leaderboard_ttl", 24*time.Hour)
	v.SetDefault("gifts.effect_timeout", 2*time.Second)

	v.SetDefault("fanout.workers", 8)
	v.SetDefault("fanout.queue_size", 256)
	v.SetDefault("fanout.channel_prefix", "stream_events:")

	v.SetDefault("lock.ttl", 5*time.Second)
	v.SetDefault("lock.wait_timeout", 3*time.Second)
}
