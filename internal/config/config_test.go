package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
	dir string
}

func (s *ConfigTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) TestDefaults() {
	cfg, err := Load("")
	s.Require().NoError(err)

	s.Equal(":8080", cfg.Server.Addr)
	s.Equal("redis", cfg.Store.Driver)
	s.Equal(3, cfg.Battle.Rounds)
	s.Equal(5*time.Minute, cfg.Battle.RoundDuration)
	s.Equal(0.5, cfg.Battle.ScoreRatio)
	s.Equal("gift.sent", cfg.Kafka.Topic)
	s.Empty(cfg.Kafka.Brokers)
	s.Equal(8, cfg.Fanout.Workers)
}

func (s *ConfigTestSuite) TestFileOverridesDefaults() {
	path := filepath.Join(s.dir, "config.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(`
battle:
  rounds: 5
  round_duration: 90s
  score_ratio: 1
fanout:
  workers: 2
`), 0o600))

	cfg, err := Load(path)
	s.Require().NoError(err)

	s.Equal(5, cfg.Battle.Rounds)
	s.Equal(90*time.Second, cfg.Battle.RoundDuration)
	s.Equal(1.0, cfg.Battle.ScoreRatio)
	s.Equal(2, cfg.Fanout.Workers)
	s.Equal(256, cfg.Fanout.QueueSize)
}

func (s *ConfigTestSuite) TestEnvironmentOverridesFile() {
	s.T().Setenv("PKB_BATTLE_ROUNDS", "7")
	s.T().Setenv("PKB_REDIS_ADDR", "redis:6379")

	cfg, err := Load("")
	s.Require().NoError(err)

	s.Equal(7, cfg.Battle.Rounds)
	s.Equal("redis:6379", cfg.Redis.Addr)
}

func (s *ConfigTestSuite) TestMissingFile() {
	_, err := Load(filepath.Join(s.dir, "missing.yaml"))
	s.Error(err)
}

func (s *ConfigTestSuite) TestValidate() {
	s.T().Setenv("PKB_STORE_DRIVER", "postgres")

	_, err := Load("")
	s.ErrorContains(err, "postgres.dsn")

	s.T().Setenv("PKB_POSTGRES_DSN", "postgres://localhost/pkbattle")
	cfg, err := Load("")
	s.Require().NoError(err)
	s.Equal("postgres", cfg.Store.Driver)
}

func (s *ConfigTestSuite) TestRejectsZeroRounds() {
	s.T().Setenv("PKB_BATTLE_ROUNDS", "0")

	_, err := Load("")
	s.ErrorContains(err, "battle.rounds")
}
