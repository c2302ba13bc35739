package observability

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsRegistersOnOwnRegistry(t *testing.T) {
	// Two independent registries must not collide
	m1 := NewMetrics(prometheus.NewRegistry())
	m2 := NewMetrics(prometheus.NewRegistry())

	m1.GiftsSent.WithLabelValues("battle").Inc()
	m1.GiftsSent.WithLabelValues("battle").Inc()
	m2.GiftsSent.WithLabelValues("battle").Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m1.GiftsSent.WithLabelValues("battle")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m2.GiftsSent.WithLabelValues("battle")))
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLogLevel("debug"))
	assert.Equal(t, zerolog.InfoLevel, ParseLogLevel(""))
	assert.Equal(t, zerolog.WarnLevel, ParseLogLevel("warn"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLogLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, ParseLogLevel("verbose"))
}

func TestNewLoggerWithWriterTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, "battle", zerolog.InfoLevel)

	logger.Debug().Msg("hidden")
	logger.Info().Str("battle_id", "b1").Msg("visible")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "battle", line["component"])
	assert.Equal(t, "b1", line["battle_id"])
	assert.Equal(t, "visible", line["message"])
}
