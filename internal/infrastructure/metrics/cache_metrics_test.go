package metrics_test

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/avatarctic/qrcode-service/go/internal/infrastructure/metrics"
)

func TestCacheMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewCacheMetrics(reg)

	m.Hit("binary")
	m.Hit("binary")
	m.Hit("text")
	m.Miss()
	m.BackendError("get_binary")
	m.ProducerCall("generate_qr_code")

	expected := `
# HELP qrcache_lookups_total Cache lookups by channel and result
# TYPE qrcache_lookups_total counter
qrcache_lookups_total{channel="binary",result="hit"} 2
qrcache_lookups_total{channel="none",result="miss"} 1
qrcache_lookups_total{channel="text",result="hit"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "qrcache_lookups_total"))

	n, err := testutil.GatherAndCount(reg, "qrcache_backend_errors_total", "qrcache_producer_calls_total")
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestCacheMetrics_NilRegisterer(t *testing.T) {
	m := metrics.NewCacheMetrics(nil)
	require.NotPanics(t, func() { m.Miss() })
}
