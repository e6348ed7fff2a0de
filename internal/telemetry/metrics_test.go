package telemetry

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestStartMetricsServer(t *testing.T) {
	reg := prometheus.NewRegistry()
	g := prometheus.NewGauge(prometheus.GaugeOpts{Name: "hwbench_test_gauge", Help: "test"})
	reg.MustRegister(g)
	g.Set(42)

	addr := freeAddr(t)
	go func() {
		_ = StartMetricsServer(addr, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}()

	var body string
	require.Eventually(t, func() bool {
		resp, err := http.Get(fmt.Sprintf("http://%s/metrics", addr))
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		data, _ := io.ReadAll(resp.Body)
		body = string(data)
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 50*time.Millisecond)

	assert.Contains(t, body, "hwbench_test_gauge 42")
}

func TestStartMetricsServer_BadAddr(t *testing.T) {
	err := StartMetricsServer("256.0.0.1:bad", http.NotFoundHandler())
	assert.Error(t, err)
}
