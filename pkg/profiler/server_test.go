package profiler

import (
	"context"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T) *Server {
	t.Helper()
	server := New(0, zerolog.Nop())
	require.NoError(t, server.Start(context.Background()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	})
	return server
}

func TestServer_BindsLoopback(t *testing.T) {
	server := New(0, zerolog.Nop())
	assert.Empty(t, server.Addr())

	require.NoError(t, server.Start(context.Background()))
	assert.True(t, strings.HasPrefix(server.Addr(), "127.0.0.1:"), server.Addr())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, server.Shutdown(ctx))
}

func TestServer_Endpoints(t *testing.T) {
	server := startServer(t)
	baseURL := "http://" + server.Addr()

	for _, endpoint := range []string{"/debug/pprof/", "/debug/pprof/cmdline", "/debug/pprof/symbol", "/debug/pprof/heap"} {
		t.Run(endpoint, func(t *testing.T) {
			resp, err := http.Get(baseURL + endpoint)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, http.StatusOK, resp.StatusCode)
		})
	}
}

func TestServer_PortInUse(t *testing.T) {
	first := startServer(t)
	port := first.listener.Addr().(*net.TCPAddr).Port

	second := New(port, zerolog.Nop())
	assert.Error(t, second.Start(context.Background()))
}
