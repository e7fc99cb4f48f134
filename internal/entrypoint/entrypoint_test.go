package entrypoint

import (
	"context"
	"net"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/literalura/internal/config"
)

func TestServe_ReturnsListenError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	cfg := config.NewConfig()
	cfg.HTTP.Host = "127.0.0.1"
	cfg.HTTP.Port = int32(ln.Addr().(*net.TCPAddr).Port)

	shutdownCalled := false
	err = Serve(gin.New(), cfg, func(_ context.Context) { shutdownCalled = true })

	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen")
	assert.False(t, shutdownCalled, "shutdown hooks only run after a signal")
}
