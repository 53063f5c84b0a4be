package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/niksmo/inventory/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "inventory.log")

	cfg, err := config.LoadFile("")
	require.NoError(t, err)
	cfg.HTTPServerAddr = "127.0.0.1:0"
	cfg.SQLDB.DSN = "file:" + t.Name() + "?mode=memory&cache=shared"
	cfg.LogFile.Path = logPath

	a := New(t.Context(), cfg)
	assert.Nil(t, a.saleEvents)
	require.NoError(t, a.service.Healthy(t.Context()))

	stopCtx, stop := context.WithCancel(t.Context())
	a.Run(stop)

	closeCtx, cancel := context.WithTimeout(t.Context(), time.Second)
	defer cancel()
	a.Close(closeCtx)
	<-stopCtx.Done()

	b, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(b), "database is available")
}
