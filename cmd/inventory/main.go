package main

import (
	"context"
	"time"

	"github.com/niksmo/inventory/config"
	"github.com/niksmo/inventory/internal/app"
	"github.com/niksmo/inventory/pkg/sigctx"
)

const closeTimeout = 5 * time.Second

func main() {
	sigCtx, closeApp := sigctx.NotifyContext(context.Background())
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	inventory := app.New(sigCtx, cfg)

	inventory.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	inventory.Close(ctx)
}
