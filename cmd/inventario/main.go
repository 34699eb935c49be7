package main

import (
	"context"
	"time"

	"github.com/genesisr5/inventario/config"
	"github.com/genesisr5/inventario/internal/app"
	"github.com/genesisr5/inventario/pkg/sigctx"
)

const closeTimeout = 5 * time.Second

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()

	inventario := app.New(sigCtx, cfg)

	inventario.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	inventario.Close(ctx)
}
