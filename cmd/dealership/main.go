package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/you-humble/dealership/internal/app"
	"github.com/you-humble/dealership/internal/logger"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a, err := app.New(ctx)
	if err != nil {
		log.Printf("❌ failed to init application: %v\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := a.Run(ctx); err != nil {
		logger.Error(ctx, "❌ application error", logger.ErrorF(err))
	}
}
