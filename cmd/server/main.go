package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"risk-assessor/internal/cli"
	"risk-assessor/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		slog.Error("command failed", logging.ErrAttrs(err)...)
		stop()
		os.Exit(1)
	}
}
