package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/packtest/packtest/cmd/packtest/internal"
)

func main() {
	// An interrupt cancels the context, which kills any running build
	// or consumer subprocess instead of orphaning it.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	internal.Execute(ctx)
}
