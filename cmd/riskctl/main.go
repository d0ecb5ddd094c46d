// Package main is riskctl, the command-line front end of the risk engine.
// It runs the same engine operations as the HTTP service against JSON or
// YAML documents read from a file or stdin.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("riskctl failed")
		os.Exit(1)
	}
}
