package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mchmarny/sidenav/pkg/cli"
	"github.com/mchmarny/sidenav/pkg/logger"
)

var (
	version = "dev"     // Set at build time via -ldflags "-X main.version=version"
	commit  = "none"    // Set at build time via -ldflags "-X main.commit=commit"
	date    = "unknown" // Set at build time via -ldflags "-X main.date=date"
)

func main() {
	// replaced once the configuration is loaded
	logger.SetDefaultStructuredLogger(cli.AppName, version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cli.NewRootCommand(cli.Info{Version: version, Commit: commit, Date: date}).ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
