package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/ayusman/mudra/internal/observability"
)

// Version is the application version.
// Set at build time with -ldflags "-X main.Version=1.2.3".
var Version = "0.1.0"

func main() {
	os.Exit(execute())
}

func execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer observability.Sync()

	if err := newRootCommand(defaultOptions()).ExecuteContext(ctx); err != nil {
		observability.GetLogger().Debug("command failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
