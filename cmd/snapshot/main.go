package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tbarantsev/email-insights/internal/bootstrap"
	"github.com/tbarantsev/email-insights/internal/config"
	"github.com/tbarantsev/email-insights/internal/observability/logging"
)

// snapshot fetches the dashboard overview once and prints it as JSON, for
// smoke checks and cron-driven exports. Logs go to stderr so stdout stays
// parseable.
func main() {
	cfg := config.Load()
	slog.SetDefault(logging.NewStderrLogger("snapshot", cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}

	fetchCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	overview := app.Dashboard.Refresh(fetchCtx)

	payload, err := json.MarshalIndent(overview, "", "  ")
	if err != nil {
		log.Fatalf("encode overview: %v", err)
	}
	fmt.Println(string(payload))

	if !overview.DataAvailable && overview.Cause != "" {
		slog.Error("snapshot_degraded", "cause", overview.Cause)
		os.Exit(1)
	}
}
