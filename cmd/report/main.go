// Command report prints athlete dashboard views as JSON.
//
//	report --section injury
//	report --fixtures athlete.yaml --section all
//	report --url http://localhost:9080 critique frame.jpg
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/okian/stride/internal/config"
	"github.com/okian/stride/internal/reportcli"
	"github.com/okian/stride/pkg/logger"
)

func main() {
	_ = godotenv.Load(".env")

	// Logs go to stderr so stdout stays valid JSON.
	if err := logger.Init(logger.WithOutput(os.Stderr)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	_ = logger.SetLevelString("warn")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd := reportcli.NewCommand(func() (*config.Config, error) {
		cfg, err := config.Load(ctx)
		if err != nil {
			return nil, err
		}
		if cfg.LogLevel != "info" {
			_ = logger.SetLevelString(cfg.LogLevel)
		}
		return cfg, nil
	})
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1) //nolint:gocritic // exitAfterDefer: stop already called
	}
}
