package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/MohdMoinuddin-mma/OlymPIX/internal/cli"
	"github.com/MohdMoinuddin-mma/OlymPIX/internal/config"
	"github.com/MohdMoinuddin-mma/OlymPIX/internal/genai"
)

// Set by ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersionInfo(version, commit, date)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := cli.NewRootCmd(func() (*cli.Deps, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		logger, err := cfg.NewLogger()
		if err != nil {
			return nil, err
		}
		assistant, err := genai.NewClient(cfg.GenAI(), logger)
		if err != nil {
			return nil, err
		}
		return &cli.Deps{
			Assistant:      assistant,
			Baseline:       cfg.Baseline(),
			RequestTimeout: cfg.Assistant.RequestTimeout,
			Logger:         logger,
		}, nil
	})

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
