package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/yanqian/trip-advisor/internal/bootstrap"
	"github.com/yanqian/trip-advisor/internal/infra/config"
	"github.com/yanqian/trip-advisor/internal/interface/cli"
	"github.com/yanqian/trip-advisor/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	log := logger.NewWithWriter(os.Stderr, "tripctl")

	root := cli.NewRootCommand(bootstrap.NewAdvisorService(cfg, log))
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
