package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/samvad-hq/dogceo-checker/internal/app"
	"github.com/samvad-hq/dogceo-checker/internal/checks"
	"github.com/samvad-hq/dogceo-checker/internal/config"
	"github.com/samvad-hq/dogceo-checker/internal/logger"
)

// errChecksFailed signals a completed run with failing checks.
var errChecksFailed = errors.New("checks failed")

func main() {
	if err := run(os.Args[1:]); err != nil {
		if !errors.Is(err, errChecksFailed) {
			fmt.Fprintf(os.Stderr, "dogcheck failed: %v\n", err)
		}
		os.Exit(1)
	}
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("dogcheck", pflag.ContinueOnError)
	fs.StringSlice("suite", nil, fmt.Sprintf("suite to run, repeatable (default all of %v)", checks.Suites))
	fs.Int64("interval", 0, "seconds between runs; 0 runs once and exits")
	fs.String("publishers-file", "", "YAML or JSON file declaring report publishers")
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
	fs.String("base-url", config.DefaultBaseURL, "dog API base URL")
	return fs
}

func run(args []string) error {
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	cfg, err := config.Load(fs)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	logger.InfoObj("dogcheck starting", "config", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	checker, err := app.NewChecker(ctx, cfg, log)
	if err != nil {
		logger.ErrorObj("failed to initialize checker", "error", err)
		return err
	}
	defer checker.Close()

	report, err := checker.Run(ctx)
	if err != nil {
		return fmt.Errorf("checker run: %w", err)
	}

	summary := report.Summary()
	logger.InfoObj("dogcheck finished", "summary", summary)
	if cfg.RunInterval <= 0 && !report.OK() {
		fmt.Fprintf(os.Stderr, "%d of %d checks failed, %d skipped\n", summary.Failed, summary.Total, summary.Skipped)
		return errChecksFailed
	}
	return nil
}
