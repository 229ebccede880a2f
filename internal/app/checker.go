package app

import (
	"context"
	"fmt"
	"time"

	"github.com/samvad-hq/dogceo-checker/internal/checks"
	"github.com/samvad-hq/dogceo-checker/internal/config"
	"github.com/samvad-hq/dogceo-checker/internal/domain"
	"github.com/samvad-hq/dogceo-checker/internal/harness"
	"github.com/samvad-hq/dogceo-checker/internal/logger"
	"github.com/samvad-hq/dogceo-checker/pkg/publishers"
)

// EventPublisher delivers finished run reports downstream.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
	Size() int
	Close() error
}

// Checker wires together the harness, the check runner and publishers and executes check passes.
type Checker struct {
	cfg      *config.Config
	fixture  *harness.Fixture
	runner   *checks.Runner
	fanout   EventPublisher
	interval time.Duration
	log      logger.Logger
}

// NewChecker builds a checker runtime from config. Without a publishers file reports are only logged.
func NewChecker(ctx context.Context, cfg *config.Config, log logger.Logger) (*Checker, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if unknown := checks.UnknownSuites(cfg.Suites); len(unknown) > 0 {
		return nil, fmt.Errorf("unknown suites %v (known: %v)", unknown, checks.Suites)
	}

	fixture, err := harness.New(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("init harness: %w", err)
	}
	runner, err := checks.NewRunner(fixture, nil)
	if err != nil {
		return nil, fmt.Errorf("init runner: %w", err)
	}

	fanout, err := buildFanout(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	return &Checker{
		cfg:      cfg,
		fixture:  fixture,
		runner:   runner,
		fanout:   fanout,
		interval: cfg.RunInterval,
		log:      log,
	}, nil
}

func buildFanout(ctx context.Context, cfg *config.Config, log logger.Logger) (*publishers.Fanout, error) {
	if cfg.PublishersFile == "" {
		log.InfoObj("no publishers file configured; reports are logged only", "publishers_file", "")
		return publishers.NewFanout(nil), nil
	}

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}

	enabled := publisherReg.Enabled()
	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}

	summaries := make([]map[string]string, 0, len(enabled))
	for _, pubCfg := range enabled {
		summaries = append(summaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(summaries),
		"publishers": summaries,
	})
	return publishers.NewFanout(pubClients), nil
}

// Run executes one pass, or keeps running passes every interval until ctx is cancelled.
// It returns the last report produced.
func (c *Checker) Run(ctx context.Context) (*domain.Report, error) {
	if c == nil || c.runner == nil {
		return nil, fmt.Errorf("checker is not initialized")
	}

	c.log.InfoObj("checker starting", "checker_state", map[string]any{
		"base_url":         c.cfg.BaseURL,
		"suites":           c.suites(),
		"checks_count":     len(checks.Select(c.runner.Checks(), c.cfg.Suites)),
		"publishers_count": c.fanout.Size(),
		"interval":         c.interval.String(),
	})

	report, err := c.runOnce(ctx)
	if err != nil {
		return nil, fmt.Errorf("initial run: %w", err)
	}
	if c.interval <= 0 {
		return report, nil
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.log.InfoObj("checker loop exiting", "reason", ctx.Err())
			return report, nil
		case <-ticker.C:
			next, err := c.runOnce(ctx)
			if err != nil {
				c.log.ErrorObj("scheduled run failed", "error", err)
				continue
			}
			report = next
		}
	}
}

func (c *Checker) runOnce(ctx context.Context) (*domain.Report, error) {
	report, err := c.runner.Run(ctx, c.cfg.Suites...)
	if err != nil {
		return nil, err
	}

	for _, failure := range report.Failures() {
		c.log.WarnObj("check failed", "check_failure", map[string]any{
			"run_id":   report.RunID,
			"suite":    failure.Suite,
			"name":     failure.Name,
			"severity": failure.Severity,
			"error":    failure.Error,
		})
	}

	if c.fanout.Size() > 0 {
		delivered, err := c.fanout.Publish(ctx, publishers.NewEvent(c.cfg.AppName, report))
		if err != nil {
			c.log.ErrorObj("report publish failed", "publish_error", map[string]any{
				"run_id":    report.RunID,
				"delivered": delivered,
				"error":     err.Error(),
			})
		}
	}
	return report, nil
}

func (c *Checker) suites() []string {
	if len(c.cfg.Suites) == 0 {
		return checks.Suites
	}
	return c.cfg.Suites
}

// Close releases publishers and flushes the log.
func (c *Checker) Close() error {
	if c == nil {
		return nil
	}
	if err := c.fanout.Close(); err != nil {
		c.log.ErrorObj("publisher close failed", "error", err)
	}
	return c.fixture.Close()
}
