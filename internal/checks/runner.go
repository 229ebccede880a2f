package checks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/samvad-hq/dogceo-checker/internal/domain"
	"github.com/samvad-hq/dogceo-checker/internal/harness"
)

// Runner executes checks one after another through a harness fixture.
type Runner struct {
	fixture *harness.Fixture
	checks  []Check
	now     func() time.Time
}

// NewRunner builds a runner over checks. A nil checks slice means the full catalog
// with thresholds taken from the fixture's config.
func NewRunner(fixture *harness.Fixture, checks []Check) (*Runner, error) {
	if fixture == nil {
		return nil, fmt.Errorf("fixture must not be nil")
	}
	if checks == nil {
		checks = Catalog(ThresholdsFromConfig(fixture.Config()))
	}
	sorted := make([]Check, len(checks))
	copy(sorted, checks)
	sortChecks(sorted)
	return &Runner{fixture: fixture, checks: sorted, now: time.Now}, nil
}

// Checks returns the checks the runner was built with, in run order.
func (r *Runner) Checks() []Check { return r.checks }

// Run executes the checks of the named suites (all when none are named) sequentially.
// A failing check never stops later ones; once ctx is done the rest are marked skipped.
func (r *Runner) Run(ctx context.Context, suites ...string) (*domain.Report, error) {
	if r == nil || r.fixture == nil {
		return nil, fmt.Errorf("runner is not initialized")
	}
	if unknown := UnknownSuites(suites); len(unknown) > 0 {
		return nil, fmt.Errorf("unknown suites %v", unknown)
	}

	selected := Select(r.checks, suites)
	report := &domain.Report{
		RunID:     uuid.NewString(),
		BaseURL:   r.fixture.Config().BaseURL,
		StartedAt: r.now().UTC(),
		Results:   make([]domain.CheckResult, 0, len(selected)),
	}

	for _, c := range selected {
		res := domain.CheckResult{
			Suite:       c.Suite,
			Name:        c.Name,
			Description: c.Description,
			Severity:    string(c.Severity),
		}
		if ctx.Err() != nil {
			res.Skipped = true
			res.Error = ctx.Err().Error()
			report.Results = append(report.Results, res)
			continue
		}

		start := r.now()
		err := r.run(ctx, c)
		res.DurationMs = r.now().Sub(start).Milliseconds()
		res.Passed = err == nil
		if err != nil {
			res.Error = err.Error()
		}
		report.Results = append(report.Results, res)
	}

	report.FinishedAt = r.now().UTC()
	summary := report.Summary()
	r.fixture.Logger().InfoObj("check run completed", "run", map[string]any{
		"run_id":  report.RunID,
		"checks":  summary.Total,
		"passed":  summary.Passed,
		"failed":  summary.Failed,
		"skipped": summary.Skipped,
		"elapsed": report.FinishedAt.Sub(report.StartedAt).String(),
	})
	return report, nil
}

func (r *Runner) run(ctx context.Context, c Check) error {
	if c.Run == nil {
		return errors.New("check has no body")
	}
	return r.fixture.Run(ctx, c.Suite+" "+c.Name, c.Run)
}
