package domain

import "time"

// CheckResult is the outcome of one check in a run.
type CheckResult struct {
	Suite       string `json:"suite"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Severity    string `json:"severity"`
	Passed      bool   `json:"passed"`
	Skipped     bool   `json:"skipped,omitempty"`
	Error       string `json:"error,omitempty"`
	DurationMs  int64  `json:"duration_ms"`
}

// Report summarises one pass over the selected checks.
type Report struct {
	RunID      string        `json:"run_id"`
	BaseURL    string        `json:"base_url"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Results    []CheckResult `json:"results"`
}

// Summary holds the per outcome counts of a report.
type Summary struct {
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// Summary counts the results by outcome.
func (r *Report) Summary() Summary {
	s := Summary{Total: len(r.Results)}
	for _, res := range r.Results {
		switch {
		case res.Skipped:
			s.Skipped++
		case res.Passed:
			s.Passed++
		default:
			s.Failed++
		}
	}
	return s
}

// Passed counts passing checks.
func (r *Report) Passed() int { return r.Summary().Passed }

// Failed counts checks that ran and did not pass.
func (r *Report) Failed() int { return r.Summary().Failed }

// Skipped counts checks not run.
func (r *Report) Skipped() int { return r.Summary().Skipped }

// OK reports whether every check ran and passed.
func (r *Report) OK() bool {
	s := r.Summary()
	return s.Failed == 0 && s.Skipped == 0
}

// Outcome is "passed" when OK, otherwise "failed".
func (r *Report) Outcome() string {
	if r.OK() {
		return "passed"
	}
	return "failed"
}

// Failures returns the results that ran and did not pass.
func (r *Report) Failures() []CheckResult {
	var out []CheckResult
	for _, res := range r.Results {
		if !res.Passed && !res.Skipped {
			out = append(out, res)
		}
	}
	return out
}
