package publishers

import (
	"time"

	"github.com/samvad-hq/dogceo-checker/internal/domain"
)

// Event represents the payload published downstream after a check run.
type Event struct {
	RunID       string         `json:"run_id"`
	Source      string         `json:"source"`
	Outcome     string         `json:"outcome"`
	Summary     domain.Summary `json:"summary"`
	Report      domain.Report  `json:"report"`
	PublishedAt time.Time      `json:"published_at"`
}

// NewEvent constructs an Event for a finished report.
func NewEvent(source string, report *domain.Report) Event {
	evt := Event{
		Source:      source,
		PublishedAt: time.Now().UTC(),
	}
	if report != nil {
		evt.RunID = report.RunID
		evt.Outcome = report.Outcome()
		evt.Summary = report.Summary()
		evt.Report = *report
	}
	return evt
}

// Attributes are the message attributes attached by queue and topic sinks.
func (e Event) Attributes() map[string]string {
	attrs := map[string]string{}
	if e.RunID != "" {
		attrs["run_id"] = e.RunID
	}
	if e.Outcome != "" {
		attrs["outcome"] = e.Outcome
	}
	if e.Source != "" {
		attrs["source"] = e.Source
	}
	return attrs
}
