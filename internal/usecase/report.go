package usecase

// CheckSummary is one named check inside the serialized report envelope.
// Counts stay exact even when the violation listing is truncated for display.
type CheckSummary struct {
	Name         string   `json:"name"`
	Passed       bool     `json:"passed"`
	ErrorCount   int      `json:"error_count"`
	WarningCount int      `json:"warning_count"`
	Violations   []string `json:"violations,omitempty"`
}

// ReportEnvelope is the flat record shape callers serialize (sonic/JSON).
type ReportEnvelope struct {
	Scope         string         `json:"scope"`
	Season        string         `json:"season"`
	TotalChecks   int            `json:"total_checks"`
	PassedChecks  int            `json:"passed_checks"`
	FailedChecks  int            `json:"failed_checks"`
	Checks        []CheckSummary `json:"checks"`
	OverallPassed bool           `json:"overall_passed"`
	TotalGames    int            `json:"total_games"`
	HealthScore   float64        `json:"health_score"`
}

// Envelope flattens a report into the serialized shape. maxViolations bounds
// the per-check listing; zero or negative means list everything. Truncation is
// display-only: ErrorCount/WarningCount always carry the full totals.
func (r ValidationReport) Envelope(healthyThreshold float64, maxViolations int) ReportEnvelope {
	envelope := ReportEnvelope{
		Scope:         r.Scope,
		Season:        r.Season,
		TotalChecks:   len(checkOrder),
		OverallPassed: r.Healthy(healthyThreshold),
		TotalGames:    r.GameCount,
		HealthScore:   r.HealthScore,
	}

	for _, name := range checkOrder {
		summary := CheckSummary{Name: name, Passed: true}
		for _, violation := range r.Errors {
			if violation.Check != name {
				continue
			}
			summary.ErrorCount++
			summary.Passed = false
			if maxViolations <= 0 || len(summary.Violations) < maxViolations {
				summary.Violations = append(summary.Violations, violation.String())
			}
		}
		for _, violation := range r.Warnings {
			if violation.Check != name {
				continue
			}
			summary.WarningCount++
			if maxViolations <= 0 || len(summary.Violations) < maxViolations {
				summary.Violations = append(summary.Violations, violation.String())
			}
		}
		if summary.Passed {
			envelope.PassedChecks++
		} else {
			envelope.FailedChecks++
		}
		envelope.Checks = append(envelope.Checks, summary)
	}
	return envelope
}
