// This file adds a lightweight validator for Config values. It performs
// static checks over a loaded Config and returns a list of issues that
// callers can surface in a CLI or tests.
package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be surfaced
	// to users but may not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding for a Config. Path is a
// dotted path into the config (e.g. "db_driver"); Message is
// human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a
// single error in contexts that expect error.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// Validate performs static validation of a Config. It does not mutate
// the config; it returns a slice of Issue values. Callers decide whether
// warnings are fatal.
func Validate(cfg *Config) []Issue {
	var issues []Issue

	switch cfg.DBDriver {
	case "sqlite", "postgres", "mssql", "mysql":
	case "":
		issues = append(issues, Issue{SeverityError, "db_driver", "db_driver must not be empty"})
	default:
		issues = append(issues, Issue{SeverityError, "db_driver",
			fmt.Sprintf("unknown driver %q (expected sqlite, postgres, mssql, or mysql)", cfg.DBDriver)})
	}
	if strings.TrimSpace(cfg.DSN) == "" {
		issues = append(issues, Issue{SeverityError, "dsn", "dsn must not be empty"})
	}

	if cfg.BatchSize <= 0 {
		issues = append(issues, Issue{SeverityError, "batch_size", "batch_size must be positive"})
	} else if cfg.BatchSize > 1_000_000 {
		issues = append(issues, Issue{SeverityWarning, "batch_size", "batch_size above 1000000 rarely helps and holds large batches in memory"})
	}
	if cfg.Workers <= 0 {
		issues = append(issues, Issue{SeverityError, "workers", "workers must be positive"})
	}

	if cfg.MaxLineBytes <= 0 {
		issues = append(issues, Issue{SeverityError, "max_line_bytes", "max_line_bytes must be positive"})
	}
	if cfg.MaxColumns <= 0 {
		issues = append(issues, Issue{SeverityError, "max_cols", "max_cols must be positive"})
	}

	switch cfg.MetricsBackend {
	case "", "prompush":
	default:
		issues = append(issues, Issue{SeverityError, "metrics",
			fmt.Sprintf("unknown metrics backend %q (expected '' or 'prompush')", cfg.MetricsBackend)})
	}
	if cfg.MetricsBackend == "prompush" && strings.TrimSpace(cfg.PushgatewayURL) == "" {
		issues = append(issues, Issue{SeverityError, "pushgateway_url", "pushgateway_url is required with the prompush backend"})
	}

	return issues
}

// FirstError returns the first error-severity issue, or nil.
func FirstError(issues []Issue) error {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return iss
		}
	}
	return nil
}
