// Package database defines the interfaces for persisting run history.
// The interface decouples the monitor from a specific backend: the file
// sink remains the authoritative output, and the database is an optional
// queryable history of past runs.
package database

import (
	"context"

	"github.com/promowatch/promowatch/internal/monitor"
)

// Provider defines the common interface for the run-history layer.
type Provider interface {
	// SaveRun persists one run's verdicts.
	SaveRun(ctx context.Context, result monitor.RunResult) error

	// Close terminates the connection and releases resources.
	Close()
}

// NoOpProvider discards run history. It is the default when no database is
// configured.
type NoOpProvider struct{}

// SaveRun for NoOpProvider does nothing.
func (NoOpProvider) SaveRun(_ context.Context, _ monitor.RunResult) error { return nil }

// Close for NoOpProvider does nothing.
func (NoOpProvider) Close() {}
