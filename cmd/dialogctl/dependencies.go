package main

import (
	"log/slog"

	"github.com/pkg/browser"
	"go.opentelemetry.io/otel/trace"

	"github.com/rfhold/dialogctl/internal/dialog"
	"github.com/rfhold/dialogctl/internal/telemetry"
)

// Dependencies holds all external dependencies for the application.
// These can be replaced with test doubles for unit testing.
type Dependencies struct {
	Logger *slog.Logger
	Tracer trace.Tracer
	// Scheduler delivers dialog timers and frames.
	Scheduler dialog.Scheduler
	// OpenURL opens a button link outside the terminal.
	OpenURL func(url string) error
}

// NewProductionDependencies creates dependencies configured for production use.
func NewProductionDependencies(tel *telemetry.Telemetry) *Dependencies {
	return &Dependencies{
		Logger:    tel.Logger,
		Tracer:    tel.Tracer(),
		Scheduler: dialog.TickScheduler{},
		OpenURL:   browser.OpenURL,
	}
}
