package commands

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/jakechorley/semester-planner/internal/config"
	"github.com/jakechorley/semester-planner/pkg/core/services"
	"github.com/jakechorley/semester-planner/pkg/db"
	"github.com/jakechorley/semester-planner/pkg/metrics"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg *config.Config
	// Database is nil when the store driver is "none"
	Database db.Database
	Metrics  *metrics.Recorder
	Logger   *zap.Logger
	Ctx      context.Context
}

var errNoStore = errors.New("no run store configured (set store.driver to sqlite or postgres)")

// inputPath prefers the --input flag over the configured path
func (app *AppContext) inputPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return app.Cfg.InputPath
}

func (app *AppContext) calendarOptions() (services.CalendarOptions, error) {
	start, ok, err := app.Cfg.StartDate()
	if err != nil || !ok {
		return services.CalendarOptions{}, err
	}
	return services.CalendarOptions{Start: start, Rule: app.Cfg.TeachingDaysRule}, nil
}

// runStore returns the configured store, keeping a nil interface when none is set
func (app *AppContext) runStore() db.RunStore {
	if app.Database == nil {
		return nil
	}
	return app.Database
}
