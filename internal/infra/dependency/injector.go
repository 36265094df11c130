// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/automation-insights/backend/config"
	"github.com/automation-insights/backend/internal/application/adapter"
	"github.com/automation-insights/backend/internal/application/usecase/dashboard"
	"github.com/automation-insights/backend/internal/application/usecase/datepicker"
	"github.com/automation-insights/backend/internal/application/usecase/daterange"
	"github.com/automation-insights/backend/internal/application/usecase/filters"
	"github.com/automation-insights/backend/internal/infra/cache"
	"github.com/automation-insights/backend/internal/infra/db"
	"github.com/automation-insights/backend/internal/infra/server/router"
	"github.com/automation-insights/backend/internal/integration/adapters"
	"github.com/automation-insights/backend/internal/integration/analytics"
	"github.com/automation-insights/backend/internal/integration/entrypoint/controller"
	"github.com/automation-insights/backend/internal/integration/entrypoint/middleware"
	"github.com/automation-insights/backend/internal/integration/persistence"
)

// Storage bundles the preference stores selected by STORAGE_DRIVER.
type Storage struct {
	Preferences adapter.PreferenceStore
	StagedEdits adapter.StagedEditStore
	closers     []func() error
}

// Close releases every connection opened for the storage.
func (s *Storage) Close() error {
	var errs []error
	for _, closeFn := range s.closers {
		errs = append(errs, closeFn())
	}
	return errors.Join(errs...)
}

// NewStorage opens the preference stores for the configured driver. Staged
// date picker edits live in Redis with the redis driver and in process
// memory otherwise.
func NewStorage(ctx context.Context, cfg *config.Config, loc *time.Location) (*Storage, error) {
	ttl := cfg.Dashboard.DatePickerTTL

	switch cfg.Storage.Driver {
	case config.StorageRedis:
		client, err := cache.NewRedisClient(ctx, &cfg.Redis)
		if err != nil {
			return nil, err
		}
		return NewRedisStorage(client, ttl, loc), nil

	case config.StoragePostgres, config.StorageSQLite:
		var (
			database *db.Database
			err      error
		)
		if cfg.Storage.Driver == config.StoragePostgres {
			database, err = db.NewPostgresConnection(&cfg.Database)
		} else {
			database, err = db.NewSQLiteConnection(&cfg.SQLite)
		}
		if err != nil {
			return nil, err
		}

		if err := database.AutoMigrate(); err != nil {
			_ = database.Close()
			return nil, err
		}
		slog.Info("Database migrations completed successfully")

		return &Storage{
			Preferences: persistence.NewSQLPreferenceStore(database.DB()),
			StagedEdits: persistence.NewMemoryStagedEditStore(ttl, time.Now),
			closers:     []func() error{database.Close},
		}, nil

	case config.StorageMemory:
		return &Storage{
			Preferences: persistence.NewMemoryPreferenceStore(),
			StagedEdits: persistence.NewMemoryStagedEditStore(ttl, time.Now),
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// NewRedisStorage builds Redis-backed stores on an existing client.
func NewRedisStorage(client *redis.Client, ttl time.Duration, loc *time.Location) *Storage {
	return &Storage{
		Preferences: persistence.NewRedisPreferenceStore(client),
		StagedEdits: persistence.NewRedisStagedEditStore(client, ttl, loc),
		closers:     []func() error{client.Close},
	}
}

// Injector holds all application dependencies.
type Injector struct {
	Config   *config.Config
	Storage  *Storage
	Resolver *daterange.Resolver
	Router   *router.Router
}

// Options overrides collaborators, mainly for tests.
type Options struct {
	Clock     daterange.Clock
	Analytics adapter.AnalyticsClient
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, storage *Storage, loc *time.Location, opts Options) *Injector {
	resolver := daterange.NewResolver(opts.Clock, loc)

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	analyticsClient := opts.Analytics
	if analyticsClient == nil {
		analyticsClient = analytics.NewClient(analytics.Config{
			BaseURL:  cfg.Analytics.BaseURL,
			APIToken: cfg.Analytics.APIToken,
			Timeout:  cfg.Analytics.Timeout,
		})
	}

	sessions := filters.NewSessions(storage.Preferences, resolver)

	// Create filter use cases
	getFiltersUseCase := filters.NewGetFiltersUseCase(sessions)
	dispatchEventUseCase := filters.NewDispatchEventUseCase(sessions)
	getRequestParamsUseCase := filters.NewGetRequestParamsUseCase(sessions)
	resetFiltersUseCase := filters.NewResetFiltersUseCase(sessions)
	getPresetsUseCase := filters.NewGetPresetsUseCase(sessions)
	getChartSettingsUseCase := filters.NewGetChartSettingsUseCase(storage.Preferences)
	saveChartSettingsUseCase := filters.NewSaveChartSettingsUseCase(storage.Preferences)

	// Create date picker use cases
	openPickerUseCase := datepicker.NewOpenPickerUseCase(storage.StagedEdits, sessions)
	selectPresetUseCase := datepicker.NewSelectPresetUseCase(storage.StagedEdits, sessions)
	selectRangeUseCase := datepicker.NewSelectRangeUseCase(storage.StagedEdits, sessions)
	closePickerUseCase := datepicker.NewClosePickerUseCase(storage.StagedEdits, sessions)
	getPickerUseCase := datepicker.NewGetPickerUseCase(storage.StagedEdits, sessions)

	// Create dashboard use cases
	getOverviewUseCase := dashboard.NewGetOverviewUseCase(analyticsClient, sessions, storage.Preferences)
	getFilterOptionsUseCase := dashboard.NewGetFilterOptionsUseCase(analyticsClient)
	getDetailURLUseCase := dashboard.NewGetDetailURLUseCase(sessions)

	// Create controllers
	healthController := controller.NewHealthController(cfg.Storage.Driver, storage.Preferences.Ping)

	filtersController := controller.NewFiltersController(
		resolver,
		getFiltersUseCase,
		dispatchEventUseCase,
		getRequestParamsUseCase,
		resetFiltersUseCase,
		getPresetsUseCase,
		getChartSettingsUseCase,
		saveChartSettingsUseCase,
	)

	datePickerController := controller.NewDatePickerController(
		openPickerUseCase,
		selectPresetUseCase,
		selectRangeUseCase,
		closePickerUseCase,
		getPickerUseCase,
	)

	dashboardController := controller.NewDashboardController(
		getOverviewUseCase,
		getFilterOptionsUseCase,
		getDetailURLUseCase,
	)

	// Create middleware
	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		filtersController,
		datePickerController,
		dashboardController,
		rateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:   cfg,
		Storage:  storage,
		Resolver: resolver,
		Router:   r,
	}
}
