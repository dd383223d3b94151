// Package app wires configuration, storage, the event bus and the
// application handlers into a single container.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	analysisCommands "github.com/cadencehq/cadence/internal/analysis/application/commands"
	analysisQueries "github.com/cadencehq/cadence/internal/analysis/application/queries"
	analysisDomain "github.com/cadencehq/cadence/internal/analysis/domain"
	analysisCache "github.com/cadencehq/cadence/internal/analysis/infrastructure/cache"
	analysisMessaging "github.com/cadencehq/cadence/internal/analysis/infrastructure/messaging"
	analysisPersistence "github.com/cadencehq/cadence/internal/analysis/infrastructure/persistence"
	schedulingServices "github.com/cadencehq/cadence/internal/scheduling/application/services"
	schedulingDomain "github.com/cadencehq/cadence/internal/scheduling/domain"
	"github.com/cadencehq/cadence/internal/shared/infrastructure/eventbus"
	"github.com/cadencehq/cadence/internal/shared/infrastructure/migrations"
	taskCommands "github.com/cadencehq/cadence/internal/tasks/application/commands"
	taskQueries "github.com/cadencehq/cadence/internal/tasks/application/queries"
	taskServices "github.com/cadencehq/cadence/internal/tasks/application/services"
	"github.com/cadencehq/cadence/internal/tasks/domain/task"
	taskPersistence "github.com/cadencehq/cadence/internal/tasks/infrastructure/persistence"
	"github.com/cadencehq/cadence/pkg/config"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Storage
	SQLiteDB *sql.DB
	PGPool   *pgxpool.Pool
	Redis    *redis.Client

	// Repositories
	EventRepo   analysisDomain.EventRepository
	TaskRepo    task.Repository
	ReportCache analysisDomain.ReportCache

	// Eventing
	EventPublisher eventbus.Publisher
	Registry       *eventbus.Registry

	// Analysis handlers
	RecordEventHandler        *analysisCommands.RecordEventHandler
	AnalyzePatternsHandler    *analysisQueries.AnalyzePatternsHandler
	GetRecommendationsHandler *analysisQueries.GetRecommendationsHandler

	// Task handlers
	CreateTaskHandler   *taskCommands.CreateTaskHandler
	UpdateTaskHandler   *taskCommands.UpdateTaskHandler
	StartTaskHandler    *taskCommands.StartTaskHandler
	CompleteTaskHandler *taskCommands.CompleteTaskHandler
	CancelTaskHandler   *taskCommands.CancelTaskHandler
	DeleteTaskHandler   *taskCommands.DeleteTaskHandler
	ListTasksHandler    *taskQueries.ListTasksHandler
	GetTaskHandler      *taskQueries.GetTaskHandler
	TaskReportHandler   *taskQueries.TaskReportHandler
	ExportTasksHandler  *taskQueries.ExportTasksHandler

	// Services
	PriorityEngine *taskServices.PriorityEngine
	DateCalculator *schedulingServices.DateCalculator
}

// NewContainer builds the dependency graph from configuration.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Container{Config: cfg, Logger: logger}

	if err := c.initStorage(ctx); err != nil {
		return nil, err
	}
	c.initCache()
	if err := c.initEventing(ctx); err != nil {
		c.Close()
		return nil, err
	}
	c.initHandlers()

	return c, nil
}

func (c *Container) initStorage(ctx context.Context) error {
	switch c.Config.DatabaseDriver {
	case "postgres":
		// Schema is applied out-of-band from migrations/postgres; only
		// the SQLite path self-migrates.
		pool, err := pgxpool.New(ctx, c.Config.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to create postgres pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return fmt.Errorf("failed to ping postgres: %w", err)
		}
		c.PGPool = pool
		c.EventRepo = analysisPersistence.NewPostgresEventRepository(pool)
		c.Logger.Info("connected to postgres")
	default:
		if err := os.MkdirAll(filepath.Dir(c.Config.SQLitePath), 0o755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
		db, err := sql.Open("sqlite", c.Config.SQLitePath)
		if err != nil {
			return fmt.Errorf("failed to open sqlite database: %w", err)
		}
		if err := migrations.RunSQLiteMigrations(ctx, db); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		c.SQLiteDB = db
		c.EventRepo = analysisPersistence.NewSQLiteEventRepository(db)
		c.Logger.Info("opened sqlite database", "path", c.Config.SQLitePath)
	}

	// The task store is SQLite in both modes; postgres deployments keep
	// only the event log remote.
	if c.SQLiteDB == nil {
		if err := os.MkdirAll(filepath.Dir(c.Config.SQLitePath), 0o755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
		db, err := sql.Open("sqlite", c.Config.SQLitePath)
		if err != nil {
			return fmt.Errorf("failed to open sqlite database: %w", err)
		}
		if err := migrations.RunSQLiteMigrations(ctx, db); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		c.SQLiteDB = db
	}
	c.TaskRepo = taskPersistence.NewSQLiteTaskRepository(c.SQLiteDB)

	return nil
}

func (c *Container) initCache() {
	ttl := time.Duration(c.Config.ReportCacheTTL) * time.Second

	if c.Config.RedisURL != "" {
		opts, err := redis.ParseURL(c.Config.RedisURL)
		if err != nil {
			c.Logger.Warn("invalid redis url, falling back to in-memory cache", "error", err)
			c.ReportCache = analysisCache.NewMemoryReportCache(ttl)
			return
		}
		c.Redis = redis.NewClient(opts)
		c.ReportCache = analysisCache.NewRedisReportCache(c.Redis, ttl, c.Logger)
		c.Logger.Info("report cache backed by redis")
		return
	}

	c.ReportCache = analysisCache.NewMemoryReportCache(ttl)
}

func (c *Container) initEventing(ctx context.Context) error {
	c.RecordEventHandler = analysisCommands.NewRecordEventHandler(c.EventRepo, c.Logger)
	subscriber := analysisMessaging.NewTaskCompletedSubscriber(c.RecordEventHandler, c.Logger)

	if c.Config.RabbitMQURL != "" {
		publisher, err := eventbus.NewRabbitMQPublisher(c.Config.RabbitMQURL, c.Logger)
		if err != nil {
			return fmt.Errorf("failed to connect rabbitmq publisher: %w", err)
		}
		c.EventPublisher = publisher
		// The recorder runs in cmd/worker in broker mode; the registry
		// stays available for it.
		c.Registry = eventbus.NewRegistry(c.Logger)
		c.Registry.Register(subscriber)
		return nil
	}

	bus := eventbus.NewInProcessBus(c.Logger)
	bus.Register(subscriber)
	c.EventPublisher = bus
	return nil
}

func (c *Container) initHandlers() {
	cfg := c.Config

	weights := analysisDomain.ScoreWeights{
		Urgency:    cfg.UrgencyWeight,
		Importance: cfg.ImportanceWeight,
		Effort:     cfg.EffortWeight,
	}

	c.AnalyzePatternsHandler = analysisQueries.NewAnalyzePatternsHandler(
		c.EventRepo, c.ReportCache, weights, cfg.MinimumSample, c.Logger)
	c.GetRecommendationsHandler = analysisQueries.NewGetRecommendationsHandler(
		c.AnalyzePatternsHandler, c.ReportCache, c.Logger)

	c.CreateTaskHandler = taskCommands.NewCreateTaskHandler(c.TaskRepo, c.EventPublisher, c.Logger)
	c.UpdateTaskHandler = taskCommands.NewUpdateTaskHandler(c.TaskRepo, c.Logger)
	c.StartTaskHandler = taskCommands.NewStartTaskHandler(c.TaskRepo, c.EventPublisher, c.Logger)
	c.CompleteTaskHandler = taskCommands.NewCompleteTaskHandler(c.TaskRepo, c.EventPublisher, c.Logger)
	c.CancelTaskHandler = taskCommands.NewCancelTaskHandler(c.TaskRepo, c.EventPublisher, c.Logger)
	c.DeleteTaskHandler = taskCommands.NewDeleteTaskHandler(c.TaskRepo, c.Logger)

	c.ListTasksHandler = taskQueries.NewListTasksHandler(c.TaskRepo, c.Logger)
	c.GetTaskHandler = taskQueries.NewGetTaskHandler(c.TaskRepo)
	c.TaskReportHandler = taskQueries.NewTaskReportHandler(c.TaskRepo)
	c.ExportTasksHandler = taskQueries.NewExportTasksHandler(c.TaskRepo)

	c.PriorityEngine = taskServices.NewPriorityEngine()
	c.DateCalculator = schedulingServices.NewDateCalculator(schedulingDomain.Workday{
		StartHour:    cfg.WorkStartHour,
		EndHour:      cfg.WorkEndHour,
		FocusMinutes: cfg.FocusBlockMinutes,
		BreakMinutes: cfg.BreakMinutes,
	})
}

// UserID returns the configured default user identity.
func (c *Container) UserID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.Config.UserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid CADENCE_USER_ID: %w", err)
	}
	return id, nil
}

// Close releases every held resource.
func (c *Container) Close() {
	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.Logger.Warn("error closing event publisher", "error", err)
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Warn("error closing redis client", "error", err)
		}
	}
	if c.PGPool != nil {
		c.PGPool.Close()
	}
	if c.SQLiteDB != nil {
		if err := c.SQLiteDB.Close(); err != nil {
			c.Logger.Warn("error closing sqlite database", "error", err)
		}
	}
}
