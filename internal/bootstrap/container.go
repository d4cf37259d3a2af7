package bootstrap

import (
	"context"
	"sync"

	chclient "degenindex/internal/adapters/clickhouse"
	"degenindex/internal/adapters/config"
	"degenindex/internal/adapters/kafka"
	pgclient "degenindex/internal/adapters/postgres"
	redisclient "degenindex/internal/adapters/redis"
	"degenindex/internal/adapters/reddit"
	"degenindex/internal/adapters/telegram"
	"degenindex/internal/api"
	"degenindex/internal/api/health"
	"degenindex/internal/api/stream"
	"degenindex/internal/consumers"
	"degenindex/internal/domain/classification"
	"degenindex/internal/domain/index"
	"degenindex/internal/events"
	indexsvc "degenindex/internal/services/index"
	"degenindex/internal/services/scan"
	"degenindex/internal/workers"
	"degenindex/pkg/errors"
	"degenindex/pkg/logger"
)

// Container holds all application dependencies and their lifecycle
// Components are organized in initialization order
type Container struct {
	// Core configuration & logging
	Config       *config.Config
	Log          *logger.Logger
	ErrorTracker errors.Tracker

	// Infrastructure Layer (Data stores)
	PG    *pgclient.Client
	CH    *chclient.Client
	Redis *redisclient.Client

	// Domain Layer - Repositories
	Repos *Repositories

	// Domain Layer - Services
	Services *Services

	// External Adapters
	Adapters *Adapters

	// Application Layer
	Application *Application

	// Background Processing
	Background *Background

	// Lifecycle management
	Lifecycle *Lifecycle
	WG        *sync.WaitGroup
	Context   context.Context
	Cancel    context.CancelFunc
}

// Repositories groups all domain repositories
type Repositories struct {
	Archive   classification.Repository        // ClickHouse comment archive
	Summaries classification.SummaryRepository // Postgres batch summaries
	Index     index.Repository                 // Postgres index readings
	Seen      classification.SeenStore         // Redis dedupe cache
}

// Services groups all domain services
type Services struct {
	Scan  *scan.Service
	Index *indexsvc.Service
}

// Adapters groups all external adapters
type Adapters struct {
	// Kafka
	KafkaProducer           *kafka.Producer
	ClassificationsConsumer *kafka.Consumer
	SummariesConsumer       *kafka.Consumer
	IndexUpdatesConsumer    *kafka.Consumer
	NotificationConsumer    *kafka.Consumer // separate group so digests do not starve the stream

	// Upstream & AI
	RedditClient *reddit.Client
	Classifier   classification.Classifier

	// Event publishing
	Publisher *events.Publisher

	// Telegram (nil when no token configured)
	Notifier *telegram.Notifier
}

// Application groups application layer components
type Application struct {
	HTTPServer    *api.Server
	HealthHandler *health.Handler
	APIHandler    *api.Handler
	StreamHub     *stream.Hub
}

// Background groups all background processing components
type Background struct {
	WorkerScheduler *workers.Scheduler

	// Event consumers
	StreamRelays    []*consumers.StreamConsumer
	NotificationSvc *consumers.NotificationConsumer
}

// NewContainer creates a new dependency container
func NewContainer() *Container {
	ctx, cancel := context.WithCancel(context.Background())

	return &Container{
		Repos:       &Repositories{},
		Services:    &Services{},
		Adapters:    &Adapters{},
		Application: &Application{},
		Background:  &Background{},
		Lifecycle:   NewLifecycle(),
		WG:          &sync.WaitGroup{},
		Context:     ctx,
		Cancel:      cancel,
	}
}

// MustInit initializes all components in the correct order
// Panics on any initialization error (fail-fast at startup)
func (c *Container) MustInit() {
	c.MustInitConfig()
	c.MustInitInfrastructure()
	c.MustInitRepositories()
	c.MustInitAdapters()
	c.MustInitServices()
	c.MustInitApplication()
	c.MustInitBackground()
}

// Start starts all background components
func (c *Container) Start() error {
	c.Log.Info("Starting all systems...")

	// Start worker scheduler (submission scanner)
	if err := c.Background.WorkerScheduler.Start(c.Context); err != nil {
		return errors.Wrap(err, "failed to start workers")
	}
	c.Log.Info("✓ Worker scheduler started")

	// Start background consumers
	c.startConsumers()

	// Start HTTP server
	c.WG.Add(1)
	go func() {
		defer c.WG.Done()
		if err := c.Application.HTTPServer.Start(); err != nil {
			c.Log.Errorf("HTTP server failed: %v", err)
			c.Cancel() // Trigger shutdown on fatal HTTP error
		}
	}()

	c.Log.Info("✓ All systems operational")
	return nil
}

// startConsumers starts all Kafka consumers in background goroutines
func (c *Container) startConsumers() {
	started := make([]string, 0)

	for _, relay := range c.Background.StreamRelays {
		c.WG.Add(1)
		go func(relay *consumers.StreamConsumer) {
			defer c.WG.Done()
			if err := relay.Start(c.Context); err != nil && c.Context.Err() == nil {
				c.Log.Errorw("Stream relay failed", "error", err)
			}
		}(relay)
		started = append(started, "stream_relay")
	}

	if c.Background.NotificationSvc != nil {
		c.WG.Add(1)
		go func() {
			defer c.WG.Done()
			if err := c.Background.NotificationSvc.Start(c.Context); err != nil && c.Context.Err() == nil {
				c.Log.Errorw("Notification consumer failed", "error", err)
			}
		}()
		started = append(started, "notifications")
	}

	c.Log.Infow("✓ Event consumers started", "consumers", started)
}

// Shutdown performs graceful shutdown in the correct order
func (c *Container) Shutdown() {
	c.Log.Info("Initiating graceful shutdown...")

	// Cancel application context to signal all components to stop
	c.Cancel()

	c.Lifecycle.Shutdown(
		c.WG,
		c.Application.HTTPServer,
		c.Background.WorkerScheduler,
		c.Application.StreamHub,
		c.Adapters.KafkaProducer,
		map[string]*kafka.Consumer{
			"classifications": c.Adapters.ClassificationsConsumer,
			"summaries":       c.Adapters.SummariesConsumer,
			"index_updates":   c.Adapters.IndexUpdatesConsumer,
			"notifications":   c.Adapters.NotificationConsumer,
		},
		c.PG,
		c.CH,
		c.Redis,
		c.ErrorTracker,
		c.Log,
	)
}
