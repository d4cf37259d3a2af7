package bootstrap

import (
	"degenindex/internal/adapters/ai"
	chclient "degenindex/internal/adapters/clickhouse"
	"degenindex/internal/adapters/config"
	errnoop "degenindex/internal/adapters/errors/noop"
	"degenindex/internal/adapters/errors/sentry"
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
	"degenindex/internal/events"
	"degenindex/internal/metrics"
	chrepo "degenindex/internal/repository/clickhouse"
	pgrepo "degenindex/internal/repository/postgres"
	redisrepo "degenindex/internal/repository/redis"
	indexsvc "degenindex/internal/services/index"
	"degenindex/internal/services/scan"
	"degenindex/internal/workers"
	"degenindex/pkg/errors"
	"degenindex/pkg/logger"
)

// ========================================
// Phase 1: Configuration & Logging
// ========================================

// MustInitConfig loads configuration and initializes logger
func (c *Container) MustInitConfig() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}
	c.Config = cfg

	// Initialize logger
	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		panic("failed to init logger: " + err.Error())
	}

	c.Log = logger.Get()
	c.Log.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Env)

	if err := cfg.Validate(); err != nil {
		c.Log.Fatalf("invalid configuration: %v", err)
	}

	// Initialize error tracker
	c.ErrorTracker = provideErrorTracker(cfg, c.Log)
	logger.SetErrorTracker(c.ErrorTracker)

	metrics.Init()
}

// ========================================
// Phase 2: Infrastructure Layer
// ========================================

// MustInitInfrastructure initializes data stores (Postgres, ClickHouse, Redis)
func (c *Container) MustInitInfrastructure() {
	var err error

	// PostgreSQL
	c.Log.Info("Connecting to PostgreSQL...")
	c.PG, err = pgclient.NewClient(c.Config.Postgres)
	if err != nil {
		c.Log.Fatalf("failed to connect postgres: %v", err)
	}
	c.Log.Info("✓ PostgreSQL connected")

	// ClickHouse
	c.Log.Info("Connecting to ClickHouse...")
	c.CH, err = chclient.NewClient(c.Config.ClickHouse)
	if err != nil {
		c.Log.Fatalf("failed to connect clickhouse: %v", err)
	}
	c.Log.Info("✓ ClickHouse connected")

	// Redis
	c.Log.Info("Connecting to Redis...")
	c.Redis, err = redisclient.NewClient(c.Config.Redis)
	if err != nil {
		c.Log.Fatalf("failed to connect redis: %v", err)
	}
	c.Log.Info("✓ Redis connected")

	// Database-backed gauges scraped on /metrics pulls
	metrics.RegisterCustomCollector(metrics.NewCustomCollector(c.Log, c.PG.DB(), c.CH.Conn()))
}

// ========================================
// Phase 3: Domain Layer - Repositories
// ========================================

// MustInitRepositories initializes all domain repositories
func (c *Container) MustInitRepositories() {
	c.Repos.Archive = chrepo.NewClassificationRepository(c.CH.Conn())
	c.Repos.Summaries = pgrepo.NewSummaryRepository(c.PG.DB())
	c.Repos.Index = pgrepo.NewIndexRepository(c.PG.DB())
	c.Repos.Seen = redisrepo.NewSeenStore(c.Redis, c.Config.Scanner.SeenTTL)

	c.Log.Info("✓ Repositories initialized")
}

// ========================================
// Phase 4: External Adapters
// ========================================

// MustInitAdapters initializes external adapters (Kafka, Reddit, AI, Telegram)
func (c *Container) MustInitAdapters() {
	var err error

	// Kafka
	c.Adapters.KafkaProducer = provideKafkaProducer(c.Config, c.Log)
	c.Adapters.ClassificationsConsumer = provideKafkaConsumer(c.Config, kafka.TopicClassifications, c.Config.Kafka.GroupID, c.Log)
	c.Adapters.SummariesConsumer = provideKafkaConsumer(c.Config, kafka.TopicSummaries, c.Config.Kafka.GroupID, c.Log)
	c.Adapters.IndexUpdatesConsumer = provideKafkaConsumer(c.Config, kafka.TopicIndexUpdates, c.Config.Kafka.GroupID, c.Log)

	// Reddit
	c.Adapters.RedditClient = reddit.NewClient(c.Config.Reddit)
	c.Log.Infow("✓ Reddit client initialized", "user_agent", c.Config.Reddit.UserAgent)

	// Classifier (heuristic by default, OpenAI when configured)
	c.Adapters.Classifier, err = ai.NewClassifier(c.Config.AI, classification.DefaultVocabulary())
	if err != nil {
		c.Log.Fatalf("failed to create classifier: %v", err)
	}
	c.Log.Infof("✓ Classifier initialized: %s", c.Adapters.Classifier.Name())

	// Event publisher
	c.Adapters.Publisher = events.NewPublisher(c.Adapters.KafkaProducer, c.Log)

	// Telegram digests (optional)
	if c.Config.Telegram.Enabled() {
		c.Adapters.Notifier, err = telegram.NewNotifier(c.Config.Telegram, c.Log)
		if err != nil {
			c.Log.Fatalf("failed to create telegram notifier: %v", err)
		}
		// Digests consume summaries on their own group so a slow chat
		// never lags the websocket stream
		c.Adapters.NotificationConsumer = provideKafkaConsumer(c.Config, kafka.TopicSummaries, c.Config.Kafka.GroupID+"-notifications", c.Log)
		c.Log.Info("✓ Telegram notifier initialized")
	} else {
		c.Log.Info("Telegram notifications disabled (set TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID to enable)")
	}
}

// ========================================
// Phase 5: Domain Services
// ========================================

// MustInitServices initializes domain services
func (c *Container) MustInitServices() {
	c.Services.Scan = scan.NewService(
		c.Adapters.RedditClient,
		c.Adapters.Classifier,
		c.Repos.Archive,
		c.Repos.Summaries,
		c.Repos.Seen,
		c.Adapters.Publisher,
		c.Config.Scanner,
		c.Log,
	)

	c.Services.Index = indexsvc.NewService(
		c.Repos.Summaries,
		c.Repos.Archive,
		c.Repos.Index,
		c.Adapters.Publisher,
		c.Config.Index.Window,
		c.Log,
	)

	c.Log.Info("✓ Services initialized")
}

// ========================================
// Phase 6: Application Layer
// ========================================

// MustInitApplication initializes the HTTP server and stream hub
func (c *Container) MustInitApplication() {
	c.Application.StreamHub = stream.NewHub()

	// Worker health resolves lazily so the handler sees the scheduler
	// created in the background phase
	workerHealth := func() map[string]workers.WorkerHealth {
		if c.Background.WorkerScheduler == nil {
			return nil
		}
		return c.Background.WorkerScheduler.HealthSnapshot()
	}

	c.Application.HealthHandler = health.New(
		c.Log,
		c.PG.DB(),
		c.CH.Conn(),
		c.Redis.Client(),
		workerHealth,
		c.Config.App.Name,
		c.Config.App.Version,
	)

	c.Application.APIHandler = api.NewHandler(
		c.Services.Index,
		c.Repos.Summaries,
		c.Config.Index.Window,
		c.Log,
	)

	c.Application.HTTPServer = api.NewServer(
		api.ServerConfig{
			Port:        c.Config.HTTP.Port,
			ServiceName: c.Config.App.Name,
			Version:     c.Config.App.Version,
		},
		c.Application.HealthHandler,
		c.Application.APIHandler,
		c.Application.StreamHub,
		c.Log,
	)

	c.Log.Info("✓ Application layer initialized")
}

// ========================================
// Phase 7: Background Processing
// ========================================

// MustInitBackground initializes workers and event consumers
func (c *Container) MustInitBackground() {
	c.Background.WorkerScheduler = workers.NewScheduler()

	c.Background.WorkerScheduler.RegisterWorker(workers.NewSubmissionScanner(
		c.Services.Scan,
		c.Services.Index,
		c.Redis,
		c.Config.Scanner.Interval,
		c.Config.Scanner.Enabled,
	))

	// Stream relays: one consumer per pipeline topic, all feeding the hub
	for _, consumer := range []*kafka.Consumer{
		c.Adapters.ClassificationsConsumer,
		c.Adapters.SummariesConsumer,
		c.Adapters.IndexUpdatesConsumer,
	} {
		relay := consumers.NewStreamConsumer(consumer, c.Application.StreamHub, c.Log)
		c.Background.StreamRelays = append(c.Background.StreamRelays, relay)
	}

	if c.Adapters.Notifier != nil {
		c.Background.NotificationSvc = consumers.NewNotificationConsumer(
			c.Adapters.NotificationConsumer,
			c.Adapters.Notifier,
			c.Log,
		)
	}

	c.Log.Info("✓ Background processing initialized")
}

// ========================================
// Providers
// ========================================

func provideErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if !cfg.ErrorTracking.Enabled || cfg.ErrorTracking.SentryDSN == "" {
		log.Info("Error tracking disabled")
		return errnoop.New()
	}

	tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment)
	if err != nil {
		log.Warnf("Failed to initialize Sentry: %v", err)
		return errnoop.New()
	}

	log.Info("✓ Error tracking initialized (Sentry)")
	return tracker
}

func provideKafkaProducer(cfg *config.Config, log *logger.Logger) *kafka.Producer {
	log.Info("Initializing Kafka producer...")
	if len(cfg.Kafka.Brokers) == 0 {
		log.Warn("Kafka brokers not configured, using default localhost:9092")
		cfg.Kafka.Brokers = []string{"localhost:9092"}
	}

	producer := kafka.NewProducer(kafka.ProducerConfig{
		Brokers: cfg.Kafka.Brokers,
	})
	log.Info("✓ Kafka producer initialized")
	return producer
}

func provideKafkaConsumer(cfg *config.Config, topic, groupID string, log *logger.Logger) *kafka.Consumer {
	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = []string{"localhost:9092"}
	}

	consumer := kafka.NewConsumer(kafka.ConsumerConfig{
		Brokers: cfg.Kafka.Brokers,
		GroupID: groupID,
		Topic:   topic,
	})
	log.Infow("✓ Kafka consumer initialized", "topic", topic, "group_id", groupID)
	return consumer
}
