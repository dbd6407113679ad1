package di

import (
	"context"

	"gorm.io/gorm"

	"taskboard/application/serviceimpl"
	"taskboard/domain/ports"
	"taskboard/domain/repositories"
	"taskboard/domain/services"
	"taskboard/infrastructure/messaging"
	natspkg "taskboard/infrastructure/nats"
	"taskboard/infrastructure/postgres"
	redispkg "taskboard/infrastructure/redis"
	"taskboard/infrastructure/websocket"
	"taskboard/interfaces/api/handlers"
	"taskboard/pkg/config"
	"taskboard/pkg/logger"
	"taskboard/pkg/scheduler"
)

type Container struct {
	// Configuration
	Config *config.Config

	// Infrastructure
	DB             *gorm.DB
	RedisClient    *redispkg.Client // optional, nil disables the summary cache
	NATSClient     *natspkg.Client  // optional, nil falls back to the local bus
	EventScheduler scheduler.EventScheduler

	// Repositories
	Store          repositories.Store
	UserRepository repositories.UserRepository

	// Messaging ports
	EventPublisher  ports.EventPublisherPort
	EventSubscriber ports.EventSubscriberPort
	SummaryCache    ports.ProjectSummaryCachePort

	// Services
	PermissionService services.PermissionService
	UserService       services.UserService
	TaskService       services.TaskService
	ProjectService    services.ProjectService
	ReconcilerService services.ReconcilerService

	// WebSocket & Broadcasting
	WSManager        *websocket.Manager
	EventBroadcaster *websocket.EventBroadcaster
	stopWS           context.CancelFunc
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initLogger(); err != nil {
		return err
	}

	if err := c.initInfrastructure(); err != nil {
		return err
	}

	c.initMessaging()
	c.initRepositories()
	c.initServices()

	if err := c.initScheduler(); err != nil {
		return err
	}

	return c.initRealtime()
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg
	logger.Info("Configuration loaded")
	return nil
}

func (c *Container) initLogger() error {
	logConfig := logger.Config{
		Level:      c.Config.Log.Level,
		Format:     c.Config.Log.Format,
		Output:     c.Config.Log.Output,
		FilePath:   c.Config.Log.FilePath,
		MaxSize:    c.Config.Log.MaxSize,
		MaxBackups: c.Config.Log.MaxBackups,
		MaxAge:     c.Config.Log.MaxAge,
		Compress:   c.Config.Log.Compress,
	}

	if err := logger.Init(logConfig); err != nil {
		return err
	}

	logger.Info("Logger initialized",
		"level", c.Config.Log.Level,
		"format", c.Config.Log.Format,
		"output", c.Config.Log.Output,
	)
	return nil
}

func (c *Container) initInfrastructure() error {
	dbConfig := postgres.DatabaseConfig{
		Host:     c.Config.Database.Host,
		Port:     c.Config.Database.Port,
		User:     c.Config.Database.User,
		Password: c.Config.Database.Password,
		DBName:   c.Config.Database.DBName,
		SSLMode:  c.Config.Database.SSLMode,
		Debug:    c.Config.IsDevelopment(),
	}

	db, err := postgres.NewDatabase(dbConfig)
	if err != nil {
		return err
	}
	c.DB = db
	logger.Info("Database connected", "host", c.Config.Database.Host, "db", c.Config.Database.DBName)

	if err := postgres.Migrate(db); err != nil {
		return err
	}
	logger.Info("Database migrated")

	// Redis is optional: without it project summaries are computed on every list.
	if c.Config.Redis.URL != "" {
		redisClient, err := redispkg.NewClient(&c.Config.Redis)
		if err != nil {
			logger.Warn("Redis client initialization failed (cache disabled)", "error", err)
		} else {
			c.RedisClient = redisClient
		}
	}

	// NATS is optional: without it events stay inside this process.
	if c.Config.NATS.URL != "" {
		natsClient, err := natspkg.NewClient(natspkg.ClientConfig{URL: c.Config.NATS.URL})
		if err != nil {
			logger.Warn("NATS client initialization failed (local event bus)", "error", err)
		} else {
			c.NATSClient = natsClient
		}
	}

	return nil
}

func (c *Container) initMessaging() {
	if c.NATSClient != nil {
		c.EventPublisher = natspkg.NewEventPublisher(c.NATSClient)
		c.EventSubscriber = natspkg.NewSubscriber(c.NATSClient.Conn())
		logger.Info("Domain events routed through NATS", "stream", natspkg.StreamName)
	} else {
		bus := messaging.NewLocalBus()
		c.EventPublisher = bus
		c.EventSubscriber = bus
		logger.Info("Domain events routed through local bus")
	}

	if c.RedisClient != nil {
		c.SummaryCache = redispkg.NewProjectSummaryCache(c.RedisClient, c.Config.Redis.CacheTTL)
		logger.Info("Project summary cache enabled", "ttl", c.Config.Redis.CacheTTL)
	}
}

func (c *Container) initRepositories() {
	c.Store = postgres.NewStore(c.DB)
	c.UserRepository = postgres.NewUserRepository(c.DB)
	logger.Info("Repositories initialized")
}

func (c *Container) initServices() {
	c.PermissionService = serviceimpl.NewPermissionService()
	c.UserService = serviceimpl.NewUserService(c.UserRepository, c.Config.JWT.Secret, c.Config.JWT.TTL)
	c.TaskService = serviceimpl.NewTaskService(c.Store, c.PermissionService, c.EventPublisher, c.SummaryCache)
	c.ProjectService = serviceimpl.NewProjectService(c.Store, c.PermissionService, c.EventPublisher, c.SummaryCache)
	logger.Info("Services initialized")
}

func (c *Container) initScheduler() error {
	c.EventScheduler = scheduler.NewEventScheduler()

	reconciler := serviceimpl.NewReconcilerService(
		serviceimpl.ReconcilerConfig{
			Enabled: c.Config.Reconcile.Enabled,
			Cron:    c.Config.Reconcile.Cron,
		},
		c.Store,
		c.EventScheduler,
		c.EventPublisher,
		c.SummaryCache,
	)
	if impl, ok := reconciler.(*serviceimpl.ReconcilerService); ok && c.RedisClient != nil {
		impl.SetLock(c.RedisClient)
	}
	c.ReconcilerService = reconciler

	if err := reconciler.Start(); err != nil {
		return err
	}

	c.EventScheduler.Start()
	logger.Info("Event scheduler started", "jobs", len(c.EventScheduler.ListJobs()))
	return nil
}

func (c *Container) initRealtime() error {
	c.WSManager = websocket.NewManager()
	ctx, cancel := context.WithCancel(context.Background())
	c.stopWS = cancel
	go c.WSManager.Run(ctx)

	c.EventBroadcaster = websocket.NewEventBroadcaster(c.EventSubscriber, c.WSManager)
	if err := c.EventBroadcaster.Start(); err != nil {
		logger.Warn("Event broadcaster failed to start (realtime disabled)", "error", err)
	}
	return nil
}

// HealthCheck pings every configured backing service.
func (c *Container) HealthCheck(ctx context.Context) map[string]error {
	result := map[string]error{}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		result["database"] = err
	}
	if c.RedisClient != nil {
		result["redis"] = c.RedisClient.Ping(ctx)
	}
	if c.NATSClient != nil {
		result["nats"] = c.NATSClient.Ping()
	}
	return result
}

func (c *Container) Cleanup() error {
	logger.Info("Starting cleanup...")

	if c.EventBroadcaster != nil {
		c.EventBroadcaster.Stop()
	}

	if c.stopWS != nil {
		c.stopWS()
		logger.Info("Websocket manager stopped")
	}

	if c.EventScheduler != nil && c.EventScheduler.IsRunning() {
		c.EventScheduler.Stop()
		logger.Info("Event scheduler stopped")
	}

	if c.NATSClient != nil {
		if err := c.NATSClient.Close(); err != nil {
			logger.Warn("Failed to close NATS connection", "error", err)
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.Warn("Failed to close Redis connection", "error", err)
		} else {
			logger.Info("Redis connection closed")
		}
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Warn("Failed to close database connection", "error", err)
			} else {
				logger.Info("Database connection closed")
			}
		}
	}

	logger.Info("Cleanup completed")
	return nil
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		UserService:    c.UserService,
		TaskService:    c.TaskService,
		ProjectService: c.ProjectService,
	}
}
