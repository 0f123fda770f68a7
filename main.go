package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"task-board/backend/internal/cache"
	"task-board/backend/internal/config"
	"task-board/backend/internal/handlers"
	"task-board/backend/internal/middleware"
	"task-board/backend/internal/monitoring"
	"task-board/backend/internal/notify"
	"task-board/backend/internal/repositories"
	"task-board/backend/internal/services"
	"task-board/backend/internal/worker"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := connectDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		MaxRetries:   cfg.Redis.MaxRetries,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	defer redisClient.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Change notifications: local fan-out plus a Redis pub/sub bridge so
	// observers on any instance hear about mutations on every instance.
	broker := notify.NewBroker()
	bus := notify.NewRedisBus(redisClient, cfg.Notify.Channel, broker)
	go bus.Run(ctx)
	monitoring.ObserverCountFunc = broker.SubscriberCount

	redisCache := cache.NewRedisCache(redisClient)

	taskRepo := repositories.NewTaskRepository()
	taskService := services.NewCachedTaskService(
		services.NewTaskService(taskRepo, bus),
		redisCache,
	)
	authService := services.NewAuthService(cfg.Auth.AccessTokenTTL)
	registerService := services.NewRegisterService()

	registerHealthChecks(db, redisClient)

	jobWorker, jobQueue := startWorker(ctx, cfg, redisClient, db)
	defer jobWorker.Stop()
	go scheduleTokenCleanup(ctx, jobQueue, cfg.Worker.CleanupInterval)

	router := buildRouter(cfg, db, broker, taskService, authService, registerService)

	srv := &http.Server{
		Addr:         cfg.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}

func connectDatabase(cfg *config.Config) (*gorm.DB, error) {
	dbConfig := &repositories.DatabaseConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Name:            cfg.Database.Name,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
	}

	db, err := repositories.Connect(dbConfig)
	if err != nil {
		return nil, err
	}
	if err := repositories.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func registerHealthChecks(db *gorm.DB, redisClient *redis.Client) {
	monitoring.RegisterHealthCheck("database", func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})
	monitoring.RegisterHealthCheck("redis", func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	})
}

func startWorker(ctx context.Context, cfg *config.Config, redisClient *redis.Client, db *gorm.DB) (*worker.Worker, *worker.JobQueue) {
	w := worker.NewWorker(worker.WorkerConfig{
		RedisClient: redisClient,
		Queues:      cfg.Worker.Queues,
	})
	w.RegisterHandler(worker.JobTypeTokenCleanup, func(ctx context.Context, job *worker.Job) error {
		removed, err := services.CleanupExpiredTokens(db.WithContext(ctx))
		if err != nil {
			return err
		}
		if removed > 0 {
			log.Printf("worker: cleaned up %d expired refresh tokens", removed)
		}
		return nil
	})
	w.Start(cfg.Worker.Concurrency)

	return w, worker.NewJobQueue(redisClient)
}

func scheduleTokenCleanup(ctx context.Context, queue *worker.JobQueue, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := queue.Enqueue("default", worker.JobTypeTokenCleanup, nil); err != nil {
				log.Printf("Failed to enqueue token cleanup: %v", err)
			}
		}
	}
}

func buildRouter(
	cfg *config.Config,
	db *gorm.DB,
	broker *notify.Broker,
	taskService services.TaskService,
	authService services.AuthService,
	registerService services.RegisterService,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(monitoring.MetricsMiddleware())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
			RequestsPerMin:  cfg.RateLimit.RequestsPerMin,
			BurstSize:       cfg.RateLimit.BurstSize,
			CleanupInterval: cfg.RateLimit.CleanupInterval,
		})
		router.Use(limiter.Middleware())
	}

	taskHandler := handlers.NewTaskHandler(db, taskService)
	eventsHandler := handlers.NewEventsHandler(broker)
	authHandler := handlers.NewAuthHandler(db, authService, cfg.IsProduction())
	registerHandler := handlers.NewRegisterHandler(db, registerService)
	refreshHandler := handlers.NewRefreshHandler(db, authService)
	logoutHandler := handlers.NewLogoutHandler(db, authService)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Task board API"})
	})
	router.GET("/metrics", monitoring.MetricsHandler())
	router.GET("/health", monitoring.HealthHandler())

	router.POST("/api/register", registerHandler.Register)
	router.POST("/api/jwt", authHandler.Token)
	router.POST("/api/refresh", refreshHandler.Refresh)
	router.POST("/api/logout", logoutHandler.Logout)

	router.GET("/events", eventsHandler.Stream)

	protected := router.Group("/")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/addtasks", taskHandler.AddTask)
		protected.GET("/tasksget", taskHandler.GetTasks)
		protected.PUT("/tasks/:id", taskHandler.UpdateTask)
		protected.DELETE("/tasks/:id", taskHandler.DeleteTask)
	}

	return router
}
