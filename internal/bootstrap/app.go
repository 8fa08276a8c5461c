package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	httpHandler "github.com/ItsBakerX/trinkprotokolle-backend/internal/handler/http"
	gormpersistence "github.com/ItsBakerX/trinkprotokolle-backend/internal/infra/persistence/gorm"
	"github.com/ItsBakerX/trinkprotokolle-backend/internal/infra/setup"
	"github.com/ItsBakerX/trinkprotokolle-backend/internal/middleware"
	"github.com/ItsBakerX/trinkprotokolle-backend/internal/service"
	"github.com/ItsBakerX/trinkprotokolle-backend/internal/tasks"
	"github.com/ItsBakerX/trinkprotokolle-backend/internal/worker"
)

// Config holds everything the application reads from the environment.
type Config struct {
	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	JWTSecret         string
	JWTTTL            time.Duration
	ServerPort        string
	LogLevel          string
	RateLimitMax      int
	RateLimitWindow   time.Duration
	AppEnv            string
	CORSAllowedOrigin string
	AdminName         string
	AdminPassword     string
	AutoCloseDays     int
	AutoCloseSchedule string
}

// LoadConfig reads the configuration from the environment, preferring an
// .env file when one is present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBHost:            os.Getenv("DB_HOST"),
		DBPort:            os.Getenv("DB_PORT"),
		DBName:            os.Getenv("DB_NAME"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		ServerPort:        os.Getenv("SERVER_PORT"),
		LogLevel:          os.Getenv("LOG_LEVEL"),
		AppEnv:            os.Getenv("APP_ENV"),
		CORSAllowedOrigin: os.Getenv("CORS_ALLOWED_ORIGIN"),
		AdminName:         os.Getenv("SEED_ADMIN_NAME"),
		AdminPassword:     os.Getenv("SEED_ADMIN_PASSWORD"),
		AutoCloseSchedule: os.Getenv("AUTOCLOSE_SCHEDULE"),
		RateLimitMax:      100,
		RateLimitWindow:   1 * time.Second,
		JWTTTL:            24 * time.Hour,
		AutoCloseDays:     0,
	}

	redisDBStr := os.Getenv("REDIS_DB")
	cfg.RedisDB, _ = strconv.Atoi(redisDBStr)

	if hoursStr := os.Getenv("JWT_TTL_HOURS"); hoursStr != "" {
		hours, err := strconv.Atoi(hoursStr)
		if err != nil || hours <= 0 {
			return nil, fmt.Errorf("invalid JWT_TTL_HOURS %q", hoursStr)
		}
		cfg.JWTTTL = time.Duration(hours) * time.Hour
	}
	if daysStr := os.Getenv("AUTOCLOSE_MAX_AGE_DAYS"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil || days < 0 {
			return nil, fmt.Errorf("invalid AUTOCLOSE_MAX_AGE_DAYS %q", daysStr)
		}
		cfg.AutoCloseDays = days
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.AppEnv == "" {
		cfg.AppEnv = "development"
	}
	if cfg.AutoCloseSchedule == "" {
		cfg.AutoCloseSchedule = "@every 1h"
	}
	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("environment variable REDIS_ADDR must be set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("environment variable JWT_SECRET must be set")
	}

	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		logrus.Warnf("Invalid LOG_LEVEL '%s', using default 'info'", cfg.LogLevel)
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// App owns every component of the running application.
type App struct {
	Config         *Config
	Log            *logrus.Logger
	DB             *gorm.DB
	RedisClient    *redis.Client
	AsynqClient    *asynq.Client
	AsynqServer    *worker.WorkerServer
	HttpServer     *http.Server
	redisClientOpt asynq.RedisClientOpt
	scheduler      *asynq.Scheduler
}

// NewApp loads the configuration and assembles all components.
func NewApp() (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return nil, err
	}

	log := logrus.New()
	if cfg.AppEnv == "production" {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, ForceColors: true})
	}
	logLevel, _ := logrus.ParseLevel(cfg.LogLevel)
	log.SetLevel(logLevel)
	log.SetOutput(os.Stdout)
	log.Info("Configuration loaded successfully")

	log.Info("Initializing infrastructure...")
	db, err := setup.InitDB(cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return nil, fmt.Errorf("failed to init DB: %w", err)
	}
	log.Info("Database initialized")

	if err := setup.MigrateDB(db); err != nil {
		return nil, fmt.Errorf("failed to migrate DB: %w", err)
	}
	log.Info("Database migrated")

	redisClient, err := setup.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, fmt.Errorf("failed to init Redis: %w", err)
	}
	log.Info("Redis client initialized")

	redisClientOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
	asynqClient := asynq.NewClient(redisClientOpt)
	log.Info("Asynq client initialized")

	log.Info("Initializing repositories...")
	pflegerRepo := gormpersistence.NewGormPflegerRepository(db)
	protokollRepo := gormpersistence.NewGormProtokollRepository(db)
	eintragRepo := gormpersistence.NewGormEintragRepository(db)
	log.Info("Repositories initialized")

	log.Info("Initializing services...")
	authService, err := service.NewAuthService(pflegerRepo, cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create AuthService: %w", err)
	}
	protokollService := service.NewProtokollService(protokollRepo, eintragRepo, pflegerRepo)
	eintragService := service.NewEintragService(eintragRepo, protokollRepo, pflegerRepo)
	pflegerService := service.NewPflegerService(pflegerRepo, protokollService)
	log.Info("Services initialized")

	if cfg.AdminName != "" && cfg.AdminPassword != "" {
		if err := pflegerService.EnsureSeedAdmin(context.Background(), cfg.AdminName, cfg.AdminPassword); err != nil {
			return nil, fmt.Errorf("failed to seed admin account: %w", err)
		}
		log.Info("Seed admin account ensured")
	}

	log.Info("Initializing handlers...")
	loginHandler := httpHandler.NewLoginHandler(authService)
	pflegerHandler := httpHandler.NewPflegerHandler(pflegerService)
	protokollHandler := httpHandler.NewProtokollHandler(protokollService, eintragService)
	eintragHandler := httpHandler.NewEintragHandler(eintragService, protokollService)
	log.Info("Handlers initialized")

	log.Info("Initializing worker server...")
	workerServer := worker.NewWorkerServer(redisClientOpt, protokollService, log)
	log.Info("Worker server initialized")

	log.Info("Setting up Gin router...")
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(log))
	router.Use(corsMiddleware(cfg.CORSAllowedOrigin))
	router.Use(middleware.RateLimit(redisClient, cfg.RateLimitMax, cfg.RateLimitWindow))

	requireAuth := middleware.RequireAuth(authService)
	optionalAuth := middleware.OptionalAuth(authService)

	api := router.Group("/api")
	loginRoutes := api.Group("/login")
	{
		loginRoutes.POST("", loginHandler.Login)
		loginRoutes.GET("", loginHandler.Current)
		loginRoutes.DELETE("", loginHandler.Logout)
	}
	pflegerRoutes := api.Group("/pfleger")
	{
		pflegerRoutes.GET("/alle", optionalAuth, pflegerHandler.GetAlle)
		pflegerRoutes.POST("", requireAuth, pflegerHandler.Create)
		pflegerRoutes.PUT("/:id", requireAuth, pflegerHandler.Update)
		pflegerRoutes.DELETE("/:id", requireAuth, pflegerHandler.Delete)
	}
	protokollRoutes := api.Group("/protokoll")
	{
		protokollRoutes.GET("/alle", optionalAuth, protokollHandler.GetAlle)
		protokollRoutes.GET("/:id", optionalAuth, protokollHandler.Get)
		protokollRoutes.GET("/:id/eintraege", optionalAuth, protokollHandler.GetEintraege)
		protokollRoutes.POST("", requireAuth, protokollHandler.Create)
		protokollRoutes.PUT("/:id", requireAuth, protokollHandler.Update)
		protokollRoutes.DELETE("/:id", requireAuth, protokollHandler.Delete)
	}
	eintragRoutes := api.Group("/eintrag")
	{
		eintragRoutes.GET("/:id", optionalAuth, eintragHandler.Get)
		eintragRoutes.POST("", requireAuth, eintragHandler.Create)
		eintragRoutes.PUT("/:id", requireAuth, eintragHandler.Update)
		eintragRoutes.DELETE("/:id", requireAuth, eintragHandler.Delete)
	}
	router.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"message": "pong"}) })
	log.Info("Router setup complete")

	httpServer := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	app := &App{
		Config:         cfg,
		Log:            log,
		DB:             db,
		RedisClient:    redisClient,
		AsynqClient:    asynqClient,
		AsynqServer:    workerServer,
		HttpServer:     httpServer,
		redisClientOpt: redisClientOpt,
	}
	log.Info("Application assembled successfully")

	return app, nil
}

// Start launches the worker, the periodic scheduler and the HTTP server.
func (a *App) Start() {
	go a.AsynqServer.Start()
	a.Log.Info("Asynq worker server routine started")

	a.registerPeriodicTasks()

	go func() {
		a.Log.Infof("HTTP server starting to listen on %s", a.HttpServer.Addr)
		if err := a.HttpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Log.Fatalf("Failed to start HTTP server: %v", err)
		}
		a.Log.Info("HTTP server stopped listening.")
	}()
}

func (a *App) registerPeriodicTasks() {
	if a.Config.AutoCloseDays <= 0 {
		a.Log.Info("Protokoll auto-close disabled (AUTOCLOSE_MAX_AGE_DAYS not set)")
		return
	}

	scheduler := asynq.NewScheduler(a.redisClientOpt, &asynq.SchedulerOpts{
		Location: time.UTC,
	})

	taskPayload, err := tasks.NewProtokollAutoCloseTask(a.Config.AutoCloseDays)
	if err != nil {
		a.Log.Errorf("Failed to create auto-close task payload: %v", err)
		return
	}
	task := asynq.NewTask(tasks.TypeProtokollAutoClose, taskPayload)

	entryID, err := scheduler.Register(a.Config.AutoCloseSchedule, task, asynq.Queue("low"))
	if err != nil {
		a.Log.Errorf("Could not register periodic auto-close task: %v", err)
		return
	}
	a.Log.Infof("Periodic auto-close task registered with schedule '%s' (EntryID: %s)", a.Config.AutoCloseSchedule, entryID)

	a.scheduler = scheduler
	go func() {
		a.Log.Info("Asynq scheduler starting...")
		if err := scheduler.Run(); err != nil {
			if !errors.Is(err, asynq.ErrServerClosed) {
				a.Log.Errorf("Asynq scheduler Run() failed: %v", err)
			} else {
				a.Log.Info("Asynq scheduler stopped.")
			}
		}
	}()
}

// Shutdown stops all components gracefully.
func (a *App) Shutdown() {
	a.Log.Info("Shutting down application...")

	if a.scheduler != nil {
		a.scheduler.Shutdown()
	}

	if a.AsynqServer != nil {
		a.AsynqServer.Shutdown()
	}

	a.Log.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.HttpServer.Shutdown(ctx); err != nil {
		a.Log.Errorf("Error shutting down HTTP server: %v", err)
	} else {
		a.Log.Info("HTTP server shut down gracefully.")
	}

	if a.AsynqClient != nil {
		if err := a.AsynqClient.Close(); err != nil {
			a.Log.Errorf("Error closing Asynq client: %v", err)
		}
	}

	if a.RedisClient != nil {
		if err := a.RedisClient.Close(); err != nil {
			a.Log.Errorf("Error closing Redis connection: %v", err)
		}
	}

	a.Log.Info("Application shutdown complete.")
}

// LoggerMiddleware logs every request with latency and status fields.
func LoggerMiddleware(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()
		latency := time.Since(startTime)
		statusCode := c.Writer.Status()
		path := c.Request.URL.Path
		if c.Request.URL.RawQuery != "" {
			path = path + "?" + c.Request.URL.RawQuery
		}
		errorMessage := c.Errors.ByType(gin.ErrorTypePrivate).String()

		entry := log.WithFields(logrus.Fields{
			"status_code": statusCode,
			"latency_ms":  latency.Milliseconds(),
			"client_ip":   c.ClientIP(),
			"method":      c.Request.Method,
			"path":        path,
		})

		if errorMessage != "" {
			entry.Error(errorMessage)
		} else if statusCode >= 500 {
			entry.Error("Server error")
		} else if statusCode >= 400 {
			entry.Warn("Client error")
		} else {
			entry.Info("Request handled")
		}
	}
}

// corsMiddleware allows the configured frontend origin to use the
// cookie-based session cross-site.
func corsMiddleware(allowedOrigin string) gin.HandlerFunc {
	if allowedOrigin == "" {
		allowedOrigin = "http://localhost:3000"
	}
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
