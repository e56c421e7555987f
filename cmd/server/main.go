package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/dentalcalc/backend/internal/application/catalog"
	clinicapp "github.com/dentalcalc/backend/internal/application/clinic"
	costingapp "github.com/dentalcalc/backend/internal/application/costing"
	identityapp "github.com/dentalcalc/backend/internal/application/identity"
	pricingapp "github.com/dentalcalc/backend/internal/application/pricing"
	"github.com/dentalcalc/backend/internal/infrastructure/auth"
	"github.com/dentalcalc/backend/internal/infrastructure/cache"
	"github.com/dentalcalc/backend/internal/infrastructure/config"
	"github.com/dentalcalc/backend/internal/infrastructure/logger"
	"github.com/dentalcalc/backend/internal/infrastructure/persistence"
	"github.com/dentalcalc/backend/internal/infrastructure/storage"
	"github.com/dentalcalc/backend/internal/infrastructure/telemetry"
	"github.com/dentalcalc/backend/internal/interfaces/http/handler"
	"github.com/dentalcalc/backend/internal/interfaces/http/middleware"
	"github.com/dentalcalc/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "github.com/dentalcalc/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			DentalCalc Backend API
//	@version		1.0
//	@description	Cost-plus pricing engine for dental clinics: capacity, cost pools, service catalogs and suggested prices.

//	@contact.name	API Support
//	@contact.email	support@dentalcalc.example.com

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting DentalCalc Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize OpenTelemetry tracing (no-op when disabled)
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(context.Background(), telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		if err := meterProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	loggerProvider, err := telemetry.NewLoggerProvider(context.Background(), telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	defer func() {
		if err := loggerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down logger provider", zap.Error(err))
		}
	}()

	// Bridge application logs to the OTEL Collector alongside stdout output
	if loggerProvider.IsEnabled() {
		bridgeLevel, perr := zapcore.ParseLevel(cfg.Log.Level)
		if perr != nil {
			bridgeLevel = zapcore.InfoLevel
		}
		otelCore := telemetry.NewZapOTELCore(telemetry.ZapBridgeConfig{
			ServiceName:    cfg.Telemetry.ServiceName,
			LoggerProvider: loggerProvider,
			Level:          bridgeLevel,
		})
		log = telemetry.NewBridgedLogger(log.Core(), otelCore,
			zap.AddCaller(),
			zap.AddStacktrace(zapcore.ErrorLevel),
		)
	}

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Register database query tracing (otelgorm) when enabled
	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
	}, log)
	if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
		log.Warn("Failed to register database tracing", zap.Error(err))
	}

	// Database query and pool metrics (no-op when metrics are disabled)
	dbMetricsCfg := telemetry.DefaultDBMetricsConfig()
	dbMetricsCfg.Enabled = cfg.Telemetry.Enabled
	if cfg.Telemetry.DBSlowQueryThresh > 0 {
		dbMetricsCfg.SlowQueryThreshold = cfg.Telemetry.DBSlowQueryThresh
	}
	dbMetrics, err := telemetry.RegisterDBMetrics(db.DB, meterProvider, dbMetricsCfg, log)
	if err != nil {
		log.Warn("Failed to register database metrics", zap.Error(err))
	} else if dbMetrics != nil {
		dbMetrics.StartPoolStatsCollection(context.Background())
		defer dbMetrics.Stop()
	}

	// Redis backs the overhead-rate cache and the token blacklist. When it
	// is unreachable the server still works: rates are recomputed per
	// request and revoked tokens survive only in process memory.
	var (
		rateCache      pricingapp.RateCache
		tokenBlacklist auth.TokenBlacklist
	)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis unreachable, falling back to in-memory cache and blacklist", zap.Error(err))
		rateCache = cache.NewInMemoryRateCache(cfg.Cache.RateTTL)
		tokenBlacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		rateCache = cache.NewRedisRateCache(redisClient, cfg.Cache.RateTTL)
		tokenBlacklist = auth.NewRedisTokenBlacklist(redisClient)
		log.Info("Redis connected successfully", zap.String("addr", cfg.Redis.Addr()))
	}
	pingCancel()
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing redis client", zap.Error(err))
		}
	}()

	// Logo storage: S3-compatible bucket, or a local stub when no bucket
	// is configured (development).
	var logoStorage identityapp.LogoStorage
	if cfg.Storage.Bucket != "" {
		s3Storage, err := storage.NewS3LogoStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize S3 logo storage", zap.Error(err))
		}
		logoStorage = s3Storage
		log.Info("S3 logo storage initialized", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		logoStorage = storage.NewStubLogoStorage()
		log.Warn("No storage bucket configured, logo uploads use the local stub")
	}

	// Initialize repositories
	clinicRepo := persistence.NewGormClinicRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	settingsRepo := persistence.NewGormSettingsRepository(db.DB)
	capacityRepo := persistence.NewGormCapacityRepository(db.DB)
	fixedCostRepo := persistence.NewGormFixedCostRepository(db.DB)
	salaryRepo := persistence.NewGormSalaryRepository(db.DB)
	equipmentRepo := persistence.NewGormEquipmentRepository(db.DB)
	consumableRepo := persistence.NewGormConsumableRepository(db.DB)
	labMaterialRepo := persistence.NewGormLabMaterialRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	serviceRepo := persistence.NewGormServiceRepository(db.DB)

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	categoryService := catalogapp.NewCategoryService(categoryRepo, log)
	authService := identityapp.NewAuthService(clinicRepo, userRepo, categoryService, jwtService, tokenBlacklist, log)
	clinicService := identityapp.NewClinicService(clinicRepo, logoStorage, log)
	settingsService := clinicapp.NewSettingsService(settingsRepo, capacityRepo, rateCache, log)
	fixedCostService := costingapp.NewFixedCostService(fixedCostRepo, rateCache, log)
	salaryService := costingapp.NewSalaryService(salaryRepo, rateCache, log)
	equipmentService := costingapp.NewEquipmentService(equipmentRepo, rateCache, log)
	consumableService := catalogapp.NewConsumableService(consumableRepo, log)
	materialService := catalogapp.NewMaterialService(labMaterialRepo, log)
	serviceService := catalogapp.NewServiceService(serviceRepo, categoryRepo, consumableRepo, labMaterialRepo, equipmentRepo, log)
	pricingService := pricingapp.NewPricingService(
		settingsRepo,
		capacityRepo,
		fixedCostRepo,
		salaryRepo,
		equipmentRepo,
		serviceRepo,
		consumableRepo,
		labMaterialRepo,
		rateCache,
		log,
	)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	clinicHandler := handler.NewClinicHandler(clinicService, settingsService)
	fixedCostHandler := handler.NewFixedCostHandler(fixedCostService)
	salaryHandler := handler.NewSalaryHandler(salaryService)
	equipmentHandler := handler.NewEquipmentHandler(equipmentService)
	consumableHandler := handler.NewConsumableHandler(consumableService)
	materialHandler := handler.NewMaterialHandler(materialService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	serviceHandler := handler.NewServiceHandler(serviceService)
	pricingHandler := handler.NewPricingHandler(pricingService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Tracing/Metrics - OpenTelemetry instrumentation
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	// 8. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.SpanErrorMarker())
		engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
			MeterProvider: meterProvider,
			ServiceName:   cfg.Telemetry.ServiceName,
			Enabled:       true,
		}))
	}
	engine.Use(middleware.Secure())
	engine.Use(middleware.Timeout(cfg.HTTP.WriteTimeout))

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Swagger documentation endpoint with optional IP/JWT protection
	if cfg.Swagger.Enabled {
		swaggerGroup := engine.Group("/swagger")
		swaggerGroup.Use(middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:     cfg.Swagger.Enabled,
			RequireAuth: cfg.Swagger.RequireAuth,
			AllowedIPs:  cfg.Swagger.AllowedIPs,
		}, middleware.JWTAuthMiddlewareWithConfig(middleware.DefaultJWTConfig(jwtService))))
		swaggerGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes
	// Configure skip paths for public endpoints
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: tokenBlacklist,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/register",
			"/api/v1/ping",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))
	if cfg.Telemetry.Enabled {
		r.Use(middleware.TracingAttributeInjector())
	}

	// Auth domain (register, login, session)
	authRoutes := router.NewDomainGroup("auth", "/auth")
	if cfg.HTTP.RateLimitEnabled {
		// login/register get a much tighter budget than the global limiter
		authRoutes.Use(middleware.AuthRateLimit(middleware.NewRateLimiter(10, time.Minute)))
	}
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/me", authHandler.Me)
	authRoutes.PUT("/password", authHandler.ChangePassword)

	// Clinic domain (profile, logo, pricing settings, capacity)
	clinicRoutes := router.NewDomainGroup("clinic", "/clinic")
	clinicRoutes.GET("/profile", clinicHandler.GetProfile)
	clinicRoutes.PUT("/profile", clinicHandler.UpdateProfile)
	clinicRoutes.PUT("/logo", clinicHandler.UploadLogo)
	clinicRoutes.GET("/settings", clinicHandler.GetSettings)
	clinicRoutes.PUT("/settings", clinicHandler.UpdateSettings)
	clinicRoutes.GET("/capacity", clinicHandler.GetCapacity)
	clinicRoutes.PUT("/capacity", clinicHandler.UpdateCapacity)

	// Costing domain (fixed costs, salaries, equipment)
	costingRoutes := router.NewDomainGroup("costing", "/costing")
	costingRoutes.POST("/fixed-costs", fixedCostHandler.Create)
	costingRoutes.GET("/fixed-costs", fixedCostHandler.List)
	costingRoutes.GET("/fixed-costs/:id", fixedCostHandler.Get)
	costingRoutes.PUT("/fixed-costs/:id", fixedCostHandler.Update)
	costingRoutes.PUT("/fixed-costs/:id/included", fixedCostHandler.SetIncluded)
	costingRoutes.DELETE("/fixed-costs/:id", fixedCostHandler.Delete)
	costingRoutes.POST("/salaries", salaryHandler.Create)
	costingRoutes.GET("/salaries", salaryHandler.List)
	costingRoutes.GET("/salaries/:id", salaryHandler.Get)
	costingRoutes.PUT("/salaries/:id", salaryHandler.Update)
	costingRoutes.DELETE("/salaries/:id", salaryHandler.Delete)
	costingRoutes.POST("/equipment", equipmentHandler.Create)
	costingRoutes.GET("/equipment", equipmentHandler.List)
	costingRoutes.GET("/equipment/:id", equipmentHandler.Get)
	costingRoutes.PUT("/equipment/:id", equipmentHandler.Update)
	costingRoutes.DELETE("/equipment/:id", equipmentHandler.Delete)

	// Catalog domain (consumables, lab materials, categories, services)
	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.POST("/consumables", consumableHandler.Create)
	catalogRoutes.GET("/consumables", consumableHandler.List)
	catalogRoutes.GET("/consumables/:id", consumableHandler.Get)
	catalogRoutes.PUT("/consumables/:id", consumableHandler.Update)
	catalogRoutes.DELETE("/consumables/:id", consumableHandler.Delete)
	catalogRoutes.POST("/materials", materialHandler.Create)
	catalogRoutes.GET("/materials", materialHandler.List)
	catalogRoutes.GET("/materials/:id", materialHandler.Get)
	catalogRoutes.PUT("/materials/:id", materialHandler.Update)
	catalogRoutes.DELETE("/materials/:id", materialHandler.Delete)
	catalogRoutes.POST("/categories", categoryHandler.Create)
	catalogRoutes.GET("/categories", categoryHandler.List)
	catalogRoutes.PUT("/categories/:id", categoryHandler.Rename)
	catalogRoutes.DELETE("/categories/:id", categoryHandler.Delete)
	catalogRoutes.POST("/services", serviceHandler.Create)
	catalogRoutes.GET("/services", serviceHandler.List)
	catalogRoutes.GET("/services/:id", serviceHandler.Get)
	catalogRoutes.PUT("/services/:id", serviceHandler.Update)
	catalogRoutes.PUT("/services/:id/doctor-fee", serviceHandler.SetDoctorFee)
	catalogRoutes.PUT("/services/:id/profit", serviceHandler.SetProfitOverride)
	catalogRoutes.PUT("/services/:id/current-price", serviceHandler.SetCurrentPrice)
	catalogRoutes.PUT("/services/:id/lines", serviceHandler.ReplaceLines)
	catalogRoutes.DELETE("/services/:id", serviceHandler.Delete)

	// Pricing domain (breakdowns and price list)
	pricingRoutes := router.NewDomainGroup("pricing", "/pricing")
	pricingRoutes.GET("/services/:id/price", pricingHandler.PriceService)
	pricingRoutes.GET("/price-list", pricingHandler.PriceList)

	// Dashboard domain (headline stats)
	dashboardRoutes := router.NewDomainGroup("dashboard", "/dashboard")
	dashboardRoutes.GET("/stats", pricingHandler.DashboardStats)

	// Register all domain groups
	r.Register(authRoutes).
		Register(clinicRoutes).
		Register(costingRoutes).
		Register(catalogRoutes).
		Register(pricingRoutes).
		Register(dashboardRoutes)

	// Register system routes with swagger-documented handlers
	systemHandler := handler.NewSystemHandler()
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	r.Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
