package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/fabdash/access"
	"github.com/dev-mohitbeniwal/fabdash/audit"
	"github.com/dev-mohitbeniwal/fabdash/config"
	"github.com/dev-mohitbeniwal/fabdash/controller"
	"github.com/dev-mohitbeniwal/fabdash/db"
	"github.com/dev-mohitbeniwal/fabdash/directory"
	"github.com/dev-mohitbeniwal/fabdash/guard"
	logger "github.com/dev-mohitbeniwal/fabdash/logging"
	"github.com/dev-mohitbeniwal/fabdash/model"
	"github.com/dev-mohitbeniwal/fabdash/query"
	"github.com/dev-mohitbeniwal/fabdash/router"
	"github.com/dev-mohitbeniwal/fabdash/selection"
	"github.com/dev-mohitbeniwal/fabdash/service"
	"github.com/dev-mohitbeniwal/fabdash/upstream"
	"github.com/dev-mohitbeniwal/fabdash/util"
)

func main() {
	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}
	cfg := config.GetConfig()

	// Initialize logger
	logger.InitLogger(cfg.Log.Dir)
	defer logger.Sync()

	// Initialize Redis
	redisDB, err := db.NewRedis(cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	defer redisDB.Close()

	// Initialize EventBus
	eventBus := util.NewEventBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eventBus.Start(ctx)

	// Query cache shared by the directory loader and every resource service
	cache := query.NewClient(
		query.WithRegisterer(prometheus.DefaultRegisterer),
		query.WithSweepInterval(cfg.Cache.SweepInterval),
	)
	cache.Start(ctx)
	defer cache.Close()

	source, err := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)
	if err != nil {
		logger.Fatal("Invalid upstream configuration", zap.Error(err))
	}

	validationUtil := util.NewValidationUtil()
	fallback := model.Fallback{
		Facilities: cfg.Facilities.Fallback,
		Tools:      cfg.Facilities.DefaultTools,
	}

	loader := directory.NewLoader(cache, source, validationUtil, eventBus)
	loader.Start(ctx)

	sessions, err := selection.NewSessions(cfg.Sessions.Capacity, func(sessionID string) selection.Store {
		return redisDB.SelectionStore(sessionID)
	}, loader, fallback, eventBus)
	if err != nil {
		logger.Fatal("Failed to initialize session registry", zap.Error(err))
	}
	defer sessions.Close()

	checker := access.NewCookiePolicy(
		cfg.Auth.Mode,
		cfg.Auth.RestrictedPrefixes,
		cfg.Auth.ProtectedPaths,
		cfg.Auth.DevHosts,
		cfg.Server.Host,
	)

	guardOpts := []guard.Option{guard.WithRegisterer(prometheus.DefaultRegisterer)}
	var auditService audit.Service
	if cfg.Audit.Enabled {
		auditRepository, err := audit.NewElasticsearchRepository(cfg.Elasticsearch.URL, cfg.Audit.Index)
		if err != nil {
			logger.Error("Navigation audit disabled", zap.Error(err))
		} else {
			auditService = audit.NewService(auditRepository)
			guardOpts = append(guardOpts, guard.WithAudit(auditService))
		}
	}
	routeGuard := guard.New(checker, loader, fallback, cfg.Guard.MaxWait, guardOpts...)
	defer routeGuard.Wait()

	// Initialize services
	services, err := service.InitializeServices(cache, source, eventBus)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Prefetcher.Close()

	// Initialize controllers
	controllers := controller.InitializeControllers(
		services,
		routeGuard,
		sessions,
		loader,
		fallback,
		validationUtil,
		auditService,
	)

	// Set up Gin
	gin.SetMode(cfg.Server.Mode)
	engine := router.SetupRouter(controllers, router.Options{
		Checker:    checker,
		Limiter:    redisDB,
		RateLimit:  cfg.RateLimit,
		CookieName: cfg.Sessions.CookieName,
		Gatherer:   prometheus.DefaultGatherer,
	})

	// Set up the server
	server := &http.Server{
		Addr:    net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler: engine,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
