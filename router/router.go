// router/router.go

package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dev-mohitbeniwal/fabdash/access"
	"github.com/dev-mohitbeniwal/fabdash/config"
	"github.com/dev-mohitbeniwal/fabdash/controller"
	"github.com/dev-mohitbeniwal/fabdash/middleware"
)

// Options carries what the router needs besides the controllers. Limiter and
// Gatherer are optional.
type Options struct {
	Checker    access.Checker
	Limiter    middleware.Limiter
	RateLimit  config.RateLimitConfiguration
	CookieName string
	Gatherer   prometheus.Gatherer
}

func SetupRouter(controllers *controller.Controllers, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Session(opts.CookieName))
	router.Use(middleware.Logger())
	if opts.Limiter != nil && opts.RateLimit.Enabled {
		router.Use(middleware.RateLimiter(opts.Limiter, opts.RateLimit.Requests, opts.RateLimit.Window))
	}

	if opts.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	api.Use(middleware.RequireAccess(opts.Checker))

	controllers.Navigation.RegisterRoutes(api)
	controllers.Selection.RegisterRoutes(api)
	controllers.Directory.RegisterRoutes(api)
	controllers.Resource.RegisterRoutes(api)
	if controllers.Audit != nil {
		controllers.Audit.RegisterRoutes(api)
	}

	return router
}
