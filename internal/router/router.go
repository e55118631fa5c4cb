// Package router assembles the gin engine: global middleware, public browse
// routes and the role-gated manager and admin groups.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/propfinder/listing-api/internal/handler"
	"github.com/propfinder/listing-api/internal/middleware"
	"github.com/propfinder/listing-api/internal/models"
	"github.com/propfinder/listing-api/internal/service"
	"github.com/propfinder/listing-api/pkg/config"
	"github.com/propfinder/listing-api/pkg/logger"
	corsmiddleware "github.com/propfinder/listing-api/pkg/middleware/cors"
	reqidmiddleware "github.com/propfinder/listing-api/pkg/middleware/requestid"
)

// Deps carries everything the router wires together.
type Deps struct {
	Config   *config.Config
	Logger   *zap.Logger
	Auth     *service.AuthService
	Listings *service.ListingService
	Heroes   *service.HeroService
	Exports  *service.ExportService
	Metrics  *service.MetricsService
}

// New builds the fully wired engine.
func New(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	if deps.Logger != nil {
		r.Use(logger.GinMiddleware(deps.Logger))
	}
	if deps.Config != nil {
		r.Use(corsmiddleware.New(deps.Config.CORS.AllowedOrigins))
	}
	r.Use(middleware.Metrics(deps.Metrics))

	authHandler := handler.NewAuthHandler(deps.Auth)
	listingHandler := handler.NewListingHandler(deps.Listings, exportsOrNil(deps.Exports), deps.Metrics)
	heroHandler := handler.NewHeroHandler(deps.Heroes)
	metricsHandler := handler.NewMetricsHandler(deps.Metrics)

	r.GET("/health", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	var api gin.IRouter = r
	if deps.Config != nil && deps.Config.APIPrefix != "" {
		api = r.Group(deps.Config.APIPrefix)
	}

	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/logout", middleware.JWT(deps.Auth), authHandler.Logout)
	auth.GET("/me", middleware.JWT(deps.Auth), authHandler.Me)

	// hero carousel is visible to everyone, including anonymous visitors
	api.GET("/hero-images", heroHandler.List)

	authenticated := api.Group("", middleware.Authenticate(deps.Auth))

	browse := authenticated.Group("/properties", middleware.RoleGate(models.RoleUser))
	browse.GET("", listingHandler.Browse)
	browse.GET("/:id", listingHandler.Get)

	manager := authenticated.Group("/manager", middleware.RoleGate(models.RoleManager))
	manager.GET("/properties", listingHandler.Mine)
	manager.POST("/properties", listingHandler.Submit)
	manager.POST("/hero-images", heroHandler.Create)
	manager.DELETE("/hero-images/:id", heroHandler.Delete)

	admin := authenticated.Group("/admin", middleware.RoleGate(models.RoleAdmin))
	admin.GET("/properties", listingHandler.Review)
	admin.POST("/properties/:id/approve", listingHandler.Approve)
	admin.POST("/properties/:id/reject", listingHandler.Reject)
	admin.GET("/properties/export", listingHandler.Export)
	admin.GET("/exports/:filename", listingHandler.DownloadExport)
	admin.DELETE("/exports/:filename", listingHandler.DeleteExport)
	admin.POST("/hero-images", heroHandler.Create)
	admin.PUT("/hero-images/:id", heroHandler.Update)
	admin.DELETE("/hero-images/:id", heroHandler.Delete)

	return r
}

// exportsOrNil keeps the handler's optional export dependency a real nil
// interface when the service is absent.
func exportsOrNil(exports *service.ExportService) handler.ExportGenerator {
	if exports == nil {
		return nil
	}
	return exports
}
