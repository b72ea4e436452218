package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/roamstead/camper-rentals/docs"
	"github.com/roamstead/camper-rentals/internal/api/handler"
	"github.com/roamstead/camper-rentals/internal/api/middleware"
	"github.com/roamstead/camper-rentals/internal/core/domain"
	"github.com/roamstead/camper-rentals/internal/core/ports"
	"github.com/roamstead/camper-rentals/internal/core/service"
	"github.com/roamstead/camper-rentals/internal/infrastructure/queue"
)

// Deps carries the constructed application pieces the router wires together.
type Deps struct {
	Mongo      *mongo.Database
	Redis      *redis.Client
	JWTSecret  string
	Registry   *service.ResolverRegistry
	Catalog    *service.CatalogService
	Identity   *service.IdentityService
	HintStore  ports.RoleHintStore
	Dispatcher *queue.Dispatcher
	Log        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("rentals"))

	auth := middleware.Auth(deps.JWTSecret)
	ownerOnly := middleware.RequireRole(deps.Registry, domain.RoleOwner)

	// --- Identity provider (local credentials) ---
	identityHandler := handler.NewIdentityHandler(deps.Identity)
	e.POST("/v1/identity/register", identityHandler.Register)
	e.POST("/v1/identity/login", identityHandler.Login)

	// --- Session resolution ---
	sessionHandler := handler.NewSessionHandler(deps.Registry, deps.HintStore)
	e.GET("/v1/session", sessionHandler.Resolve, auth)
	e.POST("/v1/session/profile", sessionHandler.CompleteSetup, auth)
	e.PUT("/v1/session/role-hint", sessionHandler.RoleHint, auth)
	e.DELETE("/v1/session", sessionHandler.SignOut, auth)

	// --- Provider session-change webhook ---
	webhookHandler := handler.NewWebhookHandler(deps.Dispatcher)
	e.POST("/v1/webhooks/sessions", webhookHandler.Receive, auth)
	e.POST("/v1/webhooks/sessions/batch", webhookHandler.ReceiveBatch, auth)

	// --- Listing catalog ---
	listingHandler := handler.NewListingHandler(deps.Catalog)
	e.GET("/v1/listings", listingHandler.Search)
	e.GET("/v1/listings/:id", listingHandler.Get)
	e.POST("/v1/listings", listingHandler.Create, auth, ownerOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
