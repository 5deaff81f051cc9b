package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shomvob/travels-api/internal/api/handler"
	"github.com/shomvob/travels-api/internal/api/middleware"
	"github.com/shomvob/travels-api/internal/core/domain"
	"github.com/shomvob/travels-api/internal/core/ports"
	"github.com/shomvob/travels-api/internal/core/service"
	"github.com/shomvob/travels-api/internal/infrastructure/config"
	mongodb "github.com/shomvob/travels-api/internal/infrastructure/db/mongo"
	redisdb "github.com/shomvob/travels-api/internal/infrastructure/db/redis"
	"github.com/shomvob/travels-api/internal/infrastructure/notify"

	_ "github.com/shomvob/travels-api/docs"
)

// NewRouter builds the Echo instance with every route registered and all
// dependencies constructed. Nothing here is a package-level global; the
// database handles flow in by argument and out through closures.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("travels"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	bookingRepo := mongodb.NewBookingRepository(db)
	applicationRepo := mongodb.NewApplicationRepository(db)
	resourceRepos := make(map[string]ports.ResourceRepository, len(Resources))
	for _, def := range Resources {
		resourceRepos[def.Name] = mongodb.NewResourceRepository(db, def)
	}

	// --- Services ---
	throttle := redisdb.NewLoginThrottle(rdb)
	notifier := notify.NewLogNotifier(log)
	authService := service.NewAuthService(userRepo, throttle, notifier, cfg.JWTSecret, cfg.TokenTTL, log)
	userService := service.NewUserService(userRepo, applicationRepo, resourceRepos["guides"], log)
	bookingService := service.NewBookingService(bookingRepo, log)
	analyticsService := service.NewAnalyticsService(bookingRepo, map[string]ports.Counter{
		"users":         userRepo,
		"packages":      resourceRepos["packages"],
		"tour_guides":   resourceRepos["guides"],
		"stories":       resourceRepos["stories"],
		"applications":  applicationRepo,
		"announcements": resourceRepos["announcements"],
	}, log)

	// --- Middleware stages ---
	authn := middleware.Auth(cfg.JWTSecret)
	adminOnly := []echo.MiddlewareFunc{authn, middleware.RBAC(domain.RoleAdmin)}

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(authService, cfg.TokenTTL, cfg.Env != "development")
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.POST("/auth/forgot-password", authHandler.ForgotPassword)
	e.POST("/auth/reset-password", authHandler.ResetPassword)

	// --- Users ---
	userHandler := handler.NewUserHandler(userService)
	e.GET("/users", userHandler.List, adminOnly...)
	e.GET("/users/me", userHandler.Me, authn)
	e.GET("/users/:id", userHandler.Get, authn)
	e.PATCH("/users/:id", userHandler.Update, authn)
	e.PATCH("/users/:id/role", userHandler.ChangeRole, adminOnly...)
	e.DELETE("/users/:id", userHandler.Delete, adminOnly...)

	// --- Guide applications ---
	applicationHandler := handler.NewApplicationHandler(userService)
	e.POST("/applications", applicationHandler.Apply, authn)
	e.GET("/applications", applicationHandler.List, adminOnly...)
	e.PATCH("/applications/:id/approve", applicationHandler.Approve, adminOnly...)
	e.PATCH("/applications/:id/reject", applicationHandler.Reject, adminOnly...)

	// --- Bookings ---
	bookingHandler := handler.NewBookingHandler(bookingService, userService)
	e.POST("/bookings", bookingHandler.Create, authn)
	e.GET("/bookings", bookingHandler.List, adminOnly...)
	e.GET("/bookings/:id", bookingHandler.Get, authn)
	e.GET("/bookings/user/:email", bookingHandler.ListByUser, authn)
	e.GET("/bookings/guide/:email", bookingHandler.ListByGuide, authn)
	e.PATCH("/bookings/:id/status", bookingHandler.UpdateStatus, authn)
	e.DELETE("/bookings/:id", bookingHandler.Delete, authn)

	// --- Generic catalog resources ---
	for _, def := range Resources {
		svc := service.NewResourceService(def, resourceRepos[def.Name], log)
		registerResource(e, handler.NewResourceHandler(svc), def, authn)
	}

	// --- Analytics (admin only) ---
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	e.GET("/analytics", analyticsHandler.Summary, adminOnly...)
	e.GET("/analytics/chart", analyticsHandler.Chart, adminOnly...)

	// --- Health probes, metrics, docs ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/docs/*", echoswagger.WrapHandler)

	return e
}

// registerResource maps one resource definition onto its REST routes with the
// middleware its policy demands.
func registerResource(e *echo.Echo, h *handler.ResourceHandler, def domain.ResourceDefinition, authn echo.MiddlewareFunc) {
	base := "/" + def.Name

	e.GET(base, h.List, guards(def.Policy.Read, authn)...)
	if def.Random {
		e.GET(base+"/random", h.Random, guards(def.Policy.Read, authn)...)
	}
	for _, lookup := range def.Lookups {
		e.GET(base+"/"+lookup.Segment+"/:value", h.ListByField(lookup.Field), guards(def.Policy.Read, authn)...)
	}
	e.GET(base+"/:id", h.Get, guards(def.Policy.Read, authn)...)
	e.POST(base, h.Create, guards(def.Policy.Create, authn)...)
	e.PATCH(base+"/:id", h.Update, guards(def.Policy.Update, authn)...)
	e.DELETE(base+"/:id", h.Delete, guards(def.Policy.Delete, authn)...)
}

// guards translates an access level into its middleware chain. Owner checks
// happen in the resource service; transport only guarantees a session exists.
func guards(level domain.AccessLevel, authn echo.MiddlewareFunc) []echo.MiddlewareFunc {
	switch level {
	case domain.AccessPublic:
		return nil
	case domain.AccessAdmin:
		return []echo.MiddlewareFunc{authn, middleware.RBAC(domain.RoleAdmin)}
	default:
		return []echo.MiddlewareFunc{authn}
	}
}
