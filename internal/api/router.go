package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/staffdesk/admin-api/docs"
	"github.com/staffdesk/admin-api/internal/api/handler"
	"github.com/staffdesk/admin-api/internal/api/middleware"
	"github.com/staffdesk/admin-api/internal/core/domain"
	"github.com/staffdesk/admin-api/internal/core/ports"
)

// Dependencies carries the wired services the HTTP layer exposes.
type Dependencies struct {
	Logger    zerolog.Logger
	DB        *mongo.Database
	Redis     *redis.Client
	JWTSecret string

	Users     ports.UserService
	Employees ports.EmployeeService
	Auth      ports.AuthService
	Store     ports.ObjectStore
	Tokens    ports.TokenStore
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("staffdesk"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	userHandler := handler.NewUserHandler(d.Users)
	employeeHandler := handler.NewEmployeeHandler(d.Employees)
	bucketHandler := handler.NewBucketHandler(d.Store)

	authRequired := middleware.Auth(d.JWTSecret, d.Tokens)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authRequired)

	// --- Management routes ---
	v1 := e.Group("/v1", authRequired)

	v1.GET("/users", userHandler.List)
	v1.GET("/users/:id", userHandler.Get)
	v1.POST("/users", userHandler.Create, adminOnly)
	v1.PUT("/users/:id", userHandler.Update, adminOnly)
	v1.DELETE("/users/:id", userHandler.Delete, adminOnly)

	v1.GET("/employees", employeeHandler.List)
	v1.GET("/employees/:id", employeeHandler.Get)
	v1.POST("/employees", employeeHandler.Create, adminOnly)
	v1.PUT("/employees/:id", employeeHandler.Update, adminOnly)
	v1.DELETE("/employees/:id", employeeHandler.Delete, adminOnly)

	v1.POST("/buckets", bucketHandler.Create, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.DB, d.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
