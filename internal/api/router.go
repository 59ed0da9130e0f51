package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dinebook/reservation-system/internal/api/handler"
	"github.com/dinebook/reservation-system/internal/api/middleware"
	"github.com/dinebook/reservation-system/internal/core/domain"
	"github.com/dinebook/reservation-system/internal/core/ports"
	"github.com/dinebook/reservation-system/internal/core/service"
	"github.com/dinebook/reservation-system/internal/infrastructure/config"
	mongodb "github.com/dinebook/reservation-system/internal/infrastructure/db/mongo"
	redisdb "github.com/dinebook/reservation-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, audit ports.AuditDispatcher, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("reservation"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	restaurantRepo := mongodb.NewRestaurantRepository(db)
	reservationRepo := mongodb.NewReservationRepository(db)
	dedup := redisdb.NewDedupChecker(rdb)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, log)
	restaurantService := service.NewRestaurantService(restaurantRepo, reservationRepo, log)
	reservationService := service.NewReservationService(reservationRepo, restaurantRepo, dedup, audit, log)

	authHandler := handler.NewAuthHandler(authService)
	restaurantHandler := handler.NewRestaurantHandler(restaurantService)
	reservationHandler := handler.NewReservationHandler(reservationService)

	authRequired := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	ownerOnly := middleware.RBAC(domain.RoleOwner)
	customerOnly := middleware.RBAC(domain.RoleCustomer)

	// --- Auth routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)

	users := e.Group("/api/auth/users", authRequired, adminOnly)
	users.GET("", authHandler.ListUsers)
	users.DELETE("/:id", authHandler.DeleteUser)
	users.PUT("/:id/role", authHandler.SetUserRole)
	users.PUT("/:id/password", authHandler.SetUserPassword)
	users.PUT("/:id", authHandler.UpdateUser)

	// --- Restaurant routes ---
	e.GET("/api/restaurants", restaurantHandler.List)
	e.GET("/api/restaurants/search/location", restaurantHandler.SearchByLocation)
	e.GET("/api/restaurants/search/cuisine", restaurantHandler.SearchByCuisine)
	e.GET("/api/restaurants/:id/availability", restaurantHandler.AvailableCapacity)

	e.POST("/api/restaurants/add", restaurantHandler.Create, authRequired, ownerOnly)
	e.GET("/api/restaurants/my", restaurantHandler.ListMine, authRequired, ownerOnly)
	e.PUT("/api/restaurants/my/:id", restaurantHandler.Update, authRequired, ownerOnly)
	e.PUT("/api/restaurants/my/:id/availability", restaurantHandler.SetAvailability, authRequired, middleware.RBAC(domain.RoleOwner, domain.RoleAdmin))
	e.DELETE("/api/restaurants/my/:id", restaurantHandler.Delete, authRequired, ownerOnly)

	admin := e.Group("/api/restaurants/admin", authRequired, adminOnly)
	admin.POST("/add", restaurantHandler.Create)
	admin.PUT("/:id", restaurantHandler.Update)
	admin.DELETE("/:id", restaurantHandler.Delete)

	// --- Reservation routes ---
	e.POST("/api/reservations/book", reservationHandler.Book, authRequired, customerOnly)
	e.GET("/api/reservations/my", reservationHandler.ListMine, authRequired, customerOnly)
	e.GET("/api/reservations/restaurant/:id", reservationHandler.ListForRestaurant, authRequired, ownerOnly)
	e.PUT("/api/reservations/:id/status", reservationHandler.UpdateStatus, authRequired, middleware.RBAC(domain.RoleCustomer, domain.RoleOwner))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
