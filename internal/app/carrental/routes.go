// Package carrental предоставляет маршруты для основного приложения.
package carrental

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/magabrotheeeer/car-rental-service/docs" // регистрация swagger-спеки

	"github.com/magabrotheeeer/car-rental-service/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/car-rental-service/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/car-rental-service/internal/http/handlers/car/carcreate"
	"github.com/magabrotheeeer/car-rental-service/internal/http/handlers/car/carlist"
	"github.com/magabrotheeeer/car-rental-service/internal/http/handlers/health"
	"github.com/magabrotheeeer/car-rental-service/internal/http/handlers/rental/rentalcreate"
	"github.com/magabrotheeeer/car-rental-service/internal/http/handlers/rental/rentallist"
	"github.com/magabrotheeeer/car-rental-service/internal/http/handlers/user/userlist"
	"github.com/magabrotheeeer/car-rental-service/internal/http/handlers/user/userread"
	"github.com/magabrotheeeer/car-rental-service/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/car-rental-service/internal/services/auth"
	carservice "github.com/magabrotheeeer/car-rental-service/internal/services/car"
	rentalservice "github.com/magabrotheeeer/car-rental-service/internal/services/rental"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	authService *authservice.AuthService,
	carService *carservice.CarService,
	rentalService *rentalservice.RentalService,
	registry *prometheus.Registry,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/users/register", register.New(logger, authService).ServeHTTP)
		r.Post("/users/login", login.New(logger, authService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.AuthMiddleware(authService, logger))
			r.Get("/users", userlist.New(logger, authService).ServeHTTP)
			r.Get("/users/{id}", userread.New(logger, authService).ServeHTTP)
			r.Post("/cars", carcreate.New(logger, carService).ServeHTTP)
			r.Get("/cars/available", carlist.New(logger, carService).ServeHTTP)
			r.Post("/rentals", rentalcreate.New(logger, rentalService).ServeHTTP)
			r.Get("/rentals/user", rentallist.New(logger, rentalService).ServeHTTP)
		})
	})

	r.Get("/health", health.New())
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
