// Package carrental собирает приложение сервиса проката: хранилища в памяти,
// сервисы, маршруты и HTTP-сервер с аккуратной остановкой.
package carrental

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/magabrotheeeer/car-rental-service/internal/config"
	gql "github.com/magabrotheeeer/car-rental-service/internal/graphql"
	"github.com/magabrotheeeer/car-rental-service/internal/lib/jwt"
	"github.com/magabrotheeeer/car-rental-service/internal/metrics"
	authservice "github.com/magabrotheeeer/car-rental-service/internal/services/auth"
	carservice "github.com/magabrotheeeer/car-rental-service/internal/services/car"
	rentalservice "github.com/magabrotheeeer/car-rental-service/internal/services/rental"
	"github.com/magabrotheeeer/car-rental-service/internal/storage/memstore"
)

// App — собранное приложение.
type App struct {
	server *http.Server
	logger *slog.Logger
}

// New создает приложение: таблицы в памяти живут столько же, сколько процесс,
// секрет подписи токенов передаётся сервису аутентификации через конструктор.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	userStore := memstore.NewUserStore()
	carStore := memstore.NewCarStore()
	rentalStore := memstore.NewRentalStore()

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	authService := authservice.NewAuthService(userStore, jwtMaker, collector)
	carService := carservice.NewCarService(carStore, logger)
	rentalService := rentalservice.NewRentalService(userStore, carStore, rentalStore, logger, collector)

	schema, err := gql.NewSchema(authService, carService, rentalService)
	if err != nil {
		return nil, err
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, carService, rentalService, registry)
	router.Handle("/graphql", gql.NewHandler(schema, authService, logger))

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		return a.server.Shutdown(timeoutCtx)
	}
}
