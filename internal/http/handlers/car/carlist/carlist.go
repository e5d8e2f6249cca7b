// Package carlist реализует HTTP-обработчик списка доступных автомобилей.
package carlist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/car-rental-service/internal/domain"
	"github.com/magabrotheeeer/car-rental-service/internal/http/response"
	"github.com/magabrotheeeer/car-rental-service/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики списка автомобилей.
type Service interface {
	ListAvailable(ctx context.Context) ([]*domain.Car, error)
}

// Handler обрабатывает HTTP-запросы на получение доступных автомобилей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Доступные автомобили
// @Description Возвращает автомобили, доступные для аренды в данный момент.
// @Tags Cars
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Список автомобилей"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /cars/available [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.car.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	cars, err := h.service.ListAvailable(r.Context())
	if err != nil {
		log.Error("failed to list available cars", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list cars"))
		return
	}

	log.Info("available cars listed", slog.Int("count", len(cars)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"cars_count": len(cars),
		"cars":       cars,
	}))
}
