// Package rentallist реализует HTTP-обработчик списка аренд текущего пользователя.
// Пустой список отображается в HTTP 404, как в исходном поведении сервиса.
package rentallist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/car-rental-service/internal/domain"
	"github.com/magabrotheeeer/car-rental-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/car-rental-service/internal/http/response"
	"github.com/magabrotheeeer/car-rental-service/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики списка аренд.
type Service interface {
	ListByUser(ctx context.Context, userID string) ([]*domain.Rental, error)
}

// Handler обрабатывает HTTP-запросы на получение аренд пользователя.
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
// @Summary Аренды текущего пользователя
// @Description Возвращает все аренды текущего пользователя, включая закрытые.
// @Tags Rentals
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Список аренд"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "У пользователя нет аренд"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /rentals/user [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.rental.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := r.Context().Value(middlewarectx.UserID).(string)
	if !ok || userID == "" {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error(domain.ErrUnauthenticated.Error()))
		return
	}

	rentals, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		log.Error("failed to list rentals", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list rentals"))
		return
	}

	if len(rentals) == 0 {
		log.Info("user has no rentals", slog.String("user_id", userID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("user has no rentals"))
		return
	}

	log.Info("rentals listed", slog.Int("count", len(rentals)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"rentals_count": len(rentals),
		"rentals":       rentals,
	}))
}
