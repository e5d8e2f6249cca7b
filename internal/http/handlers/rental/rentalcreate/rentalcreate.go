// Package rentalcreate реализует HTTP-обработчик создания аренды.
//
// Идентификатор пользователя берётся из контекста запроса (положен туда
// middleware аутентификации), автомобиль и даты — из тела запроса.
// Отказы допуска (лимит активных аренд, занятый или недоступный автомобиль)
// отображаются в HTTP 400 с текстом соответствующей доменной ошибки.
package rentalcreate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/car-rental-service/internal/domain"
	"github.com/magabrotheeeer/car-rental-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/car-rental-service/internal/http/response"
	"github.com/magabrotheeeer/car-rental-service/internal/lib/sl"
)

// Request — входные данные для создания аренды.
// Даты передаются строками в формате RFC3339.
type Request struct {
	CarID           string `json:"car_id" validate:"required"`
	StartDate       string `json:"start_date" validate:"required"`
	ExpectedEndDate string `json:"expected_end_date" validate:"required"`
}

// Service описывает интерфейс логики допуска аренды.
type Service interface {
	Create(ctx context.Context, userID, carID string, startDate, expectedEndDate time.Time) (*domain.Rental, error)
}

// Handler обрабатывает HTTP-запросы на создание аренды.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создание аренды
// @Description Создает аренду автомобиля для текущего пользователя после проверок допуска.
// @Tags Rentals
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Данные аренды"
// @Success 201 {object} map[string]any "Аренда создана"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос или отказ допуска"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /rentals [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.rental.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("car_id", req.CarID))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	userID, ok := r.Context().Value(middlewarectx.UserID).(string)
	if !ok || userID == "" {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error(domain.ErrUnauthenticated.Error()))
		return
	}

	startDate, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		log.Error("invalid start date", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid start_date, expected RFC3339"))
		return
	}
	expectedEndDate, err := time.Parse(time.RFC3339, req.ExpectedEndDate)
	if err != nil {
		log.Error("invalid expected end date", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid expected_end_date, expected RFC3339"))
		return
	}

	rental, err := h.service.Create(r.Context(), userID, req.CarID, startDate, expectedEndDate)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound),
			errors.Is(err, domain.ErrCarNotFound),
			errors.Is(err, domain.ErrTooManyActiveRentals),
			errors.Is(err, domain.ErrCarAlreadyRented),
			errors.Is(err, domain.ErrCarNotAvailable),
			errors.Is(err, domain.ErrInvalidRentalPeriod):
			log.Error("rental admission rejected", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
		default:
			log.Error("failed to create rental", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create rental"))
		}
		return
	}

	log.Info("rental created", slog.String("id", rental.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "rental registered successfully",
		"rental":  rental,
	}))
}
