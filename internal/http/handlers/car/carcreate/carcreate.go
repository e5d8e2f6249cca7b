// Package carcreate реализует HTTP-обработчик регистрации автомобилей.
//
// Handler принимает JSON-запрос с данными автомобиля, валидирует их,
// вызывает бизнес-логику регистрации и возвращает созданную запись.
// Дубликат госномера отображается в HTTP 400.
package carcreate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/car-rental-service/internal/domain"
	"github.com/magabrotheeeer/car-rental-service/internal/http/response"
	"github.com/magabrotheeeer/car-rental-service/internal/lib/sl"
)

// Request — входные данные для регистрации автомобиля.
type Request struct {
	Brand     string  `json:"brand" validate:"required"`
	Model     string  `json:"model" validate:"required"`
	Year      int     `json:"year" validate:"required,gt=1900"`
	Plate     string  `json:"plate" validate:"required"`
	DailyRate float64 `json:"daily_rate" validate:"gte=0"`
}

// Service описывает интерфейс бизнес-логики регистрации автомобиля.
type Service interface {
	Register(ctx context.Context, brand, model string, year int, plate string, dailyRate float64) (*domain.Car, error)
}

// Handler обрабатывает HTTP-запросы на регистрацию автомобилей.
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
// @Summary Регистрация автомобиля
// @Description Добавляет автомобиль в парк. Госномер должен быть уникален; новый автомобиль доступен для аренды.
// @Tags Cars
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Данные нового автомобиля"
// @Success 201 {object} map[string]any "Автомобиль зарегистрирован"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или дубликат госномера"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /cars [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.car.create"

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
	log.Info("request body decoded", slog.String("plate", req.Plate))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	car, err := h.service.Register(r.Context(), req.Brand, req.Model, req.Year, req.Plate, req.DailyRate)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicatePlate) {
			log.Error("car registration rejected", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(domain.ErrDuplicatePlate.Error()))
			return
		}
		log.Error("failed to register car", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register car"))
		return
	}

	log.Info("car registered", slog.String("id", car.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "car registered successfully",
		"car":     car,
	}))
}
