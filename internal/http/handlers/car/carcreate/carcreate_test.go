package carcreate

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/car-rental-service/internal/domain"
)

type CarServiceMock struct {
	mock.Mock
}

func (m *CarServiceMock) Register(ctx context.Context, brand, model string, year int, plate string, dailyRate float64) (*domain.Car, error) {
	args := m.Called(ctx, brand, model, year, plate, dailyRate)
	car, _ := args.Get(0).(*domain.Car)
	return car, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCarCreateHandler_ServeHTTP(t *testing.T) {
	carMock := new(CarServiceMock)
	logger := newNoopLogger()

	handler := New(logger, carMock)

	validBody := Request{
		Brand:     "Toyota",
		Model:     "Corolla",
		Year:      2022,
		Plate:     "A001AA",
		DailyRate: 45.0,
	}

	car := &domain.Car{
		ID:          "car-1",
		Brand:       "Toyota",
		Model:       "Corolla",
		Year:        2022,
		Plate:       "A001AA",
		DailyRate:   45.0,
		IsAvailable: true,
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		mockCar        *domain.Car
		mockErr        error
		wantStatusCode int
		wantError      string
		wantStatus     string
	}{
		{
			name:           "valid car",
			requestBody:    validBody,
			mockCar:        car,
			wantStatusCode: http.StatusCreated,
			wantError:      "",
			wantStatus:     "OK",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
			wantStatus:     "Error",
		},
		{
			name:           "validation error - ancient year",
			requestBody:    Request{Brand: "Ford", Model: "T", Year: 1908, Plate: "A002AA", DailyRate: 10},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Year must be greater than 1900",
			wantStatus:     "Error",
		},
		{
			name:           "validation error - negative rate",
			requestBody:    Request{Brand: "Toyota", Model: "Corolla", Year: 2022, Plate: "A001AA", DailyRate: -1},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field DailyRate must not be negative",
			wantStatus:     "Error",
		},
		{
			name:           "duplicate plate",
			requestBody:    validBody,
			mockErr:        domain.ErrDuplicatePlate,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "plate already registered",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			carMock.ExpectedCalls = nil
			carMock.Calls = nil

			if tt.mockCar != nil || tt.mockErr != nil {
				req := tt.requestBody.(Request)
				carMock.On("Register", mock.Anything, req.Brand, req.Model, req.Year, req.Plate, req.DailyRate).
					Return(tt.mockCar, tt.mockErr).Once()
			}

			var bodyBytes []byte
			var err error
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/cars", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err = json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			assert.Equal(t, tt.wantStatus, got["status"])

			if tt.wantError != "" {
				errStr, ok := got["error"].(string)
				assert.True(t, ok)
				assert.Equal(t, tt.wantError, errStr)
			} else {
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, "car registered successfully", data["message"])

				gotCar, ok := data["car"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, car.Plate, gotCar["plate"])
				assert.Equal(t, true, gotCar["is_available"])
			}

			if tt.mockCar != nil || tt.mockErr != nil {
				carMock.AssertExpectations(t)
			}
		})
	}
}
