package rentalcreate

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/car-rental-service/internal/domain"
	"github.com/magabrotheeeer/car-rental-service/internal/http/middlewarectx"
)

type RentalServiceMock struct {
	mock.Mock
}

func (m *RentalServiceMock) Create(ctx context.Context, userID, carID string, startDate, expectedEndDate time.Time) (*domain.Rental, error) {
	args := m.Called(ctx, userID, carID, startDate, expectedEndDate)
	rental, _ := args.Get(0).(*domain.Rental)
	return rental, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRentalCreateHandler_ServeHTTP(t *testing.T) {
	rentalMock := new(RentalServiceMock)
	logger := newNoopLogger()

	handler := New(logger, rentalMock)

	start, _ := time.Parse(time.RFC3339, "2025-06-01T10:00:00Z")
	end := start.AddDate(0, 0, 7)

	validBody := Request{
		CarID:           "car-1",
		StartDate:       start.Format(time.RFC3339),
		ExpectedEndDate: end.Format(time.RFC3339),
	}

	rental := &domain.Rental{
		ID:              "rental-1",
		UserID:          "user-1",
		CarID:           "car-1",
		StartDate:       start,
		ExpectedEndDate: end,
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		withUser       bool
		mockRental     *domain.Rental
		mockErr        error
		wantStatusCode int
		wantError      string
		wantStatus     string
	}{
		{
			name:           "valid rental",
			requestBody:    validBody,
			withUser:       true,
			mockRental:     rental,
			wantStatusCode: http.StatusCreated,
			wantError:      "",
			wantStatus:     "OK",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			withUser:       true,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
			wantStatus:     "Error",
		},
		{
			name:           "validation error - missing car id",
			requestBody:    Request{StartDate: validBody.StartDate, ExpectedEndDate: validBody.ExpectedEndDate},
			withUser:       true,
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field CarID is a required field",
			wantStatus:     "Error",
		},
		{
			name:           "no user in context",
			requestBody:    validBody,
			withUser:       false,
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "authentication required",
			wantStatus:     "Error",
		},
		{
			name: "malformed start date",
			requestBody: Request{
				CarID:           "car-1",
				StartDate:       "01.06.2025",
				ExpectedEndDate: validBody.ExpectedEndDate,
			},
			withUser:       true,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid start_date, expected RFC3339",
			wantStatus:     "Error",
		},
		{
			name:           "too many active rentals",
			requestBody:    validBody,
			withUser:       true,
			mockErr:        domain.ErrTooManyActiveRentals,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "user already has two active rentals",
			wantStatus:     "Error",
		},
		{
			name:           "car already rented",
			requestBody:    validBody,
			withUser:       true,
			mockErr:        domain.ErrCarAlreadyRented,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "car already rented under another active contract",
			wantStatus:     "Error",
		},
		{
			name:           "car not available",
			requestBody:    validBody,
			withUser:       true,
			mockErr:        domain.ErrCarNotAvailable,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "car is not available for rental",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rentalMock.ExpectedCalls = nil
			rentalMock.Calls = nil

			if tt.mockRental != nil || tt.mockErr != nil {
				rentalMock.On("Create", mock.Anything, "user-1", "car-1", start, end).
					Return(tt.mockRental, tt.mockErr).Once()
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

			req := httptest.NewRequest(http.MethodPost, "/rentals", bytes.NewReader(bodyBytes))
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			if tt.withUser {
				ctx = context.WithValue(ctx, middlewarectx.UserID, "user-1")
			}
			req = req.WithContext(ctx)

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
				assert.Equal(t, "rental registered successfully", data["message"])
			}

			if tt.mockRental != nil || tt.mockErr != nil {
				rentalMock.AssertExpectations(t)
			}
		})
	}
}
