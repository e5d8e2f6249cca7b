package userread

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/car-rental-service/internal/domain"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) GetUserByID(ctx context.Context, id string) (*domain.PublicUser, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*domain.PublicUser)
	return user, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestUserReadHandler_ServeHTTP(t *testing.T) {
	authMock := new(AuthServiceMock)
	logger := newNoopLogger()

	handler := New(logger, authMock)

	user := &domain.PublicUser{
		ID:         "user-1",
		Name:       "Anna",
		Email:      "anna@example.com",
		NationalID: "AB123456",
	}

	tests := []struct {
		name           string
		userID         string
		mockUser       *domain.PublicUser
		mockErr        error
		wantStatusCode int
		wantError      string
		wantStatus     string
	}{
		{
			name:           "existing user",
			userID:         "user-1",
			mockUser:       user,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:           "unknown user",
			userID:         "missing",
			mockErr:        domain.ErrUserNotFound,
			wantStatusCode: http.StatusNotFound,
			wantError:      "user not found",
			wantStatus:     "Error",
		},
		{
			name:           "service error",
			userID:         "user-1",
			mockErr:        errors.New("storage down"),
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "failed to read user",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock.ExpectedCalls = nil
			authMock.Calls = nil

			authMock.On("GetUserByID", mock.Anything, tt.userID).
				Return(tt.mockUser, tt.mockErr).Once()

			req := httptest.NewRequest(http.MethodGet, "/users/"+tt.userID, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.userID)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "reqid123")
			req = req.WithContext(ctx)

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err := json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			assert.Equal(t, tt.wantStatus, got["status"])

			if tt.wantError != "" {
				errStr, ok := got["error"].(string)
				assert.True(t, ok)
				assert.Equal(t, tt.wantError, errStr)
			} else {
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				gotUser, ok := data["user"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, user.Email, gotUser["email"])
			}

			authMock.AssertExpectations(t)
		})
	}
}
