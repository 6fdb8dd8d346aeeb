package profile

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/booking-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/booking-service/internal/lib/sl"
	"github.com/magabrotheeeer/booking-service/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	p, _ := args.Get(0).(*models.Profile)
	return p, args.Error(1)
}

func TestProfileHandler(t *testing.T) {
	tests := []struct {
		name           string
		userID         string
		setup          func(m *ServiceMock)
		wantStatusCode int
		wantBody       string
	}{
		{
			name:           "anonymous",
			setup:          func(_ *ServiceMock) {},
			wantStatusCode: http.StatusOK,
			wantBody:       "null",
		},
		{
			name:   "logged in",
			userID: "u-1",
			setup: func(m *ServiceMock) {
				m.On("Profile", mock.Anything, "u-1").
					Return(&models.Profile{ID: "u-1", Name: "Alice", Email: "alice@example.com"}, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantBody:       `{"id":"u-1","name":"Alice","email":"alice@example.com"}`,
		},
		{
			name:   "user removed",
			userID: "u-2",
			setup: func(m *ServiceMock) {
				m.On("Profile", mock.Anything, "u-2").Return(nil, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantBody:       "null",
		},
		{
			name:   "store failure",
			userID: "u-3",
			setup: func(m *ServiceMock) {
				m.On("Profile", mock.Anything, "u-3").Return(nil, errors.New("db down")).Once()
			},
			wantStatusCode: http.StatusInternalServerError,
			wantBody:       "null",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			tt.setup(svc)
			h := New(sl.Discard(), svc)

			req := httptest.NewRequest(http.MethodGet, "/profile", nil)
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			if tt.userID != "" {
				ctx = context.WithValue(ctx, middlewarectx.UserID, tt.userID)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req.WithContext(ctx))

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			svc.AssertExpectations(t)
		})
	}
}
