package listown

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/booking-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/booking-service/internal/lib/sl"
	"github.com/magabrotheeeer/booking-service/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) ListByOwner(ctx context.Context, ownerID string) ([]*models.Place, error) {
	args := m.Called(ctx, ownerID)
	if res := args.Get(0); res != nil {
		return res.([]*models.Place), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestListOwnHandler(t *testing.T) {
	tests := []struct {
		name           string
		userID         string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "own places",
			userID: "owner-1",
			setupMock: func(m *MockService) {
				m.On("ListByOwner", mock.Anything, "owner-1").
					Return([]*models.Place{{ID: "p-1", Owner: "owner-1", Title: "Cabin"}}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"title":"Cabin"`,
		},
		{
			name:   "no places yet",
			userID: "owner-2",
			setupMock: func(m *MockService) {
				m.On("ListByOwner", mock.Anything, "owner-2").Return(nil, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name:           "no identity",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthorized"`,
		},
		{
			name:   "store failure",
			userID: "owner-3",
			setupMock: func(m *MockService) {
				m.On("ListByOwner", mock.Anything, "owner-3").Return(nil, errors.New("db error")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `could not list places`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)
			h := New(sl.Discard(), svc)

			req := httptest.NewRequest(http.MethodGet, "/user-places", nil)
			if tt.userID != "" {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserID, tt.userID))
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
