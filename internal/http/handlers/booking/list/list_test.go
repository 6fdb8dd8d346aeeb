package list

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/booking-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/booking-service/internal/lib/sl"
	"github.com/magabrotheeeer/booking-service/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) ListByUser(ctx context.Context, userID string) ([]*models.BookingWithPlace, error) {
	args := m.Called(ctx, userID)
	if res := args.Get(0); res != nil {
		return res.([]*models.BookingWithPlace), args.Error(1)
	}
	return nil, args.Error(1)
}

func serve(h http.Handler, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	if userID != "" {
		req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserID, userID))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestListBookingsHandler(t *testing.T) {
	t.Run("place is embedded", func(t *testing.T) {
		svc := new(MockService)
		svc.On("ListByUser", mock.Anything, "user-1").Return([]*models.BookingWithPlace{{
			Booking: models.Booking{ID: "b-1", UserID: "user-1", PlaceID: "p-1"},
			Place:   models.Place{ID: "p-1", Title: "Cabin"},
		}}, nil).Once()

		rec := serve(New(sl.Discard(), svc), "user-1")
		require.Equal(t, http.StatusOK, rec.Code)

		var got []map[string]any
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		require.Len(t, got, 1)
		place, ok := got[0]["place"].(map[string]any)
		require.True(t, ok, "place must be an object")
		assert.Equal(t, "Cabin", place["title"])
		assert.Equal(t, "user-1", got[0]["user"])
	})

	t.Run("empty list", func(t *testing.T) {
		svc := new(MockService)
		svc.On("ListByUser", mock.Anything, "user-2").Return(nil, nil).Once()

		rec := serve(New(sl.Discard(), svc), "user-2")
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("no identity", func(t *testing.T) {
		svc := new(MockService)
		rec := serve(New(sl.Discard(), svc), "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		svc.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything)
	})

	t.Run("store failure", func(t *testing.T) {
		svc := new(MockService)
		svc.On("ListByUser", mock.Anything, "user-3").Return(nil, errors.New("db down")).Once()

		rec := serve(New(sl.Discard(), svc), "user-3")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
