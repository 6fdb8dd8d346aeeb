// Package profile реализует HTTP-обработчик GET /profile.
//
// Запрос без валидного токена не считается ошибкой: клиент получает null.
package profile

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/booking-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/booking-service/internal/lib/sl"
	"github.com/magabrotheeeer/booking-service/internal/models"
)

// Service описывает получение публичного профиля.
type Service interface {
	Profile(ctx context.Context, userID string) (*models.Profile, error)
}

// Handler обрабатывает GET /profile.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создаёт Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.profile"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		render.JSON(w, r, nil)
		return
	}

	profile, err := h.service.Profile(r.Context(), userID)
	if err != nil {
		log.Error("failed to load profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, nil)
		return
	}
	render.JSON(w, r, profile)
}
