// Package update реализует HTTP-обработчик PUT /places.
//
// Изменять объявление может только его владелец: для чужого объявления
// возвращается 403 с телом "Unauthorized", для отсутствующего 404.
// Владение проверяется до валидации полей, поэтому ответ чужому пользователю
// не зависит от содержимого тела.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/booking-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/booking-service/internal/http/response"
	"github.com/magabrotheeeer/booking-service/internal/lib/sl"
	"github.com/magabrotheeeer/booking-service/internal/lib/validate"
	"github.com/magabrotheeeer/booking-service/internal/models"
	services "github.com/magabrotheeeer/booking-service/internal/services/place"
)

const (
	// SuccessMessage тело ответа после обновления.
	SuccessMessage = "Update successful"
	// ForbiddenMessage тело ответа для попытки изменить чужое объявление.
	ForbiddenMessage = "Unauthorized"
)

// Handler обрабатывает запросы на обновление объявлений.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики объявлений
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики обновления объявления.
type Service interface {
	Authorize(ctx context.Context, callerID, id string) error
	Update(ctx context.Context, callerID string, in models.UpdatePlaceInput) error
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validate.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.place.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	var req models.UpdatePlaceInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.service.Authorize(r.Context(), userID, req.ID); err != nil {
		h.writeServiceError(w, r, log, userID, req.ID, err)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.service.Update(r.Context(), userID, req); err != nil {
		h.writeServiceError(w, r, log, userID, req.ID, err)
		return
	}

	log.Info("place updated", slog.String("place_id", req.ID))
	render.JSON(w, r, SuccessMessage)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, log *slog.Logger, userID, placeID string, err error) {
	switch {
	case errors.Is(err, services.ErrForbidden):
		log.Warn("update of foreign place rejected", slog.String("place_id", placeID), slog.String("user_id", userID))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, ForbiddenMessage)
	case errors.Is(err, services.ErrPlaceNotFound):
		log.Info("place not found", slog.String("place_id", placeID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("place not found"))
	default:
		log.Error("failed to update place", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update place"))
	}
}
