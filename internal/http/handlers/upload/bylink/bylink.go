// Package bylink реализует HTTP-обработчик POST /upload-by-link.
package bylink

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/booking-service/internal/http/response"
	"github.com/magabrotheeeer/booking-service/internal/lib/sl"
	services "github.com/magabrotheeeer/booking-service/internal/services/upload"
)

// Request тело запроса.
type Request struct {
	Link string `json:"link"`
}

// Response путь к сохранённому файлу.
type Response struct {
	Path string `json:"path"`
}

// Service скачивает изображение по ссылке.
type Service interface {
	SaveFromLink(ctx context.Context, link string) (string, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.upload.bylink"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	path, err := h.service.SaveFromLink(r.Context(), req.Link)
	switch {
	case errors.Is(err, services.ErrLinkRequired):
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("The link is required"))
		return
	case errors.Is(err, services.ErrInvalidLink):
		log.Info("invalid link", slog.String("link", req.Link))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("The link must be an http(s) URL"))
		return
	case err != nil:
		log.Error("failed to download image", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Failed to download image"))
		return
	}

	render.JSON(w, r, Response{Path: path})
}
