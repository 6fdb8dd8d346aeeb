// Package photos реализует HTTP-обработчик POST /upload: загрузка фотографий
// из multipart-поля photos.
package photos

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/booking-service/internal/http/response"
	"github.com/magabrotheeeer/booking-service/internal/lib/sl"
	services "github.com/magabrotheeeer/booking-service/internal/services/upload"
)

// FieldName имя multipart-поля с файлами.
const FieldName = "photos"

// Service сохраняет загруженные файлы.
type Service interface {
	SaveFiles(files []*multipart.FileHeader) ([]string, error)
}

type Handler struct {
	log       *slog.Logger
	service   Service
	maxMemory int64
	maxBody   int64
}

// New создаёт Handler. maxMemory ограничивает часть формы, которая держится в памяти,
// maxBody весь размер тела запроса.
func New(log *slog.Logger, service Service, maxMemory, maxBody int64) *Handler {
	return &Handler{
		log:       log,
		service:   service,
		maxMemory: maxMemory,
		maxBody:   maxBody,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.upload.photos"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	if err := r.ParseMultipartForm(h.maxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Info("upload body too large", slog.Int64("limit", tooLarge.Limit))
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			render.JSON(w, r, response.Error("request body too large"))
			return
		}
		log.Info("failed to parse multipart form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid multipart form"))
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	names, err := h.service.SaveFiles(r.MultipartForm.File[FieldName])
	switch {
	case errors.Is(err, services.ErrTooManyFiles), errors.Is(err, services.ErrNoFiles):
		log.Info("rejected upload", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
		return
	case err != nil:
		log.Error("failed to store files", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not store files"))
		return
	}

	log.Info("files uploaded", slog.Int("count", len(names)))
	render.JSON(w, r, names)
}
