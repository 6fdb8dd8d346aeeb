// Package health отвечает на проверку доступности GET /test.
package health

import (
	"net/http"

	"github.com/go-chi/render"
)

// Message тело ответа.
const Message = "test ok"

type Handler struct{}

func New() *Handler {
	return &Handler{}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, Message)
}
