// Package logout реализует HTTP-обработчик POST /logout.
package logout

import (
	"net/http"

	"github.com/go-chi/render"
)

// Cookie сбрасывает сессионную cookie.
type Cookie interface {
	Clear(w http.ResponseWriter)
}

// Handler обрабатывает POST /logout. Запрос всегда успешен.
type Handler struct {
	cookie Cookie
}

func New(cookie Cookie) *Handler {
	return &Handler{cookie: cookie}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.cookie.Clear(w)
	render.JSON(w, r, true)
}
