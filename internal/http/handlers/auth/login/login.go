// Package login реализует HTTP-обработчик входа пользователя.
//
// При успешной аутентификации токен выставляется в cookie и дублируется в теле ответа
// вместе с пользователем. Неизвестный email не считается ошибкой HTTP: клиент получает
// строку "User does not exist" со статусом 200. Неверный пароль даёт 422.
package login

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/booking-service/internal/http/response"
	"github.com/magabrotheeeer/booking-service/internal/lib/sl"
	"github.com/magabrotheeeer/booking-service/internal/lib/validate"
	"github.com/magabrotheeeer/booking-service/internal/models"
	services "github.com/magabrotheeeer/booking-service/internal/services/auth"
)

// UserNotFoundMessage тело ответа для неизвестного email.
const UserNotFoundMessage = "User does not exist"

// Request структура входных данных для авторизации.
type Request struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Response тело успешного ответа.
type Response struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Handler обрабатывает HTTP-запросы для авторизации.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис аутентификации
	cookie   Cookie              // Сессионная cookie
	validate *validator.Validate // Валидатор для проверки входных данных
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, cookie Cookie) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		cookie:   cookie,
		validate: validate.New(),
	}
}

// ServeHTTP обрабатывает POST /login.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	user, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		log.Info("login for unknown email")
		render.JSON(w, r, UserNotFoundMessage)
		return
	case errors.Is(err, services.ErrInvalidCredentials):
		log.Info("password mismatch")
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("Password not matching"))
		return
	case err != nil:
		log.Error("login failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	h.cookie.Set(w, token)
	log.Info("login success", slog.String("user_id", user.ID))
	render.JSON(w, r, Response{User: user, Token: token})
}
