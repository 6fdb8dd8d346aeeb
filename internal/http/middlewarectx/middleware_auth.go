// Package middlewarectx содержит HTTP middleware для проверки сессионных JWT токенов.
//
// Токен извлекается одним из двух способов, выбранным при старте: из cookie
// или из заголовка Authorization: Bearer. JWTMiddleware отклоняет запрос без
// валидного токена с HTTP 401, OptionalJWTMiddleware пропускает его анонимно.
// В случае успеха в контекст запроса кладутся id и email пользователя.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/booking-service/internal/config"
	"github.com/magabrotheeeer/booking-service/internal/http/response"
	"github.com/magabrotheeeer/booking-service/internal/lib/jwt"
	"github.com/magabrotheeeer/booking-service/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// UserID ключ для id пользователя в контексте
	UserID Key = "user_id"
	// Email ключ для email пользователя в контексте
	Email Key = "email"
)

// Service описывает интерфейс сервиса для валидации JWT токена.
type Service interface {
	ValidateToken(ctx context.Context, token string) (*jwt.CustomClaims, error)
}

// TokenExtractor достаёт сырой токен из запроса.
type TokenExtractor func(r *http.Request) (string, bool)

// CookieExtractor читает токен из cookie с именем name.
func CookieExtractor(name string) TokenExtractor {
	return func(r *http.Request) (string, bool) {
		c, err := r.Cookie(name)
		if err != nil || c.Value == "" {
			return "", false
		}
		return c.Value, true
	}
}

// BearerExtractor читает токен из заголовка Authorization.
func BearerExtractor() TokenExtractor {
	return func(r *http.Request) (string, bool) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return "", false
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		return token, token != ""
	}
}

// NewExtractor выбирает способ извлечения токена по конфигу.
func NewExtractor(cfg config.Auth) TokenExtractor {
	if cfg.TokenSource == config.TokenSourceBearer {
		return BearerExtractor()
	}
	return CookieExtractor(cfg.CookieName)
}

// JWTMiddleware возвращает HTTP middleware, который требует валидный токен.
//
// Если токен валиден, добавляет id и email пользователя в контекст запроса,
// иначе возвращает ошибку с HTTP статусом 401 Unauthorized и обработчик не вызывается.
func JWTMiddleware(authService Service, extract TokenExtractor, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			tokenStr, ok := extract(r)
			if !ok {
				log.Info("missing authorization token")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing authorization token"))
				return
			}

			claims, err := authService.ValidateToken(r.Context(), tokenStr)
			if err != nil {
				log.Info("invalid or expired token", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}
			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
		})
	}
}

// OptionalJWTMiddleware кладёт пользователя в контекст, если токен валиден,
// и в любом случае передаёт запрос дальше.
func OptionalJWTMiddleware(authService Service, extract TokenExtractor, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.OptionalJWTMiddleware"

			tokenStr, ok := extract(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			claims, err := authService.ValidateToken(r.Context(), tokenStr)
			if err != nil {
				log.Debug("ignoring invalid token",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					sl.Err(err),
				)
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
		})
	}
}

// UserIDFromContext возвращает id пользователя, положенный middleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserID).(string)
	return id, ok && id != ""
}

// EmailFromContext возвращает email пользователя, положенный middleware.
func EmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(Email).(string)
	return email, ok && email != ""
}

func withClaims(ctx context.Context, claims *jwt.CustomClaims) context.Context {
	ctx = context.WithValue(ctx, UserID, claims.UserID)
	return context.WithValue(ctx, Email, claims.Email)
}
