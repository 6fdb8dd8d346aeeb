package login

import (
	"context"
	"net/http"

	"github.com/magabrotheeeer/booking-service/internal/models"
)

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	Login(ctx context.Context, email, password string) (*models.User, string, error)
}

// Cookie выставляет сессионную cookie с токеном.
type Cookie interface {
	Set(w http.ResponseWriter, token string)
}
