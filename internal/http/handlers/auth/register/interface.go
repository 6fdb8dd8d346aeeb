package register

import (
	"context"

	"github.com/magabrotheeeer/booking-service/internal/models"
)

// Service описывает бизнес-логику регистрации.
type Service interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
}
