// Package jwt реализует выпуск и проверку сессионных JWT токенов.
//
// Токен подписывается симметричным ключом (HS256) и содержит id и email пользователя,
// время выпуска и время истечения.
package jwt

import (
	"errors"
	"time"
)

// Ошибки проверки токена.
var (
	// ErrMalformed токен не удаётся разобрать.
	ErrMalformed = errors.New("token is malformed")
	// ErrInvalidSignature подпись токена не совпадает.
	ErrInvalidSignature = errors.New("token signature is invalid")
	// ErrExpired срок действия токена истёк.
	ErrExpired = errors.New("token is expired")
	// ErrInvalid токен не прошёл остальные проверки.
	ErrInvalid = errors.New("token is invalid")
)

// Maker описывает интерфейс для выпуска и проверки токенов.
type Maker interface {
	GenerateToken(userID, email string) (string, error)
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey []byte        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
	now       func() time.Time
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: []byte(secretKey),
		tokenTTL:  ttl,
		now:       time.Now,
	}
}

// TTL возвращает время жизни выпускаемых токенов.
func (j *MakerImpl) TTL() time.Duration {
	return j.tokenTTL
}
