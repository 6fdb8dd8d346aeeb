// Package validate собирает валидатор входящих данных с правилами сервиса.
package validate

import (
	"time"

	"github.com/go-playground/validator"
)

// TagTimeOfDay тег для времени суток в формате HH:MM.
const TagTimeOfDay = "hhmm"

// New возвращает validator.Validate с зарегистрированными правилами сервиса.
func New() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation(TagTimeOfDay, timeOfDay); err != nil {
		// тег и функция заданы статически
		panic(err)
	}
	return v
}

func timeOfDay(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != len("15:04") {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}
