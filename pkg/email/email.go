package email

import (
	"errors"
	"net/mail"
	"strings"
)

// ErrInvalid возвращается, когда строка не является одиночным адресом без имени
var ErrInvalid = errors.New("email: invalid address")

// Normalize обрезает пробелы, приводит адрес к нижнему регистру и проверяет формат.
// Формы вида "Имя <a@b.c>" не принимаются.
func Normalize(raw string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return "", ErrInvalid
	}

	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value || !strings.Contains(value[strings.LastIndex(value, "@")+1:], ".") {
		return "", ErrInvalid
	}
	return value, nil
}
