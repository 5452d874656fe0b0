package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MinLength минимальная длина пароля администратора
const MinLength = 8

var (
	// ErrTooShort пароль короче MinLength
	ErrTooShort = errors.New("password: too short")

	// ErrMismatch пароль не совпадает с хешем
	ErrMismatch = errors.New("password: mismatch")
)

// Hash возвращает bcrypt хеш пароля
func Hash(plain string) (string, error) {
	if len(plain) < MinLength {
		return "", ErrTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("password: hash: %w", err)
	}
	return string(hash), nil
}

// Check сравнивает пароль с bcrypt хешем
func Check(hash, plain string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatch
		}
		return fmt.Errorf("password: compare: %w", err)
	}
	return nil
}
