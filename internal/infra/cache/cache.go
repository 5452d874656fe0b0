package cache

import (
	"context"
	"errors"
)

var (
	ErrEncode = errors.New("cache: failed to encode value")
	ErrDecode = errors.New("cache: failed to decode value")
	ErrStore  = errors.New("cache: storage error")
)

// Cache хранилище JSON значений по ключу
type Cache interface {
	// Get загружает значение в dst; false, если ключа нет
	Get(ctx context.Context, key string, dst interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	// DeleteByPrefix удаляет все ключи с указанным префиксом
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// Nop кэш, который ничего не хранит. Используется, когда redis выключен.
type Nop struct{}

func (Nop) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (Nop) Set(context.Context, string, interface{}) error          { return nil }
func (Nop) DeleteByPrefix(context.Context, string) error            { return nil }
