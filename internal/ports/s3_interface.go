package ports

import "context"

// KeyObjectSource : хранилище, из которого читается PEM ключ
type KeyObjectSource interface {
	GetObject(ctx context.Context, key string) ([]byte, error)
}
