// Package session implements the durable client-side store for the
// persisted session. Exactly two keys exist: the serialized identity and
// the bearer token.
package session

import "context"

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
