package authenticator

import "time"

type TokenEngine[T any] interface {
	// Generate creates a signed token with sub as its subject claim and obj
	// as its payload.
	Generate(sub string, obj T) (string, error)

	// Verify checks the signature and expiration of token, then returns its
	// payload.
	Verify(token string) (T, error)

	// Claims is like Verify but also returns the registered claims.
	Claims(token string) (*Claims[T], error)
}

type Claims[T any] struct {
	Subject   string
	ExpiresAt time.Time
	IssuedAt  time.Time
	Object    T
}
