package entities

import "errors"

var (
	// ErrNoLinkedAccount means the user has no account linked for the game.
	// This is a precondition failure and is never retried.
	ErrNoLinkedAccount = errors.New("no linked account for game")

	// ErrAccountNotFound means the provider does not know the linked account
	ErrAccountNotFound = errors.New("account not found on provider")

	// ErrProviderUnavailable covers rate limits, 5xx responses and network
	// failures from the stats provider. Callers fall back to cached data
	// whenever any cache entry exists.
	ErrProviderUnavailable = errors.New("stats provider unavailable")

	// ErrNoCachedStats is returned when the provider is unreachable and no
	// cache entry exists to fall back to.
	ErrNoCachedStats = errors.New("no cached stats available")
)
