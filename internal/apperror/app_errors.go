package apperror

import "errors"

var (
	ErrInvalidColumn   = errors.New("invalid column index")
	ErrColumnFull      = errors.New("column is full")
	ErrGameAlreadyOver = errors.New("game is already over")
	ErrNoHistory       = errors.New("no moves to undo")

	ErrKeyNotFound            = errors.New("key not found")
	ErrPersistenceUnavailable = errors.New("persistence is unavailable")
	ErrPersistenceFormat      = errors.New("malformed game document")
	ErrUnauthorized           = errors.New("invalid or missing api key")
)
