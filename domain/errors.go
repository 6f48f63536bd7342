package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("given Param is not valid")
	// ErrForbidden will throw if the user cannot touch the requested item
	ErrForbidden = errors.New("you do not have permission to do this")
	// ErrUnauthenticated will throw if the session is not logged in upstream
	ErrUnauthenticated = errors.New("user not authenticated")
	// ErrCacheMiss is returned by cache adapters when the key is absent or expired
	ErrCacheMiss = errors.New("cache miss")
)

// GenericNetworkMessage is surfaced when the API gives no message of its own.
const GenericNetworkMessage = "network error, please try again"

// APIError is a non-2xx answer from the remote API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
}

// Unwrap maps well known statuses onto the sentinel errors so callers can use errors.Is.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case 401:
		return ErrUnauthenticated
	case 403:
		return ErrForbidden
	case 404:
		return ErrNotFound
	case 409:
		return ErrConflict
	case 400, 422:
		return ErrBadParamInput
	default:
		return nil
	}
}
