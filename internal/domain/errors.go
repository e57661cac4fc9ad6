package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrInvalidID is returned when a registro id is not a positive integer.
// Zero is rejected as well, so a row stored with id 0 is unreachable through the API.
// Handlers should map this to HTTP 400.
var ErrInvalidID = errors.New("invalid id")

// ErrInvalidJSON is returned when a request body is absent or does not decode
// into the expected shape. Handlers should map this to HTTP 400.
var ErrInvalidJSON = errors.New("invalid JSON")

// ErrInvalidParam is returned when a query parameter cannot be bound.
// Handlers should map this to HTTP 400.
var ErrInvalidParam = errors.New("invalid parameter")
