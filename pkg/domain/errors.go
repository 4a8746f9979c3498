package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrEmptySessionID is returned when an operation requires a session ID and none was given.
var ErrEmptySessionID = errors.New("session id is required")

// ErrOracleUnavailable is returned by oracle adapters that are not configured.
var ErrOracleUnavailable = errors.New("oracle unavailable")

// ErrReservedQuestionID is returned for question ids that collide with the
// selection, restart or force-end prompts.
var ErrReservedQuestionID = errors.New("question id is reserved")
