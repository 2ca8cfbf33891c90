package errors

import "errors"

var (
	ErrHandNotFound      = errors.New("hand not found")
	ErrHandsTableMissing = errors.New("hands table does not exist")
	ErrHandNotSaved      = errors.New("failed to save hand data")
	ErrNoParticipants    = errors.New("stack_settings must contain at least one player")
)
