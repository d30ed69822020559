package state

import "errors"

var (
	// construction
	ErrAlreadyInitialized = errors.New("already initialized")
	ErrNotInitialized     = errors.New("bridge should be initialized before usage")
	ErrInvalidOwner       = errors.New("owner account id is invalid")

	// authorization
	ErrNotOwner = errors.New("only allowed by owner")

	// request lifecycle
	ErrRequestNotFound   = errors.New("expect request exist")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrUnfinishedRequest = errors.New("unfinished request")
	ErrNotImplemented    = errors.New("not implemented")
	ErrAmountInvalid     = errors.New("amount invalid")

	// storage
	ErrUnknownStatus = errors.New("unknown request status")
)
