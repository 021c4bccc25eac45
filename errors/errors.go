package errors

import (
	stderrors "errors"
	"fmt"
)

var (
	ErrWorkerPanic       = fmt.Errorf("worker panic")
	ErrOnlyCensoredFiles = fmt.Errorf("censored directory contains directories")
	ErrEmptyWords        = fmt.Errorf("no words have been found")

	// Validation
	ErrMissingField = fmt.Errorf("username and room are required")
	// Conflict
	ErrNameTaken     = fmt.Errorf("username is already used in this room")
	ErrAlreadyJoined = fmt.Errorf("connection has already joined a room")
	// Content rejected
	ErrProfanity = fmt.Errorf("message contains profanity")
	// Not found
	ErrUserNotFound = fmt.Errorf("no participant registered for connection")

	// Transport
	ErrUnknownEvent   = fmt.Errorf("unknown event")
	ErrInvalidPayload = fmt.Errorf("invalid payload")
)

// Reason is the short human-readable text sent back to the client that caused err.
// A nil error gives an empty reason.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case stderrors.Is(err, ErrMissingField):
		return "Username and room are required"
	case stderrors.Is(err, ErrNameTaken):
		return "Username is in use"
	case stderrors.Is(err, ErrAlreadyJoined):
		return "You have already joined a room"
	case stderrors.Is(err, ErrProfanity):
		return "Profanity is not allowed"
	case stderrors.Is(err, ErrUserNotFound):
		return "No user found"
	case stderrors.Is(err, ErrUnknownEvent):
		return "Unknown event"
	case stderrors.Is(err, ErrInvalidPayload):
		return "Invalid payload"
	default:
		return "Something went wrong"
	}
}

// Code is a stable label for err, used as a metric dimension.
func Code(err error) string {
	switch {
	case err == nil:
		return "ok"
	case stderrors.Is(err, ErrMissingField):
		return "missing_field"
	case stderrors.Is(err, ErrNameTaken):
		return "name_taken"
	case stderrors.Is(err, ErrAlreadyJoined):
		return "already_joined"
	case stderrors.Is(err, ErrProfanity):
		return "profanity"
	case stderrors.Is(err, ErrUserNotFound):
		return "user_not_found"
	case stderrors.Is(err, ErrUnknownEvent), stderrors.Is(err, ErrInvalidPayload):
		return "bad_request"
	default:
		return "internal"
	}
}
