package types

import (
	"errors"
	"strings"
)

// Error kinds. Concrete errors wrap one of these (see logger.ErrorWithType),
// so callers classify them with errors.Is.
var (
	ErrValidation         = errors.New("validation error")
	ErrAuthentication     = errors.New("authentication error")
	ErrAuthorization      = errors.New("authorization error")
	ErrSelfInteraction    = errors.New("self interaction error")
	ErrInvalidTransition  = errors.New("invalid transition error")
	ErrUniquenessConflict = errors.New("uniqueness conflict")
	ErrNotFound           = errors.New("not found")
)

var errorKinds = []error{
	ErrValidation,
	ErrAuthentication,
	ErrAuthorization,
	ErrSelfInteraction,
	ErrInvalidTransition,
	ErrUniquenessConflict,
	ErrNotFound,
}

// Kind returns the error kind err wraps, or nil for unclassified errors.
func Kind(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range errorKinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// Reason strips the kind prefix from a classified error, leaving the
// message that is safe to show to the client.
func Reason(err error) string {
	kind := Kind(err)
	if kind == nil {
		return ""
	}

	msg := err.Error()
	if idx := strings.LastIndex(msg, kind.Error()+": "); idx >= 0 {
		return msg[idx+len(kind.Error())+2:]
	}
	return kind.Error()
}
