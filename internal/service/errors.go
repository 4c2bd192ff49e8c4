package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRecipeNotFound       = errors.New("recipe not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrDraftNotFound        = errors.New("no draft recipe")
	ErrForbidden            = errors.New("only the author can change this recipe")
	ErrEmptyComment         = errors.New("comment cannot be empty")
	ErrUserExists           = errors.New("user already exists")
	ErrSelfFollow           = errors.New("users cannot follow themselves")
	ErrNotPublishable       = errors.New("recipe needs at least one ingredient and one instruction")

	// ErrMissingCredential is returned by a backend that has no API key.
	ErrMissingCredential = errors.New("no API key configured")
)

// ConfigurationError is a caller or deployment mistake, such as asking for a
// backend that does not exist. It is never recovered with a mock.
type ConfigurationError struct {
	Backend string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("backend %q: %s", e.Backend, e.Reason)
}

// TransportError covers network failures and non-2xx replies from an
// external service.
type TransportError struct {
	Backend string
	Status  int
	Err     error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s returned status %d", e.Backend, e.Status)
	}
	return fmt.Sprintf("%s request failed: %v", e.Backend, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// FieldError is one rejected form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is returned when a manually authored recipe or a profile
// update is rejected. It is never persisted.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Field + ": " + e.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
