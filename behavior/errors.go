package behavior

import (
	"errors"
	"fmt"
)

var (
	ErrMissingCollaborator = errors.New("behavior: missing collaborator")
	ErrInvalidConfig       = errors.New("behavior: invalid config")
	ErrUnknownWeapon       = errors.New("behavior: unknown weapon")
)

// ConfigError reports a bad field or collaborator found while building an
// actor. It unwraps to ErrMissingCollaborator or ErrInvalidConfig.
type ConfigError struct {
	Actor  string
	Field  string
	Reason string
	kind   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Actor, e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.kind
}

func missing(actor, field string) error {
	return &ConfigError{Actor: actor, Field: field, Reason: "not provided", kind: ErrMissingCollaborator}
}

func invalid(actor, field, reason string) error {
	return &ConfigError{Actor: actor, Field: field, Reason: reason, kind: ErrInvalidConfig}
}
