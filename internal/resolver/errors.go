package resolver

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrKeyUnresolved is returned when no source supplies a value for a key.
	ErrKeyUnresolved = errors.New("configuration key unresolved")
	// ErrInvalidKey is returned when a key is empty or malformed.
	ErrInvalidKey = errors.New("invalid configuration key")
)

// UnresolvedError names the key that could not be resolved and the sources consulted.
type UnresolvedError struct {
	Key     string
	Sources []string
}

func (e *UnresolvedError) Error() string {
	if len(e.Sources) == 0 {
		return fmt.Sprintf("%s is not set: no configuration sources are configured", e.Key)
	}
	return fmt.Sprintf("%s is not set in %s. Please configure it.", e.Key, strings.Join(e.Sources, ", "))
}

func (e *UnresolvedError) Unwrap() error {
	return ErrKeyUnresolved
}
