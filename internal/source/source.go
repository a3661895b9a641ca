package source

import (
	"errors"
	"fmt"
)

// ErrSourceUnavailable marks a source whose backing data could not be loaded.
// It is logged and absorbed; sources in that state report every key as absent.
var ErrSourceUnavailable = errors.New("source unavailable")

// Source answers whether a key has a value and what it is.
type Source interface {
	Name() string
	Lookup(key string) (string, bool)
}

// Inspector is implemented by sources that can describe where their data came from.
type Inspector interface {
	Status() Status
}

type Status struct {
	Name      string `yaml:"name"`
	Location  string `yaml:"location,omitempty"`
	Available bool   `yaml:"available"`
	Keys      int    `yaml:"keys"`
}

// Func adapts a lookup closure to the Source interface.
type Func struct {
	name string
	fn   func(key string) (string, bool)
}

func NewFunc(name string, fn func(key string) (string, bool)) *Func {
	return &Func{name: name, fn: fn}
}

func (f *Func) Name() string {
	return f.name
}

func (f *Func) Lookup(key string) (string, bool) {
	if f.fn == nil {
		return "", false
	}
	return f.fn(key)
}

func unavailable(location string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, location, err)
}
