package resolver

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/lagona162-arch/resvalue/internal/source"
)

var keyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.\-]*$`)

// Value is a resolved configuration value and the source that supplied it.
type Value struct {
	Key    string
	Value  string
	Source string
}

// Recorder receives resolution outcomes. It never sees values.
type Recorder interface {
	RecordLookup(source string, hit bool)
	RecordResolved(key, source string)
	RecordUnresolved(key string)
}

// Resolve returns the first non-blank value for key, trimmed, consulting sources in order.
func Resolve(key string, sources ...source.Source) (Value, error) {
	return resolve(key, sources, nil)
}

func ValidateKey(key string) error {
	if err := validation.Validate(key,
		validation.Required,
		validation.Match(keyPattern).Error("must start with a letter or underscore and contain only letters, digits, '_', '.' or '-'"),
	); err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidKey, key, err)
	}
	return nil
}

func resolve(key string, sources []source.Source, rec Recorder) (Value, error) {
	if err := ValidateKey(key); err != nil {
		return Value{}, err
	}

	names := make([]string, 0, len(sources))
	for _, src := range sources {
		names = append(names, src.Name())

		raw, ok := src.Lookup(key)
		value := strings.TrimSpace(raw)
		hit := ok && value != ""
		if rec != nil {
			rec.RecordLookup(src.Name(), hit)
		}
		if hit {
			if rec != nil {
				rec.RecordResolved(key, src.Name())
			}
			return Value{Key: key, Value: value, Source: src.Name()}, nil
		}
	}

	if rec != nil {
		rec.RecordUnresolved(key)
	}
	return Value{}, &UnresolvedError{Key: key, Sources: names}
}

// Resolver resolves keys against a fixed source chain.
type Resolver struct {
	sources  []source.Source
	logger   *slog.Logger
	recorder Recorder
}

type Option func(*Resolver)

func WithRecorder(rec Recorder) Option {
	return func(r *Resolver) {
		r.recorder = rec
	}
}

func New(logger *slog.Logger, sources []source.Source, opts ...Option) *Resolver {
	r := &Resolver{
		sources: append([]source.Source(nil), sources...),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resolver) Resolve(key string) (Value, error) {
	v, err := resolve(key, r.sources, r.recorder)
	if err != nil {
		return Value{}, err
	}

	r.logger.Debug("resolved configuration key",
		slog.String("key", key),
		slog.String("source", v.Source))

	return v, nil
}

// ResolveAll resolves keys in order and stops at the first failure. On error no
// values are returned.
func (r *Resolver) ResolveAll(keys []string) ([]Value, error) {
	values := make([]Value, 0, len(keys))
	for _, key := range keys {
		v, err := r.Resolve(key)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}
