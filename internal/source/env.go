package source

import (
	"fmt"
	"os"
	"strings"
)

// DefaultEnvPrefix is the prefix Gradle uses to expose project properties through
// the environment.
const DefaultEnvPrefix = "ORG_GRADLE_PROJECT_"

// Env serves values from process environment variables named prefix+key.
// Names are case-sensitive.
type Env struct {
	prefix  string
	environ func() []string
}

func NewEnv(prefix string) *Env {
	return &Env{prefix: prefix, environ: os.Environ}
}

// WithEnviron replaces the environment listing, mainly for tests. Lookups and
// Status both read from it.
func (e *Env) WithEnviron(fn func() []string) *Env {
	e.environ = fn
	return e
}

func (e *Env) Name() string {
	if e.prefix == "" {
		return "env"
	}
	return fmt.Sprintf("env(%s)", e.prefix)
}

func (e *Env) Lookup(key string) (string, bool) {
	want := e.prefix + key
	for _, kv := range e.environ() {
		name, value, found := strings.Cut(kv, "=")
		if found && name == want {
			return value, true
		}
	}
	return "", false
}

func (e *Env) Status() Status {
	keys := 0
	for _, kv := range e.environ() {
		name, _, found := strings.Cut(kv, "=")
		if found && strings.HasPrefix(name, e.prefix) {
			keys++
		}
	}
	return Status{Name: "env", Location: e.prefix, Available: true, Keys: keys}
}
