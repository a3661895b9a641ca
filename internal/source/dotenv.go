package source

import (
	"fmt"
	"log/slog"

	"github.com/magiconair/properties"
	"github.com/spf13/afero"
)

// Dotenv serves values from a KEY=VALUE file. Lines are read the way Java
// Properties reads them: keys are case-sensitive, '#' only starts a comment at the
// beginning of a line, and a malformed line does not invalidate the rest of the file.
type Dotenv struct {
	path  string
	props *properties.Properties
}

// NewDotenv reads the file at path once. A missing file yields an empty source.
func NewDotenv(afs afero.Fs, path string, logger *slog.Logger) *Dotenv {
	d := &Dotenv{path: path}

	props, ok := loadFile(afs, path, logger)
	if !ok {
		return d
	}

	d.props = props
	logger.Debug("loaded env file",
		slog.String("path", path),
		slog.Int("keys", props.Len()))

	return d
}

func (d *Dotenv) Name() string {
	return fmt.Sprintf("dotenv(%s)", d.path)
}

func (d *Dotenv) Lookup(key string) (string, bool) {
	if d.props == nil {
		return "", false
	}
	return d.props.Get(key)
}

func (d *Dotenv) Status() Status {
	s := Status{Name: "dotenv", Location: d.path, Available: d.props != nil}
	if d.props != nil {
		s.Keys = d.props.Len()
	}
	return s
}
