package source

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"log/slog"
	"strings"

	"github.com/magiconair/properties"
	"github.com/spf13/afero"
)

// Properties serves values from one or more Java-style properties files, the format
// of gradle.properties. Files listed later override earlier ones.
type Properties struct {
	paths  []string
	loaded []string
	props  *properties.Properties
}

func NewProperties(afs afero.Fs, paths []string, logger *slog.Logger) *Properties {
	p := &Properties{
		paths: append([]string(nil), paths...),
		props: properties.NewProperties(),
	}
	p.props.DisableExpansion = true

	for _, path := range paths {
		loaded, ok := loadFile(afs, path, logger)
		if !ok {
			continue
		}
		p.props.Merge(loaded)
		p.loaded = append(p.loaded, path)
	}

	return p
}

func (p *Properties) Name() string {
	return fmt.Sprintf("properties(%s)", strings.Join(p.paths, ", "))
}

func (p *Properties) Lookup(key string) (string, bool) {
	return p.props.Get(key)
}

func (p *Properties) Status() Status {
	return Status{
		Name:      "properties",
		Location:  strings.Join(p.loaded, ", "),
		Available: len(p.loaded) > 0,
		Keys:      p.props.Len(),
	}
}

// loadFile parses a properties-format file with ${...} expansion disabled, so values
// come back exactly as written. ok is false when the file is missing or unusable.
func loadFile(afs afero.Fs, path string, logger *slog.Logger) (props *properties.Properties, ok bool) {
	buf, err := afero.ReadFile(afs, path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			logger.Debug("file not found, treating as empty",
				slog.String("path", path))
			return nil, false
		}
		logger.Warn("file could not be read, treating as empty",
			slog.String("path", path),
			slog.Any("err", unavailable(path, err)))
		return nil, false
	}

	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	props, err = loader.LoadBytes(buf)
	if err != nil {
		logger.Warn("file could not be parsed, treating as empty",
			slog.String("path", path),
			slog.Any("err", unavailable(path, err)))
		return nil, false
	}
	props.DisableExpansion = true

	return props, true
}
