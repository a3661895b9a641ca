package main

import (
	"log/slog"

	"github.com/spf13/afero"

	"github.com/lagona162-arch/resvalue/config"
	"github.com/lagona162-arch/resvalue/internal/source"
)

// buildSources creates the configured sources in order. Each source loads its data
// here, once.
func buildSources(fs afero.Fs, cfg *config.Config, projectProps map[string]string, log *slog.Logger) []source.Source {
	sources := make([]source.Source, 0, len(cfg.Sources))

	for _, sc := range cfg.Sources {
		switch sc.Type {
		case config.SourceDotenv:
			sources = append(sources, source.NewDotenv(fs, cfg.Path(sc.Path), log))
		case config.SourceFlags:
			sources = append(sources, source.NewMap("flags", projectProps))
		case config.SourceEnv:
			prefix := sc.Prefix
			if prefix == "" {
				prefix = source.DefaultEnvPrefix
			}
			sources = append(sources, source.NewEnv(prefix))
		case config.SourceProperties:
			paths := make([]string, 0, len(sc.Paths))
			for _, p := range sc.Paths {
				paths = append(paths, cfg.Path(p))
			}
			sources = append(sources, source.NewProperties(fs, paths, log))
		default:
			log.Warn("Unknown source type, skipping", slog.String("type", sc.Type))
		}
	}

	return sources
}
