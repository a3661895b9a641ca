package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/lagona162-arch/resvalue/config"
	"github.com/lagona162-arch/resvalue/internal/report"
	"github.com/lagona162-arch/resvalue/internal/resolver"
	"github.com/lagona162-arch/resvalue/internal/resource"
	"github.com/lagona162-arch/resvalue/internal/source"
	"github.com/lagona162-arch/resvalue/pkg/logger"
)

func inject(
	fs afero.Fs,
	cfg *config.Config,
	sources []source.Source,
	log *slog.Logger,
	redactor *logger.Redactor,
	stdout io.Writer,
	showReport bool,
) error {
	format, err := resource.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	rep := report.New()
	r := resolver.New(log, sources, resolver.WithRecorder(rep))

	values, err := r.ResolveAll(cfg.Keys())
	if err != nil {
		return err
	}

	resources := make([]resource.Resource, 0, len(values))
	for i, v := range values {
		redactor.AddSecret(v.Value)
		resources = append(resources, resource.Resource{
			Name:  cfg.Secrets[i].Resource,
			Value: v.Value,
		})
	}

	w := resource.NewWriter(fs, format, log)
	if err := w.Write(cfg.Path(cfg.Output.Path), resources); err != nil {
		return fmt.Errorf("write resources: %w", err)
	}

	if showReport {
		return writeYAML(stdout, rep.Snapshot())
	}
	return nil
}

func get(key string, sources []source.Source, log *slog.Logger, redactor *logger.Redactor, stdout io.Writer) error {
	v, err := resolver.New(log, sources).Resolve(key)
	if err != nil {
		return err
	}
	redactor.AddSecret(v.Value)

	_, err = fmt.Fprintln(stdout, v.Value)
	return err
}

type checkResult struct {
	Sources []source.Status `yaml:"sources"`
	Report  report.Snapshot `yaml:"report"`
}

var errCheckFailed = fmt.Errorf("%w: one or more configured secrets are not set", resolver.ErrKeyUnresolved)

// check resolves every configured key without stopping at the first failure and
// prints where each one came from. Values are never printed.
func check(cfg *config.Config, sources []source.Source, log *slog.Logger, stdout io.Writer) error {
	rep := report.New()
	r := resolver.New(log, sources, resolver.WithRecorder(rep))

	for _, key := range cfg.Keys() {
		if _, err := r.Resolve(key); err != nil {
			log.Warn("Key is not resolvable", slog.String("key", key), slog.Any("err", err))
		}
	}

	result := checkResult{Report: rep.Snapshot()}
	for _, src := range sources {
		if in, ok := src.(source.Inspector); ok {
			result.Sources = append(result.Sources, in.Status())
		} else {
			result.Sources = append(result.Sources, source.Status{Name: src.Name(), Available: true})
		}
	}

	if err := writeYAML(stdout, result); err != nil {
		return err
	}

	if !rep.Ok() {
		return errCheckFailed
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return enc.Close()
}
