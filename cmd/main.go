package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"github.com/spf13/afero"

	"github.com/lagona162-arch/resvalue/config"
	"github.com/lagona162-arch/resvalue/internal/resolver"
	"github.com/lagona162-arch/resvalue/pkg/logger"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(afero.NewOsFs(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(fs afero.Fs, args []string, stdout, stderr io.Writer) int {
	app := kingpin.New("resvalue", "Resolves build secrets through an ordered chain of sources and writes them as generated resources.")
	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)

	configFile := app.Flag("config", "Path to a resvalue YAML configuration file.").String()
	baseDir := app.Flag("base-dir", "Directory relative paths are resolved against.").String()
	envFile := app.Flag("env-file", "Path of the KEY=VALUE env file, relative to --base-dir.").String()
	projectProps := app.Flag("project-prop", "Build property as key=value (repeatable).").Short('P').StringMap()
	order := app.Flag("order", "Comma-separated source order, e.g. dotenv,flags,env,properties.").String()
	logLevel := app.Flag("log-level", "Log level: debug, info, warn, error.").String()
	environment := app.Flag("environment", "Environment: dev, staging, prod.").String()

	injectCmd := app.Command("inject", "Resolve every configured secret and write the resource file.").Default()
	outputPath := injectCmd.Flag("output", "Output path, relative to --base-dir.").Short('o').String()
	outputFormat := injectCmd.Flag("format", "Output format: xml, yaml, env.").String()
	showReport := injectCmd.Flag("report", "Print the resolution report to stdout.").Bool()

	getCmd := app.Command("get", "Resolve a single key and print its value.")
	getKey := getCmd.Arg("key", "Configuration key to resolve.").Required().String()

	checkCmd := app.Command("check", "Show which source supplies each configured secret, without values.")

	command, err := app.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "resvalue: %v\n", err)
		return exitUsage
	}

	flags := config.Flags{
		ConfigFile:   *configFile,
		BaseDir:      baseDir,
		EnvFile:      envFile,
		Order:        splitList(*order),
		LogLevel:     logLevel,
		Environment:  environment,
		OutputPath:   outputPath,
		OutputFormat: outputFormat,
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(stderr, "resvalue: failed to load config: %v\n", err)
		return exitError
	}

	log, redactor := logger.New(stderr, cfg.Logging.Level, false, cfg.Environment)

	sources := buildSources(fs, cfg, *projectProps, log)

	switch command {
	case injectCmd.FullCommand():
		err = inject(fs, cfg, sources, log, redactor, stdout, *showReport)
	case getCmd.FullCommand():
		err = get(*getKey, sources, log, redactor, stdout)
	case checkCmd.FullCommand():
		err = check(cfg, sources, log, stdout)
	}

	if err != nil {
		log.Error("resvalue failed", slog.Any("err", err))
		fmt.Fprintf(stderr, "resvalue: %s\n", redactor.Redact(err.Error()))
		if errors.Is(err, resolver.ErrInvalidKey) {
			return exitUsage
		}
		return exitError
	}

	return exitOK
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
