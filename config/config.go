package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"

	"github.com/lagona162-arch/resvalue/internal/resolver"
	"github.com/lagona162-arch/resvalue/internal/resource"
)

const (
	EnvDev     = "dev"
	EnvStaging = "staging"
	EnvProd    = "prod"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

const (
	SourceDotenv     = "dotenv"
	SourceFlags      = "flags"
	SourceEnv        = "env"
	SourceProperties = "properties"
)

const (
	FormatXML  = "xml"
	FormatYAML = "yaml"
	FormatEnv  = "env"
)

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

type SourceConfig struct {
	Type   string   `mapstructure:"type"`
	Path   string   `mapstructure:"path"`
	Paths  []string `mapstructure:"paths"`
	Prefix string   `mapstructure:"prefix"`
}

type SecretConfig struct {
	Key      string `mapstructure:"key"`
	Resource string `mapstructure:"resource"`
}

type OutputConfig struct {
	Path   string `mapstructure:"path"`
	Format string `mapstructure:"format"`
}

type Config struct {
	Environment string         `mapstructure:"environment"`
	Logging     LoggingConfig  `mapstructure:"logging"`
	BaseDir     string         `mapstructure:"base_dir"`
	Sources     []SourceConfig `mapstructure:"sources"`
	Secrets     []SecretConfig `mapstructure:"secrets"`
	Output      OutputConfig   `mapstructure:"output"`
}

// Flags carries command-line overrides. Nil or empty fields leave the loaded value alone.
type Flags struct {
	ConfigFile   string
	BaseDir      *string
	EnvFile      *string
	Order        []string
	LogLevel     *string
	Environment  *string
	OutputPath   *string
	OutputFormat *string
}

func Load(flags Flags) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("RESVALUE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags.ConfigFile != "" {
		v.SetConfigFile(flags.ConfigFile)
	} else {
		v.SetConfigName("resvalue")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if flags.ConfigFile != "" || !errors.As(err, &notFound) {
			slog.Error("failed to read config file", slog.String("error", err.Error()))
			return nil, fmt.Errorf("read config: %w", err)
		}
		slog.Debug("config file not found, using defaults and environment variables")
	} else {
		slog.Debug("loaded config file", slog.String("file", v.ConfigFileUsed()))
	}

	applyFlags(v, flags)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		slog.Error("failed to unmarshal config", slog.String("error", err.Error()))
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if flags.EnvFile != nil && *flags.EnvFile != "" {
		cfg.SetEnvFile(*flags.EnvFile)
	}
	if len(flags.Order) > 0 {
		if err := cfg.Reorder(flags.Order); err != nil {
			return nil, err
		}
	}
	cfg.fillResourceNames()

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", EnvDev)
	v.SetDefault("logging.level", LogLevelInfo)
	v.SetDefault("base_dir", "android/app")
	v.SetDefault("sources", []map[string]any{
		{"type": SourceDotenv, "path": "../../.env"},
		{"type": SourceFlags},
		{"type": SourceEnv, "prefix": "ORG_GRADLE_PROJECT_"},
		{"type": SourceProperties, "paths": []string{"../gradle.properties", gradleUserProperties()}},
	})
	v.SetDefault("secrets", []map[string]any{
		{"key": "GOOGLE_MAPS_API_KEY", "resource": "google_maps_api_key"},
	})
	v.SetDefault("output.path", "build/generated/res/resvalue/values/resvalue.xml")
	v.SetDefault("output.format", FormatXML)
}

func gradleUserProperties() string {
	if home := strings.TrimSpace(os.Getenv("GRADLE_USER_HOME")); home != "" {
		return filepath.Join(home, "gradle.properties")
	}
	return "~/.gradle/gradle.properties"
}

func applyFlags(v *viper.Viper, flags Flags) {
	set := func(key string, value *string) {
		if value != nil && *value != "" {
			v.Set(key, *value)
		}
	}
	set("base_dir", flags.BaseDir)
	set("logging.level", flags.LogLevel)
	set("environment", flags.Environment)
	set("output.path", flags.OutputPath)
	set("output.format", flags.OutputFormat)
}

// SetEnvFile points every dotenv source at path.
func (c *Config) SetEnvFile(path string) {
	for i := range c.Sources {
		if c.Sources[i].Type == SourceDotenv {
			c.Sources[i].Path = path
		}
	}
}

// Reorder moves sources so their types follow order. Types not named keep their
// relative position after the named ones.
func (c *Config) Reorder(order []string) error {
	seen := make(map[string]bool, len(order))
	types := make([]string, 0, len(order))
	for _, t := range order {
		t = strings.TrimSpace(t)
		if err := validation.Validate(t,
			validation.Required,
			validation.In(SourceDotenv, SourceFlags, SourceEnv, SourceProperties),
		); err != nil {
			return fmt.Errorf("invalid source order %q: %w", t, err)
		}
		if !seen[t] {
			seen[t] = true
			types = append(types, t)
		}
	}

	reordered := make([]SourceConfig, 0, len(c.Sources))
	for _, t := range types {
		for _, s := range c.Sources {
			if s.Type == t {
				reordered = append(reordered, s)
			}
		}
	}
	for _, s := range c.Sources {
		if !seen[s.Type] {
			reordered = append(reordered, s)
		}
	}

	c.Sources = reordered
	return nil
}

func (c *Config) fillResourceNames() {
	for i := range c.Secrets {
		if c.Secrets[i].Resource == "" {
			c.Secrets[i].Resource = resource.NameFor(c.Secrets[i].Key)
		}
	}
}

// Keys returns the configured secret keys in declaration order.
func (c *Config) Keys() []string {
	keys := make([]string, 0, len(c.Secrets))
	for _, s := range c.Secrets {
		keys = append(keys, s.Key)
	}
	return keys
}

// Path resolves p against BaseDir. A leading ~/ expands to the user's home directory.
func (c *Config) Path(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(c.BaseDir, p)
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Environment,
			validation.Required,
			validation.In(EnvDev, EnvStaging, EnvProd),
		),
		validation.Field(&c.Logging,
			validation.Required,
			validation.By(func(value interface{}) error {
				lc, ok := value.(LoggingConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a LoggingConfig")
				}
				return validation.ValidateStruct(&lc,
					validation.Field(&lc.Level,
						validation.Required,
						validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError),
					),
				)
			}),
		),
		validation.Field(&c.BaseDir, validation.Required),
		validation.Field(&c.Sources,
			validation.Required,
			validation.Length(1, 0),
			validation.Each(validation.By(validateSourceConfig)),
		),
		validation.Field(&c.Secrets,
			validation.Required,
			validation.Length(1, 0),
			validation.Each(validation.By(validateSecretConfig)),
			validation.By(uniqueResources),
		),
		validation.Field(&c.Output,
			validation.Required,
			validation.By(func(value interface{}) error {
				oc, ok := value.(OutputConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be an OutputConfig")
				}
				return validation.ValidateStruct(&oc,
					validation.Field(&oc.Path, validation.Required),
					validation.Field(&oc.Format,
						validation.Required,
						validation.In(FormatXML, FormatYAML, FormatEnv),
					),
				)
			}),
		),
	)
}

func validateSourceConfig(value interface{}) error {
	sc, ok := value.(SourceConfig)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a SourceConfig")
	}

	switch sc.Type {
	case SourceDotenv:
		if strings.TrimSpace(sc.Path) == "" {
			return validation.NewError("validation_missing_path", "dotenv source requires a path")
		}
	case SourceProperties:
		if len(sc.Paths) == 0 {
			return validation.NewError("validation_missing_paths", "properties source requires at least one path")
		}
	case SourceFlags, SourceEnv:
	default:
		return validation.NewError("validation_invalid_source_type",
			fmt.Sprintf("source type must be one of %s, %s, %s, %s", SourceDotenv, SourceFlags, SourceEnv, SourceProperties))
	}

	return nil
}

func validateSecretConfig(value interface{}) error {
	sc, ok := value.(SecretConfig)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a SecretConfig")
	}

	return validation.ValidateStruct(&sc,
		validation.Field(&sc.Key,
			validation.Required,
			validation.By(func(value interface{}) error {
				return resolver.ValidateKey(value.(string))
			}),
		),
		validation.Field(&sc.Resource,
			validation.Required,
			validation.By(func(value interface{}) error {
				return resource.ValidateName(value.(string))
			}),
		),
	)
}

func uniqueResources(value interface{}) error {
	secrets, ok := value.([]SecretConfig)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a list of SecretConfig")
	}

	seen := make(map[string]string, len(secrets))
	for _, s := range secrets {
		if prev, dup := seen[s.Resource]; dup {
			return validation.NewError("validation_duplicate_resource",
				fmt.Sprintf("resource %q is produced by both %s and %s", s.Resource, prev, s.Key))
		}
		seen[s.Resource] = s.Key
	}
	return nil
}
