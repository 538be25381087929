// Package config resolves runtime settings from QRSCAN_* environment
// variables and bound command-line flags. Nothing is read from or written to
// disk; each run starts from the defaults.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/oukeidos/qrscan/internal/apperrors"
	"github.com/oukeidos/qrscan/internal/language"
	"github.com/oukeidos/qrscan/internal/logger"
	"github.com/oukeidos/qrscan/internal/scanner"
)

// EnvPrefix is the prefix for environment variables.
const EnvPrefix = "QRSCAN"

// Configuration keys.
const (
	KeyLang     = "lang"
	KeyMaxSize  = "max_size"
	KeyLogLevel = "log_level"
	KeyLogFile  = "log_file"
	KeyFormats  = "formats"
)

// localeEnv is consulted in order when no language is configured.
var localeEnv = []string{"LC_ALL", "LC_MESSAGES", "LANG"}

// Raw mirrors the configuration keys before validation.
type Raw struct {
	Lang     string `mapstructure:"lang"`
	MaxSize  int    `mapstructure:"max_size"`
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`
	Formats  string `mapstructure:"formats"`
}

// Config is the validated runtime configuration.
type Config struct {
	Language language.Lang
	MaxSide  int
	LogLevel slog.Level
	LogFile  string
	Formats  []scanner.Format
}

// Loader wraps a viper instance with the app's env and default rules.
type Loader struct {
	v      *viper.Viper
	getenv func(string) string
}

// NewLoader returns a loader on a fresh viper instance.
func NewLoader() *Loader {
	l := &Loader{v: viper.New(), getenv: os.Getenv}
	l.setupEnvironmentVariables()
	l.setDefaults()
	return l
}

func (l *Loader) setupEnvironmentVariables() {
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.AutomaticEnv()
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
}

func (l *Loader) setDefaults() {
	l.v.SetDefault(KeyLang, "")
	l.v.SetDefault(KeyMaxSize, scanner.DefaultMaxSide)
	l.v.SetDefault(KeyLogLevel, "info")
	l.v.SetDefault(KeyLogFile, "")
	l.v.SetDefault(KeyFormats, joinFormats(scanner.DefaultFormats))
}

// BindFlag binds a command-line flag to a configuration key. A nil flag is
// ignored so shells can bind only what they define.
func (l *Loader) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return nil
	}
	if err := l.v.BindPFlag(key, flag); err != nil {
		return fmt.Errorf("failed to bind flag %s: %w", flag.Name, err)
	}
	return nil
}

// Set overrides a key, taking precedence over env and flags.
func (l *Loader) Set(key string, value any) {
	l.v.Set(key, value)
}

// Load resolves and validates the configuration.
func (l *Loader) Load() (*Config, error) {
	var raw Raw
	if err := l.v.Unmarshal(&raw); err != nil {
		return nil, apperrors.New(apperrors.KindConfig, "invalid configuration", fmt.Errorf("error unmarshaling config: %w", err))
	}
	return raw.resolve(l.getenv)
}

func (r Raw) resolve(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		MaxSide: r.MaxSize,
		LogFile: strings.TrimSpace(r.LogFile),
	}

	if strings.TrimSpace(r.Lang) != "" {
		lang, err := language.Parse(r.Lang)
		if err != nil {
			return nil, apperrors.Config(err)
		}
		cfg.Language = lang
	} else {
		cfg.Language = languageFromLocale(getenv)
	}

	if r.MaxSize < 0 {
		return nil, apperrors.Config(fmt.Errorf("max_size must be >= 0, got %d", r.MaxSize))
	}

	level, ok := logger.ParseLevel(r.LogLevel)
	if !ok {
		return nil, apperrors.Config(fmt.Errorf("unknown log_level %q (use debug, info, warn or error)", r.LogLevel))
	}
	cfg.LogLevel = level

	formats, err := scanner.ParseFormats(r.Formats)
	if err != nil {
		return nil, apperrors.Config(err)
	}
	cfg.Formats = formats

	return cfg, nil
}

// languageFromLocale picks the first supported language from the process
// locale, falling back to the default.
func languageFromLocale(getenv func(string) string) language.Lang {
	if getenv == nil {
		return language.Default
	}
	for _, name := range localeEnv {
		value := getenv(name)
		if value == "" {
			continue
		}
		if lang, ok := language.Match(value); ok {
			return lang
		}
		// The first set variable wins, as in setlocale(3).
		return language.Default
	}
	return language.Default
}

func joinFormats(formats []scanner.Format) string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return strings.Join(names, ",")
}
