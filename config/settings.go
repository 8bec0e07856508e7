// Package config loads route files and the settings of a routing table,
// and reloads route files when they change.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fasthttp/routetable/routing"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix prefixes the environment variables overriding settings,
// e.g. ROUTECTL_SITE_PREFIX.
const EnvPrefix = "ROUTECTL"

// ErrInvalidSettings is returned by Settings.Validate.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings of a routing table and of the router serving it.
type Settings struct {
	Routes            string `mapstructure:"routes"`
	CaseInsensitive   bool   `mapstructure:"case_insensitive"`
	SitePrefix        string `mapstructure:"site_prefix"`
	ActionPrefix      string `mapstructure:"action_prefix"`
	DefaultAction     string `mapstructure:"default_action"`
	MaxVariableTokens int    `mapstructure:"max_variable_tokens"`
	QuerySeparator    string `mapstructure:"query_separator"`
	StaticPath        string `mapstructure:"static_path"`
	StaticDir         string `mapstructure:"static_dir"`
	LogLevel          string `mapstructure:"log_level"`
}

// SetDefaults registers every setting with its default value, so that
// environment variables can override any of them.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("routes", "routes.yml")
	v.SetDefault("case_insensitive", false)
	v.SetDefault("site_prefix", "")
	v.SetDefault("action_prefix", routing.DefaultActionPrefix)
	v.SetDefault("default_action", "index")
	v.SetDefault("max_variable_tokens", 32)
	v.SetDefault("query_separator", routing.DefaultQuerySeparator)
	v.SetDefault("static_path", "")
	v.SetDefault("static_dir", "")
	v.SetDefault("log_level", "info")
}

// NewViper returns a viper instance with defaults and environment
// overrides in place.
func NewViper() *viper.Viper {
	v := viper.New()

	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	return v
}

// LoadSettings decodes and validates the settings held by v.
func LoadSettings(v *viper.Viper) (Settings, error) {
	var s Settings

	if err := v.Unmarshal(&s); err != nil {
		return s, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}

	return s, s.Validate()
}

// Validate checks the settings for consistency.
func (s Settings) Validate() error {
	var errs []error

	if s.Routes == "" {
		errs = append(errs, errors.New("routes file is required"))
	}

	if s.MaxVariableTokens < 0 {
		errs = append(errs, fmt.Errorf("max_variable_tokens must not be negative, got %d", s.MaxVariableTokens))
	}

	if s.SitePrefix != "" && s.SitePrefix[0] != '/' {
		errs = append(errs, fmt.Errorf("site_prefix must begin with '/', got '%s'", s.SitePrefix))
	}

	if (s.StaticPath == "") != (s.StaticDir == "") {
		errs = append(errs, errors.New("static_path and static_dir must be set together"))
	} else if s.StaticPath != "" && (s.StaticPath[0] != '/' || s.StaticPath == "/") {
		errs = append(errs, fmt.Errorf("static_path must be a path below '/', got '%s'", s.StaticPath))
	}

	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("%w: %w", ErrInvalidSettings, errors.Join(errs...))
}

// Options returns the compile options matching the settings.
func (s Settings) Options(log *zap.Logger) routing.Options {
	return routing.Options{
		CaseInsensitive:   s.CaseInsensitive,
		ActionPrefix:      s.ActionPrefix,
		MaxVariableTokens: s.MaxVariableTokens,
		QuerySeparator:    s.QuerySeparator,
		Logger:            log,
	}
}

// NewLogger returns a production logger at the given level.
func NewLogger(level string) (*zap.Logger, error) {
	var lvl zapcore.Level

	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("%w: log_level: %w", ErrInvalidSettings, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

// LoadTable loads a route file and compiles it.
//
// The table is nil only when the file cannot be loaded. Declarations
// skipped by the compiler are reported by a non-nil error alongside a
// usable table.
func LoadTable(path string, opts routing.Options) (*routing.Table, error) {
	decls, err := Load(path)
	if err != nil {
		return nil, err
	}

	return routing.Compile(decls, opts)
}
