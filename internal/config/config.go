// Package config loads the schemaform binary configuration from a YAML file,
// SCHEMAFORM_* environment variables and bound command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/goliatone/go-schemaform/internal/logging"
)

const (
	// EnvPrefix namespaces environment overrides, e.g. SCHEMAFORM_LOG_LEVEL.
	EnvPrefix = "schemaform"
	// DefaultFile is read when --config is not given and the file exists.
	DefaultFile = "~/.schemaform.yaml"
)

// Config is the resolved binary configuration.
type Config struct {
	Schema string         `mapstructure:"schema"`
	Format string         `mapstructure:"format"`
	Record string         `mapstructure:"record"`
	Log    logging.Config `mapstructure:"log"`
	Server Server         `mapstructure:"server"`
	Render Render         `mapstructure:"render"`
	Loader Loader         `mapstructure:"loader"`
	Theme  Theme          `mapstructure:"theme"`
}

// Server configures the example web host.
type Server struct {
	Addr     string        `mapstructure:"addr"`
	Watch    bool          `mapstructure:"watch"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// Render carries form generation knobs shared by render, serve and fill.
type Render struct {
	URI               string `mapstructure:"uri"`
	FormName          string `mapstructure:"form_name"`
	Page              bool   `mapstructure:"page"`
	Title             string `mapstructure:"title"`
	Lang              string `mapstructure:"lang"`
	AssetPrefix       string `mapstructure:"asset_prefix"`
	ConstrainedBounds bool   `mapstructure:"constrained_bounds"`
	EnumPresentation  string `mapstructure:"enum_presentation"`
	MaxDepth          int    `mapstructure:"max_depth"`
}

// Loader controls remote schema fetching.
type Loader struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// Theme feeds the page renderer's go-theme configuration.
type Theme struct {
	Name       string            `mapstructure:"name"`
	Variant    string            `mapstructure:"variant"`
	Stylesheet string            `mapstructure:"stylesheet"`
	CSSVars    map[string]string `mapstructure:"css_vars"`
}

// Defaults are registered on every viper instance so environment variables
// resolve for keys that are absent from the file.
var Defaults = map[string]any{
	"schema":                    "",
	"format":                    "",
	"record":                    "",
	"log.level":                 "info",
	"log.format":                logging.FormatConsole,
	"log.output_paths":          []string{},
	"server.addr":               ":8080",
	"server.watch":              false,
	"server.debounce":           "250ms",
	"render.uri":                "",
	"render.form_name":          "",
	"render.page":               false,
	"render.title":              "",
	"render.lang":               "en",
	"render.asset_prefix":       "",
	"render.constrained_bounds": false,
	"render.enum_presentation":  "select",
	"render.max_depth":          0,
	"loader.timeout":            "10s",
	"theme.name":                "",
	"theme.variant":             "",
	"theme.stylesheet":          "",
	"theme.css_vars":            map[string]string{},
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, value := range Defaults {
		v.SetDefault(key, value)
	}
	return v
}

// Load reads path into v and decodes the result. An empty path falls back to
// DefaultFile, which may be absent; an explicit path must exist.
func Load(v *viper.Viper, path string) (Config, error) {
	if v == nil {
		return Config{}, errors.New("config: viper instance is required")
	}

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	resolved, err := homedir.Expand(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: resolve %q: %w", path, err)
	}

	if _, statErr := os.Stat(resolved); statErr == nil {
		v.SetConfigFile(resolved)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", resolved, err)
		}
	} else if explicit {
		return Config{}, fmt.Errorf("config: %w", statErr)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	return cfg, nil
}
