package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	roi "github.com/microvis/roi"
)

// Config is the roipaint application configuration. It is read from
// roipaint.yaml, searched in the working directory and
// $HOME/.config/roipaint, with every key overridable through
// ROIPAINT_ environment variables (ROIPAINT_BRUSH_RADIUS and so on).
type Config struct {
	Brush   BrushConfig   `mapstructure:"brush"`
	Session SessionConfig `mapstructure:"session"`
	Palette []string      `mapstructure:"palette"`
	LogFile string        `mapstructure:"log_file"`
}

type BrushConfig struct {
	Radius float64 `mapstructure:"radius"`
}

type SessionConfig struct {
	Path        string `mapstructure:"path"`
	AutosaveDir string `mapstructure:"autosave_dir"`
}

// loadConfig loads the configuration. An explicit path must exist; the
// default search falls back to defaults when no file is found.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("roipaint")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/roipaint")
	}
	v.SetEnvPrefix("ROIPAINT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("brush.radius", 10.0)
	v.SetDefault("session.path", "")
	v.SetDefault("session.autosave_dir", ".")
	v.SetDefault("palette", []string{})
	v.SetDefault("log_file", "")
}

// colours parses the configured palette into annotation colours.
func (c *Config) colours() ([]roi.Colour, error) {
	out := make([]roi.Colour, 0, len(c.Palette))
	for _, s := range c.Palette {
		col, err := roi.ParseColour(s)
		if err != nil {
			return nil, fmt.Errorf("palette entry %q: %w", s, err)
		}
		out = append(out, col)
	}
	return out, nil
}
