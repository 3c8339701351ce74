// Package config loads the application configuration file and turns its
// human-readable light mode tokens into the in-memory mode tables the
// rendering layer consumes. The table build is fail-fast and happens once
// at startup; unrecognized tokens are fatal, never defaulted.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"x52lc-go/internal/ship"
	"x52lc-go/internal/x52pro"
)

// DefaultFilename is the configuration file looked for in the working
// directory when --config is not given.
const DefaultFilename = "x52lc.toml"

// Config is the application configuration as read from the TOML file.
type Config struct {
	Files FilesConfig `mapstructure:"files"`
	Log   LogConfig   `mapstructure:"log"`

	// Default and HardpointsDeployed are the light mode tables, one per
	// global status.
	Default            ModeTable `mapstructure:"default"`
	HardpointsDeployed ModeTable `mapstructure:"hardpoints-deployed"`
}

// FilesConfig holds the game file locations. Empty values fall back to the
// game's standard install paths.
type FilesConfig struct {
	Status   string `mapstructure:"status"`
	Journals string `mapstructure:"journals"`
	Bindings string `mapstructure:"bindings"`
}

// LogConfig holds the logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
	Dir   string `mapstructure:"dir"`
}

// ModeTable maps each status level to a [boolean, color] token pair.
type ModeTable struct {
	Inactive []string `mapstructure:"inactive"`
	Active   []string `mapstructure:"active"`
	Blocked  []string `mapstructure:"blocked"`
	Alert    []string `mapstructure:"alert"`
}

// Load reads the configuration file at the given path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetDefault("log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	return &cfg, nil
}

// ModeMappers builds the per-global-status mode mappers from the raw token
// tables. Any unknown token fails the whole build.
func (c *Config) ModeMappers() (map[ship.GlobalStatus]x52pro.ModeMapper, error) {
	defaultMapper, err := c.Default.mapper()
	if err != nil {
		return nil, fmt.Errorf("invalid [default] mode table: %w", err)
	}

	hardpointsMapper, err := c.HardpointsDeployed.mapper()
	if err != nil {
		return nil, fmt.Errorf("invalid [hardpoints-deployed] mode table: %w", err)
	}

	return map[ship.GlobalStatus]x52pro.ModeMapper{
		ship.GlobalNormal:             defaultMapper,
		ship.GlobalHardpointsDeployed: hardpointsMapper,
	}, nil
}

func (t ModeTable) mapper() (x52pro.ModeMapper, error) {
	var mapper x52pro.ModeMapper
	var err error

	if mapper.Inactive, err = parseLightMode("inactive", t.Inactive); err != nil {
		return mapper, err
	}
	if mapper.Active, err = parseLightMode("active", t.Active); err != nil {
		return mapper, err
	}
	if mapper.Blocked, err = parseLightMode("blocked", t.Blocked); err != nil {
		return mapper, err
	}
	if mapper.Alert, err = parseLightMode("alert", t.Alert); err != nil {
		return mapper, err
	}

	return mapper, nil
}

func parseLightMode(level string, tokens []string) (x52pro.LightMode, error) {
	if len(tokens) != 2 {
		return x52pro.LightMode{}, fmt.Errorf("%s: expected a [boolean, color] pair, got %d values", level, len(tokens))
	}

	boolean, err := x52pro.ParseBooleanMode(tokens[0])
	if err != nil {
		return x52pro.LightMode{}, fmt.Errorf("%s: %w", level, err)
	}

	color, err := x52pro.ParseColorMode(tokens[1])
	if err != nil {
		return x52pro.LightMode{}, fmt.Errorf("%s: %w", level, err)
	}

	return x52pro.LightMode{Boolean: boolean, Color: color}, nil
}

// StatusFilePath returns the configured status file path, or the game's
// standard location.
func (c *Config) StatusFilePath() (string, error) {
	if c.Files.Status != "" {
		return c.Files.Status, nil
	}

	dir, err := savedGamesDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "Status.json"), nil
}

// JournalDirPath returns the configured journal directory, or the game's
// standard location. The journal files live next to the status file.
func (c *Config) JournalDirPath() (string, error) {
	if c.Files.Journals != "" {
		return c.Files.Journals, nil
	}
	return savedGamesDir()
}

// BindingsFilePath returns the configured bindings file path, or the
// game's standard location.
func (c *Config) BindingsFilePath() (string, error) {
	if c.Files.Bindings != "" {
		return c.Files.Bindings, nil
	}

	base := os.Getenv("LOCALAPPDATA")
	if base == "" {
		var err error
		base, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("failed to locate user app data directory: %w", err)
		}
	}

	return filepath.Join(base, "Frontier Developments", "Elite Dangerous", "Options", "Bindings", "Custom.4.0.binds"), nil
}

func savedGamesDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user home directory: %w", err)
	}
	return filepath.Join(home, "Saved Games", "Frontier Developments", "Elite Dangerous"), nil
}

// defaultConfig is written when no configuration file exists. It documents
// the full token vocabulary.
const defaultConfig = `# x52lc configuration.
#
# Each status level maps to a [boolean, color] light mode pair. Boolean
# tokens (single LEDs such as Fire and the throttle): off, on, flash.
# Color tokens (red/green LED pairs): off, red, amber, green, or a flashing
# two-phase pair such as red-amber, green-off or amber-red.

[default]
inactive = ["off", "green"]
active = ["on", "amber"]
blocked = ["off", "red"]
alert = ["flash", "red-amber"]

[hardpoints-deployed]
inactive = ["off", "red"]
active = ["on", "amber"]
blocked = ["off", "off"]
alert = ["flash", "red-amber"]

[log]
level = "info"
# dir = "logs"

# [files]
# status = 'C:\path\to\Status.json'
# journals = 'C:\path\to\journal\dir'
# bindings = 'C:\path\to\Custom.4.0.binds'
`

// WriteDefaultFileIfMissing writes the default configuration file at the
// given path unless a file already exists there.
func WriteDefaultFileIfMissing(path string, logger *zap.Logger) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check for configuration file: %w", err)
	}

	logger.Info("Writing default configuration file", zap.String("path", path))

	if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("failed to write default configuration file: %w", err)
	}
	return nil
}
