package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"transcompare/internal/core/charset"
	"transcompare/internal/core/workspace"
)

// EnvPrefix prefixes environment overrides: editor.font_size is read from
// TRANSCOMPARE_EDITOR_FONT_SIZE.
const EnvPrefix = "TRANSCOMPARE"

type Config struct {
	Editor  EditorConfig  `yaml:"editor" mapstructure:"editor"`
	Backup  BackupConfig  `yaml:"backup" mapstructure:"backup"`
	GUI     GUIConfig     `yaml:"gui" mapstructure:"gui"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

type EditorConfig struct {
	FontSize   int    `yaml:"font_size" mapstructure:"font_size"`
	Encoding   string `yaml:"encoding" mapstructure:"encoding"`
	WrapAround bool   `yaml:"wrap_around" mapstructure:"wrap_around"`
}

type BackupConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Dir     string `yaml:"dir" mapstructure:"dir"`
}

type GUIConfig struct {
	DarkMode   bool `yaml:"dark_mode" mapstructure:"dark_mode"`
	WatchFiles bool `yaml:"watch_files" mapstructure:"watch_files"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

func Load() (*Config, error) {
	// The root command has already configured the global viper instance.
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// Default returns the configuration used when no file, flag or environment
// variable overrides anything.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			FontSize:   workspace.DefaultFontSize,
			Encoding:   charset.UTF8,
			WrapAround: true,
		},
		Backup: BackupConfig{
			Enabled: true,
			Dir:     "Backup",
		},
		GUI: GUIConfig{
			DarkMode:   false,
			WatchFiles: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// SetDefaults registers Default() with viper.
func SetDefaults() {
	d := Default()
	viper.SetDefault("editor.font_size", d.Editor.FontSize)
	viper.SetDefault("editor.encoding", d.Editor.Encoding)
	viper.SetDefault("editor.wrap_around", d.Editor.WrapAround)
	viper.SetDefault("backup.enabled", d.Backup.Enabled)
	viper.SetDefault("backup.dir", d.Backup.Dir)
	viper.SetDefault("gui.dark_mode", d.GUI.DarkMode)
	viper.SetDefault("gui.watch_files", d.GUI.WatchFiles)
	viper.SetDefault("logging.level", d.Logging.Level)
	viper.SetDefault("logging.format", d.Logging.Format)
}

func BindEnv() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

func (c *Config) Validate() error {
	if c.Editor.FontSize < workspace.MinFontSize || c.Editor.FontSize > workspace.MaxFontSize {
		return fmt.Errorf("editor.font_size must be between %d and %d, got %d",
			workspace.MinFontSize, workspace.MaxFontSize, c.Editor.FontSize)
	}
	name, err := charset.Normalize(c.Editor.Encoding)
	if err != nil {
		return fmt.Errorf("editor.encoding: unsupported encoding %q", c.Editor.Encoding)
	}
	c.Editor.Encoding = name

	if c.Backup.Dir == "" {
		return fmt.Errorf("backup.dir is required")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported logging.level: %s (supported: debug, info, warn, error)", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported logging.format: %s (supported: text, json)", c.Logging.Format)
	}
	return nil
}

// SetDarkMode records the theme choice and writes it to the config file in
// use, if any. Without a config file the choice lasts for the session.
func SetDarkMode(dark bool) error {
	viper.Set("gui.dark_mode", dark)
	if viper.ConfigFileUsed() == "" {
		return nil
	}
	if err := viper.WriteConfig(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}
