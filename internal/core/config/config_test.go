package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "Valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "Largest font size",
			modify:  func(c *Config) { c.Editor.FontSize = 30 },
			wantErr: false,
		},
		{
			name:    "Font size too small",
			modify:  func(c *Config) { c.Editor.FontSize = 9 },
			wantErr: true,
			errMsg:  "editor.font_size must be between 10 and 30, got 9",
		},
		{
			name:    "Font size too large",
			modify:  func(c *Config) { c.Editor.FontSize = 31 },
			wantErr: true,
			errMsg:  "editor.font_size must be between 10 and 30, got 31",
		},
		{
			name:    "Unknown encoding",
			modify:  func(c *Config) { c.Editor.Encoding = "ebcdic-martian" },
			wantErr: true,
			errMsg:  `editor.encoding: unsupported encoding "ebcdic-martian"`,
		},
		{
			name:    "Missing backup dir",
			modify:  func(c *Config) { c.Backup.Dir = "" },
			wantErr: true,
			errMsg:  "backup.dir is required",
		},
		{
			name:    "Unknown log level",
			modify:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
			errMsg:  "unsupported logging.level: verbose (supported: debug, info, warn, error)",
		},
		{
			name:    "Unknown log format",
			modify:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: true,
			errMsg:  "unsupported logging.format: xml (supported: text, json)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := Default()
			tt.modify(config)

			err := config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err != nil && err.Error() != tt.errMsg {
				t.Errorf("Config.Validate() error = %v, expected %v", err.Error(), tt.errMsg)
			}
		})
	}
}

func TestConfig_ValidateNormalizesEncoding(t *testing.T) {
	config := Default()
	config.Editor.Encoding = "utf_16"

	if err := config.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
	if config.Editor.Encoding != "UTF-16" {
		t.Errorf("Expected encoding 'UTF-16', got %q", config.Editor.Encoding)
	}
}

func TestSetDefaults(t *testing.T) {
	viper.Reset()
	SetDefaults()

	config, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if config.Editor.FontSize != 10 {
		t.Errorf("Default font size should be 10, got %d", config.Editor.FontSize)
	}
	if config.Editor.Encoding != "UTF-8" {
		t.Errorf("Default encoding should be 'UTF-8', got %q", config.Editor.Encoding)
	}
	if !config.Editor.WrapAround {
		t.Errorf("Wrap around should default to true")
	}
	if !config.Backup.Enabled || config.Backup.Dir != "Backup" {
		t.Errorf("Unexpected backup defaults: %+v", config.Backup)
	}
	if config.GUI.DarkMode {
		t.Errorf("Dark mode should default to false")
	}
	if !config.GUI.WatchFiles {
		t.Errorf("File watching should default to true")
	}
	if config.Logging.Level != "info" || config.Logging.Format != "text" {
		t.Errorf("Unexpected logging defaults: %+v", config.Logging)
	}
}

func TestEnvironmentVariables(t *testing.T) {
	t.Setenv("TRANSCOMPARE_EDITOR_FONT_SIZE", "18")

	viper.Reset()
	SetDefaults()
	BindEnv()

	config, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if config.Editor.FontSize != 18 {
		t.Errorf("Environment variable not read correctly, expected 18, got %d", config.Editor.FontSize)
	}
}

// Test mapstructure tags are working correctly
func TestMapstructureTags(t *testing.T) {
	viper.Reset()

	viper.Set("editor.font_size", 22)
	viper.Set("editor.encoding", "TIS-620")
	viper.Set("editor.wrap_around", false)
	viper.Set("backup.enabled", false)
	viper.Set("backup.dir", "/tmp/bak")
	viper.Set("gui.dark_mode", true)
	viper.Set("gui.watch_files", false)
	viper.Set("logging.level", "debug")
	viper.Set("logging.format", "json")

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		t.Fatalf("Failed to unmarshal config: %v", err)
	}

	want := Config{
		Editor:  EditorConfig{FontSize: 22, Encoding: "TIS-620", WrapAround: false},
		Backup:  BackupConfig{Enabled: false, Dir: "/tmp/bak"},
		GUI:     GUIConfig{DarkMode: true, WatchFiles: false},
		Logging: LoggingConfig{Level: "debug", Format: "json"},
	}
	if config != want {
		t.Errorf("Unmarshaled config = %+v, want %+v", config, want)
	}
}

func TestSetDarkMode(t *testing.T) {
	viper.Reset()
	SetDefaults()

	if err := SetDarkMode(true); err != nil {
		t.Fatalf("SetDarkMode() without config file failed: %v", err)
	}
	if !viper.GetBool("gui.dark_mode") {
		t.Errorf("Dark mode not recorded")
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("editor:\n  font_size: 12\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	viper.Reset()
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatal(err)
	}

	if err := SetDarkMode(true); err != nil {
		t.Fatalf("SetDarkMode() failed: %v", err)
	}

	viper.Reset()
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatal(err)
	}
	if !viper.GetBool("gui.dark_mode") {
		t.Errorf("Dark mode not written to %s", path)
	}
	if viper.GetInt("editor.font_size") != 12 {
		t.Errorf("Existing settings lost, font size = %d", viper.GetInt("editor.font_size"))
	}
}
