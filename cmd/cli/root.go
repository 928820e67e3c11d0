package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"transcompare/internal/core/config"
	"transcompare/internal/core/utils"
)

var (
	cfgFile string
	logger  *utils.Logger
	appCfg  *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "transcompare",
	Short: "Side-by-side translation comparison editor",
	Long: `A desktop editor and command-line toolkit for translators working on plain-text files.

Features:
• Source and target texts side by side, one pair per tab
• Encoding detection with a manual fallback (UTF-8, UTF-16, TIS-620, ...)
• Find and replace in normal, extended (\n, \t, \xHH) and regex modes
• Automatic backup of the target file on every edit
• Thai translation progress per file
• Project files that restore every open tab

GUI:
  --gui       Launch the desktop editor

The commands below expose the same engine for scripting and batch work.`,
	RunE:          runRoot,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return initializeConfig()
	}
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.transcompare/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text, json)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug mode with verbose logging")
	rootCmd.PersistentFlags().Bool("gui", false, "Launch GUI interface")

	viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func initConfig() {
	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".transcompare"))
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	config.BindEnv()

	if err := viper.ReadInConfig(); err == nil {
		// Only show config file info in debug mode
		if debugFlag, _ := rootCmd.PersistentFlags().GetBool("debug"); debugFlag {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func setDefaults() {
	config.SetDefaults()
}

func initializeConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return utils.NewValidationError("configuration validation failed", err)
	}

	level := cfg.Logging.Level
	if debugFlag, _ := rootCmd.PersistentFlags().GetBool("debug"); debugFlag {
		level = "debug"
	}
	logger = utils.NewLogger(level, cfg.Logging.Format)
	appCfg = cfg
	return nil
}

// GetLogger returns the configured logger, or a silent one when the root
// command has not run its setup.
func GetLogger() *utils.Logger {
	if logger == nil {
		return utils.NopLogger()
	}
	return logger
}

// GetConfig returns the loaded configuration, or the defaults before setup.
func GetConfig() *config.Config {
	if appCfg == nil {
		return config.Default()
	}
	return appCfg
}

func IsDebugMode() bool {
	debugFlag, _ := rootCmd.PersistentFlags().GetBool("debug")
	logLevel, _ := rootCmd.PersistentFlags().GetString("log-level")
	return debugFlag || logLevel == "debug"
}

func runRoot(cmd *cobra.Command, args []string) error {
	if gui, _ := cmd.Flags().GetBool("gui"); gui {
		return launchGUI()
	}
	return cmd.Help()
}
