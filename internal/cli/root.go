// internal/cli/root.go
package ideamock

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/mwiater/ideamock/internal/appconfig"
	"github.com/mwiater/ideamock/internal/featureflags"
	"github.com/mwiater/ideamock/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "ideamock",
	Short:         "ideamock: fixture-backed mock of the idea analysis AI services",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		for _, name := range []string{"debug", "strict"} {
			if f := cmd.Flags().Lookup(name); f != nil && !f.Changed {
				_ = cmd.Flags().Set(name, strconv.FormatBool(viper.GetBool(name)))
			}
		}

		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		cfg.ConfigPath = viper.ConfigFileUsed()
		if err := cfg.Validate(); err != nil {
			return err
		}
		currentConfig = &cfg

		if err := logging.Init(currentConfig.LogFilePath()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if cfg.Debug {
			logging.LogEvent("[CONFIG] file=%q fixtures=%q", cfg.ConfigPath, cfg.FixturesDirPath())
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	defer logging.Close()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: "+appconfig.DefaultConfigPath+" when present)")

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("logFile", "", "path to the log file")
	rootCmd.PersistentFlags().String("fixturesDir", "", "directory of fixture files (default: embedded fixtures)")
	rootCmd.PersistentFlags().String("requestLogDB", "", "SQLite file that archives every mock request")
	rootCmd.PersistentFlags().String("scenario", "", "mock scenario (overrides "+string(featureflags.MockScenario)+")")
	rootCmd.PersistentFlags().Bool("simulateLatency", false, "simulate response latency (overrides "+string(featureflags.SimulateLatency)+")")
	rootCmd.PersistentFlags().Bool("variability", false, "pick a random fixture variant (overrides "+string(featureflags.MockVariability)+")")
	rootCmd.PersistentFlags().Bool("logRequests", false, "log every mock request (overrides "+string(featureflags.LogMockRequests)+")")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("logFile", rootCmd.PersistentFlags().Lookup("logFile"))
	_ = viper.BindPFlag("fixturesDir", rootCmd.PersistentFlags().Lookup("fixturesDir"))
	_ = viper.BindPFlag("requestLogDB", rootCmd.PersistentFlags().Lookup("requestLogDB"))
	_ = viper.BindPFlag(string(featureflags.MockScenario), rootCmd.PersistentFlags().Lookup("scenario"))
	_ = viper.BindPFlag(string(featureflags.SimulateLatency), rootCmd.PersistentFlags().Lookup("simulateLatency"))
	_ = viper.BindPFlag(string(featureflags.MockVariability), rootCmd.PersistentFlags().Lookup("variability"))
	_ = viper.BindPFlag(string(featureflags.LogMockRequests), rootCmd.PersistentFlags().Lookup("logRequests"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		return
	}
	viper.SetConfigName("ideamock")
	viper.AddConfigPath("config")
	viper.AddConfigPath(".")
}

// ensureConfigLoaded reads the config. A missing default config is not an error.
func ensureConfigLoaded() error {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	if currentConfig == nil {
		return &appconfig.Config{}
	}
	return currentConfig
}

// DebugEnabled returns true if debug mode is enabled.
func DebugEnabled() bool { return viper.GetBool("debug") }

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}
