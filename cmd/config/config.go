package config

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mattsolo1/grove-agile/pkg/aggregate"
	"github.com/mattsolo1/grove-agile/pkg/service"
)

var (
	cfgFile   string
	vaultPath string
	Verbose   bool
)

func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "agile")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("AGILE")
	viper.AutomaticEnv()

	// Set defaults
	cwd, err := os.Getwd()
	cobra.CheckErr(err)
	viper.SetDefault("vault", cwd)
	viper.SetDefault("data_dir", filepath.Join(os.Getenv("HOME"), ".local", "share", "agile"))
	viper.SetDefault("editor", os.Getenv("EDITOR"))
	viper.SetDefault("concurrency", aggregate.DefaultConcurrency)
	viper.SetDefault("parser", service.ParserPattern)

	if vaultPath != "" {
		viper.Set("vault", vaultPath)
	}

	// A missing config file is fine; defaults and env apply.
	_ = viper.ReadInConfig()
}

// NewLogger returns the CLI logger: warnings on stderr, debug with --verbose.
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel) // Keep it quiet unless there are issues.
	if Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

func InitService(logger *logrus.Logger) (*service.Service, error) {
	config := &service.Config{
		VaultPath:   viper.GetString("vault"),
		DataDir:     viper.GetString("data_dir"),
		Editor:      viper.GetString("editor"),
		Concurrency: viper.GetInt("concurrency"),
		Parser:      viper.GetString("parser"),
	}
	logger.WithFields(logrus.Fields{
		"vault":  config.VaultPath,
		"config": viper.ConfigFileUsed(),
	}).Debug("Initializing agile service")

	return service.New(config, logger)
}

func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/agile/config.yaml)")
	cmd.PersistentFlags().StringVarP(&vaultPath, "vault", "V", "", "Vault directory (default is the current directory)")
	cmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "v", false, "Enable debug logging")
}
