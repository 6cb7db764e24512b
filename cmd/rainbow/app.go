package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/alexisbeaulieu97/rainbow/internal/config"
	"github.com/alexisbeaulieu97/rainbow/internal/logger"
	"github.com/alexisbeaulieu97/rainbow/internal/scanner"
	"github.com/alexisbeaulieu97/rainbow/internal/theme"
)

const localConfigFile = ".rainbow.yaml"

// appContext bundles the services every command builds from configuration.
type appContext struct {
	cfg        *config.Config
	configPath string
	log        *logger.Logger
	registry   *theme.Registry
	themeName  string
	theme      theme.Theme
	scanner    *scanner.Scanner
}

// loadApp resolves configuration for cmd and builds the shared services.
// An unknown theme is logged and replaced by the empty theme.
func loadApp(cmd *cobra.Command, flags *rootFlags) (*appContext, error) {
	v := viper.New()
	v.SetEnvPrefix("rainbow")
	_ = v.BindEnv("theme")
	_ = v.BindEnv("debug")
	_ = v.BindPFlag("theme", cmd.Flag("theme"))

	path, err := resolveConfigPath(v, flags.configPath)
	if err != nil {
		return nil, newCommandError(cmd.Name(), "locating configuration", err, "Check the --config path.")
	}

	cfg := config.Defaults()
	if path != "" {
		parsed, err := config.ParseConfig(path)
		if err != nil {
			return nil, newCommandError(cmd.Name(), "loading configuration", err, "Fix the reported field and try again.")
		}
		cfg = *parsed
	}

	if name := v.GetString("theme"); name != "" {
		cfg.Theme = name
	}
	cfg.Debug = cfg.Debug || v.GetBool("debug")

	level := "info"
	if flags.verbose || cfg.Debug {
		level = "debug"
	}
	log, err := logger.New(logger.Options{Level: level, HumanReadable: true, Writer: cmd.ErrOrStderr()})
	if err != nil {
		return nil, newCommandError(cmd.Name(), "creating logger", err, "")
	}

	registry := cfg.Registry()
	active, err := registry.Active(cfg.Theme)
	if err != nil {
		log.Error(err, "falling back to an empty theme")
	}

	if path != "" {
		log.Debug("using config " + path)
	}

	return &appContext{
		cfg:        &cfg,
		configPath: path,
		log:        log,
		registry:   registry,
		themeName:  cfg.Theme,
		theme:      active,
		scanner:    scanner.New(cfg.Scan),
	}, nil
}

// resolveConfigPath finds the configuration file: the explicit path, then
// .rainbow.yaml in the working directory, then the user config directory.
// It returns "" when no file exists.
func resolveConfigPath(v *viper.Viper, explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", err
		}
		return explicit, nil
	}

	if _, err := os.Stat(localConfigFile); err == nil {
		v.SetConfigFile(localConfigFile)
	} else {
		home, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(home, ".config", "rainbow"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		// The typed parser reports syntax errors with their line.
		if used := v.ConfigFileUsed(); used != "" {
			return used, nil
		}
		return "", err
	}
	return v.ConfigFileUsed(), nil
}

// writableConfigPath is where commands persist settings.
func (a *appContext) writableConfigPath() string {
	if a.configPath != "" {
		return a.configPath
	}
	return localConfigFile
}
