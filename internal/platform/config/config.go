package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "CVP"

type LogConfig struct {
	File  string
	Level string
}

type Config struct {
	APIURL       string
	StateDir     string
	StorePath    string
	CachePath    string
	PollInterval time.Duration
	HTTPTimeout  time.Duration
	Log          LogConfig
}

// Options carries command-line overrides. Empty fields fall through to the
// config file, the environment and finally the defaults.
type Options struct {
	ConfigFile string
	APIURL     string
	StateDir   string
	LogLevel   string
}

func New(opts Options) (Config, error) {
	v := viper.New()
	v.SetDefault("api_url", "http://localhost:5000")
	v.SetDefault("state_dir", defaultStateDir())
	v.SetDefault("poll_interval", 30*time.Second)
	v.SetDefault("http_timeout", 15*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configFile := opts.ConfigFile
	if configFile == "" {
		stateDir := opts.StateDir
		if stateDir == "" {
			stateDir = v.GetString("state_dir")
		}
		configFile = filepath.Join(stateDir, "config.yaml")
	}
	if _, err := os.Stat(configFile); err == nil {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else if !os.IsNotExist(err) || opts.ConfigFile != "" {
		return Config{}, fmt.Errorf("stat config %s: %w", configFile, err)
	}

	if opts.APIURL != "" {
		v.Set("api_url", opts.APIURL)
	}
	if opts.StateDir != "" {
		v.Set("state_dir", opts.StateDir)
	}
	if opts.LogLevel != "" {
		v.Set("log.level", opts.LogLevel)
	}

	cfg := Config{
		APIURL:       strings.TrimRight(strings.TrimSpace(v.GetString("api_url")), "/"),
		StateDir:     v.GetString("state_dir"),
		PollInterval: v.GetDuration("poll_interval"),
		HTTPTimeout:  v.GetDuration("http_timeout"),
		Log: LogConfig{
			File:  v.GetString("log.file"),
			Level: v.GetString("log.level"),
		},
	}
	if cfg.APIURL == "" {
		return Config{}, fmt.Errorf("api url is required")
	}
	if cfg.StateDir == "" {
		return Config{}, fmt.Errorf("state dir is required")
	}
	if cfg.PollInterval <= 0 {
		return Config{}, fmt.Errorf("poll interval must be positive, got %s", cfg.PollInterval)
	}
	cfg.StorePath = filepath.Join(cfg.StateDir, "storage.json")
	cfg.CachePath = filepath.Join(cfg.StateDir, "cvp.db")
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(cfg.StateDir, "cvp.log")
	}
	return cfg, nil
}

func defaultStateDir() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ".cvp"
	}
	return filepath.Join(dir, "cvp")
}
