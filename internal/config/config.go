package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// GetVersionInfo returns a formatted version string
func GetVersionInfo() string {
	return fmt.Sprintf("chatterm version %s, commit %s, built at %s", version, commit, date)
}

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Storage StorageConfig `mapstructure:"storage"`
}

// ServerConfig describes the remote chat backend this client talks to.
type ServerConfig struct {
	BaseURL string            `mapstructure:"base_url"`
	Timeout string            `mapstructure:"timeout"`
	Headers map[string]string `mapstructure:"headers"`
}

// RequestTimeout parses the configured timeout, falling back to 30s.
func (s ServerConfig) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(s.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

type LoggingConfig struct {
	Level             string `mapstructure:"level"`
	Format            string `mapstructure:"format"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
	OutputPath        string `mapstructure:"output_path"`
	AppendToFile      bool   `mapstructure:"append_to_file"`
	DisableConsole    bool   `mapstructure:"disable_console"`
}

// StorageConfig controls where the session token is persisted. An
// ephemeral store keeps the token in memory only, so the session does
// not survive a restart.
type StorageConfig struct {
	Path      string `mapstructure:"path"`
	Ephemeral bool   `mapstructure:"ephemeral"`
}

// TokenDBPath returns the configured token database path, defaulting to
// ~/.chatterm/session.db.
func (s StorageConfig) TokenDBPath() (string, error) {
	if s.Path != "" {
		return s.Path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".chatterm", "session.db"), nil
}

// InitFlags initializes command line flags (without parsing)
func InitFlags() {
	pflag.String("server.base_url", "", "Base URL of the chat backend")
	pflag.Bool("storage.ephemeral", false, "Keep the session token in memory only")
	// Note: no pflag.Parse() here as it's called in main.go
}

// Default returns the configuration written by `chatterm config init`.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL: "http://localhost:8080",
			Timeout: "30s",
		},
		Logging: LoggingConfig{
			Level:          "info",
			Format:         "json",
			OutputPath:     "chatterm.log",
			AppendToFile:   true,
			DisableConsole: true,
		},
		Storage: StorageConfig{},
	}
}

func Load() (*Config, error) {
	viper.Reset() // Ensure clean state

	viper.SetEnvPrefix("CHATTERM")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		return nil, err
	}

	setDefaults()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".chatterm"))
	}

	if err := viper.ReadInConfig(); err != nil {
		// A config file is optional; flags and env can carry everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Flag and env values win over the config file.
	if baseURL := viper.GetString("server.base_url"); baseURL != "" {
		config.Server.BaseURL = baseURL
	}
	if viper.GetBool("storage.ephemeral") {
		config.Storage.Ephemeral = true
	}

	if config.Server.BaseURL == "" {
		return nil, fmt.Errorf("server base URL is required, please adjust the config or pass --server.base_url or CHATTERM_SERVER_BASE_URL environment variable")
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.base_url", "")
	viper.SetDefault("server.timeout", "30s")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.output_path", "chatterm.log")
	viper.SetDefault("logging.append_to_file", true)
	// The TUI owns stdout, so console logging is off unless asked for.
	viper.SetDefault("logging.disable_console", true)
}
