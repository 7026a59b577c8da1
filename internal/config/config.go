package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	DataDir  string         `yaml:"data_dir" mapstructure:"data_dir"`
	Storage  StorageConfig  `yaml:"storage" mapstructure:"storage"`
	Provider ProviderConfig `yaml:"provider" mapstructure:"provider"`
	Cache    CacheConfig    `yaml:"cache" mapstructure:"cache"`
	Speech   SpeechConfig   `yaml:"speech" mapstructure:"speech"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
	Theme    string         `yaml:"theme" mapstructure:"theme"`
}

type StorageConfig struct {
	// Backend is "file" or "sqlite".
	Backend string `yaml:"backend" mapstructure:"backend"`
}

type ProviderConfig struct {
	Model      string        `yaml:"model" mapstructure:"model"`
	APIKey     string        `yaml:"api_key" mapstructure:"api_key"`
	BaseURL    string        `yaml:"base_url" mapstructure:"base_url"`
	MaxRetries int           `yaml:"max_retries" mapstructure:"max_retries"`
	Timeout    time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

type CacheConfig struct {
	// MaxEntries caps the response cache. 0 keeps every entry.
	MaxEntries int `yaml:"max_entries" mapstructure:"max_entries"`
}

type SpeechConfig struct {
	Command string `yaml:"command" mapstructure:"command"`
	Voice   string `yaml:"voice" mapstructure:"voice"`
}

type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
	// File defaults to wortschatz.log in the data directory.
	File string `yaml:"file" mapstructure:"file"`
}

var envVarRe = regexp.MustCompile(`\$([A-Z_][A-Z0-9_]*)`)

func expandEnv(s string) string {
	return envVarRe.ReplaceAllStringFunc(s, func(match string) string {
		name := strings.TrimPrefix(match, "$")
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return match
	})
}

func DefaultConfig() *Config {
	return &Config{
		DataDir: defaultDataDir(),
		Storage: StorageConfig{Backend: "file"},
		Provider: ProviderConfig{
			Model:      "gemini-2.5-flash",
			APIKey:     "$GEMINI_API_KEY",
			BaseURL:    "https://generativelanguage.googleapis.com",
			MaxRetries: 2,
		},
		Speech: SpeechConfig{Command: "espeak-ng", Voice: "de"},
		Log:    LogConfig{Level: "info"},
		Theme:  "green",
	}
}

func defaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "wortschatz")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "wortschatz")
}

// Load reads config.yaml from the working directory or the user config
// directory, then applies WORTSCHATZ_* environment overrides.
func Load() (*Config, error) {
	return load(viper.New())
}

// LoadFile reads an explicit config file.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()
	setDefaults(v, cfg)

	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "wortschatz"))
		}
		home, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(home, ".config", "wortschatz"))
	}

	v.SetEnvPrefix("WORTSCHATZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: %w", err)
		}
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg.Provider.APIKey = expandEnv(cfg.Provider.APIKey)
	if strings.HasPrefix(cfg.Provider.APIKey, "$") {
		// Unset variable: no default key.
		cfg.Provider.APIKey = ""
	}
	cfg.DataDir = expandEnv(cfg.DataDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override keys that
// are absent from the file.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("data_dir", cfg.DataDir)
	v.SetDefault("storage.backend", cfg.Storage.Backend)
	v.SetDefault("provider.model", cfg.Provider.Model)
	v.SetDefault("provider.api_key", cfg.Provider.APIKey)
	v.SetDefault("provider.base_url", cfg.Provider.BaseURL)
	v.SetDefault("provider.max_retries", cfg.Provider.MaxRetries)
	v.SetDefault("provider.timeout", cfg.Provider.Timeout)
	v.SetDefault("cache.max_entries", cfg.Cache.MaxEntries)
	v.SetDefault("speech.command", cfg.Speech.Command)
	v.SetDefault("speech.voice", cfg.Speech.Voice)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("theme", cfg.Theme)
}

// LogFile is the path the logger writes to.
func (c *Config) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(c.DataDir, "wortschatz.log")
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("config: data_dir is required")
	}
	switch c.Storage.Backend {
	case "file", "sqlite":
	default:
		return fmt.Errorf("config: storage.backend %q is invalid (must be file or sqlite)", c.Storage.Backend)
	}
	if c.Provider.Model == "" {
		return fmt.Errorf("config: provider.model is required")
	}
	if c.Provider.MaxRetries < 0 {
		return fmt.Errorf("config: provider.max_retries must not be negative")
	}
	if c.Provider.Timeout < 0 {
		return fmt.Errorf("config: provider.timeout must not be negative")
	}
	if c.Cache.MaxEntries < 0 {
		return fmt.Errorf("config: cache.max_entries must not be negative")
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	if c.Theme == "" {
		c.Theme = "green"
	}
	return nil
}
