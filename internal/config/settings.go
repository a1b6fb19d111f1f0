package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Settings are the runtime options of the finplan binaries
type Settings struct {
	Server  ServerSettings  `mapstructure:"server"`
	Log     LogSettings     `mapstructure:"log"`
	Advisor AdvisorSettings `mapstructure:"advisor"`
	// RulesPath points at a rules YAML file; empty uses the built-in tables
	RulesPath string `mapstructure:"rules_path"`
}

type ServerSettings struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console or json
}

type AdvisorSettings struct {
	Enabled bool          `mapstructure:"enabled"`
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// EnvPrefix prefixes every environment override, e.g. FINPLAN_SERVER_ADDR
const EnvPrefix = "FINPLAN"

// LoadSettings reads settings from defaults, an optional YAML file, a .env
// file in the working directory and FINPLAN_* environment variables, in
// increasing order of precedence. An empty path searches for finplan.yaml
// in the working directory and $HOME/.config/finplan.
func LoadSettings(path string) (*Settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("finplan")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home + "/.config/finplan")
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading settings: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	if s.Advisor.APIKey == "" {
		s.Advisor.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	return &s, nil
}

// DefaultSettings returns the settings used when nothing is configured
func DefaultSettings() *Settings {
	v := viper.New()
	setDefaults(v)
	var s Settings
	_ = v.Unmarshal(&s)
	return &s
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("advisor.enabled", false)
	v.SetDefault("advisor.base_url", "https://api.openai.com/v1")
	v.SetDefault("advisor.model", "gpt-4o-mini")
	v.SetDefault("advisor.api_key", "")
	v.SetDefault("advisor.timeout", 20*time.Second)
	v.SetDefault("rules_path", "")
}

// Validate checks settings values
func (s *Settings) Validate() error {
	switch s.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", s.Log.Level)
	}
	switch s.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", s.Log.Format)
	}
	if s.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if s.Advisor.Timeout <= 0 {
		return fmt.Errorf("advisor.timeout must be positive")
	}
	if s.Advisor.Enabled && s.Advisor.APIKey == "" {
		return fmt.Errorf("advisor.api_key (or OPENAI_API_KEY) is required when the advisor is enabled")
	}
	return nil
}
