package config

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v4"
)

// OIDCProvider configures one upstream identity provider for the optional
// auth layer.
type OIDCProvider struct {
	Id           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	ClientID     string   `yaml:"client_id"`
	ClientSecret string   `yaml:"client_secret"`
	IssuerURL    string   `yaml:"issuer_url"`
	RedirectURL  string   `yaml:"redirect_url"`
	Scopes       []string `yaml:"scopes"`
}

type Config struct {
	ListenAddr  string `yaml:"listen_addr"`
	APIBaseURL  string `yaml:"api_base_url"`
	DBPath      string `yaml:"db_path"`
	AuthEnabled bool   `yaml:"auth_enabled"`

	OIDCProviders []OIDCProvider `yaml:"oidc_providers"`

	// Reminder settings. The resend API key is deliberately env-only so it
	// never lands in a config file.
	NotifyEmail      string `yaml:"notify_email"`
	RemindWindowMins int    `yaml:"remind_window_minutes"`
}

func defaults() Config {
	return Config{
		ListenAddr:       ":8080",
		APIBaseURL:       "http://localhost:8080",
		DBPath:           "circadian.db",
		RemindWindowMins: 60,
	}
}

// Load reads the YAML config named by CIRCADIAN_CONFIG, falling back to
// config.yaml in the working directory. A missing explicit path is an
// error; a missing default path yields the built-in defaults.
func Load() (*Config, error) {
	path := os.Getenv("CIRCADIAN_CONFIG")
	explicit := path != ""
	if !explicit {
		path = "config.yaml"
	}

	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

// ResendAPIKey returns the reminder email API key from the environment.
func ResendAPIKey() string {
	return os.Getenv("CIRCADIAN_RESEND_API_KEY")
}
