package catalog

import "os"

const (
	DefaultBaseURL  = "https://api.spotify.com/v1"
	DefaultTokenURL = "https://accounts.spotify.com/api/token"
)

type Config struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	TokenURL     string
}

func NewConfig() *Config {
	cfg := &Config{
		ClientID:     os.Getenv("CATALOG_CLIENT_ID"),
		ClientSecret: os.Getenv("CATALOG_CLIENT_SECRET"),
		BaseURL:      os.Getenv("CATALOG_BASE_URL"),
		TokenURL:     os.Getenv("CATALOG_TOKEN_URL"),
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = DefaultTokenURL
	}
	return cfg
}
