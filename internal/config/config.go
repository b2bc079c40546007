package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const defaultAPIURL = "https://qr-menu-backend-yukr.onrender.com/api"

type Config struct {
	APIBaseURL      string
	PublicMenuURL   string
	CredentialsFile string
	AppEnv          string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL:      os.Getenv("QRMENU_API_URL"),
		PublicMenuURL:   os.Getenv("QRMENU_PUBLIC_URL"),
		CredentialsFile: os.Getenv("QRMENU_CREDENTIALS_FILE"),
		AppEnv:          os.Getenv("APP_ENV"),
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIURL
	}
	if cfg.PublicMenuURL == "" {
		cfg.PublicMenuURL = "https://menulya.com/menu"
	}
	if cfg.CredentialsFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		cfg.CredentialsFile = filepath.Join(home, ".qrmenu", "credentials.json")
	}

	return cfg
}
