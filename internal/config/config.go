package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	DefaultBackupURL = "https://69245cb43ad095fb8473e61e.mockapi.io/backup"
	DefaultViaCEPURL = "https://viacep.com.br/ws"

	// DefaultCatalogURL no usa el puerto por defecto del servidor.
	DefaultCatalogURL = "http://localhost:9000"
)

type Config struct {
	Port     string
	AppEnv   string
	LogLevel string

	// StoreDriver selecciona el store local: "localfs" o "postgres".
	StoreDriver string
	StorageDir  string
	DatabaseDSN string

	BackupURL string

	// Sin PrimaryURL el motor usa su propio set local como fuente primaria.
	PrimaryURL          string
	PrimaryClientID     string
	PrimaryClientSecret string
	PrimaryTokenURL     string

	CatalogURL string
	ViaCEPURL  string

	AssistantDriver string
	AssistantURL    string
	OpenAIAPIKey    string
	OpenAIModel     string

	HTTPTimeout time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		AppEnv:              strings.ToLower(getEnv("APP_ENV", "development")),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		StoreDriver:         strings.ToLower(getEnv("STORE_DRIVER", "localfs")),
		StorageDir:          getEnv("STORAGE_DIR", "data"),
		DatabaseDSN:         databaseDSN(),
		BackupURL:           strings.TrimRight(getEnv("BACKUP_URL", DefaultBackupURL), "/"),
		PrimaryURL:          strings.TrimRight(getEnv("PRIMARY_URL", ""), "/"),
		PrimaryClientID:     getEnv("PRIMARY_CLIENT_ID", ""),
		PrimaryClientSecret: getEnv("PRIMARY_CLIENT_SECRET", ""),
		PrimaryTokenURL:     getEnv("PRIMARY_TOKEN_URL", ""),
		CatalogURL:          strings.TrimRight(getEnv("API_BASE_URL", DefaultCatalogURL), "/"),
		ViaCEPURL:           strings.TrimRight(getEnv("VIACEP_URL", DefaultViaCEPURL), "/"),
		AssistantDriver:     strings.ToLower(getEnv("ASSISTANT_DRIVER", "http")),
		AssistantURL:        strings.TrimRight(getEnv("ASSISTANT_URL", "http://localhost:8000"), "/"),
		OpenAIAPIKey:        getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:         getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		HTTPTimeout:         10 * time.Second,
	}

	if raw := os.Getenv("HTTP_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, err
		}
		cfg.HTTPTimeout = d
	}
	if loopsBack(cfg.CatalogURL, cfg.Port) {
		return nil, fmt.Errorf("API_BASE_URL %s apunta a este mismo servidor (PORT %s)", cfg.CatalogURL, cfg.Port)
	}
	return cfg, nil
}

// loopsBack reports whether raw is a local address on port.
func loopsBack(raw, port string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	switch u.Hostname() {
	case "localhost", "127.0.0.1", "::1", "0.0.0.0":
	default:
		return false
	}
	p := u.Port()
	if p == "" {
		p = "80"
		if u.Scheme == "https" {
			p = "443"
		}
	}
	return p == port
}

// IsDev reports whether the app runs with development defaults.
func (c *Config) IsDev() bool {
	return c.AppEnv == "" || c.AppEnv == "development" || c.AppEnv == "dev"
}

// PrimaryOAuth reports whether client credentials are configured for the primary source.
func (c *Config) PrimaryOAuth() bool {
	return c.PrimaryClientID != "" && c.PrimaryClientSecret != "" && c.PrimaryTokenURL != ""
}

func databaseDSN() string {
	if dsn := strings.TrimSpace(os.Getenv("DB_DSN")); dsn != "" {
		return dsn
	}
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", getEnv("POSTGRES_USER", "postgres"))
	pass := getEnv("DB_PASSWORD", getEnv("POSTGRES_PASSWORD", "postgres"))
	name := getEnv("DB_NAME", getEnv("POSTGRES_DB", "lojamobile"))
	ssl := getEnv("DB_SSLMODE", "disable")
	return "host=" + host + " user=" + user + " password=" + pass + " dbname=" + name + " port=" + port + " sslmode=" + ssl
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
