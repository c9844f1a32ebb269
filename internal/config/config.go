package config

import (
	"flag"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// API settings
	APIBaseURL    string `env:"API_BASE_URL"`
	UploadBaseURL string `env:"UPLOAD_BASE_URL"`

	// Local auth state
	TokenFile   string `env:"TOKEN_FILE"`
	SessionFile string `env:"SESSION_FILE"`

	// CLI behaviour
	Verbose bool `env:"ATCLI_VERBOSE"`
	Version bool `env:"-"` // show client version and exit (flag only)
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// флаги работают ТОЛЬКО если переменные из env не заданы
	flag.StringVar(&cfg.APIBaseURL, "api-base", cfg.APIBaseURL, "base URL of the Atlas platform API")
	flag.StringVar(&cfg.UploadBaseURL, "uploads-base", cfg.UploadBaseURL, "base URL for statically served uploaded images")
	flag.StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "path to the persisted access token file")
	flag.StringVar(&cfg.SessionFile, "session-file", cfg.SessionFile, "path to the persisted session state file")
	flag.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "log every API request")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills missing fields with defaults and normalizes URLs.
func (cfg *Config) ApplyDefaults() {
	if !validBaseURL(cfg.APIBaseURL) {
		cfg.APIBaseURL = "http://localhost:8080"
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	// uploads default to the API host
	if !validBaseURL(cfg.UploadBaseURL) {
		cfg.UploadBaseURL = cfg.APIBaseURL
	}
	cfg.UploadBaseURL = strings.TrimRight(cfg.UploadBaseURL, "/")

	if cfg.TokenFile == "" || cfg.SessionFile == "" {
		dir := stateDir()
		if cfg.TokenFile == "" {
			cfg.TokenFile = filepath.Join(dir, "access_token")
		}
		if cfg.SessionFile == "" {
			cfg.SessionFile = filepath.Join(dir, "session.json")
		}
	}
}

// stateDir возвращает каталог для локального состояния клиента.
func stateDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "AtlasAdmin")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".atlasadmin")
}

func validBaseURL(s string) bool {
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// UploadURL resolves a relative image path as stored by the server
// into an absolute URL a staff member can open.
func (cfg *Config) UploadURL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return cfg.UploadBaseURL + "/" + strings.TrimLeft(path, "/")
}
