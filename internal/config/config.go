package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults match the local development setup of the APeer backend and the
// companion AI service.
const (
	DefaultAPIBaseURL   = "http://localhost:8080/api"
	DefaultAIServiceURL = "http://localhost:5000/api"
)

// Config holds build-time style configuration for the client. Values are
// resolved from, in increasing precedence: built-in defaults, an optional
// config.yaml in the credentials directory, a .env file in the working
// directory, and process environment variables.
type Config struct {
	// APIBaseURL is the root of the APeer backend REST API.
	APIBaseURL string `yaml:"api_base_url"`

	// AIServiceURL is the root of the AI analysis service. Reserved for
	// direct calls; the current client only talks to the backend.
	AIServiceURL string `yaml:"ai_service_url"`

	// UseMockData makes every service façade return canned fixtures
	// instead of calling the backend.
	UseMockData bool `yaml:"use_mock_data"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// CredentialsDir is where the profile blob and token are persisted.
	// Defaults to ~/.apeer.
	CredentialsDir string `yaml:"credentials_dir"`
}

func defaults() Config {
	home, _ := os.UserHomeDir()
	return Config{
		APIBaseURL:     DefaultAPIBaseURL,
		AIServiceURL:   DefaultAIServiceURL,
		LogLevel:       "warn",
		CredentialsDir: filepath.Join(home, ".apeer"),
	}
}

// Load resolves the effective configuration.
//
// A missing .env or config.yaml is not an error; malformed yaml is, since
// silently ignoring it would mask typos in explicit user configuration.
func Load() (Config, error) {
	cfg := defaults()

	// .env in the working directory, ignored when absent.
	_ = godotenv.Load()

	// The credentials dir override must land before the file pass, since
	// config.yaml is looked up inside that directory.
	if v := os.Getenv("APEER_CREDENTIALS_DIR"); v != "" {
		cfg.CredentialsDir = v
	}

	if err := cfg.applyFile(filepath.Join(cfg.CredentialsDir, "config.yaml")); err != nil {
		return cfg, err
	}
	cfg.applyEnv()

	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) applyEnv() {
	if v := os.Getenv("APEER_API_BASE_URL"); v != "" {
		c.APIBaseURL = v
	}
	if v := os.Getenv("APEER_AI_SERVICE_URL"); v != "" {
		c.AIServiceURL = v
	}
	if v := os.Getenv("APEER_USE_MOCK_DATA"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.UseMockData = b
		}
	}
	if v := os.Getenv("APEER_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("APEER_CREDENTIALS_DIR"); v != "" {
		c.CredentialsDir = v
	}
}
