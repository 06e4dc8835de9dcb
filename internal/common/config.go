package common

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Store     StoreConfig     `yaml:"store"`
	Extractor ExtractorConfig `yaml:"extractor"`
	Agents    AgentsConfig    `yaml:"agents"`
	Model     ModelConfig     `yaml:"model"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	HTTPAddr        string        `yaml:"http_addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// StoreConfig holds the analysis history database configuration
type StoreConfig struct {
	Path string `yaml:"path"`
}

// ExtractorConfig holds PDF extraction configuration
type ExtractorConfig struct {
	Pdftotext string        `yaml:"pdftotext"`
	MaxPages  int           `yaml:"max_pages"`
	Timeout   time.Duration `yaml:"timeout"`
}

// AgentsConfig holds the qualitative analysis collaborator configuration
type AgentsConfig struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
}

// ModelConfig holds prediction model configuration
type ModelConfig struct {
	Path    string `yaml:"path"`
	Version string `yaml:"version"`
	Samples int    `yaml:"samples"`
	Seed    uint64 `yaml:"seed"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Store: StoreConfig{
			Path: getEnv("STORE_PATH", "./analyst.db"),
		},
		Extractor: ExtractorConfig{
			Pdftotext: getEnv("PDFTOTEXT_BIN", "pdftotext"),
			MaxPages:  getEnvAsInt("EXTRACT_MAX_PAGES", 0),
			Timeout:   getEnvAsDuration("EXTRACT_TIMEOUT", 30*time.Second),
		},
		Agents: AgentsConfig{
			BaseURL: getEnv("AGENTS_BASE_URL", ""),
			APIKey:  getEnv("AGENTS_API_KEY", ""),
			Timeout: getEnvAsDuration("AGENTS_TIMEOUT", 45*time.Second),
		},
		Model: ModelConfig{
			Path:    getEnv("MODEL_PATH", ""),
			Version: getEnv("MODEL_VERSION", "2.0-go"),
			Samples: getEnvAsInt("MODEL_SAMPLES", 2000),
			Seed:    uint64(getEnvAsInt("MODEL_SEED", 42)),
		},
	}
}

// LoadConfigFile overlays a YAML config file on top of the environment
// defaults. Missing file paths are not an error when optional is true.
func LoadConfigFile(path string, optional bool) (*Config, error) {
	cfg := LoadConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, NewAppError("CONFIG_ERROR", "reading config file", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, NewAppError("CONFIG_ERROR", "parsing config file", err)
	}
	return cfg, nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate checks the loaded configuration
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.Store.Path == "" {
		return NewAppError("CONFIG_ERROR", "STORE_PATH is required", ErrInvalidInput)
	}
	if c.Extractor.Timeout <= 0 {
		return NewAppError("CONFIG_ERROR", "EXTRACT_TIMEOUT must be positive", ErrInvalidInput)
	}
	if c.Model.Samples <= 0 {
		return NewAppError("CONFIG_ERROR", "MODEL_SAMPLES must be positive", ErrInvalidInput)
	}
	return nil
}
