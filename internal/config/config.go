package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/careerlens/careerlens/internal/domain"
)

// Config holds the careerlens API configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Database   DatabaseConfig   `yaml:"database"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Generation GenerationConfig `yaml:"generation"`
	Dataset    DatasetConfig    `yaml:"dataset"`
	Auth       AuthConfig       `yaml:"auth"`
	Index      IndexConfig      `yaml:"index"`
	Storage    StorageConfig    `yaml:"storage"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// IndexConfig holds vector index and ingestion settings.
type IndexConfig struct {
	Collection      string `yaml:"collection"`
	BatchSize       int    `yaml:"batch_size"`
	HNSWM           int    `yaml:"hnsw_m"`
	HNSWEFConstruct int    `yaml:"hnsw_ef_construction"`
	RetrieveK       int    `yaml:"retrieve_k"`
	TopN            int    `yaml:"top_n"`
	ProfileTTLSec   int    `yaml:"profile_ttl_sec"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	KeyPrefix string `yaml:"key_prefix"`
}

// EmbeddingConfig holds embedding settings.
type EmbeddingConfig struct {
	Providers   map[string]ProviderConfig   `yaml:"providers"`
	Vectorizers map[string]VectorizerConfig `yaml:"vectorizers"`
	Default     string                      `yaml:"default"` // vectorizer name used for documents and queries
}

// ProviderConfig holds OpenAI-compatible provider settings.
type ProviderConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// VectorizerConfig holds vectorizer settings.
type VectorizerConfig struct {
	Provider   string `yaml:"provider"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
}

// GenerationConfig holds text generation settings.
type GenerationConfig struct {
	Mode    string `yaml:"mode"` // live, canned (default: canned when api_key is empty)
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// DatasetConfig holds job postings data sources.
type DatasetConfig struct {
	Sources []SourceConfig `yaml:"sources"`
}

// SourceConfig describes one postings file.
type SourceConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"` // csv, parquet (default: by extension)
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	// .env is optional; real env vars win over file values.
	_ = godotenv.Load()

	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Index.Collection == "" {
		c.Index.Collection = domain.DefaultCollection
	}
	if c.Index.BatchSize <= 0 {
		c.Index.BatchSize = 100
	}
	if c.Index.HNSWM <= 0 {
		c.Index.HNSWM = 32
	}
	if c.Index.HNSWEFConstruct <= 0 {
		c.Index.HNSWEFConstruct = 400
	}
	if c.Index.RetrieveK <= 0 {
		c.Index.RetrieveK = 15
	}
	if c.Index.TopN <= 0 {
		c.Index.TopN = 10
	}
	if c.Index.ProfileTTLSec <= 0 {
		c.Index.ProfileTTLSec = 3600
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = domain.KeyPrefix
	}
	vecDefaults := domain.DefaultVectorConfig()
	for name, v := range c.Embedding.Vectorizers {
		if v.Model == "" {
			v.Model = vecDefaults.Model
		}
		if v.Dimensions <= 0 {
			v.Dimensions = vecDefaults.Dimensions
		}
		c.Embedding.Vectorizers[name] = v
	}
	if c.Generation.Mode == "" {
		if c.Generation.APIKey == "" {
			c.Generation.Mode = "canned"
		} else {
			c.Generation.Mode = "live"
		}
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	if c.Embedding.Default != "" {
		if _, ok := c.Embedding.Vectorizers[c.Embedding.Default]; !ok {
			return fmt.Errorf("embedding.default %q has no matching vectorizer", c.Embedding.Default)
		}
	}
	for name, v := range c.Embedding.Vectorizers {
		if v.Provider == "" {
			return fmt.Errorf("embedding.vectorizers.%s.provider is required", name)
		}
		if _, ok := c.Embedding.Providers[v.Provider]; !ok {
			return fmt.Errorf("embedding.vectorizers.%s references unknown provider %q", name, v.Provider)
		}
	}
	switch c.Generation.Mode {
	case "live", "canned":
		// ok
	default:
		return fmt.Errorf("generation.mode must be \"live\" or \"canned\", got %q", c.Generation.Mode)
	}
	if c.Generation.Mode == "live" && c.Generation.APIKey == "" {
		return fmt.Errorf("generation.api_key is required in live mode")
	}
	for i, src := range c.Dataset.Sources {
		if src.Path == "" {
			return fmt.Errorf("dataset.sources[%d].path is required", i)
		}
		switch src.Format {
		case "", "csv", "parquet":
			// ok
		default:
			return fmt.Errorf("dataset.sources[%d].format must be \"csv\" or \"parquet\", got %q", i, src.Format)
		}
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
