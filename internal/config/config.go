package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	Embedding struct {
		BaseURL string `yaml:"base_url" env:"EMBEDDING_BASE_URL"`
		APIKey  string `yaml:"api_key" env:"EMBEDDING_API_KEY"`
		Model   string `yaml:"model" env:"EMBEDDING_MODEL"`
	} `yaml:"embedding"`

	Search struct {
		IndexPath   string  `yaml:"index_path" env:"SEARCH_INDEX_PATH"`
		Threshold   float64 `yaml:"threshold" env:"SEARCH_THRESHOLD"`
		DefaultTopK int     `yaml:"default_top_k" env:"SEARCH_DEFAULT_TOP_K"`
	} `yaml:"search"`

	Ingest struct {
		CSVPath     string `yaml:"csv_path" env:"INGEST_CSV_PATH"`
		PhonePrefix string `yaml:"phone_prefix" env:"INGEST_PHONE_PREFIX"`
	} `yaml:"ingest"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// The config file is optional; defaults plus env vars are enough to run
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	// Database defaults
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "facultyfinder"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	// Embedding defaults target a local OpenAI-compatible endpoint
	config.Embedding.BaseURL = "http://localhost:11434/v1"
	config.Embedding.APIKey = "none"
	config.Embedding.Model = "all-minilm"

	// Search defaults
	config.Search.IndexPath = "data/faculty_index.json"
	config.Search.Threshold = 0.2
	config.Search.DefaultTopK = 5

	// Ingest defaults match the scraper's export conventions
	config.Ingest.CSVPath = "data/faculty_raw.csv"
	config.Ingest.PhonePrefix = "079-"

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	if v := os.Getenv("SERVER_PORT"); v != "" {
		config.Server.Port = v
	}
	if v := os.Getenv("SERVER_MODE"); v != "" {
		config.Server.Mode = v
	}

	if v := os.Getenv("DB_HOST"); v != "" {
		config.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		config.Database.Port = v
	}
	if v := os.Getenv("DB_USER"); v != "" {
		config.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		config.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		config.Database.DBName = v
	}
	if v := os.Getenv("DB_SSLMODE"); v != "" {
		config.Database.SSLMode = v
	}
	if v := os.Getenv("DB_MAX_IDLE_CONNS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DB_MAX_IDLE_CONNS: %w", err)
		}
		config.Database.MaxIdleConns = n
	}
	if v := os.Getenv("DB_MAX_OPEN_CONNS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DB_MAX_OPEN_CONNS: %w", err)
		}
		config.Database.MaxOpenConns = n
	}
	if v := os.Getenv("DB_CONN_MAX_LIFETIME"); v != "" {
		config.Database.ConnMaxLifetime = v
	}

	if v := os.Getenv("EMBEDDING_BASE_URL"); v != "" {
		config.Embedding.BaseURL = v
	}
	if v := os.Getenv("EMBEDDING_API_KEY"); v != "" {
		config.Embedding.APIKey = v
	}
	if v := os.Getenv("EMBEDDING_MODEL"); v != "" {
		config.Embedding.Model = v
	}

	if v := os.Getenv("SEARCH_INDEX_PATH"); v != "" {
		config.Search.IndexPath = v
	}
	if v := os.Getenv("SEARCH_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid SEARCH_THRESHOLD: %w", err)
		}
		config.Search.Threshold = f
	}
	if v := os.Getenv("SEARCH_DEFAULT_TOP_K"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SEARCH_DEFAULT_TOP_K: %w", err)
		}
		config.Search.DefaultTopK = n
	}

	if v := os.Getenv("INGEST_CSV_PATH"); v != "" {
		config.Ingest.CSVPath = v
	}
	if v := os.Getenv("INGEST_PHONE_PREFIX"); v != "" {
		config.Ingest.PhonePrefix = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		config.Logging.Format = v
	}

	return nil
}

// validateConfig checks the configuration for obviously broken values
func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port cannot be empty")
	}
	if config.Database.Host == "" || config.Database.Port == "" {
		return fmt.Errorf("database host and port cannot be empty")
	}
	if config.Database.DBName == "" {
		return fmt.Errorf("database name cannot be empty")
	}
	if config.Embedding.Model == "" {
		return fmt.Errorf("embedding model cannot be empty")
	}
	if config.Search.Threshold < -1 || config.Search.Threshold > 1 {
		return fmt.Errorf("search threshold must be on the cosine scale [-1,1]")
	}
	if config.Search.DefaultTopK < 1 || config.Search.DefaultTopK > 20 {
		return fmt.Errorf("default top_k must be between 1 and 20")
	}
	if config.Ingest.PhonePrefix == "" {
		return fmt.Errorf("ingest phone prefix cannot be empty")
	}
	return nil
}

// GetPostgresConnectionString builds the pgx connection string
func (c *Config) GetPostgresConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}
