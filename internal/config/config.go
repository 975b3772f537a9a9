package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	PostgreSQL PostgreSQLConfig
	Server     ServerConfig
	Auth       AuthConfig
	Memory     MemoryConfig
	Retrieval  RetrievalConfig
	Groq       GroqConfig
	CDN        CDNConfig
}

// PostgreSQLConfig holds PostgreSQL database configuration
type PostgreSQLConfig struct {
	DSN                string // full connection string, takes precedence
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
}

// AuthConfig holds JWT authentication configuration
type AuthConfig struct {
	JWTSecret string
}

// MemoryConfig holds conversation memory limits
type MemoryConfig struct {
	SessionLimit int // short-term in-process cache, turns per session
	HistoryLimit int // durable per-user history, turns consulted before generation
}

// RetrievalConfig holds catalog retrieval caps
type RetrievalConfig struct {
	ContextFetchLimit int // raw records fetched for the LLM context
	ContextKeep       int // records actually rendered into the context block
	CardFetchLimit    int // raw records fetched for display cards
	CardKeep          int // cards returned to the caller
}

// GroqConfig holds Groq (OpenAI-compatible) API configuration
type GroqConfig struct {
	APIKey      string
	APIBase     string
	ChatModel   string
	Temperature float64
	TopP        float64
	Timeout     int
	Enabled     bool
}

// CDNConfig holds CDN configuration for catalog images
type CDNConfig struct {
	BaseURL string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		PostgreSQL: PostgreSQLConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("POSTGRESQL_URI", getEnv("PG_DSN", ""))),
			Host:               getEnv("PG_HOST", "localhost"),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "anvi"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 5),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 1),
		},
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Memory: MemoryConfig{
			SessionLimit: getEnvAsInt("MEMORY_SESSION_LIMIT", 6),
			HistoryLimit: getEnvAsInt("MEMORY_HISTORY_LIMIT", 10),
		},
		Retrieval: RetrievalConfig{
			ContextFetchLimit: getEnvAsInt("RETRIEVAL_CONTEXT_FETCH_LIMIT", 30),
			ContextKeep:       getEnvAsInt("RETRIEVAL_CONTEXT_KEEP", 8),
			CardFetchLimit:    getEnvAsInt("RETRIEVAL_CARD_FETCH_LIMIT", 15),
			CardKeep:          getEnvAsInt("RETRIEVAL_CARD_KEEP", 8),
		},
		Groq: GroqConfig{
			APIKey:      getEnv("GROQ_API_KEY", ""),
			APIBase:     getEnv("GROQ_API_BASE", "https://api.groq.com/openai/v1"),
			ChatModel:   getEnv("GROQ_CHAT_MODEL", "llama-3.3-70b-versatile"),
			Temperature: getEnvAsFloat("GROQ_TEMPERATURE", 0.2),
			TopP:        getEnvAsFloat("GROQ_TOP_P", 0.9),
			Timeout:     getEnvAsInt("GROQ_TIMEOUT", 30),
			Enabled:     getEnv("GROQ_API_KEY", "") != "",
		},
		CDN: CDNConfig{
			BaseURL: getEnv("CDN_BASE_URL", "https://cdn.nashikcityguide.com/"),
		},
	}

	return cfg, nil
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default %f", key, defaultValue)
		return defaultValue
	}
	return value
}
