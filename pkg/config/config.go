package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Storage drivers
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMongo    = "mongo"
)

// AI provider names
const (
	ProviderGroq   = "groq"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Database DatabaseConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Cache    CacheConfig
	AI       AIConfig
	Scoring  ScoringConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// StorageConfig selects the assessment store
type StorageConfig struct {
	Driver string `envconfig:"STORAGE_DRIVER" default:"postgres"` // "postgres" or "mongo"
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        string `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER" default:"postgres"`
	Password    string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name        string `envconfig:"DB_NAME" default:"interview_coach"`
	SSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns    int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns    int    `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"true"`
}

// MongoConfig holds MongoDB configuration
type MongoConfig struct {
	URI      string `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	Database string `envconfig:"MONGO_DATABASE" default:"interview_coach"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"false"`
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// CacheConfig holds cache settings for aggregated views
type CacheConfig struct {
	AveragesTTL time.Duration `envconfig:"CACHE_AVERAGES_TTL" default:"5m"`
}

// AIConfig holds the evaluation provider chain
type AIConfig struct {
	// Providers is the order in which providers are tried
	Providers   []string      `envconfig:"AI_PROVIDERS" default:"groq,gemini"`
	Temperature float64       `envconfig:"AI_TEMPERATURE" default:"0.3"`
	MaxTokens   int           `envconfig:"AI_MAX_TOKENS" default:"1000"`
	Timeout     time.Duration `envconfig:"AI_TIMEOUT" default:"30s"`

	GroqAPIKey  string `envconfig:"GROQ_API_KEY"`
	GroqBaseURL string `envconfig:"GROQ_API_URL" default:"https://api.groq.com/openai/v1"`
	GroqModel   string `envconfig:"GROQ_MODEL" default:"llama-3.1-70b-versatile"`

	OpenAIAPIKey  string `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL string `envconfig:"OPENAI_API_URL" default:"https://api.openai.com/v1"`
	OpenAIModel   string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`

	GeminiAPIKey  string `envconfig:"GEMINI_API_KEY"`
	GeminiBaseURL string `envconfig:"GEMINI_API_URL" default:"https://generativelanguage.googleapis.com/v1beta"`
	GeminiModel   string `envconfig:"GEMINI_MODEL" default:"gemini-1.5-flash"`
}

// ProviderConfig is the resolved settings of one AI provider
type ProviderConfig struct {
	Name    string
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// ScoringConfig holds rule-based scoring options
type ScoringConfig struct {
	// LexiconPath overrides the embedded word tables when set
	LexiconPath string `envconfig:"SCORING_LEXICON_PATH"`
	// JobTimeout bounds one assessment, AI provider attempts included
	JobTimeout time.Duration `envconfig:"ASSESSMENT_JOB_TIMEOUT" default:"2m"`
	// SaveRetryDelay is the backoff base when saving a scored record hits a transient store error
	SaveRetryDelay time.Duration `envconfig:"ASSESSMENT_SAVE_RETRY_DELAY" default:"200ms"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageDriverPostgres, StorageDriverMongo:
	default:
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", StorageDriverPostgres, StorageDriverMongo, c.Storage.Driver)
	}
	for i, name := range c.AI.Providers {
		name = strings.ToLower(strings.TrimSpace(name))
		switch name {
		case ProviderGroq, ProviderOpenAI, ProviderGemini:
		default:
			return fmt.Errorf("AI_PROVIDERS: unknown provider %q", name)
		}
		c.AI.Providers[i] = name
	}
	if c.AI.MaxTokens <= 0 {
		return fmt.Errorf("AI_MAX_TOKENS must be positive")
	}
	if c.AI.Temperature < 0 || c.AI.Temperature > 2 {
		return fmt.Errorf("AI_TEMPERATURE must be between 0 and 2")
	}
	return nil
}

// Provider returns the settings of a named provider
func (c *AIConfig) Provider(name string) ProviderConfig {
	p := ProviderConfig{Name: name, Timeout: c.Timeout}
	switch name {
	case ProviderGroq:
		p.APIKey, p.BaseURL, p.Model = c.GroqAPIKey, c.GroqBaseURL, c.GroqModel
	case ProviderOpenAI:
		p.APIKey, p.BaseURL, p.Model = c.OpenAIAPIKey, c.OpenAIBaseURL, c.OpenAIModel
	case ProviderGemini:
		p.APIKey, p.BaseURL, p.Model = c.GeminiAPIKey, c.GeminiBaseURL, c.GeminiModel
	}
	return p
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}
