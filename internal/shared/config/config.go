package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for our application
type Config struct {
	// Server configuration
	Port           string
	GinMode        string
	APIVersion     string
	APIBasePath    string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	RequestTimeout time.Duration
	MaxHeaderBytes int

	// Database configuration
	Database DatabaseConfig

	// Redis configuration
	Redis RedisConfig

	// JWT configuration
	JWT JWTConfig

	// Market data provider
	Market MarketConfig

	// Kafka signal feed
	Kafka KafkaConfig

	// Rate limiting
	RateLimit RateLimitConfig

	// Logging
	LogLevel string
	LogFile  LogFileConfig

	MetricsEnabled bool
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	DSN      string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
	Addr     string
}

// JWTConfig holds the signing secret and token lifetimes
type JWTConfig struct {
	Secret           string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

// MarketConfig holds market data provider configuration
type MarketConfig struct {
	Provider       string
	APIKey         string
	BaseURL        string
	CacheTTL       time.Duration
	RequestTimeout time.Duration
}

// KafkaConfig holds signal feed publishing configuration
type KafkaConfig struct {
	Enabled      bool
	Brokers      []string
	SignalsTopic string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled           bool          `json:"enabled"`
	WindowDuration    time.Duration `json:"window_duration"`
	DefaultRequests   int           `json:"default_requests"`
	AuthRequests      int           `json:"auth_requests"`
	MarketRequests    int           `json:"market_requests"`
	SignalsRequests   int           `json:"signals_requests"`
	CopyTradeRequests int           `json:"copy_trade_requests"`
	HealthRequests    int           `json:"health_requests"`
	WhitelistedIPs    []string      `json:"whitelisted_ips"`
}

// LogFileConfig configures the optional rotating log file
type LogFileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// Server configuration
		Port:           getEnv("PORT", "8000"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		APIVersion:     getEnv("API_VERSION", "1.0.0"),
		APIBasePath:    strings.TrimSuffix(getEnv("API_BASE_PATH", ""), "/"),
		ReadTimeout:    getDurationEnv("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:   getDurationEnv("WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:    getDurationEnv("IDLE_TIMEOUT", 60*time.Second),
		RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", 10*time.Second),
		MaxHeaderBytes: getIntEnv("MAX_HEADER_BYTES", 1<<20), // 1 MB

		// Database configuration
		Database: DatabaseConfig{
			Enabled:  getBoolEnv("DB_ENABLED", false),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "spreadedge_db"),
			User:     getEnv("DB_USER", "spreadedge_user"),
			Password: getEnv("DB_PASSWORD", "spreadedge_password"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},

		// Redis configuration
		Redis: RedisConfig{
			Enabled:  getBoolEnv("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},

		// JWT configuration
		JWT: JWTConfig{
			Secret:           getEnv("JWT_SECRET", "your_generated_secret_here"),
			AccessExpiresIn:  getMinutesEnv("ACCESS_TOKEN_EXPIRE_MINUTES", 30*time.Minute),
			RefreshExpiresIn: getDaysEnv("REFRESH_TOKEN_EXPIRE_DAYS", 7*24*time.Hour),
		},

		// Market data configuration
		Market: MarketConfig{
			Provider:       strings.ToLower(getEnv("MARKET_PROVIDER", "")),
			APIKey:         getEnv("ALPHA_VANTAGE_API_KEY", ""),
			BaseURL:        getEnv("ALPHA_VANTAGE_BASE_URL", "https://www.alphavantage.co/query"),
			CacheTTL:       getDurationEnv("MARKET_CACHE_TTL", 5*time.Minute),
			RequestTimeout: getDurationEnv("MARKET_REQUEST_TIMEOUT", 10*time.Second),
		},

		// Kafka configuration
		Kafka: KafkaConfig{
			Enabled:      getBoolEnv("KAFKA_ENABLED", false),
			Brokers:      getStringSliceEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
			SignalsTopic: getEnv("KAFKA_SIGNALS_TOPIC", "trading-signals"),
		},

		// Rate limiting
		RateLimit: RateLimitConfig{
			Enabled:           getBoolEnv("RATE_LIMIT_ENABLED", true),
			WindowDuration:    getDurationEnv("RATE_LIMIT_WINDOW_DURATION", 60*time.Second),
			DefaultRequests:   getIntEnv("RATE_LIMIT_DEFAULT_REQUESTS", 60),
			AuthRequests:      getIntEnv("RATE_LIMIT_AUTH_REQUESTS", 10),
			MarketRequests:    getIntEnv("RATE_LIMIT_MARKET_REQUESTS", 120),
			SignalsRequests:   getIntEnv("RATE_LIMIT_SIGNALS_REQUESTS", 60),
			CopyTradeRequests: getIntEnv("RATE_LIMIT_COPY_TRADE_REQUESTS", 30),
			HealthRequests:    getIntEnv("RATE_LIMIT_HEALTH_REQUESTS", 300),
			WhitelistedIPs:    getStringSliceEnv("RATE_LIMIT_WHITELISTED_IPS", []string{}),
		},

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "debug"),
		LogFile: LogFileConfig{
			Path:       getEnv("LOG_FILE", ""),
			MaxSizeMB:  getIntEnv("LOG_FILE_MAX_SIZE_MB", 100),
			MaxBackups: getIntEnv("LOG_FILE_MAX_BACKUPS", 5),
			MaxAgeDays: getIntEnv("LOG_FILE_MAX_AGE_DAYS", 28),
			Compress:   getBoolEnv("LOG_FILE_COMPRESS", true),
		},

		MetricsEnabled: getBoolEnv("METRICS_ENABLED", true),
	}

	// Build composite values
	cfg.Database.DSN = buildDatabaseDSN(cfg.Database)
	cfg.Redis.Addr = cfg.Redis.Host + ":" + cfg.Redis.Port

	// Without an API key there is nothing to call upstream
	if cfg.Market.Provider == "" {
		if cfg.Market.APIKey != "" {
			cfg.Market.Provider = "alphavantage"
		} else {
			cfg.Market.Provider = "mock"
		}
	}

	return cfg
}

// buildDatabaseDSN builds the database connection string
func buildDatabaseDSN(db DatabaseConfig) string {
	return "host=" + db.Host +
		" port=" + db.Port +
		" user=" + db.User +
		" password=" + db.Password +
		" dbname=" + db.Name +
		" sslmode=" + db.SSLMode
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getIntEnv gets an integer environment variable with a fallback value
func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

// getDurationEnv gets a duration environment variable with a fallback value
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}

// getMinutesEnv reads a whole number of minutes
func getMinutesEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if minutes, err := strconv.Atoi(value); err == nil {
			return time.Duration(minutes) * time.Minute
		}
	}
	return fallback
}

// getDaysEnv reads a whole number of days
func getDaysEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if days, err := strconv.Atoi(value); err == nil {
			return time.Duration(days) * 24 * time.Hour
		}
	}
	return fallback
}

// getBoolEnv gets a boolean environment variable with a fallback value
func getBoolEnv(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

// getStringSliceEnv gets a comma-separated string environment variable as a slice
func getStringSliceEnv(key string, fallback []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		var result []string
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GinMode == "debug"
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return ":" + c.Port
}

// GetAPIBasePath returns the path every feature route is mounted under
func (c *Config) GetAPIBasePath() string {
	return c.APIBasePath
}
