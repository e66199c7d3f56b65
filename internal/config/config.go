package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"      validate:"required"`
	Scoring  ScoringConfig  `mapstructure:"scoring"`
	Session  SessionConfig  `mapstructure:"session"  validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// DatabaseConfig selects and configures the profile store.
// URL is required only for the postgres driver.
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"         validate:"required,oneof=postgres memory"`
	URL          string `mapstructure:"url"            validate:"required_if=Driver postgres"`
	AutoMigrate  bool   `mapstructure:"auto_migrate"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=1"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" validate:"gte=0"`
}

// AuthConfig contains session token settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// LLMConfig contains the score-coaching model settings. An empty API key
// disables the model and the template explainer is used instead.
type LLMConfig struct {
	GeminiAPIKey      string `mapstructure:"gemini_api_key"`
	ModelName         string `mapstructure:"model_name"          validate:"required"`
	MaxRetries        int    `mapstructure:"max_retries"         validate:"gte=0,lte=5"`
	RetryDelaySeconds int    `mapstructure:"retry_delay_seconds" validate:"gte=1,lte=60"`
}

// ScoringConfig overrides the advisory validation bounds. Zero keeps the default.
type ScoringConfig struct {
	MaxBalance              float64 `mapstructure:"max_balance"                validate:"gte=0"`
	MaxCreditLimit          float64 `mapstructure:"max_credit_limit"           validate:"gte=0"`
	MaxMonthlyPayment       float64 `mapstructure:"max_monthly_payment"        validate:"gte=0"`
	MaxPaymentAmount        float64 `mapstructure:"max_payment_amount"         validate:"gte=0"`
	MaxAccountAgeMonths     int     `mapstructure:"max_account_age_months"     validate:"gte=0"`
	BlockInvalidSimulations bool    `mapstructure:"block_invalid_simulations"`
}

// SessionConfig bounds the number of live profile controllers kept in memory.
type SessionConfig struct {
	CacheSize int `mapstructure:"cache_size" validate:"required,gt=0"`
}
