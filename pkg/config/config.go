package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string              `json:"port"`
	Environment     string              `json:"environment"`
	AdminAPIKeyHash string              `json:"admin_api_key_hash"`
	Database        DatabaseConfig      `json:"database"`
	Redis           RedisConfig         `json:"redis"`
	Email           EmailConfig         `json:"email"`
	Notify          NotifyConfig        `json:"notify"`
	ErrorReporting  ErrorReportConfig   `json:"error_reporting"`
	CORS            CORSConfig          `json:"cors"`
	Log             LogConfig           `json:"log"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"db_host"`
	Port            string        `mapstructure:"db_port"`
	Username        string        `mapstructure:"db_username"`
	Password        string        `mapstructure:"db_password"`
	Database        string        `mapstructure:"db_database"`
	MaxOpenConns    int           `mapstructure:"db_max_open_conns"`
	MaxIdleConns    int           `mapstructure:"db_max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"db_conn_max_lifetime"`
	SSLMode         string        `mapstructure:"db_ssl_mode"` // e.g., "disable", "require", "verify-ca", "verify-full"
}

type RedisConfig struct {
	Host     string `mapstructure:"redis_host"`
	Port     string `mapstructure:"redis_port"`
	Password string `mapstructure:"redis_password"`
	DB       int    `mapstructure:"redis_db"`
}

type EmailConfig struct {
	Provider  string              `mapstructure:"email_provider"`
	FromEmail string              `mapstructure:"from_email"`
	FromName  string              `mapstructure:"from_name"`
	SES       SESConfig           `mapstructure:"ses"`
	SMTP      SMTPConfig          `mapstructure:"smtp"`
	Templates EmailTemplateConfig `mapstructure:"templates"`
}

type SESConfig struct {
	Region           string `mapstructure:"aws_region"`
	AccessKeyID      string `mapstructure:"aws_access_key_id"`
	SecretAccessKey  string `mapstructure:"aws_secret_access_key"`
	ConfigurationSet string `mapstructure:"aws_ses_configuration_set"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"smtp_host"`
	Port     int    `mapstructure:"smtp_port"`
	Username string `mapstructure:"smtp_username"`
	Password string `mapstructure:"smtp_password"`
	UseTLS   bool   `mapstructure:"smtp_use_tls"`
}

type EmailTemplateConfig struct {
	DemoBaseURL string `mapstructure:"demo_base_url"`
	AppName     string `mapstructure:"app_name"`
}

type NotifyConfig struct {
	PollInterval time.Duration `mapstructure:"notify_poll_interval"`
	BatchSize    int           `mapstructure:"notify_batch_size"`
	LockTTL      time.Duration `mapstructure:"notify_lock_ttl"`
}

type ErrorReportConfig struct {
	Enabled    bool          `mapstructure:"error_reporting_enabled"`
	Endpoint   string        `mapstructure:"error_reporting_endpoint"`
	Debug      bool          `mapstructure:"error_reporting_debug"`
	MaxRetries int           `mapstructure:"error_reporting_max_retries"`
	RetryDelay time.Duration `mapstructure:"error_reporting_retry_delay"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
	AllowedMethods []string `mapstructure:"cors_allowed_methods"`
	AllowedHeaders []string `mapstructure:"cors_allowed_headers"`
}

type LogConfig struct {
	Level  string `mapstructure:"log_level"`
	Format string `mapstructure:"log_format"`
}

func init() {
	if !isGCP {
		err := godotenv.Load()
		if err != nil {
			log.Println("Warning: Could not find or load .env file.")
		}
	}
}

func NewConfig() *Config {
	return &Config{
		Port:            getOptionalSecret("PORT", "8080"),
		Environment:     getOptionalSecret("ENVIRONMENT", "development"),
		AdminAPIKeyHash: getOptionalSecret("ADMIN_API_KEY_HASH", ""),
		Database: DatabaseConfig{
			Host:            getRequiredSecret("DB_HOST"),
			Port:            getRequiredSecret("DB_PORT"),
			Username:        getRequiredSecret("DB_USERNAME"),
			Password:        getRequiredSecret("DB_PASSWORD"),
			Database:        getRequiredSecret("DB_DATABASE"),
			MaxOpenConns:    parseIntOrDefault("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    parseIntOrDefault("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: parseDurationOrDefault("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			SSLMode:         getOptionalSecret("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getOptionalSecret("REDIS_HOST", "localhost"),
			Port:     getOptionalSecret("REDIS_PORT", "6379"),
			Password: getOptionalSecret("REDIS_PASSWORD", ""),
			DB:       parseIntOrDefault("REDIS_DB", 0),
		},
		Email: EmailConfig{
			Provider:  getOptionalSecret("EMAIL_PROVIDER", "noop"),
			FromEmail: getOptionalSecret("FROM_EMAIL", "noreply@thepia.com"),
			FromName:  getOptionalSecret("FROM_NAME", "Thepia Flows"),
			SES: SESConfig{
				Region:           getOptionalSecret("AWS_REGION", "us-east-1"),
				AccessKeyID:      getOptionalSecret("AWS_ACCESS_KEY_ID", ""),
				SecretAccessKey:  getOptionalSecret("AWS_SECRET_ACCESS_KEY", ""),
				ConfigurationSet: getOptionalSecret("AWS_SES_CONFIGURATION_SET", ""),
			},
			SMTP: SMTPConfig{
				Host:     getOptionalSecret("SMTP_HOST", ""),
				Port:     parseIntOrDefault("SMTP_PORT", 587),
				Username: getOptionalSecret("SMTP_USERNAME", ""),
				Password: getOptionalSecret("SMTP_PASSWORD", ""),
				UseTLS:   parseBoolOrDefault("SMTP_USE_TLS", true),
			},
			Templates: EmailTemplateConfig{
				DemoBaseURL: getOptionalSecret("DEMO_BASE_URL", "https://flows.thepia.net"),
				AppName:     getOptionalSecret("APP_NAME", "Thepia Flows"),
			},
		},
		Notify: NotifyConfig{
			PollInterval: parseDurationOrDefault("NOTIFY_POLL_INTERVAL", 0),
			BatchSize:    parseIntOrDefault("NOTIFY_BATCH_SIZE", 20),
			LockTTL:      parseDurationOrDefault("NOTIFY_LOCK_TTL", 2*time.Minute),
		},
		ErrorReporting: ErrorReportConfig{
			Enabled:    parseBoolOrDefault("ERROR_REPORTING_ENABLED", false),
			Endpoint:   getOptionalSecret("ERROR_REPORTING_ENDPOINT", ""),
			Debug:      parseBoolOrDefault("ERROR_REPORTING_DEBUG", false),
			MaxRetries: parseIntOrDefault("ERROR_REPORTING_MAX_RETRIES", 3),
			RetryDelay: parseDurationOrDefault("ERROR_REPORTING_RETRY_DELAY", time.Second),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseList("CORS_ALLOWED_ORIGINS", "https://flows.thepia.net"),
			AllowedMethods: parseList("CORS_ALLOWED_METHODS", "GET,POST,OPTIONS"),
			AllowedHeaders: parseList("CORS_ALLOWED_HEADERS", "Content-Type,Authorization,X-API-Key"),
		},
		Log: LogConfig{
			Level:  getOptionalSecret("LOG_LEVEL", "info"),
			Format: getOptionalSecret("LOG_FORMAT", "json"),
		},
	}
}

// IsDevelopment reports whether the service runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
