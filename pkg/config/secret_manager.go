package config

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SecretManagerConfig represents the JSON structure stored in Secret Manager
type SecretManagerConfig struct {
	Application SecretApplicationConfig `json:"application"`
	Database    SecretDatabaseConfig    `json:"database"`
	Redis       SecretRedisConfig       `json:"redis"`
	Email       SecretEmailConfig       `json:"email"`
	Notify      SecretNotifyConfig      `json:"notify"`
}

// SecretApplicationConfig holds application-specific settings from Secret Manager
type SecretApplicationConfig struct {
	Port               string `json:"port"`
	Environment        string `json:"environment"`
	AdminAPIKeyHash    string `json:"admin_api_key_hash"`
	LogLevel           string `json:"log_level"`
	LogFormat          string `json:"log_format"`
	CORSAllowedOrigins string `json:"cors_allowed_origins"`
}

// SecretDatabaseConfig holds database connection settings from Secret Manager
type SecretDatabaseConfig struct {
	Host            string `json:"host"`
	Port            string `json:"port"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	Database        string `json:"database"`
	MaxOpenConns    string `json:"max_open_conns"`
	MaxIdleConns    string `json:"max_idle_conns"`
	ConnMaxLifetime string `json:"conn_max_lifetime"`
	SSLMode         string `json:"ssl_mode"`
}

// SecretRedisConfig holds Redis connection settings from Secret Manager
type SecretRedisConfig struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Password string `json:"password"`
	DB       string `json:"db"`
}

// SecretEmailConfig holds email delivery settings from Secret Manager
type SecretEmailConfig struct {
	Provider           string `json:"provider"`
	FromEmail          string `json:"from_email"`
	FromName           string `json:"from_name"`
	AWSRegion          string `json:"aws_region"`
	AWSAccessKeyID     string `json:"aws_access_key_id"`
	AWSSecretAccessKey string `json:"aws_secret_access_key"`
	SMTPHost           string `json:"smtp_host"`
	SMTPPort           string `json:"smtp_port"`
	SMTPUsername       string `json:"smtp_username"`
	SMTPPassword       string `json:"smtp_password"`
	SMTPUseTLS         string `json:"smtp_use_tls"`
	DemoBaseURL        string `json:"demo_base_url"`
	AppName            string `json:"app_name"`
}

// SecretNotifyConfig holds notification queue settings from Secret Manager
type SecretNotifyConfig struct {
	PollInterval string `json:"poll_interval"`
	BatchSize    string `json:"batch_size"`
	LockTTL      string `json:"lock_ttl"`
}

// LoadFromSecretManager loads configuration from Google Secret Manager
func LoadFromSecretManager(ctx context.Context, projectID, secretName string) (*Config, error) {
	secretData, err := accessSecretVersion(fmt.Sprintf("projects/%s/secrets/%s/versions/latest", projectID, secretName))
	if err != nil {
		return nil, fmt.Errorf("failed to access secret: %w", err)
	}

	var secretConfig SecretManagerConfig
	if err := json.Unmarshal([]byte(secretData), &secretConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config JSON: %w", err)
	}

	return convertSecretToConfig(&secretConfig)
}

// convertSecretToConfig converts SecretManagerConfig to the existing Config structure
func convertSecretToConfig(secret *SecretManagerConfig) (*Config, error) {
	maxOpenConns, err := strconv.Atoi(secret.Database.MaxOpenConns)
	if err != nil {
		return nil, fmt.Errorf("invalid max_open_conns: %v", err)
	}

	maxIdleConns, err := strconv.Atoi(secret.Database.MaxIdleConns)
	if err != nil {
		return nil, fmt.Errorf("invalid max_idle_conns: %v", err)
	}

	connMaxLifetime, err := time.ParseDuration(secret.Database.ConnMaxLifetime)
	if err != nil {
		return nil, fmt.Errorf("invalid conn_max_lifetime: %v", err)
	}

	redisDB, err := strconv.Atoi(secret.Redis.DB)
	if err != nil {
		return nil, fmt.Errorf("invalid redis db: %v", err)
	}

	smtpPort, err := strconv.Atoi(secret.Email.SMTPPort)
	if err != nil {
		return nil, fmt.Errorf("invalid smtp_port: %v", err)
	}

	smtpUseTLS, err := strconv.ParseBool(secret.Email.SMTPUseTLS)
	if err != nil {
		return nil, fmt.Errorf("invalid smtp_use_tls: %v", err)
	}

	pollInterval, err := time.ParseDuration(secret.Notify.PollInterval)
	if err != nil {
		return nil, fmt.Errorf("invalid notify poll_interval: %v", err)
	}

	batchSize, err := strconv.Atoi(secret.Notify.BatchSize)
	if err != nil {
		return nil, fmt.Errorf("invalid notify batch_size: %v", err)
	}

	lockTTL, err := time.ParseDuration(secret.Notify.LockTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid notify lock_ttl: %v", err)
	}

	// Parse CORS allowed origins from comma-separated string
	corsOrigins := strings.Split(secret.Application.CORSAllowedOrigins, ",")
	for i, origin := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(origin)
	}

	return &Config{
		Port:            secret.Application.Port,
		Environment:     secret.Application.Environment,
		AdminAPIKeyHash: secret.Application.AdminAPIKeyHash,
		Database: DatabaseConfig{
			Host:            secret.Database.Host,
			Port:            secret.Database.Port,
			Username:        secret.Database.Username,
			Password:        secret.Database.Password,
			Database:        secret.Database.Database,
			MaxOpenConns:    maxOpenConns,
			MaxIdleConns:    maxIdleConns,
			ConnMaxLifetime: connMaxLifetime,
			SSLMode:         secret.Database.SSLMode,
		},
		Redis: RedisConfig{
			Host:     secret.Redis.Host,
			Port:     secret.Redis.Port,
			Password: secret.Redis.Password,
			DB:       redisDB,
		},
		Email: EmailConfig{
			Provider:  secret.Email.Provider,
			FromEmail: secret.Email.FromEmail,
			FromName:  secret.Email.FromName,
			SES: SESConfig{
				Region:          secret.Email.AWSRegion,
				AccessKeyID:     secret.Email.AWSAccessKeyID,
				SecretAccessKey: secret.Email.AWSSecretAccessKey,
			},
			SMTP: SMTPConfig{
				Host:     secret.Email.SMTPHost,
				Port:     smtpPort,
				Username: secret.Email.SMTPUsername,
				Password: secret.Email.SMTPPassword,
				UseTLS:   smtpUseTLS,
			},
			Templates: EmailTemplateConfig{
				DemoBaseURL: secret.Email.DemoBaseURL,
				AppName:     secret.Email.AppName,
			},
		},
		Notify: NotifyConfig{
			PollInterval: pollInterval,
			BatchSize:    batchSize,
			LockTTL:      lockTTL,
		},
		CORS: CORSConfig{
			AllowedOrigins: corsOrigins,
		},
		Log: LogConfig{
			Level:  secret.Application.LogLevel,
			Format: secret.Application.LogFormat,
		},
	}, nil
}
