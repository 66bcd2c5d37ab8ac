package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	LLM     LLMConfig
	SMTP    SMTPConfig
	Reports ReportsConfig
	Queue   QueueConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration
}

// LLMConfig holds OpenAI-related configuration
type LLMConfig struct {
	Model         string
	APIKey        string
	BaseURL       string
	Timeout       time.Duration
	SearchTimeout time.Duration
}

// SMTPConfig holds outbound mail configuration
type SMTPConfig struct {
	Host     string
	Port     int
	Address  string
	Password string
	AppName  string
}

// ReportsConfig holds artifact output configuration
type ReportsConfig struct {
	Dir string
}

// QueueConfig holds background worker configuration
type QueueConfig struct {
	Workers     int
	Size        int
	TaskTimeout time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr:        getEnv("HTTP_ADDR", ":8000"),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		LLM: LLMConfig{
			Model:         getEnv("OPENAI_MODEL", "gpt-5-mini"),
			APIKey:        getEnv("OPENAI_API_KEY", ""),
			BaseURL:       getEnv("OPENAI_API_BASE", "https://api.openai.com/v1"),
			Timeout:       getEnvAsDuration("OPENAI_TIMEOUT", 90*time.Second),
			SearchTimeout: getEnvAsDuration("OPENAI_SEARCH_TIMEOUT", 5*time.Minute),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_SERVER", "smtp.gmail.com"),
			Port:     getEnvAsInt("SMTP_PORT", 587),
			Address:  getEnv("EMAIL_ADDRESS", ""),
			Password: getEnv("EMAIL_PASSWORD", ""),
			AppName:  getEnv("APP_NAME", "SEA News Alert"),
		},
		Reports: ReportsConfig{
			Dir: getEnv("REPORTS_DIR", "./reports"),
		},
		Queue: QueueConfig{
			Workers:     getEnvAsInt("QUEUE_WORKERS", 4),
			Size:        getEnvAsInt("QUEUE_SIZE", 64),
			TaskTimeout: getEnvAsDuration("TASK_TIMEOUT", 15*time.Minute),
		},
	}
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

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "OPENAI_API_KEY is required", ErrInvalidInput)
	}
	if c.SMTP.Address == "" {
		return NewAppError("CONFIG_ERROR", "EMAIL_ADDRESS is required", ErrInvalidInput)
	}
	if verr := EmailAddress("EMAIL_ADDRESS", c.SMTP.Address); verr != nil {
		return NewAppError("CONFIG_ERROR", verr.Error(), ErrInvalidInput)
	}
	if c.SMTP.Password == "" {
		return NewAppError("CONFIG_ERROR", "EMAIL_PASSWORD is required", ErrInvalidInput)
	}
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	return nil
}
