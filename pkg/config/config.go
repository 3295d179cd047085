package config

import (
	"os"
	"strconv"
	"time"
)

const (
	defaultPort          = "3001"
	defaultFeishuBaseURL = "https://open.feishu.cn/open-apis"
	defaultFeishuTimeout = 10 * time.Second
	defaultOffsetHours   = 8
)

// Config holds all application configuration values
type Config struct {
	Port    string
	GinMode string

	LogLevel  string
	LogFormat string

	FeishuAppID      string
	FeishuAppSecret  string
	FeishuAppToken   string
	FeishuTableToken string
	FeishuBaseURL    string
	FeishuTimeout    time.Duration

	// StrictValidation re-applies the form rules server-side before mapping.
	StrictValidation bool
	// VisitTimeOffset is the fixed zone offset used to stamp VisitTime.
	VisitTimeOffset time.Duration
}

// LoadConfig reads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Port:             getEnv("PORT", defaultPort),
		GinMode:          getEnv("GIN_MODE", "debug"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "json"),
		FeishuAppID:      os.Getenv("FEISHU_APP_ID"),
		FeishuAppSecret:  os.Getenv("FEISHU_APP_SECRET"),
		FeishuAppToken:   os.Getenv("FEISHU_APP_TOKEN"),
		FeishuTableToken: os.Getenv("FEISHU_TABLE_TOKEN"),
		FeishuBaseURL:    getEnv("FEISHU_BASE_URL", defaultFeishuBaseURL),
		FeishuTimeout:    durationEnv("FEISHU_TIMEOUT", defaultFeishuTimeout),
		StrictValidation: boolEnv("STRICT_VALIDATION", false),
		VisitTimeOffset:  time.Duration(intEnv("VISIT_TIME_OFFSET_HOURS", defaultOffsetHours)) * time.Hour,
	}
}

// TableConfigured reports whether a target bitable table is set.
func (c *Config) TableConfigured() bool {
	return c.FeishuAppToken != "" && c.FeishuTableToken != ""
}

// CredentialsConfigured reports whether the application identity is set.
func (c *Config) CredentialsConfigured() bool {
	return c.FeishuAppID != "" && c.FeishuAppSecret != ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func boolEnv(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return b
}

func intEnv(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return i
}
