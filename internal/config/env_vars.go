package config

import (
	"os"
	"strconv"
	"time"
)

const (
	appNameVar        = "APP_NAME"
	envVar            = "ENV"
	apiBaseURLVar     = "HRM_API_BASE_URL"
	requestTimeoutVar = "HRM_REQUEST_TIMEOUT"
	logLevelVar       = "LOG_LEVEL"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "HR Console")
}

func (EnvVars) GetEnv() string {
	return GetEnv(envVar, "DEV")
}

// GetAPIBaseURL returns the root of the HR REST API (e.g., "https://hr.example.com/api")
func (EnvVars) GetAPIBaseURL() string {
	return GetEnv(apiBaseURLVar, "http://localhost:5000")
}

func (EnvVars) GetRequestTimeout() time.Duration {
	return GetDuration(requestTimeoutVar, 30*time.Second)
}

func (EnvVars) GetLogLevel() string {
	return GetEnv(logLevelVar, "")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetDuration parses a Go duration ("90s", "5m") and falls back on empty or bad input
func GetDuration(envVar string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return defaultValue
	}
	return d
}

func GetInt(envVar string, defaultValue int) int {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return i
}
