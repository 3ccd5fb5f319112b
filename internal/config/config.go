package config

import (
	"os"
	"strconv"
	"time"
)

// GetEnv gets an environment variable with a fallback default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvAsInt gets an environment variable as an integer with a fallback default
func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// PlatformTimeout returns the bounded timeout for remote ad-network calls.
// A call exceeding it is surfaced as an adapter error, never as success.
func PlatformTimeout() time.Duration {
	return time.Duration(GetEnvAsInt("PLATFORM_TIMEOUT_SECONDS", 30)) * time.Second
}
