package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

var isGCP = os.Getenv("GOOGLE_CLOUD_PROJECT") != ""

// getSecret retrieves the value of a secret from Google Cloud Secret Manager or environment variables.
func getSecret(key string) (string, error) {
	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID != "" {
		return accessSecretVersion(fmt.Sprintf("projects/%s/secrets/%s/versions/latest", projectID, key))
	}

	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("environment variable %q not set", key)
	}
	return value, nil
}

// getRequiredSecret is a helper func to get a required secret or fatal log on error.
func getRequiredSecret(key string) string {
	val, err := getSecret(key)
	if err != nil {
		log.Fatalf("FATAL: Cannot get required secret %q: %v", key, err)
	}
	if val == "" {
		log.Fatalf("FATAL: Required secret %q is empty", key)
	}
	return val
}

// getOptionalSecret is a helper func to get an optional secret with a default value.
func getOptionalSecret(key, defaultValue string) string {
	val, err := getSecret(key)
	if err != nil || val == "" {
		return defaultValue
	}
	return val
}

// parseIntOrDefault is a helper func to parse an integer from a secret.
func parseIntOrDefault(key string, defaultValue int) int {
	valStr := getOptionalSecret(key, "")
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Fatalf("FATAL: Invalid integer value for secret %q: %v", key, err)
	}
	return val
}

// parseBoolOrDefault is a helper func to parse a boolean from a secret.
func parseBoolOrDefault(key string, defaultValue bool) bool {
	valStr := getOptionalSecret(key, "")
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Fatalf("FATAL: Invalid boolean value for secret %q: %v", key, err)
	}
	return val
}

// parseDurationOrDefault is a helper func to parse a duration from a secret (e.g., "15m", "1h").
func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	valStr := getOptionalSecret(key, "")
	if valStr == "" {
		return defaultValue
	}
	val, err := time.ParseDuration(valStr)
	if err != nil {
		log.Fatalf("FATAL: Invalid duration value for secret %q (e.g. '15m'): %v", key, err)
	}
	return val
}

// parseList is a helper func to parse a comma-separated list from a secret.
func parseList(key, defaultValue string) []string {
	valStr := getOptionalSecret(key, defaultValue)
	parts := strings.Split(valStr, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}
