package utils

import (
	"os"
	"strings"
)

// EnvOrDefault returns the trimmed value of key, or def when unset/empty.
func EnvOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}
