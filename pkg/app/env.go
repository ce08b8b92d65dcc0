package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ConfigFromEnv reads SOUNDSEQ_* variables, loading a .env file first when one exists.
// Variables already set in the environment win over the file.
func ConfigFromEnv() Config {
	_ = godotenv.Load()

	return Config{
		ProcessingURL: getEnv("SOUNDSEQ_PROCESSING_URL", ""),
		Port:          getEnvInt("SOUNDSEQ_PORT", 3000),
		Debug:         getEnvBool("SOUNDSEQ_DEBUG", false),
		JSONLogs:      strings.EqualFold(getEnv("SOUNDSEQ_LOG_FORMAT", "text"), "json"),
		TimeoutSec:    getEnvInt("SOUNDSEQ_HTTP_TIMEOUT_SEC", 60),
		InsecureTLS:   getEnvBool("SOUNDSEQ_INSECURE_TLS", false),
		FetchTitles:   getEnvBool("SOUNDSEQ_FETCH_TITLES", false),
		SessionTTL:    time.Duration(getEnvInt("SOUNDSEQ_SESSION_TTL_MIN", 30)) * time.Minute,
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return fallback
}
