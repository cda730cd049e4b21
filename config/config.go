package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	OutputDir   string
	FetchMode   string
	Timeout     time.Duration
	Delay       time.Duration
	Settle      time.Duration
	Retries     int
	UserAgent   string
	Converter   string
	TargetsFile string
	LogLevel    string
	Port        string

	QdrantHost       string
	QdrantPort       int
	QdrantAPIKey     string
	QdrantUseTLS     bool
	QdrantCollection string

	EmbeddingProvider string
	OpenAIAPIKey      string
	GeminiAPIKey      string
}

const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// LoadConfig reads .env when present, then the environment. An empty
// FetchMode or a zero Delay or Settle means "use the site's default".
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		OutputDir:   getEnv("DOCSYNC_OUTPUT_DIR", "docs"),
		FetchMode:   getEnv("DOCSYNC_FETCH_MODE", ""),
		Timeout:     getDuration("DOCSYNC_TIMEOUT", 30*time.Second),
		Delay:       getDuration("DOCSYNC_DELAY", 0),
		Settle:      getDuration("DOCSYNC_SETTLE", 0),
		Retries:     getInt("DOCSYNC_RETRIES", 0),
		UserAgent:   getEnv("DOCSYNC_USER_AGENT", DefaultUserAgent),
		Converter:   getEnv("DOCSYNC_CONVERTER", "library"),
		TargetsFile: getEnv("DOCSYNC_TARGETS_FILE", ""),
		LogLevel:    getEnv("DOCSYNC_LOG_LEVEL", "info"),
		Port:        getEnv("PORT", "8080"),

		QdrantHost:       getEnv("QDRANT_HOST", "localhost"),
		QdrantPort:       getInt("QDRANT_PORT", 6334),
		QdrantAPIKey:     getEnv("QDRANT_API_KEY", ""),
		QdrantUseTLS:     getBool("QDRANT_USE_TLS", false),
		QdrantCollection: getEnv("QDRANT_COLLECTION", "framework-docs"),

		EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "openai"),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return d
}
