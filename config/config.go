package config

import (
	_ "embed"
	"os"
	"strconv"
)

// SchemaContext is the versioned description of the queryable tables that is
// injected verbatim into the translation prompt.
//
//go:embed schema_context.txt
var SchemaContext string

type Config struct {
	Port            string
	DashScopeAPIKey string
	ModelName       string
	DBPath          string
	ResultsDir      string
	MaxQueryRows    int
	MaxTurns        int
	Postgres        PostgresConfig
}

type PostgresConfig struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
	SSLMode  string
	// StatementTimeoutMS is enforced server-side for every statement on the
	// connection. Query cancellation past this point is the store's job.
	StatementTimeoutMS int
}

func GetConfig() Config {
	return Config{
		Port:            getEnv("PORT", "9090"),
		DashScopeAPIKey: getEnv("DASHSCOPE_API_KEY", ""),
		ModelName:       getEnv("DASHSCOPE_MODEL", "qwen-plus"),
		DBPath:          getEnv("DB_PATH", "./data/badger"),
		ResultsDir:      getEnv("RESULTS_DIR", "./results"),
		MaxQueryRows:    getEnvInt("MAX_QUERY_ROWS", 100),
		MaxTurns:        getEnvInt("MAX_CONVERSATION_TURNS", 6),
		Postgres: PostgresConfig{
			Host:               getEnv("PG_HOST", "localhost"),
			Port:               getEnv("PG_PORT", "5432"),
			Database:           getEnv("PG_DATABASE", "storepulse"),
			User:               getEnv("PG_USER", "storepulse_ro"),
			Password:           getEnv("PG_PASSWORD", ""),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			StatementTimeoutMS: getEnvInt("PG_STATEMENT_TIMEOUT_MS", 15000),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
