package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	ListenAddr  string
	Environment string
	// ReadOnlyFS marks deployments whose local filesystem cannot be written.
	ReadOnlyFS bool

	ContentPath   string
	ContentKey    string
	UploadDir     string
	PublicBaseURL string

	KVBackend      string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisKeyPrefix string
	SQLitePath     string

	ChatBackend  string
	GeminiAPIKey string
	GeminiModel  string
	ClaudeAPIKey string
	ClaudeModel  string

	AdminPassword string

	LogLevel     string
	LogFile      string
	LogMaxSizeMB int
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ListenAddr:     getEnv("LISTEN_ADDR", ":8080"),
		Environment:    getEnv("APP_ENV", EnvDevelopment),
		ReadOnlyFS:     os.Getenv("READ_ONLY_FS") == "1" || os.Getenv("VERCEL") != "",
		ContentPath:    getEnv("CONTENT_PATH", "data/portfolio.json"),
		ContentKey:     getEnv("CONTENT_KEY", "portfolio"),
		UploadDir:      getEnv("UPLOAD_DIR", "public/uploads"),
		PublicBaseURL:  getEnv("PUBLIC_BASE_URL", ""),
		KVBackend:      getEnv("KV_BACKEND", "redis"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		RedisKeyPrefix: getEnv("REDIS_KEY_PREFIX", "paani:"),
		SQLitePath:     getEnv("SQLITE_PATH", "data/paani.db"),
		ChatBackend:    getEnv("CHAT_BACKEND", "gemini"),
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		ClaudeAPIKey:   getEnv("CLAUDE_API_KEY", ""),
		ClaudeModel:    getEnv("CLAUDE_MODEL", "claude-sonnet-4-5"),
		AdminPassword:  getEnv("ADMIN_PASSWORD", "12345"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFile:        getEnv("LOG_FILE", ""),
		LogMaxSizeMB:   getEnvInt("LOG_MAX_SIZE_MB", 50),
	}
}

// IsProduction selects the hosted storage backends and hides error details
// from API responses.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
