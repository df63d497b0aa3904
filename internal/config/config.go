package config

import (
	"os"
	"strconv"
	"strings"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// GeminiConfig holds settings for the document-extraction API client.
// The client is constructed explicitly from this struct; a missing key is a
// typed construction error, never a silent import-time warning.
type GeminiConfig struct {
	APIKey     string
	Model      string
	TimeoutSec int
}

// PipelineConfig holds processing-pipeline tunables: the artificial per-stage
// delays of the progress sequence and the simulated ledger commit delay.
type PipelineConfig struct {
	StageDelaysMs []int
	CommitDelayMs int
}

// AutomationConfig holds settings for the detached browser-automation runner
// and the report drop directory it shares with the API.
type AutomationConfig struct {
	Bin           string
	ReportsDir    string
	AuthStatePath string
	TargetURL     string
	Headless      bool
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost    string
	Port       string
	Database   DatabaseConfig
	MinIO      MinIOConfig
	Gemini     GeminiConfig
	Pipeline   PipelineConfig
	Automation AutomationConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"), // default only for non-sensitive value
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Gemini: GeminiConfig{
			APIKey:     getEnv("GEMINI_API_KEY", ""),
			Model:      getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			TimeoutSec: getEnvInt("GEMINI_TIMEOUT_SEC", 60),
		},
		Pipeline: PipelineConfig{
			StageDelaysMs: getEnvIntList("PIPELINE_STAGE_DELAYS_MS", []int{800, 1000, 600, 0}),
			CommitDelayMs: getEnvInt("PIPELINE_COMMIT_DELAY_MS", 2000),
		},
		Automation: AutomationConfig{
			Bin:           getEnv("AUTOMATION_BIN", "./automation"),
			ReportsDir:    getEnv("AUTOMATION_REPORTS_DIR", "reports"),
			AuthStatePath: getEnv("AUTOMATION_AUTH_STATE", "auth.json"),
			TargetURL:     getEnv("AUTOMATION_TARGET_URL", "https://earth-credits-hub-32-cn42.vercel.app"),
			Headless:      getEnvBool("AUTOMATION_HEADLESS", true),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

// getEnvIntList parses a comma-separated list of integers; the default is
// returned whole if any element fails to parse.
func getEnvIntList(key string, def []int) []int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		i, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return def
		}
		out = append(out, i)
	}
	return out
}
