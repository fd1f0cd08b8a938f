// backend-go/internal/config/config.go
package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Data       DataConfig
	Simulation SimulationConfig
	Cache      CacheConfig
	Recommend  RecommendConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DataConfig controls where the simulator reads its reference tables from.
// Source is either "csv" (re-read the dataset directory on every call) or
// "postgres" (tables maintained by cmd/seed).
type DataConfig struct {
	Source     string
	DatasetDir string
	Dataset    string
}

// SimulationConfig holds the inventory classification thresholds.
// A ratio below Stockout is a projected stockout; below AtRisk is at risk.
type SimulationConfig struct {
	StockoutThreshold float64
	AtRiskThreshold   float64
}

type CacheConfig struct {
	Enabled              bool
	RedisURL             string
	RedisHost            string
	RedisPort            string
	RedisPassword        string
	RedisDB              int
	SimulationTTLSeconds int
}

type RecommendConfig struct {
	Enabled      bool
	GeminiAPIKey string
	GeminiModel  string
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 15)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "sopcenter")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("DATA_SOURCE", "csv")
		viper.SetDefault("DATA_DIR", "./data")
		viper.SetDefault("CUSTOMER_DATA_SET", "default")
		viper.SetDefault("STOCKOUT_THRESHOLD", 0.15)
		viper.SetDefault("AT_RISK_THRESHOLD", 0.30)
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_SIMULATION_TTL_SECONDS", 60)
		viper.SetDefault("RECOMMEND_ENABLED", false)
		viper.SetDefault("GEMINI_API_KEY", "")
		viper.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")

		// Read from environment variables
		viper.AutomaticEnv()

		// Ensure the dataset directory exists
		ensureDir(viper.GetString("DATA_DIR"))

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Data: DataConfig{
				Source:     viper.GetString("DATA_SOURCE"),
				DatasetDir: viper.GetString("DATA_DIR"),
				Dataset:    viper.GetString("CUSTOMER_DATA_SET"),
			},
			Simulation: SimulationConfig{
				StockoutThreshold: viper.GetFloat64("STOCKOUT_THRESHOLD"),
				AtRiskThreshold:   viper.GetFloat64("AT_RISK_THRESHOLD"),
			},
			Cache: CacheConfig{
				Enabled:              viper.GetBool("CACHE_ENABLED"),
				RedisURL:             viper.GetString("REDIS_URL"),
				RedisHost:            viper.GetString("REDIS_HOST"),
				RedisPort:            viper.GetString("REDIS_PORT"),
				RedisPassword:        viper.GetString("REDIS_PASSWORD"),
				RedisDB:              viper.GetInt("REDIS_DB"),
				SimulationTTLSeconds: viper.GetInt("CACHE_SIMULATION_TTL_SECONDS"),
			},
			Recommend: RecommendConfig{
				Enabled:      viper.GetBool("RECOMMEND_ENABLED"),
				GeminiAPIKey: viper.GetString("GEMINI_API_KEY"),
				GeminiModel:  viper.GetString("GEMINI_MODEL"),
			},
		}
	})

	return instance
}

func ensureDir(dir string) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}
}
