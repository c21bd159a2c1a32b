package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	Env             string
	MongoURI        string
	PostgresConnStr string
	UploadsDir      string
	SweepInterval   time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}
	return &Config{
		Port:            getEnv("PORT", "5000"),
		Env:             getEnv("ENV", "development"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017/mingle"),
		PostgresConnStr: getEnv("POSTGRES_CONN_STR", ""),
		UploadsDir:      getEnv("UPLOADS_DIR", "./uploads"),
		SweepInterval:   getDurationEnv("STORY_SWEEP_INTERVAL", time.Hour),
	}
}

// IsDevelopment reports whether the server runs in development mode,
// which controls how much internal error detail reaches clients.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
