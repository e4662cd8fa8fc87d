package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DBDSN         string
	LogFile       string
	ImgbbEndpoint string
	ImgbbKey      string
}

func Load() Config {
	// .env is optional; real deployments use environment variables.
	_ = godotenv.Load()

	cfg := Config{
		Port:          getenv("PORT", "8080"),
		DBDSN:         getenv("DB_DSN", "bazar.db"),
		LogFile:       getenv("LOG_FILE", "./bazar.log"),
		ImgbbEndpoint: getenv("IMGBB_ENDPOINT", "https://api.imgbb.com/1/upload"),
		ImgbbKey:      os.Getenv("IMGBB_KEY"),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s IMGBB_ENDPOINT=%s",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.ImgbbEndpoint)
	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
