package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// "http" (model server, default) or "rekognition"
	ClassifierBackend string
	ClassifierURL     string
	AWSRegion         string

	// optional external catalog file; empty means the embedded table
	CatalogPath string
}

// Load reads configuration from the environment, with an optional .env
// file for local development.
func Load() *Config {
	_ = godotenv.Load() // .env is optional

	return &Config{
		Port:              getenv("PORT", "8080"),
		ClassifierBackend: getenv("CLASSIFIER_BACKEND", "http"),
		ClassifierURL:     getenv("CLASSIFIER_URL", "http://localhost:8000/upload"),
		AWSRegion:         os.Getenv("AWS_REGION"),
		CatalogPath:       os.Getenv("CATALOG_PATH"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
