package config

import (
	"os"
	"strings"
)

// Config holds all environment-sourced settings. Everything is read once at
// startup; there are no CLI flags.
type Config struct {
	Port              string
	ModelPath         string
	ModelMetadataPath string
	ClassNamesPath    string
	TreatmentsPath    string
	DatabasePath      string
	FrontendOrigins   []string
	JWTSecret         string
}

func Load() Config {
	cfg := Config{}
	cfg.Port = getEnv("PORT", "8080")
	cfg.ModelPath = getEnv("MODEL_PATH", "models/model.onnx")
	cfg.ModelMetadataPath = getEnv("MODEL_METADATA_PATH", "models/model_metadata.json")
	cfg.ClassNamesPath = getEnv("CLASS_NAMES_PATH", "models/class_names.json")
	cfg.TreatmentsPath = getEnv("TREATMENTS_PATH", "data/treatments.json")
	cfg.DatabasePath = getEnv("DATABASE_PATH", "data/plantguard.db")
	cfg.JWTSecret = getEnv("JWT_SECRET_KEY", "dev-secret-key")
	cfg.FrontendOrigins = splitOrigins(getEnv("FRONTEND_ORIGINS", "http://localhost:8080,http://localhost:3000"))
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		if o := strings.TrimSpace(part); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
