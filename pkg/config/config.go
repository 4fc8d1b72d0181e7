package config

import "os"

type Config struct {
	Port       string
	Env        string
	MongoURI   string
	MongoDB    string
	UploadsDir string
}

func Load() *Config {
	return &Config{
		Port:       getEnv("PORT", "8080"),
		Env:        getEnv("ENV", "development"),
		MongoURI:   getEnv("MONGO_URI", ""),
		MongoDB:    getEnv("MONGO_DB", "lookshare"),
		UploadsDir: getEnv("UPLOADS_DIR", "./uploads"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
