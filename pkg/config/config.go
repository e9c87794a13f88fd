package config

import "os"

type Config struct {
	Port                    string
	Env                     string
	JWTSecret               string
	MongoURI                string
	MongoDatabase           string
	PostgresConnStr         string
	RedisAddr               string
	RedisPassword           string
	MetricsPort             string
	MediaBucket             string
	MediaDir                string
	MediaBaseURL            string
	FirebaseCredentialsPath string
}

func Load() *Config {
	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		JWTSecret:               getEnv("JWT_SECRET", "supersecretjwtkey"),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDatabase:           getEnv("MONGO_DB", "talehaven"),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		RedisAddr:               getEnv("REDIS_ADDR", ""),
		RedisPassword:           getEnv("REDIS_PASSWORD", ""),
		MetricsPort:             getEnv("METRICS_PORT", "9090"),
		MediaBucket:             getEnv("MEDIA_BUCKET", ""),
		MediaDir:                getEnv("MEDIA_DIR", "./media"),
		MediaBaseURL:            getEnv("MEDIA_BASE_URL", "/media"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
