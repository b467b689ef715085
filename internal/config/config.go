package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURL  string
	DBName    string
	JWTSecret string
	Port      string
	TokenTTL  time.Duration
	OTPTTL    time.Duration

	SMTPHost  string
	SMTPPort  int
	EmailUser string
	EmailPass string

	AdminEmail    string
	AdminPassword string

	AllowedOrigins []string

	UploadDriver   string
	AssetsDir      string
	R2Bucket       string
	R2AccessKeyID  string
	R2SecretKey    string
	R2Endpoint     string
	R2PublicDomain string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURL:  getEnvOrDefault("MONGO_URL", ""),
		DBName:    getEnvOrDefault("DB_NAME", "luxoro"),
		JWTSecret: mustGetEnv("JWT_SECRET"),
		Port:      getEnvOrDefault("PORT", "7000"),
		TokenTTL:  getDurationEnv("TOKEN_TTL_DAYS", 7, 24*time.Hour),
		OTPTTL:    getDurationEnv("OTP_TTL_MINUTES", 10, time.Minute),

		SMTPHost:  getEnvOrDefault("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:  getIntEnv("SMTP_PORT", 587),
		EmailUser: getEnvOrDefault("EMAIL_USER", ""),
		EmailPass: getEnvOrDefault("EMAIL_PASS", ""),

		AdminEmail:    getEnvOrDefault("ADMIN_EMAIL", ""),
		AdminPassword: getEnvOrDefault("ADMIN_PASSWORD", ""),

		AllowedOrigins: splitEnvList("ALLOWED_ORIGINS"),

		UploadDriver:   getEnvOrDefault("UPLOAD_DRIVER", "local"),
		AssetsDir:      getEnvOrDefault("ASSETS_DIR", "public/assets"),
		R2Bucket:       getEnvOrDefault("R2_BUCKET", ""),
		R2AccessKeyID:  getEnvOrDefault("R2_ACCESS_KEY_ID", ""),
		R2SecretKey:    getEnvOrDefault("R2_SECRET_ACCESS_KEY", ""),
		R2Endpoint:     getEnvOrDefault("R2_ENDPOINT", ""),
		R2PublicDomain: getEnvOrDefault("R2_PUBLIC_DOMAIN", ""),
	}
}

// mustGetEnv fails at startup rather than per request.
func mustGetEnv(key string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		log.Fatalf("ENV %s is required", key)
	}
	return value
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}

func splitEnvList(key string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
