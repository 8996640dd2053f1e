package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT (session tokens minted after identity verification)
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	// Hosted identity provider
	IdentityIssuer   string
	IdentityAudience string
	IdentityJWKSURL  string
	IdentityAdminURL string
	IdentityAdminKey string

	// Super administrator (single hard-coded identity)
	SuperAdminUID string

	// Gemini (whiteboard photo analysis)
	GeminiAPIKey string
	GeminiModel  string
	AITimeout    time.Duration

	// Media host (image uploads)
	MediaUploadURL string
	MediaUploadKey string

	// Invitation mail queue
	RedisURL     string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string
	AppBaseURL   string

	// Invitations
	InviteExpiryDays int

	// Session bootstrap
	BootstrapSlowAfter time.Duration

	// Server
	Port        string
	CORSOrigins string

	// Movement catalog
	MovementsPath string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "boxtrack_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTAccessExpiry:  parseDuration(getEnv("JWT_ACCESS_EXPIRY", "15m")),
		JWTRefreshExpiry: parseDuration(getEnv("JWT_REFRESH_EXPIRY", "168h")),

		IdentityIssuer:   getEnv("IDENTITY_ISSUER", ""),
		IdentityAudience: getEnv("IDENTITY_AUDIENCE", ""),
		IdentityJWKSURL:  getEnv("IDENTITY_JWKS_URL", ""),
		IdentityAdminURL: getEnv("IDENTITY_ADMIN_URL", ""),
		IdentityAdminKey: getEnv("IDENTITY_ADMIN_KEY", ""),

		SuperAdminUID: getEnv("SUPER_ADMIN_UID", ""),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		AITimeout:    parseDuration(getEnv("AI_TIMEOUT", "60s")),

		MediaUploadURL: getEnv("MEDIA_UPLOAD_URL", ""),
		MediaUploadKey: getEnv("MEDIA_UPLOAD_KEY", ""),

		RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379/0"),
		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     parseInt(getEnv("SMTP_PORT", "587"), 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", "no-reply@boxtrack.app"),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "BoxTrack"),
		AppBaseURL:   getEnv("APP_BASE_URL", "https://boxtrack.app"),

		InviteExpiryDays: parseInt(getEnv("INVITE_EXPIRY_DAYS", "7"), 7),

		BootstrapSlowAfter: parseDuration(getEnv("BOOTSTRAP_SLOW_AFTER", "15s")),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		MovementsPath: getEnv("MOVEMENTS_PATH", "movements.json"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 15 * time.Minute
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
