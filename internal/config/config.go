// Package config loads application configuration from environment
// variables. Required values fatal at startup through must(); settings
// for optional collaborators (mailer, image host, redis, broker)
// default to empty and the owning subsystem degrades gracefully.
package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration. Strings for identifiers and
// secrets, ints for durations and costs.
type Config struct {
	Env            string // application environment (dev/test/prod)
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	JWTSecret      string // secret used to sign JWTs
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	BcryptCost     int    // bcrypt cost for password hashing

	// Outbound email (SendGrid Web API). Empty key disables delivery;
	// email failure never blocks the primary action either way.
	SendGridAPIKey string
	EmailFrom      string

	// Image hosting (Cloudinary upload API).
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	// Base URL of the frontend, used to build password-reset links.
	FrontendBaseURL string
}

// Load reads configuration from the environment. Missing required
// variables abort the process with a fatal log message.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),

		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		EmailFrom:      getenv("EMAIL_FROM", "noreply@esetaskmanager.com"),

		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),

		FrontendBaseURL: getenv("FRONTEND_BASE_URL", "http://localhost:3000"),
	}
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is must() plus integer conversion.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
