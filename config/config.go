package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBUrl       string
	FrontendURL string
	// Relay contract (the external form-relay service)
	RelayEndpoint  string
	RelayAccessKey string
	ContactEmailTo string
	FromName       string
	RedirectURL    string
	// Subjects per form
	ContactSubject string
	ApplySubject   string
	// Offered as a manual escape hatch when everything else fails
	FallbackPhone string
	// Attachment constraints
	MaxFileSizeMB int
	// Relay call timeout
	RelayTimeoutSeconds int
	// Rate Limiting Configuration (outer per-IP limit)
	RateLimitWindowSeconds   int
	RateLimitSubmitThreshold int
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
}

func LoadConfig() (*Config, error) {
	// Only effective locally; ignored in production when the file is absent
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "https://chefsconnect.nl"), "/"),
		// Relay contract
		RelayEndpoint:  getEnv("RELAY_ENDPOINT", "https://api.web3forms.com/submit"),
		RelayAccessKey: getEnv("RELAY_ACCESS_KEY", ""),
		ContactEmailTo: getEnv("CONTACT_EMAIL_TO", "info@chefsconnect.nl"),
		FromName:       getEnv("FROM_NAME", "Chefs Connect Website"),
		RedirectURL:    getEnv("REDIRECT_URL", "https://chefsconnect.nl/bedankt"),
		ContactSubject: getEnv("CONTACT_SUBJECT", "Chefs Connect: Contact Aanvraag"),
		ApplySubject:   getEnv("APPLY_SUBJECT", "Chefs Connect: Aanvraag Horecafreelancers"),
		FallbackPhone:  getEnv("FALLBACK_PHONE", "+31 6 41875803"),
		// Attachments: 5MB default, 10MB on the relay's paid tier
		MaxFileSizeMB:       getEnvInt("MAX_FILE_SIZE_MB", 5),
		RelayTimeoutSeconds: getEnvInt("RELAY_TIMEOUT_SECONDS", 30),
		// Rate Limiting Configuration (with sensible defaults)
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitSubmitThreshold: getEnvInt("RATE_LIMIT_SUBMIT_THRESHOLD", 20),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
	}

	if cfg.RelayAccessKey == "" {
		log.Println("WARNING: RELAY_ACCESS_KEY is missing. Submissions will be rejected by the relay.")
	}
	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL not configured. Submission auditing is disabled.")
	}
	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
