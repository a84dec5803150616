package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int
	DevMode   bool

	EmailSender string
	Password    string // SMTP App Password

	UploadDir string // Local object storage root

	GeminiApiKey string // Generative model key for moderation/parsing
	GeminiApiUrl string

	OTPExpiryMinutes int
	OTPMaxAttempts   int
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),
		DevMode:   getEnv("DEV_MODE", "false") == "true",

		EmailSender: getEnv("EMAIL_SENDER", ""),
		Password:    getEnv("EMAIL_PASSWORD", ""),

		UploadDir: getEnv("UPLOAD_DIR", "./uploads"),

		GeminiApiKey: getEnv("GEMINI_API_KEY", ""),
		GeminiApiUrl: getEnv("GEMINI_API_URL", "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent"),

		OTPExpiryMinutes: getEnvInt("OTP_EXPIRY_MINUTES", 10),
		OTPMaxAttempts:   getEnvInt("OTP_MAX_ATTEMPTS", 5),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.GeminiApiKey == "" {
		log.Println("Warning: GEMINI_API_KEY not set. Moderation and question parsing will use local fallbacks.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
