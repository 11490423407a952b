package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"

	"portfolio-backend/db"

	"github.com/joho/godotenv"
)

const defaultRecaptchaURL = "https://www.google.com/recaptcha/api/siteverify"

type Config struct {
	Host           string
	Port           string
	DBType         string
	MongoURL       string
	MongoDB        string
	PostgresURL    string
	PostgresConns  int
	MigrationsPath string

	JWTSecret          string
	RecaptchaSecret    string
	RecaptchaVerifyURL string

	UploadDir   string
	MaxUploadMB int64

	PasswordMinLength    int
	PasswordAlphanumeric bool

	LogLevel string
	LogDir   string

	R2 R2Config

	PDFEnabled bool
}

// R2Config holds the optional bucket used to mirror uploaded originals.
type R2Config struct {
	Bucket          string
	AccountID       string
	PublicURL       string
	AccessKeyID     string
	SecretAccessKey string
}

// Enabled reports whether enough settings are present to build a client.
func (c R2Config) Enabled() bool {
	return c.Bucket != "" && c.AccountID != "" && c.PublicURL != ""
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		Host:           getEnv("HOST", "localhost"),
		Port:           getEnv("PORT", "8080"),
		DBType:         strings.ToLower(getEnv("DB_TYPE", "mongo")),
		MongoURL:       os.Getenv("MONGO_URL"),
		MongoDB:        getEnv("MONGO_DB", "portfolio-db"),
		PostgresURL:    os.Getenv("POSTGRES_URL"),
		PostgresConns:  getEnvInt("POSTGRES_MAX_CONNS", 5),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "file://db/migrations"),

		JWTSecret:          os.Getenv("JWT_SECRET"),
		RecaptchaSecret:    os.Getenv("RECAPTCHA_SECRET"),
		RecaptchaVerifyURL: getEnv("RECAPTCHA_VERIFY_URL", defaultRecaptchaURL),

		UploadDir:   getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadMB: int64(getEnvInt("MAX_UPLOAD_MB", 10)),

		PasswordMinLength:    clamp(getEnvInt("PASSWORD_MIN_LENGTH", 7), 5, 7),
		PasswordAlphanumeric: getEnvBool("PASSWORD_ALPHANUMERIC", true),

		LogLevel: getEnv("LOG_LEVEL", "INFO"),
		LogDir:   os.Getenv("LOG_DIR"),

		R2: R2Config{
			Bucket:          os.Getenv("R2_BUCKET"),
			AccountID:       os.Getenv("R2_ACCOUNT_ID"),
			PublicURL:       os.Getenv("R2_PUBLIC_URL"),
			AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		},

		PDFEnabled: getEnvBool("CHROME_PDF", true),
	}
	if cfg.MaxUploadMB <= 0 {
		cfg.MaxUploadMB = 10
	}
	if cfg.PostgresConns <= 0 {
		cfg.PostgresConns = 5
	}
	return cfg
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET not set in environment")
	}
	t, err := db.ParseDBType(c.DBType)
	if err != nil {
		return err
	}
	if t == db.Mongo && c.MongoURL == "" {
		return errors.New("MONGO_URL not set in environment")
	}
	if t == db.Postgres && c.PostgresURL == "" {
		return errors.New("POSTGRES_URL not set in environment")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %t", key, v, def)
		return def
	}
	return b
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
