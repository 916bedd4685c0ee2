package config

import (
	"os"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTExpiry         time.Duration

	// Per-purpose single-use token lifetimes. Reset tokens are deliberately
	// the shortest; invites the longest, since they reach a human out of band.
	VerifyEmailTTL   time.Duration
	ChangeEmailTTL   time.Duration
	ResetPasswordTTL time.Duration
	InviteTTL        time.Duration

	PublicBaseURL string // used to build token links in outgoing email

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users           string
	Suppliers       string
	EmailTokens     string
	SupplierInvites string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users:           getEnv("DYNAMO_TABLE_USERS", "users"),
			Suppliers:       getEnv("DYNAMO_TABLE_SUPPLIERS", "suppliers"),
			EmailTokens:     getEnv("DYNAMO_TABLE_EMAIL_TOKENS", "email_tokens"),
			SupplierInvites: getEnv("DYNAMO_TABLE_SUPPLIER_INVITES", "supplier_invites"),
		},

		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTExpiry:         getEnvDuration("JWT_EXPIRY", 24*time.Hour),

		VerifyEmailTTL:   getEnvDuration("VERIFY_EMAIL_TTL", 24*time.Hour),
		ChangeEmailTTL:   getEnvDuration("CHANGE_EMAIL_TTL", time.Hour),
		ResetPasswordTTL: getEnvDuration("RESET_PASSWORD_TTL", 15*time.Minute),
		InviteTTL:        getEnvDuration("INVITE_TTL", 7*24*time.Hour),

		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:3000"),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
