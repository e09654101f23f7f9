package config

import "os"

type Config struct {
	Port          string
	MongoURI      string
	MongoDatabase string
	StoreFile     string
	AllowOrigins  []string
	VerifyBaseURL string
	FromAddress   string
	AdminEmail    string
	OutboxDir     string
	ClinicZone    string
	SMTP          SMTPConfig
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
}

func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.Username != ""
}

// Load reads configuration from environment variables, falling back to the
// demo defaults the frontend expects.
func Load() Config {
	cfg := Config{
		Port:          getenv("API_PORT", "3000"),
		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDatabase: getenv("MONGO_DATABASE", "clinic"),
		StoreFile:     os.Getenv("STORE_FILE"),
		AllowOrigins:  []string{getenv("FRONTEND_ORIGIN", "http://localhost:5500")},
		VerifyBaseURL: getenv("FRONTEND_VERIFY_BASE", "http://localhost:5500/My_moon/verify.html"),
		FromAddress:   getenv("MAIL_FROM", "no-reply@dentalclinic.local"),
		AdminEmail:    getenv("ADMIN_EMAIL", "admin@dentalclinic.local"),
		OutboxDir:     getenv("MAIL_OUTBOX_DIR", "outbox"),
		ClinicZone:    getenv("CLINIC_TIMEZONE", "Local"),
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getenv("SMTP_PORT", "587"),
			Username: os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASS"),
		},
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
