package config

import (
	"os"
	"strconv"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// CompanyConfig is the business identity printed on generated documents
// and used to sign outgoing mail compositions.
type CompanyConfig struct {
	Name       string
	LegalName  string
	Brand      string
	Credential string
	Website    string
	Phone      string
	Email      string
	License    string
	Tagline    string
	Owner      string
	OwnerTitle string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string
	Database DatabaseConfig
	MinIO    MinIOConfig
	Company  CompanyConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"), // default only for non-sensitive value
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Company: CompanyConfig{
			Name:       getEnv("COMPANY_NAME", "C&R"),
			LegalName:  getEnv("COMPANY_LEGAL_NAME", "General Services Inc."),
			Brand:      getEnv("COMPANY_BRAND", "CR Home Pros"),
			Credential: getEnv("COMPANY_CREDENTIAL", "Licensed  |  Insured  |  Bonded"),
			Website:    getEnv("COMPANY_WEBSITE", "www.crgenserv.com"),
			Phone:      getEnv("COMPANY_PHONE", "(571) 237-7164"),
			Email:      getEnv("COMPANY_EMAIL", "crhomepros@gmail.com"),
			License:    getEnv("COMPANY_LICENSE", "MHIC #05-132359"),
			Tagline:    getEnv("COMPANY_TAGLINE", "We Are In This Business For You"),
			Owner:      getEnv("COMPANY_OWNER", "Carlos Hernandez"),
			OwnerTitle: getEnv("COMPANY_OWNER_TITLE", "President, CRGS, Inc."),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
