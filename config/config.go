package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	DBDriver    string
	DatabaseDSN string
	BaseURL     string

	AccessSecret string

	AuditPolicy      string
	AuditPolicyFile  string
	AuditFailureMode string

	KafkaBroker   string
	KafkaTopic    string
	KafkaUsername string
	KafkaPassword string

	CloudinaryUrl string
}

func LoadConfig() Config {
	if os.Getenv("ENV") != "prod" {
		err := godotenv.Overload()
		if err != nil {
			log.Println("Warning: env file not found or could not be loaded:", err)
		}
	}

	return Config{
		ServerPort:  getEnv("SERVER_PORT", ":3000"),
		DBDriver:    getEnv("DB_DRIVER", "postgres"),
		DatabaseDSN: os.Getenv("DATABASE_DSN"),
		BaseURL:     getEnv("BASE_URL", "*"),

		AccessSecret: os.Getenv("JWT_SECRET"),

		AuditPolicy:      os.Getenv("AUDIT_POLICY"),
		AuditPolicyFile:  os.Getenv("AUDIT_POLICY_FILE"),
		AuditFailureMode: getEnv("AUDIT_FAILURE_MODE", "skip"),

		KafkaBroker:   os.Getenv("KAFKA_BROKER"),
		KafkaTopic:    getEnv("KAFKA_TOPIC", "inventory.auditlogs"),
		KafkaUsername: os.Getenv("KAFKA_USERNAME"),
		KafkaPassword: os.Getenv("KAFKA_PASSWORD"),

		CloudinaryUrl: os.Getenv("CLOUDINARY_URL"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
