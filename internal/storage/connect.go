package storage

import (
	"fmt"
	"os"
	"strconv"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the Postgres database described by the environment:
// DB_HOST, DB_PORT, DB_NAME, plus either DB_USERNAME/DB_PASSWORD or a
// DB_SECRET_ID resolved through AWS Secrets Manager.
func Connect() (*gorm.DB, error) {
	port, err := strconv.ParseUint(os.Getenv("DB_PORT"), 10, 32)
	if err != nil {
		port = 5432
	}

	return ConnectDatabase(uint(port), os.Getenv("DB_HOST"), os.Getenv("DB_NAME"), os.Getenv("DB_SECRET_ID"))
}

// ConnectDatabase opens a connection with explicit parameters. Credentials
// come from the environment when set, otherwise from Secrets Manager.
func ConnectDatabase(port uint, host, dbname, secretID string) (*gorm.DB, error) {
	var sslMode string
	if os.Getenv("DB_SSL_MODE_DISABLE") == "true" {
		sslMode = " sslmode=disable"
	}

	username, password, err := retrieveCredentials(secretID)
	if err != nil {
		return nil, fmt.Errorf("resolve database credentials: %w", err)
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d%s",
		host, username, password, dbname, port, sslMode)
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
}
