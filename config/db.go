package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TargetDSN builds the target store DSN from TARGET_DSN or the TARGET_*
// parts. Shared by the gorm connection and the schema migrator.
func TargetDSN() string {
	if dsn := os.Getenv("TARGET_DSN"); dsn != "" {
		return dsn
	}
	user := os.Getenv("TARGET_USER")
	pass := os.Getenv("TARGET_PASS")
	host := os.Getenv("TARGET_HOST")
	port := os.Getenv("TARGET_PORT")
	db := os.Getenv("TARGET_DB")
	if port == "" {
		port = "3306"
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=Local", user, pass, host, port, db)
}

// NewDB opens the target store (the normalized relational DB records are
// migrated into).
func NewDB() (*gorm.DB, error) {
	dsn := TargetDSN()

	logMode := logger.Info
	if os.Getenv("GORM_LOG") == "off" {
		logMode = logger.Silent
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logMode,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}
