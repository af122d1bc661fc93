package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"eyewear.GO/core/logger"
)

// NewDB opens the catalog database. DB_DRIVER=sqlite uses SQLITE_PATH
// (default eyewear.db); anything else connects to MySQL.
func NewDB() (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: newGormLogger(os.Getenv("GORM_LOG"))}

	if strings.EqualFold(os.Getenv("DB_DRIVER"), "sqlite") {
		return gorm.Open(sqlite.Open(GetEnv("SQLITE_PATH", "eyewear.db")), cfg)
	}
	return gorm.Open(mysql.Open(mysqlDSN()), cfg)
}

// newGormLogger routes gorm's SQL log through the application logger.
func newGormLogger(mode string) gormlogger.Interface {
	level := gormlogger.Warn
	switch strings.ToLower(mode) {
	case "off":
		level = gormlogger.Silent
	case "info":
		level = gormlogger.Info
	}
	return gormlogger.New(
		logger.GetAppLogger().WithField("component", "gorm"),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		},
	)
}

func mysqlDSN() string {
	if dsn := os.Getenv("MYSQL_DSN"); dsn != "" {
		return dsn
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=Local",
		os.Getenv("MYSQL_USER"),
		os.Getenv("MYSQL_PASS"),
		GetEnv("MYSQL_HOST", "127.0.0.1"),
		GetEnv("MYSQL_PORT", "3306"),
		os.Getenv("MYSQL_DB"),
	)
}

// DBConfigured reports whether any database connection settings are present.
func DBConfigured() bool {
	return os.Getenv("DB_DRIVER") != "" || os.Getenv("MYSQL_DSN") != "" || os.Getenv("MYSQL_DB") != ""
}
