package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gestao/cadastrobackend/logging"
	"github.com/gestao/cadastrobackend/models"
)

// ParseLogLevel maps the textual DB_LOG_LEVEL setting to a gorm log level.
func ParseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// withForeignKeys makes sure every pooled sqlite connection enforces foreign keys,
// which the pragma alone would only do for a single connection.
func withForeignKeys(dataSourceName string) string {
	if strings.Contains(dataSourceName, "_foreign_keys") || strings.Contains(dataSourceName, "_fk=") {
		return dataSourceName
	}
	if strings.Contains(dataSourceName, "?") {
		return dataSourceName + "&_foreign_keys=1"
	}
	return dataSourceName + "?_foreign_keys=1"
}

// InMemoryDSN returns a DSN for a named, shared-cache in-memory database.
// Each distinct name is an independent store.
func InMemoryDSN(name string) string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
}

// InitGormDB initializes and returns a GORM database instance.
// A bare ":memory:" is opened as a private shared-cache database so every
// pooled connection sees the same schema and rows.
func InitGormDB(dataSourceName string, logLevel logger.LogLevel) (*gorm.DB, error) {
	log := logging.Named("database")

	if dataSourceName == ":memory:" {
		dataSourceName = InMemoryDSN(uuid.NewString())
	}

	gormLogger := logger.New(
		zap.NewStdLog(log), // io writer
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(withForeignKeys(dataSourceName)), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database using GORM: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB from GORM: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// enable write-ahead logging for better concurrency; in-memory stores reject it
	if !strings.Contains(dataSourceName, "mode=memory") {
		if err := db.Exec("PRAGMA journal_mode=WAL;").Error; err != nil {
			log.Warn("failed to set WAL mode", zap.Error(err))
		}
	}

	log.Info("GORM database initialized", zap.String("dsn", dataSourceName))
	return db, nil
}

// AutoMigrateModels creates or updates the usuarios and enderecos tables.
func AutoMigrateModels(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Person{},
		&models.Address{},
	)
	if err != nil {
		return fmt.Errorf("GORM AutoMigrate failed: %w", err)
	}
	logging.Named("database").Info("GORM AutoMigrate completed")
	return nil
}

// Close releases the pool behind a GORM instance.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB from GORM: %w", err)
	}
	return sqlDB.Close()
}
