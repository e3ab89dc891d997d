package db

import (
	"fmt"     // DSN formatting
	"strings" // DSN inspection
	"time"    // Slow query threshold

	"flight_favorites/internal/config" // Application configuration

	"github.com/pkg/errors"      // Error wrapping
	"github.com/sirupsen/logrus" // SQL log output
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/driver/postgres"    // PostgreSQL driver for GORM
	"gorm.io/driver/sqlite"      // SQLite driver for GORM
	"gorm.io/gorm"               // GORM ORM library
	"gorm.io/gorm/logger"        // GORM logger levels
)

// Dialector builds the GORM dialector for the configured driver
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "", "mysql":
		// Data Source Name (DSN) for MySQL connection
		dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(SQLiteDSN(cfg.DBPath)), nil
	default:
		return nil, errors.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// SQLiteDSN turns a file path into a DSN with foreign keys enforced and a busy timeout
func SQLiteDSN(path string) string {
	if strings.Contains(path, "_foreign_keys") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on&_busy_timeout=5000"
}

// Open connects to the database. Driver errors are translated into GORM's
// sentinel errors (ErrDuplicatedKey, ErrForeignKeyViolated).
func Open(dialector gorm.Dialector, verbose bool) (*gorm.DB, error) {
	level := logger.Warn
	if verbose {
		level = logger.Info
	}
	sqlLogger := logger.New(logrus.StandardLogger(), logger.Config{
		SlowThreshold:             200 * time.Millisecond, // Warn on slow queries
		LogLevel:                  level,                  // SQL logging level
		IgnoreRecordNotFoundError: true,                   // Misses are reported to callers, not logged
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,      // Map driver errors to gorm sentinels
		Logger:         sqlLogger, // SQL logging through logrus
	})
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	return db, nil
}

// Close releases the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
