// Package store owns the user database: connection setup, the users
// table and the scheduled backups of the local database file.
package store

import (
	"fmt"

	"github.com/junaidrashid-git/cybereatdiri/models"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// Options selects the database. A non-empty DatabaseURL wins over SQLitePath.
type Options struct {
	DatabaseURL string
	SQLitePath  string
	Debug       bool
}

// Dialect reports which driver Open will use.
func (o Options) Dialect() string {
	if o.DatabaseURL != "" {
		return DialectPostgres
	}
	return DialectSQLite
}

// Open connects once for the life of the process and makes sure the
// users table exists before anything else touches it.
func Open(opts Options, log logrus.FieldLogger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch opts.Dialect() {
	case DialectPostgres:
		dialector = postgres.Open(opts.DatabaseURL)
	default:
		dialector = sqlite.Open(opts.SQLitePath)
	}

	db, err := gorm.Open(dialector, gormConfig(opts.Debug))
	if err != nil {
		return nil, fmt.Errorf("%s connection failed: %w", opts.Dialect(), err)
	}
	if opts.Dialect() == DialectSQLite {
		// One writer at a time; a second connection would see "database is locked".
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"dialect": opts.Dialect(),
		"path":    opts.SQLitePath,
	}).Info("user database ready")
	return db, nil
}

func gormConfig(debug bool) *gorm.Config {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	return &gorm.Config{
		TranslateError:         true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(level),
	}
}

// Migrate creates the users table if it is missing.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}); err != nil {
		return fmt.Errorf("migrate users table: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
