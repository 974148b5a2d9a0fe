package store

import (
	"fmt"
	"path"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/CharlissonFagundes/app-gereciamento-estoque/config"
	"github.com/CharlissonFagundes/app-gereciamento-estoque/internal/domain"
)

// Store owns the database handle shared by the repositories. Callers get
// per-connection isolation from the underlying database/sql pool; Open and
// Close are the explicit lifecycle boundaries.
type Store struct {
	db *gorm.DB
}

// Open connects to the configured database and ensures the schema exists.
// Migration uses create-if-absent semantics, so calling it on an already
// initialized database is a no-op.
func Open(dbcfg config.DBConfig, datadir string) (*Store, error) {
	loglevel := glogger.Warn
	if dbcfg.Debug {
		loglevel = glogger.Info
	}
	gormcfg := &gorm.Config{
		Logger:         glogger.Default.LogMode(loglevel),
		TranslateError: true,
	}

	var dialector gorm.Dialector
	switch dbcfg.Type {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
			dbcfg.Host, dbcfg.User, dbcfg.Passwd, dbcfg.Name, dbcfg.Port)
		dialector = postgres.Open(dsn)
	default:
		dsn := path.Join(datadir, dbcfg.Name+".db") + "?_foreign_keys=on&_busy_timeout=5000"
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, gormcfg)
	if err != nil {
		return nil, storageErr("connect", err)
	}

	sqldb, err := db.DB()
	if err != nil {
		return nil, storageErr("connect", err)
	}
	if dbcfg.MaxConn > 0 {
		sqldb.SetMaxOpenConns(dbcfg.MaxConn)
	}
	if dbcfg.IdleConn > 0 {
		sqldb.SetMaxIdleConns(dbcfg.IdleConn)
	}
	sqldb.SetConnMaxLifetime(time.Hour)

	if err := db.Migrator().AutoMigrate(domain.Tables...); err != nil {
		return nil, storageErr("migrate", err)
	}

	zap.L().Info("database ready",
		zap.String("type", dialectorName(db)),
		zap.String("name", dbcfg.Name))

	return &Store{db: db}, nil
}

// DB exposes the raw gorm handle for the web layer middleware.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Close releases the connection pool. Safe to call on an already closed
// store.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqldb, err := s.db.DB()
	if err != nil {
		return nil
	}
	return sqldb.Close()
}

// DropAll removes every managed table, used by InitDb and tests.
func (s *Store) DropAll() error {
	return s.db.Migrator().DropTable(domain.Tables...)
}

func dialectorName(db *gorm.DB) string {
	return db.Dialector.Name()
}
