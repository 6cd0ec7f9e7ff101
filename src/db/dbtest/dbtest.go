// Package dbtest opens throwaway sqlite databases for package tests.
package dbtest

import (
	"fmt"
	"testing"

	"bookify/src/db"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns an isolated in-memory database, migrated with models, and
// installs it as the package-level connection. The pool is capped at one
// connection so every query inside a transaction must go through tx.
func Open(t *testing.T, models ...any) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening sqlite: %s", err.Error())
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %s", err.Error())
	}
	sqlDB.SetMaxOpenConns(1)
	if err := gdb.AutoMigrate(models...); err != nil {
		t.Fatalf("migrating: %s", err.Error())
	}
	db.NewDB(gdb)
	t.Cleanup(func() {
		sqlDB.Close()
	})
	return gdb
}
