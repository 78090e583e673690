//go:build integration

package mock

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var once sync.Once
var db *Db

type Db struct {
	DbConn *gorm.DB
	models []any
	tables map[string]any
}

// NewDb opens the shared in-memory database and migrates models in the given order.
// Parents must come before the tables that reference them.
func NewDb(models []any) *Db {
	once.Do(func() {
		db = open(models)
	})

	return db
}

func open(models []any) *Db {
	dbSQL, err := sql.Open("sqlite", "file::memory:?cache=shared&_pragma=foreign_keys(1)")
	if err != nil {
		panic(err)
	}

	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: false,
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	newDbMock := &Db{
		DbConn: dbConn,
		models: models,
		tables: make(map[string]any, len(models)),
	}

	for _, model := range models {
		name, err := newDbMock.tableName(model)
		if err != nil {
			panic(err)
		}
		newDbMock.tables[name] = model
	}

	if err := newDbMock.init(); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}

	return newDbMock
}

func (d *Db) tableName(model any) (string, error) {
	stmt := &gorm.Statement{DB: d.DbConn}
	if err := stmt.Parse(model); err != nil {
		return "", err
	}
	return stmt.Schema.Table, nil
}

func (d *Db) init() error {
	for i := len(d.models) - 1; i >= 0; i-- {
		if err := d.DbConn.Migrator().DropTable(d.models[i]); err != nil {
			return err
		}
	}

	if err := d.DbConn.AutoMigrate(d.models...); err != nil {
		return err
	}

	for _, model := range d.models {
		if !d.DbConn.Migrator().HasTable(model) {
			return fmt.Errorf("table for model %T was not created", model)
		}
	}

	return nil
}

// ClearDB removes every row, children first, and resets the id sequences.
func (d *Db) ClearDB() error {
	for i := len(d.models) - 1; i >= 0; i-- {
		model := d.models[i]

		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(model).Error
		if err != nil {
			return err
		}

		tableName, err := d.tableName(model)
		if err != nil {
			return err
		}

		err = d.DbConn.Exec("DELETE FROM sqlite_sequence WHERE name = ?", tableName).Error
		if err != nil && !strings.Contains(err.Error(), "no such table: sqlite_sequence") {
			return err
		}
	}

	return nil
}

func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.tables[table]
	return model, ok
}
