// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/finance-ledger/api/internal/application/adapter"
)

type txKey struct{}

// unitOfWork implements the adapter.UnitOfWork interface.
type unitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a new unit of work bound to the database.
func NewUnitOfWork(db *gorm.DB) adapter.UnitOfWork {
	return &unitOfWork{
		db: db,
	}
}

// Do runs fn inside a transaction carried on the context.
func (u *unitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return conn(ctx, u.db).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn returns the transaction carried by ctx, or db when there is none.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// isDuplicateKey reports whether err is a unique constraint violation.
// Messages are matched as well for drivers that do not translate errors.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

// isForeignKeyViolation reports whether err is a foreign key constraint violation.
func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}
