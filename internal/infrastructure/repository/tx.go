package repository

import (
	"context"

	domainRepo "github.com/sangkips/quotation-api/internal/domain/repository"
	"gorm.io/gorm"
)

type txKey struct{}

// withTx stores an open transaction in ctx.
func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// conn returns the transaction carried by ctx, or db when there is none.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// ActiveOnly restricts a query to rows whose active flag is set.
func ActiveOnly(table string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table+".active = ?", true)
	}
}

type transactor struct {
	db *gorm.DB
}

// NewTransactor creates a transactor backed by db
func NewTransactor(db *gorm.DB) domainRepo.Transactor {
	return &transactor{db: db}
}

// WithinTransaction joins the transaction already in ctx, or opens a new one.
func (t *transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(withTx(ctx, tx))
	})
}
