package repository

import (
	"context"

	"github.com/atoz-lab/backend/pkg/errorx"
	"github.com/atoz-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

var ErrNoChanges = errorx.New(errorx.Internal, "Problem saving changes")

func create(ctx context.Context, data any) error {
	tx := xcontext.DB(ctx).Create(data)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return ErrNoChanges
	}

	return nil
}

func checkRemoved(tx *gorm.DB) error {
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func pagination(tx *gorm.DB, offset, limit int) *gorm.DB {
	if offset > 0 {
		tx = tx.Offset(offset)
	}

	if limit > 0 {
		tx = tx.Limit(limit)
	}

	return tx
}
