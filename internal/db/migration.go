package db

import (
	"context"

	"github.com/habiliai/shopagents/errors"
	"gorm.io/gorm"
)

func AutoMigrate(ctx context.Context, db *gorm.DB, models ...any) error {
	_, tx := OpenSession(ctx, db)
	return errors.WithStack(tx.AutoMigrate(models...))
}
