package memory

import (
	"context"

	"github.com/habiliai/shopagents/errors"
	"github.com/habiliai/shopagents/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	Store interface {
		Set(ctx context.Context, memory *Memory) error
		Get(ctx context.Context, scope, key string) (*Memory, error)
		List(ctx context.Context, scope string) ([]*Memory, error)
		Delete(ctx context.Context, scope, key string) error
	}

	sqlStore struct {
		db *gorm.DB
	}
)

var (
	_ Store = (*sqlStore)(nil)
)

func NewStore(db *gorm.DB) Store {
	return &sqlStore{db: db}
}

// Set inserts the memory or overwrites the value and tags of an existing key.
func (s *sqlStore) Set(ctx context.Context, memory *Memory) error {
	if memory.Key == "" {
		return errors.Wrapf(errors.ErrInvalidParams, "memory key is required")
	}
	if memory.Scope == "" {
		memory.Scope = GlobalScope
	}

	_, tx := db.OpenSession(ctx, s.db)
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "scope"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "source", "tags", "updated_at"}),
	}).Create(memory).Error; err != nil {
		return errors.Wrapf(err, "failed to save memory %s", memory.Key)
	}

	return nil
}

func (s *sqlStore) Get(ctx context.Context, scope, key string) (*Memory, error) {
	_, tx := db.OpenSession(ctx, s.db)

	var memory Memory
	if r := tx.Where("scope = ? AND key = ?", scope, key).Limit(1).Find(&memory); r.Error != nil {
		return nil, errors.Wrapf(r.Error, "failed to find memory")
	} else if r.RowsAffected == 0 {
		return nil, errors.Wrapf(errors.ErrNotFound, "memory %s", key)
	}

	return &memory, nil
}

func (s *sqlStore) List(ctx context.Context, scope string) ([]*Memory, error) {
	_, tx := db.OpenSession(ctx, s.db)

	var memories []*Memory
	if err := tx.Where("scope = ?", scope).Order("created_at ASC").Find(&memories).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to list memories")
	}

	return memories, nil
}

func (s *sqlStore) Delete(ctx context.Context, scope, key string) error {
	_, tx := db.OpenSession(ctx, s.db)

	r := tx.Where("scope = ? AND key = ?", scope, key).Delete(&Memory{})
	if r.Error != nil {
		return errors.Wrapf(r.Error, "failed to delete memory")
	}
	if r.RowsAffected == 0 {
		return errors.Wrapf(errors.ErrNotFound, "memory %s", key)
	}

	return nil
}
