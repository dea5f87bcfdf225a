package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/phenrril/lojamobile/internal/domain"
)

type KVRepo struct{ db *gorm.DB }

func NewKVRepo(db *gorm.DB) *KVRepo { return &KVRepo{db: db} }

func (r *KVRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.KVEntry{})
}

func (r *KVRepo) Get(ctx context.Context, key string) ([]byte, error) {
	k := strings.TrimSpace(key)
	if k == "" {
		return nil, errors.New("clave vacía")
	}
	var e domain.KVEntry
	if err := r.db.WithContext(ctx).First(&e, "key = ?", k).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e.Value, nil
}

func (r *KVRepo) Set(ctx context.Context, key string, value []byte) error {
	k := strings.TrimSpace(key)
	if k == "" {
		return errors.New("clave vacía")
	}
	e := domain.KVEntry{Key: k, Value: value, UpdatedAt: time.Now()}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
}

func (r *KVRepo) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Delete(&domain.KVEntry{}, "key = ?", strings.TrimSpace(key)).Error
}
