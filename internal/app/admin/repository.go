package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	GetByUsername(ctx context.Context, username string) (*Operator, error)
	GetByID(ctx context.Context, id uint64) (*Operator, error)
	Create(ctx context.Context, op *Operator) error
	UpdatePasswordHash(ctx context.Context, id uint64, hash string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByUsername(ctx context.Context, username string) (*Operator, error) {
	var op Operator
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&op).Error
	return r.found(&op, err)
}

func (r *repository) GetByID(ctx context.Context, id uint64) (*Operator, error) {
	var op Operator
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&op).Error
	return r.found(&op, err)
}

func (r *repository) Create(ctx context.Context, op *Operator) error {
	return r.db.WithContext(ctx).Create(op).Error
}

func (r *repository) UpdatePasswordHash(ctx context.Context, id uint64, hash string) error {
	return r.db.WithContext(ctx).Model(&Operator{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"password_hash": hash,
			"updated_at":    time.Now().UTC(),
		}).Error
}

func (r *repository) found(op *Operator, err error) (*Operator, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOperatorNotFound
		}
		return nil, fmt.Errorf("query operator: %w", err)
	}
	return op, nil
}
