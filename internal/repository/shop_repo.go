package repository

import (
	"context"

	"saribill/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ShopRepository accesses the shop singleton (fixed key "details").
type ShopRepository interface {
	Get(ctx context.Context) (*model.ShopDetails, error)
	Put(ctx context.Context, s *model.ShopDetails) error
}

type shopRepo struct{ db *gorm.DB }

func NewShopRepository(db *gorm.DB) ShopRepository { return &shopRepo{db: db} }

func (r *shopRepo) Get(ctx context.Context) (*model.ShopDetails, error) {
	var s model.ShopDetails
	err := r.db.WithContext(ctx).First(&s, "id = ?", model.ShopDetailsKey).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *shopRepo) Put(ctx context.Context, s *model.ShopDetails) error {
	s.ID = model.ShopDetailsKey
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(s).Error
}
