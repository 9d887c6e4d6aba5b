package repository

import (
	"context"

	"saribill/internal/model"

	"gorm.io/gorm"
)

// OldBillRepository reads the pre-hash-era archive. The running service never
// writes here; cmd/backfillhash populates it.
type OldBillRepository interface {
	FindByID(ctx context.Context, id string) (*model.OldBill, error)
}

type oldBillRepo struct{ db *gorm.DB }

func NewOldBillRepository(db *gorm.DB) OldBillRepository { return &oldBillRepo{db: db} }

func (r *oldBillRepo) FindByID(ctx context.Context, id string) (*model.OldBill, error) {
	var b model.OldBill
	err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}
