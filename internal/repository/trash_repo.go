package repository

import (
	"context"

	"saribill/internal/model"

	"gorm.io/gorm"
)

type TrashRepository interface {
	CreateTx(tx *gorm.DB, t *model.TrashedBill) error
	FindByID(ctx context.Context, id string) (*model.TrashedBill, error)
	DeleteTx(tx *gorm.DB, id string) error
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]model.TrashedBill, error)
}

type trashRepo struct{ db *gorm.DB }

func NewTrashRepository(db *gorm.DB) TrashRepository { return &trashRepo{db: db} }

func (r *trashRepo) CreateTx(tx *gorm.DB, t *model.TrashedBill) error {
	return tx.Create(t).Error
}

func (r *trashRepo) FindByID(ctx context.Context, id string) (*model.TrashedBill, error) {
	var t model.TrashedBill
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *trashRepo) DeleteTx(tx *gorm.DB, id string) error {
	return tx.Delete(&model.TrashedBill{}, "id = ?", id).Error
}

// Delete removes a trash record unconditionally and reports whether a row
// actually existed. Used by permanent delete, which is irreversible.
func (r *trashRepo) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.TrashedBill{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (r *trashRepo) List(ctx context.Context) ([]model.TrashedBill, error) {
	var trashed []model.TrashedBill
	err := r.db.WithContext(ctx).Order("deleted_at DESC").Find(&trashed).Error
	return trashed, err
}
