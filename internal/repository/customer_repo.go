package repository

import (
	"context"

	"saribill/internal/model"

	"gorm.io/gorm"
)

type CustomerRepository interface {
	// Upsert inserts or updates by phone; the stored name is last-write-wins.
	Upsert(ctx context.Context, tx *gorm.DB, c *model.Customer) error
	FindByPhone(ctx context.Context, phone string) (*model.Customer, error)
	List(ctx context.Context) ([]model.Customer, error)
	Search(ctx context.Context, q string) ([]model.Customer, error)
}

type customerRepo struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) CustomerRepository { return &customerRepo{db: db} }

func (r *customerRepo) Upsert(ctx context.Context, tx *gorm.DB, c *model.Customer) error {
	return tx.WithContext(ctx).Exec(`
		INSERT INTO customers (phone, name, created_at, updated_at)
		VALUES (?, ?, NOW(), NOW())
		ON CONFLICT (phone) DO UPDATE SET name = EXCLUDED.name, updated_at = NOW()`,
		c.Phone, c.Name).Error
}

func (r *customerRepo) FindByPhone(ctx context.Context, phone string) (*model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).First(&c, "phone = ?", phone).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *customerRepo) List(ctx context.Context) ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.WithContext(ctx).Order("name").Find(&customers).Error
	return customers, err
}

// Search matches name prefixes case-insensitively.
func (r *customerRepo) Search(ctx context.Context, q string) ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.WithContext(ctx).
		Where("name ILIKE ?", q+"%").
		Order("name").
		Find(&customers).Error
	return customers, err
}
