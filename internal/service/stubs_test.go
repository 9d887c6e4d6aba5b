package service

// In-memory repository stubs. They satisfy the repository interfaces with
// plain maps, and return DB() == nil so the transaction helper runs the
// callback directly.

import (
	"context"
	"sort"
	"time"

	"saribill/internal/dto"
	"saribill/internal/model"
	"saribill/internal/repository"

	"gorm.io/gorm"
)

type memBillRepo struct {
	bills map[string]*model.Bill
	seqs  map[string]int
}

func newMemBillRepo() *memBillRepo {
	return &memBillRepo{bills: make(map[string]*model.Bill), seqs: make(map[string]int)}
}

func (r *memBillRepo) DB() *gorm.DB { return nil }

func (r *memBillRepo) Create(ctx context.Context, tx *gorm.DB, b *model.Bill) error {
	clone := *b
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = time.Now().UTC()
	}
	r.bills[b.ID] = &clone
	return nil
}

func (r *memBillRepo) Save(ctx context.Context, b *model.Bill) error {
	clone := *b
	r.bills[b.ID] = &clone
	return nil
}

func (r *memBillRepo) FindByID(ctx context.Context, id string) (*model.Bill, error) {
	b, ok := r.bills[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *memBillRepo) FindByHash(ctx context.Context, hash string) (*model.Bill, error) {
	for _, b := range r.bills {
		if b.URLHash == hash {
			clone := *b
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memBillRepo) HashInUse(ctx context.Context, hash string) (bool, error) {
	for _, b := range r.bills {
		if b.URLHash == hash {
			return true, nil
		}
	}
	return false, nil
}

func (r *memBillRepo) DeleteTx(tx *gorm.DB, id string) error {
	delete(r.bills, id)
	return nil
}

func (r *memBillRepo) List(ctx context.Context, filter dto.BillFilter) ([]model.Bill, int64, error) {
	var out []model.Bill
	for _, b := range r.bills {
		if filter.Phone != "" && b.CustomerPhone != filter.Phone {
			continue
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return out, int64(len(out)), nil
}

func (r *memBillRepo) ListByPhone(ctx context.Context, phone string) ([]model.Bill, error) {
	bills, _, err := r.List(ctx, dto.BillFilter{Phone: phone})
	return bills, err
}

func (r *memBillRepo) NextSequence(ctx context.Context, tx *gorm.DB, prefix string) (int, error) {
	r.seqs[prefix]++
	return r.seqs[prefix], nil
}

type memTrashRepo struct {
	trashed map[string]*model.TrashedBill
}

func newMemTrashRepo() *memTrashRepo {
	return &memTrashRepo{trashed: make(map[string]*model.TrashedBill)}
}

func (r *memTrashRepo) CreateTx(tx *gorm.DB, t *model.TrashedBill) error {
	clone := *t
	r.trashed[t.ID] = &clone
	return nil
}

func (r *memTrashRepo) FindByID(ctx context.Context, id string) (*model.TrashedBill, error) {
	t, ok := r.trashed[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *memTrashRepo) DeleteTx(tx *gorm.DB, id string) error {
	delete(r.trashed, id)
	return nil
}

func (r *memTrashRepo) Delete(ctx context.Context, id string) (bool, error) {
	_, ok := r.trashed[id]
	delete(r.trashed, id)
	return ok, nil
}

func (r *memTrashRepo) List(ctx context.Context) ([]model.TrashedBill, error) {
	var out []model.TrashedBill
	for _, t := range r.trashed {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DeletedAt.After(out[j].DeletedAt) })
	return out, nil
}

type memCustomerRepo struct {
	customers map[string]*model.Customer
}

func newMemCustomerRepo() *memCustomerRepo {
	return &memCustomerRepo{customers: make(map[string]*model.Customer)}
}

func (r *memCustomerRepo) Upsert(ctx context.Context, tx *gorm.DB, c *model.Customer) error {
	clone := *c
	r.customers[c.Phone] = &clone
	return nil
}

func (r *memCustomerRepo) FindByPhone(ctx context.Context, phone string) (*model.Customer, error) {
	c, ok := r.customers[phone]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *memCustomerRepo) List(ctx context.Context) ([]model.Customer, error) {
	var out []model.Customer
	for _, c := range r.customers {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memCustomerRepo) Search(ctx context.Context, q string) ([]model.Customer, error) {
	return r.List(ctx)
}

type memShopRepo struct {
	shop *model.ShopDetails
}

func (r *memShopRepo) Get(ctx context.Context) (*model.ShopDetails, error) {
	if r.shop == nil {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *r.shop
	return &clone, nil
}

func (r *memShopRepo) Put(ctx context.Context, s *model.ShopDetails) error {
	clone := *s
	r.shop = &clone
	return nil
}

type memOldBillRepo struct {
	bills map[string]*model.OldBill
}

func newMemOldBillRepo() *memOldBillRepo {
	return &memOldBillRepo{bills: make(map[string]*model.OldBill)}
}

func (r *memOldBillRepo) FindByID(ctx context.Context, id string) (*model.OldBill, error) {
	b, ok := r.bills[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *b
	return &clone, nil
}

// Interface conformance
var (
	_ repository.BillRepository     = (*memBillRepo)(nil)
	_ repository.TrashRepository    = (*memTrashRepo)(nil)
	_ repository.CustomerRepository = (*memCustomerRepo)(nil)
	_ repository.ShopRepository     = (*memShopRepo)(nil)
	_ repository.OldBillRepository  = (*memOldBillRepo)(nil)
)
