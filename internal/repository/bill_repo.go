package repository

import (
	"context"
	"time"

	"saribill/internal/dto"
	"saribill/internal/model"

	"gorm.io/gorm"
)

type BillRepository interface {
	Create(ctx context.Context, tx *gorm.DB, b *model.Bill) error
	Save(ctx context.Context, b *model.Bill) error
	FindByID(ctx context.Context, id string) (*model.Bill, error)
	FindByHash(ctx context.Context, hash string) (*model.Bill, error)
	HashInUse(ctx context.Context, hash string) (bool, error)
	DeleteTx(tx *gorm.DB, id string) error
	List(ctx context.Context, filter dto.BillFilter) ([]model.Bill, int64, error)
	ListByPhone(ctx context.Context, phone string) ([]model.Bill, error)
	// NextSequence atomically allocates the next daily sequence number for a
	// YYMMDD prefix. Must run inside the same transaction that inserts the
	// bill so an aborted create does not burn an identifier for nothing —
	// the counter row is still advanced on conflict retries, which is fine:
	// gaps ahead of the dense range never violate uniqueness.
	NextSequence(ctx context.Context, tx *gorm.DB, prefix string) (int, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type billRepo struct{ db *gorm.DB }

func NewBillRepository(db *gorm.DB) BillRepository { return &billRepo{db: db} }

func (r *billRepo) DB() *gorm.DB { return r.db }

func (r *billRepo) Create(ctx context.Context, tx *gorm.DB, b *model.Bill) error {
	return tx.WithContext(ctx).Create(b).Error
}

func (r *billRepo) Save(ctx context.Context, b *model.Bill) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *billRepo) FindByID(ctx context.Context, id string) (*model.Bill, error) {
	var b model.Bill
	err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *billRepo) FindByHash(ctx context.Context, hash string) (*model.Bill, error) {
	var b model.Bill
	err := r.db.WithContext(ctx).Where("url_hash = ?", hash).Limit(1).First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// HashInUse reports whether a candidate viewer token already identifies a
// bill anywhere it could be looked up: active, trashed, or archived.
func (r *billRepo) HashInUse(ctx context.Context, hash string) (bool, error) {
	var used bool
	err := r.db.WithContext(ctx).Raw(`
		SELECT EXISTS (SELECT 1 FROM bills     WHERE url_hash = @h)
		    OR EXISTS (SELECT 1 FROM trash     WHERE url_hash = @h)
		    OR EXISTS (SELECT 1 FROM old_bills WHERE url_hash = @h)`,
		map[string]interface{}{"h": hash}).Scan(&used).Error
	return used, err
}

func (r *billRepo) DeleteTx(tx *gorm.DB, id string) error {
	return tx.Delete(&model.Bill{}, "id = ?", id).Error
}

func (r *billRepo) List(ctx context.Context, filter dto.BillFilter) ([]model.Bill, int64, error) {
	var bills []model.Bill
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Bill{})

	if filter.From != "" && filter.To != "" {
		// Inclusive day bounds on the business date
		q = q.Where("date >= ? AND date < ?", filter.From, nextDay(filter.To))
	}
	if filter.Phone != "" {
		q = q.Where("customer_phone = ?", filter.Phone)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("date DESC, id DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&bills).Error

	return bills, total, err
}

func (r *billRepo) ListByPhone(ctx context.Context, phone string) ([]model.Bill, error) {
	var bills []model.Bill
	err := r.db.WithContext(ctx).
		Where("customer_phone = ?", phone).
		Order("date DESC").
		Find(&bills).Error
	return bills, err
}

// NextSequence is an UPSERT … RETURNING on the per-prefix counter row. The
// first allocation for a date seeds the counter from the highest suffix
// already issued under that prefix (active or trashed), so data written by
// the pre-counter scheme continues in sequence. Trashed bills keep their
// sequence slot: identifiers are never reissued.
func (r *billRepo) NextSequence(ctx context.Context, tx *gorm.DB, prefix string) (int, error) {
	var seq int
	err := tx.WithContext(ctx).Raw(`
		INSERT INTO bill_counters (prefix, last_seq)
		VALUES (@p, (
			SELECT COALESCE(MAX(CAST(RIGHT(id, 2) AS INT)), 0) + 1 FROM (
				SELECT id FROM bills WHERE id LIKE @p || '%' AND id ~ '^[0-9]{8}$'
				UNION ALL
				SELECT id FROM trash WHERE id LIKE @p || '%' AND id ~ '^[0-9]{8}$'
			) issued
		))
		ON CONFLICT (prefix) DO UPDATE SET last_seq = bill_counters.last_seq + 1
		RETURNING last_seq`,
		map[string]interface{}{"p": prefix}).Scan(&seq).Error
	return seq, err
}

func nextDay(day string) string {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		return day
	}
	return t.AddDate(0, 0, 1).Format("2006-01-02")
}
