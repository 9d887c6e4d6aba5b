package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AnalyticsRepository runs the aggregate queries behind the dashboard.
// All ranges are on the business date, inclusive of both end days.
type AnalyticsRepository interface {
	Totals(ctx context.Context, from, to time.Time) (count int64, revenue decimal.Decimal, err error)
	PaymentDistribution(ctx context.Context, from, to time.Time) ([]PaymentBucket, error)
	DailyRevenue(ctx context.Context, from, to time.Time) ([]DailyBucket, error)
}

type PaymentBucket struct {
	Mode   string
	Count  int64
	Amount decimal.Decimal
}

type DailyBucket struct {
	Day     time.Time
	Count   int64
	Revenue decimal.Decimal
}

type analyticsRepo struct{ db *gorm.DB }

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository { return &analyticsRepo{db: db} }

func (r *analyticsRepo) Totals(ctx context.Context, from, to time.Time) (int64, decimal.Decimal, error) {
	var row struct {
		Count   int64
		Revenue decimal.Decimal
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS revenue
		FROM bills
		WHERE date >= ? AND date < ?`,
		from, to.AddDate(0, 0, 1)).Scan(&row).Error
	return row.Count, row.Revenue, err
}

func (r *analyticsRepo) PaymentDistribution(ctx context.Context, from, to time.Time) ([]PaymentBucket, error) {
	var buckets []PaymentBucket
	err := r.db.WithContext(ctx).Raw(`
		SELECT payment_mode AS mode, COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS amount
		FROM bills
		WHERE date >= ? AND date < ?
		GROUP BY payment_mode
		ORDER BY payment_mode`,
		from, to.AddDate(0, 0, 1)).Scan(&buckets).Error
	return buckets, err
}

func (r *analyticsRepo) DailyRevenue(ctx context.Context, from, to time.Time) ([]DailyBucket, error) {
	var buckets []DailyBucket
	err := r.db.WithContext(ctx).Raw(`
		SELECT DATE(date) AS day, COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS revenue
		FROM bills
		WHERE date >= ? AND date < ?
		GROUP BY DATE(date)
		ORDER BY day`,
		from, to.AddDate(0, 0, 1)).Scan(&buckets).Error
	return buckets, err
}
