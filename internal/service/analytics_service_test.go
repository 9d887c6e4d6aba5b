package service

import (
	"context"
	"testing"
	"time"

	"saribill/internal/dto"
	"saribill/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memAnalyticsRepo struct {
	count    int64
	revenue  decimal.Decimal
	payments []repository.PaymentBucket
	daily    []repository.DailyBucket
}

func (r *memAnalyticsRepo) Totals(ctx context.Context, from, to time.Time) (int64, decimal.Decimal, error) {
	return r.count, r.revenue, nil
}

func (r *memAnalyticsRepo) PaymentDistribution(ctx context.Context, from, to time.Time) ([]repository.PaymentBucket, error) {
	return r.payments, nil
}

func (r *memAnalyticsRepo) DailyRevenue(ctx context.Context, from, to time.Time) ([]repository.DailyBucket, error) {
	return r.daily, nil
}

func TestSummary(t *testing.T) {
	repo := &memAnalyticsRepo{
		count:   3,
		revenue: decimal.NewFromInt(1000),
		payments: []repository.PaymentBucket{
			{Mode: "CASH", Count: 2, Amount: decimal.NewFromInt(700)},
			{Mode: "UPI", Count: 1, Amount: decimal.NewFromInt(300)},
		},
		daily: []repository.DailyBucket{
			{Day: time.Date(2025, time.April, 19, 0, 0, 0, 0, time.UTC), Count: 3, Revenue: decimal.NewFromInt(1000)},
		},
	}
	svc := NewAnalyticsService(repo)

	resp, err := svc.Summary(context.Background(), dto.AnalyticsFilter{From: "2025-04-01", To: "2025-04-30"})
	require.NoError(t, err)

	assert.Equal(t, int64(3), resp.BillCount)
	assert.Equal(t, "333.33", resp.AverageBill.StringFixed(2))
	require.Len(t, resp.PaymentModes, 2)
	assert.Equal(t, "CASH", resp.PaymentModes[0].Mode)
	require.Len(t, resp.Daily, 1)
	assert.Equal(t, "2025-04-19", resp.Daily[0].Date)
}

func TestSummaryEmptyRange(t *testing.T) {
	svc := NewAnalyticsService(&memAnalyticsRepo{revenue: decimal.Zero})

	resp, err := svc.Summary(context.Background(), dto.AnalyticsFilter{From: "2025-04-01", To: "2025-04-30"})
	require.NoError(t, err)
	assert.True(t, resp.AverageBill.IsZero())
}

func TestSummaryRejectsBadRanges(t *testing.T) {
	svc := NewAnalyticsService(&memAnalyticsRepo{})

	_, err := svc.Summary(context.Background(), dto.AnalyticsFilter{From: "2025-04-30", To: "2025-04-01"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Summary(context.Background(), dto.AnalyticsFilter{From: "30-04-2025", To: "2025-04-30"})
	assert.ErrorIs(t, err, ErrValidation)
}
