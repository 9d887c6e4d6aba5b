package service

import (
	"context"
	"fmt"
	"time"

	"saribill/internal/dto"
	"saribill/internal/repository"

	"github.com/shopspring/decimal"
)

type AnalyticsService interface {
	Summary(ctx context.Context, filter dto.AnalyticsFilter) (*dto.AnalyticsSummaryResponse, error)
}

type analyticsService struct {
	repo repository.AnalyticsRepository
}

func NewAnalyticsService(repo repository.AnalyticsRepository) AnalyticsService {
	return &analyticsService{repo: repo}
}

func (s *analyticsService) Summary(ctx context.Context, filter dto.AnalyticsFilter) (*dto.AnalyticsSummaryResponse, error) {
	from, err := time.Parse("2006-01-02", filter.From)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid from date", ErrValidation)
	}
	to, err := time.Parse("2006-01-02", filter.To)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid to date", ErrValidation)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: date range is inverted", ErrValidation)
	}

	count, revenue, err := s.repo.Totals(ctx, from, to)
	if err != nil {
		return nil, err
	}
	payments, err := s.repo.PaymentDistribution(ctx, from, to)
	if err != nil {
		return nil, err
	}
	daily, err := s.repo.DailyRevenue(ctx, from, to)
	if err != nil {
		return nil, err
	}

	avg := decimal.Zero
	if count > 0 {
		avg = revenue.Div(decimal.NewFromInt(count)).Round(2)
	}

	resp := &dto.AnalyticsSummaryResponse{
		From:         filter.From,
		To:           filter.To,
		BillCount:    count,
		Revenue:      revenue,
		AverageBill:  avg,
		PaymentModes: make([]dto.PaymentSlice, 0, len(payments)),
		Daily:        make([]dto.DailyRevenue, 0, len(daily)),
	}
	for _, p := range payments {
		resp.PaymentModes = append(resp.PaymentModes, dto.PaymentSlice{
			Mode: p.Mode, Count: p.Count, Amount: p.Amount,
		})
	}
	for _, d := range daily {
		resp.Daily = append(resp.Daily, dto.DailyRevenue{
			Date: d.Day.Format("2006-01-02"), Count: d.Count, Revenue: d.Revenue,
		})
	}
	return resp, nil
}
