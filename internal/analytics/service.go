package analytics

import (
	"context"
	"time"
)

const (
	topProductsLimit  = 5
	recentOrdersLimit = 10
)

// Service assembles a Report from the repository's rollups. It holds an
// injectable clock so tests can pin the window boundaries.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) Report(ctx context.Context, w Window) (Report, error) {
	since := w.Start(s.now())

	orders, revenue, err := s.repo.Totals(ctx, since)
	if err != nil {
		return Report{}, err
	}
	units, err := s.repo.UnitsSold(ctx, since)
	if err != nil {
		return Report{}, err
	}
	statusCounts, err := s.repo.StatusCounts(ctx, since)
	if err != nil {
		return Report{}, err
	}
	top, err := s.repo.TopProducts(ctx, since, topProductsLimit)
	if err != nil {
		return Report{}, err
	}
	categories, err := s.repo.CategoryRevenue(ctx, since)
	if err != nil {
		return Report{}, err
	}
	daily, err := s.repo.DailySales(ctx, since)
	if err != nil {
		return Report{}, err
	}
	recent, err := s.repo.RecentOrders(ctx, since, recentOrdersLimit)
	if err != nil {
		return Report{}, err
	}

	avg := 0.0
	if orders > 0 {
		avg = revenue / float64(orders)
	}

	return Report{
		Period:          w,
		PeriodLabel:     w.Label(),
		TotalOrders:     orders,
		TotalRevenue:    revenue,
		UnitsSold:       units,
		AvgOrderValue:   avg,
		StatusCounts:    statusCounts,
		TopProducts:     top,
		CategoryRevenue: categories,
		DailySales:      daily,
		RecentOrders:    recent,
	}, nil
}
