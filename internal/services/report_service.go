package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"frame_ledger_backend/internal/models"
	"frame_ledger_backend/internal/pricing"
	"frame_ledger_backend/internal/repositories"
)

// ReportService builds the distributor dashboard figures.
type ReportService interface {
	GetSummary(ctx context.Context) (*models.DistributorSummary, error)
}

type reportService struct {
	saleRepo repositories.SaleRepository
}

// NewReportService creates a new instance of ReportService.
func NewReportService(sr repositories.SaleRepository) ReportService {
	return &reportService{saleRepo: sr}
}

func (s *reportService) GetSummary(ctx context.Context) (*models.DistributorSummary, error) {
	shops, err := s.saleRepo.GetRevenueByShop(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get revenue by shop: %w", err)
	}
	summary := &models.DistributorSummary{TotalShops: len(shops), Shops: shops}
	revenues := make([]decimal.Decimal, 0, len(shops))
	for _, shop := range shops {
		summary.TotalSales += shop.SalesCount
		revenues = append(revenues, shop.Revenue)
	}
	summary.TotalRevenue = pricing.RoundCents(pricing.Sum(revenues...))
	return summary, nil
}
