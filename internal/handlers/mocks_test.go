package handlers

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"frame_ledger_backend/internal/models"
	"frame_ledger_backend/internal/repositories"
	"frame_ledger_backend/internal/services"
)

type mockInventoryService struct{ mock.Mock }

func (m *mockInventoryService) GetInventory(ctx context.Context, shopID int64) ([]models.InventoryItem, error) {
	args := m.Called(ctx, shopID)
	items, _ := args.Get(0).([]models.InventoryItem)
	return items, args.Error(1)
}

func (m *mockInventoryService) IncrementInventory(ctx context.Context, shopID int64, req services.IncrementInventoryRequest) (*models.InventoryEntry, error) {
	args := m.Called(ctx, shopID, req)
	entry, _ := args.Get(0).(*models.InventoryEntry)
	return entry, args.Error(1)
}

func (m *mockInventoryService) AddStock(ctx context.Context, executor repositories.SQLExecutor, shopID, frameID int64, delta int) (*models.InventoryEntry, error) {
	args := m.Called(ctx, executor, shopID, frameID, delta)
	entry, _ := args.Get(0).(*models.InventoryEntry)
	return entry, args.Error(1)
}

func (m *mockInventoryService) DecrementStock(ctx context.Context, executor repositories.SQLExecutor, shopID, frameID int64, quantity int) (*models.InventoryEntry, error) {
	args := m.Called(ctx, executor, shopID, frameID, quantity)
	entry, _ := args.Get(0).(*models.InventoryEntry)
	return entry, args.Error(1)
}

type mockImportService struct{ mock.Mock }

func (m *mockImportService) ImportInventoryCSV(ctx context.Context, shopID int64, r io.Reader) (*models.ImportResult, error) {
	body, _ := io.ReadAll(r)
	args := m.Called(ctx, shopID, string(body))
	result, _ := args.Get(0).(*models.ImportResult)
	return result, args.Error(1)
}

type mockSaleService struct{ mock.Mock }

func (m *mockSaleService) RecordSale(ctx context.Context, shopID int64, req services.RecordSaleRequest) (*models.Sale, error) {
	args := m.Called(ctx, shopID, req)
	sale, _ := args.Get(0).(*models.Sale)
	return sale, args.Error(1)
}

func (m *mockSaleService) ListSales(ctx context.Context, shopID int64) ([]models.SaleView, error) {
	args := m.Called(ctx, shopID)
	sales, _ := args.Get(0).([]models.SaleView)
	return sales, args.Error(1)
}

type mockBillingService struct{ mock.Mock }

func (m *mockBillingService) GetMonthlyBill(ctx context.Context, shopID int64, month, year int) (*models.MonthlyBill, error) {
	args := m.Called(ctx, shopID, month, year)
	bill, _ := args.Get(0).(*models.MonthlyBill)
	return bill, args.Error(1)
}

func (m *mockBillingService) MarkBilled(ctx context.Context, shopID int64, saleIDs []int64) (int64, error) {
	args := m.Called(ctx, shopID, saleIDs)
	return args.Get(0).(int64), args.Error(1)
}

type mockShopService struct{ mock.Mock }

func (m *mockShopService) CreateShop(ctx context.Context, req services.CreateShopRequest) (*models.Shop, error) {
	args := m.Called(ctx, req)
	shop, _ := args.Get(0).(*models.Shop)
	return shop, args.Error(1)
}

func (m *mockShopService) GetShops(ctx context.Context) ([]models.Shop, error) {
	args := m.Called(ctx)
	shops, _ := args.Get(0).([]models.Shop)
	return shops, args.Error(1)
}

func (m *mockShopService) GetShopByID(ctx context.Context, shopID int64) (*models.Shop, error) {
	args := m.Called(ctx, shopID)
	shop, _ := args.Get(0).(*models.Shop)
	return shop, args.Error(1)
}

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*models.LoginResponse)
	return resp, args.Error(1)
}
