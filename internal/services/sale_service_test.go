package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"frame_ledger_backend/internal/config"
	"frame_ledger_backend/internal/repositories"
)

type mockIdempotencyStore struct {
	mock.Mock
}

func (m *mockIdempotencyStore) Reserve(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *mockIdempotencyStore) Release(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func newTestSaleService(t *testing.T, policy string, idem IdempotencyStore) (SaleService, sqlmock.Sqlmock) {
	db, mock := newMockDB(t)
	shopRepo := repositories.NewShopRepository(db)
	catalogRepo := repositories.NewCatalogRepository(db)
	inv := NewInventoryService(repositories.NewInventoryRepository(db), shopRepo, catalogRepo, db, policy)
	return NewSaleService(repositories.NewSaleRepository(db), shopRepo, catalogRepo, inv, idem, db), mock
}

func expectSaleInsert(mock sqlmock.Sqlmock, shopID, frameID, lensTypeID int64, qty int) {
	mock.ExpectQuery("INSERT INTO sales").
		WithArgs(shopID, frameID, lensTypeID, qty, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "sale_date", "billed"}).AddRow(int64(10), fixedNow, false))
}

func TestRecordSale_ComputesPriceAndDecrementsWithoutPriorEntry(t *testing.T) {
	svc, mock := newTestSaleService(t, config.StockPolicyAllowNegative, nil)

	mock.ExpectBegin()
	expectShopExists(mock, 1)
	expectFrame(mock, 5, "F001", "49.99")
	expectLensType(mock, 2, "Premium", "1.5")
	expectSaleInsert(mock, 1, 5, 2, 1)
	expectAdjustStock(mock, 1, 5, -1, -1)
	mock.ExpectCommit()

	sale, err := svc.RecordSale(context.Background(), 1, RecordSaleRequest{FrameID: 5, LensTypeID: 2})
	require.NoError(t, err)

	assert.Equal(t, int64(10), sale.ID)
	assert.Equal(t, 1, sale.Quantity)
	assert.False(t, sale.Billed)
	assert.True(t, sale.UnitPrice.Equal(decimal.RequireFromString("49.99")))
	assert.True(t, sale.TotalPrice.Equal(decimal.RequireFromString("74.99")), "got %s", sale.TotalPrice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordSale_SuppliedTotalIsRoundedNotRecomputed(t *testing.T) {
	svc, mock := newTestSaleService(t, config.StockPolicyAllowNegative, nil)

	mock.ExpectBegin()
	expectShopExists(mock, 1)
	expectFrame(mock, 5, "F001", "49.99")
	expectLensType(mock, 1, "Regular", "1.0")
	expectSaleInsert(mock, 1, 5, 1, 2)
	expectAdjustStock(mock, 1, 5, -2, 3)
	mock.ExpectCommit()

	unit := decimal.RequireFromString("45")
	total := decimal.RequireFromString("80.005")
	sale, err := svc.RecordSale(context.Background(), 1, RecordSaleRequest{
		FrameID: 5, LensTypeID: 1, Quantity: intPtr(2), UnitPrice: &unit, TotalPrice: &total,
	})
	require.NoError(t, err)
	assert.True(t, sale.UnitPrice.Equal(unit))
	assert.True(t, sale.TotalPrice.Equal(decimal.RequireFromString("80.01")), "got %s", sale.TotalPrice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordSale_RejectOversellRollsBack(t *testing.T) {
	svc, mock := newTestSaleService(t, config.StockPolicyRejectOversell, nil)

	mock.ExpectBegin()
	expectShopExists(mock, 1)
	expectFrame(mock, 5, "F001", "49.99")
	expectLensType(mock, 1, "Regular", "1.0")
	expectSaleInsert(mock, 1, 5, 1, 3)
	mock.ExpectQuery("SELECT quantity FROM shop_inventory").
		WithArgs(int64(1), int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"quantity"}).AddRow(2))
	mock.ExpectRollback()

	_, err := svc.RecordSale(context.Background(), 1, RecordSaleRequest{FrameID: 5, LensTypeID: 1, Quantity: intPtr(3)})
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordSale_RejectOversellWithoutEntry(t *testing.T) {
	svc, mock := newTestSaleService(t, config.StockPolicyRejectOversell, nil)

	mock.ExpectBegin()
	expectShopExists(mock, 1)
	expectFrame(mock, 5, "F001", "49.99")
	expectLensType(mock, 1, "Regular", "1.0")
	expectSaleInsert(mock, 1, 5, 1, 1)
	mock.ExpectQuery("SELECT quantity FROM shop_inventory").
		WithArgs(int64(1), int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"quantity"}))
	mock.ExpectRollback()

	_, err := svc.RecordSale(context.Background(), 1, RecordSaleRequest{FrameID: 5, LensTypeID: 1})
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordSale_UnknownLensType(t *testing.T) {
	svc, mock := newTestSaleService(t, config.StockPolicyAllowNegative, nil)

	mock.ExpectBegin()
	expectShopExists(mock, 1)
	expectFrame(mock, 5, "F001", "49.99")
	mock.ExpectQuery("FROM lens_types WHERE id").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price_multiplier", "created_at"}))
	mock.ExpectRollback()

	_, err := svc.RecordSale(context.Background(), 1, RecordSaleRequest{FrameID: 5, LensTypeID: 9})
	assert.ErrorIs(t, err, ErrLensTypeNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordSale_UnknownShop(t *testing.T) {
	svc, mock := newTestSaleService(t, config.StockPolicyAllowNegative, nil)

	mock.ExpectBegin()
	expectShopMissing(mock, 42)
	mock.ExpectRollback()

	_, err := svc.RecordSale(context.Background(), 42, RecordSaleRequest{FrameID: 5, LensTypeID: 1})
	assert.ErrorIs(t, err, ErrShopNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordSale_InvalidQuantity(t *testing.T) {
	svc, mock := newTestSaleService(t, config.StockPolicyAllowNegative, nil)

	_, err := svc.RecordSale(context.Background(), 1, RecordSaleRequest{FrameID: 5, LensTypeID: 1, Quantity: intPtr(0)})
	assert.ErrorIs(t, err, ErrValidation)

	negative := decimal.RequireFromString("-1")
	_, err = svc.RecordSale(context.Background(), 1, RecordSaleRequest{FrameID: 5, LensTypeID: 1, UnitPrice: &negative})
	assert.ErrorIs(t, err, ErrValidation)

	huge := decimal.RequireFromString("1e12")
	_, err = svc.RecordSale(context.Background(), 1, RecordSaleRequest{FrameID: 5, LensTypeID: 1, UnitPrice: &huge})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.RecordSale(context.Background(), 1, RecordSaleRequest{FrameID: 5, LensTypeID: 1, TotalPrice: &huge})
	assert.ErrorIs(t, err, ErrValidation)
	tooMany := math.MaxInt32
	tooMany++
	_, err = svc.RecordSale(context.Background(), 1, RecordSaleRequest{FrameID: 5, LensTypeID: 1, Quantity: &tooMany})
	assert.ErrorIs(t, err, ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordSale_DuplicateIdempotencyKey(t *testing.T) {
	idem := new(mockIdempotencyStore)
	idem.On("Reserve", mock.Anything, "sale:1:abc").Return(false, nil)
	svc, dbMock := newTestSaleService(t, config.StockPolicyAllowNegative, idem)

	_, err := svc.RecordSale(context.Background(), 1, RecordSaleRequest{FrameID: 5, LensTypeID: 1, IdempotencyKey: "abc"})
	assert.ErrorIs(t, err, ErrDuplicateRequest)
	idem.AssertExpectations(t)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestRecordSale_FailedSaleReleasesIdempotencyKey(t *testing.T) {
	idem := new(mockIdempotencyStore)
	idem.On("Reserve", mock.Anything, "sale:1:abc").Return(true, nil)
	idem.On("Release", mock.Anything, "sale:1:abc").Return(nil)
	svc, dbMock := newTestSaleService(t, config.StockPolicyAllowNegative, idem)

	dbMock.ExpectBegin()
	dbMock.ExpectQuery("SELECT id FROM shops WHERE id").WillReturnError(errors.New("connection reset"))
	dbMock.ExpectRollback()

	_, err := svc.RecordSale(context.Background(), 1, RecordSaleRequest{FrameID: 5, LensTypeID: 1, IdempotencyKey: "abc"})
	require.Error(t, err)
	idem.AssertExpectations(t)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestListSales(t *testing.T) {
	svc, mock := newTestSaleService(t, config.StockPolicyAllowNegative, nil)

	expectShopExists(mock, 1)
	mock.ExpectQuery("FROM sales s").
		WithArgs(int64(1)).
		WillReturnRows(saleViewRows().
			AddRow(int64(2), int64(5), "F001", "Aviator", int64(1), "Regular", 1, "49.99", "49.99", fixedNow, false).
			AddRow(int64(1), int64(5), "F001", "Aviator", int64(2), "Premium", 1, "49.99", "74.99", fixedNow, true))

	sales, err := svc.ListSales(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, int64(2), sales[0].ID)
	assert.Equal(t, "Premium", sales[1].LensType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func saleViewRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "frame_id", "product_id", "frame_name", "lens_type_id", "lens_type",
		"quantity", "unit_price", "total_price", "sale_date", "billed",
	})
}
