package repositories

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frame_ledger_backend/internal/models"
)

var fixedNow = time.Date(2024, time.March, 14, 10, 30, 0, 0, time.UTC)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestAdjustStock_SingleUpsertStatement(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInventoryRepository(db)

	mock.ExpectQuery(`ON CONFLICT \(shop_id, frame_id\)\s+DO UPDATE SET quantity = shop_inventory.quantity \+ EXCLUDED.quantity`).
		WithArgs(int64(1), int64(5), -2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "shop_id", "frame_id", "quantity", "created_at", "updated_at"}).
			AddRow(int64(7), int64(1), int64(5), -2, fixedNow, fixedNow))

	entry, err := repo.AdjustStock(context.Background(), db, 1, 5, -2)
	require.NoError(t, err)
	assert.Equal(t, -2, entry.Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetQuantityForUpdate_Missing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInventoryRepository(db)

	mock.ExpectQuery("FOR UPDATE").
		WithArgs(int64(1), int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"quantity"}))

	qty, found, err := repo.GetQuantityForUpdate(context.Background(), db, 1, 5)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Zero(t, qty)
}

func TestMarkBilled_ScopedToShopAndUnbilled(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSaleRepository(db)

	mock.ExpectExec(`WHERE shop_id = \$1 AND id = ANY\(\$2\) AND billed = FALSE`).
		WithArgs(int64(1), "{3,4}").
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.MarkBilled(context.Background(), db, 1, []int64{3, 4})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSalesByShopInRange_HalfOpenWindow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSaleRepository(db)
	from := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`s.sale_date >= \$2 AND s.sale_date < \$3\s+ORDER BY s.sale_date, s.id`).
		WithArgs(int64(1), from, to).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "frame_id", "product_id", "frame_name", "lens_type_id", "lens_type",
			"quantity", "unit_price", "total_price", "sale_date", "billed",
		}))

	sales, err := repo.GetSalesByShopInRange(context.Background(), 1, from, to)
	require.NoError(t, err)
	assert.NotNil(t, sales)
	assert.Empty(t, sales)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertFrameByProductID_IgnoreKeepsExisting(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCatalogRepository(db)
	desc := ""
	frame := &models.Frame{ProductID: "F001", Name: "Aviator", Description: &desc}

	mock.ExpectQuery("ON CONFLICT \\(product_id\\) DO NOTHING").
		WillReturnRows(sqlmock.NewRows([]string{"id", "inserted"}))
	mock.ExpectQuery("SELECT id FROM frames WHERE product_id").
		WithArgs("F001").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

	id, created, err := repo.UpsertFrameByProductID(context.Background(), db, frame, false)
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)
	assert.False(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShopExists(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewShopRepository(db)

	mock.ExpectQuery("FOR SHARE").WithArgs(int64(1)).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectQuery("FOR SHARE").WithArgs(int64(2)).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	ok, err := repo.ShopExists(context.Background(), nil, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ShopExists(context.Background(), nil, 2)
	require.NoError(t, err)
	assert.False(t, ok)
}
