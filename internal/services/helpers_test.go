package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.March, 14, 10, 30, 0, 0, time.UTC)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func expectShopExists(mock sqlmock.Sqlmock, shopID int64) {
	mock.ExpectQuery("SELECT id FROM shops WHERE id").
		WithArgs(shopID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(shopID))
}

func expectShopMissing(mock sqlmock.Sqlmock, shopID int64) {
	mock.ExpectQuery("SELECT id FROM shops WHERE id").
		WithArgs(shopID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
}

func expectFrame(mock sqlmock.Sqlmock, frameID int64, productID, price string) {
	mock.ExpectQuery("FROM frames WHERE id").
		WithArgs(frameID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "name", "description", "price", "created_at"}).
			AddRow(frameID, productID, "Aviator", nil, price, fixedNow))
}

func expectLensType(mock sqlmock.Sqlmock, lensTypeID int64, name, multiplier string) {
	mock.ExpectQuery("FROM lens_types WHERE id").
		WithArgs(lensTypeID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price_multiplier", "created_at"}).
			AddRow(lensTypeID, name, multiplier, fixedNow))
}

func expectAdjustStock(mock sqlmock.Sqlmock, shopID, frameID int64, delta, result int) {
	mock.ExpectQuery("INSERT INTO shop_inventory").
		WithArgs(shopID, frameID, delta).
		WillReturnRows(sqlmock.NewRows([]string{"id", "shop_id", "frame_id", "quantity", "created_at", "updated_at"}).
			AddRow(int64(7), shopID, frameID, result, fixedNow, fixedNow))
}

func intPtr(v int) *int { return &v }
