package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"frame_ledger_backend/internal/models"
)

// SaleRepository defines the database operations on the append-only sales ledger.
type SaleRepository interface {
	CreateSale(ctx context.Context, executor SQLExecutor, sale *models.Sale) (int64, error)
	// GetSalesByShop returns a shop's sales newest first.
	GetSalesByShop(ctx context.Context, shopID int64) ([]models.SaleView, error)
	// GetSalesByShopInRange returns sales with from <= sale_date < to, oldest first.
	GetSalesByShopInRange(ctx context.Context, shopID int64, from, to time.Time) ([]models.SaleView, error)
	// MarkBilled flips billed to true for the shop's unbilled sales among ids
	// and returns how many rows changed.
	MarkBilled(ctx context.Context, executor SQLExecutor, shopID int64, ids []int64) (int64, error)
	// GetRevenueByShop aggregates sales count and revenue for every shop, including shops without sales.
	GetRevenueByShop(ctx context.Context) ([]models.ShopRevenue, error)
}

type saleRepository struct {
	db *sql.DB
}

// NewSaleRepository creates a new instance of SaleRepository.
func NewSaleRepository(db *sql.DB) SaleRepository {
	return &saleRepository{db: db}
}

const saleViewSelect = `SELECT s.id, s.frame_id, f.product_id, f.name AS frame_name, s.lens_type_id, lt.name AS lens_type,
	    s.quantity, s.unit_price, s.total_price, s.sale_date, s.billed
	  FROM sales s
	  JOIN frames f ON s.frame_id = f.id
	  JOIN lens_types lt ON s.lens_type_id = lt.id`

func (r *saleRepository) CreateSale(ctx context.Context, executor SQLExecutor, sale *models.Sale) (int64, error) {
	query := `INSERT INTO sales (shop_id, frame_id, lens_type_id, quantity, unit_price, total_price)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, sale_date, billed`
	err := executor.QueryRowContext(ctx, query,
		sale.ShopID, sale.FrameID, sale.LensTypeID, sale.Quantity, sale.UnitPrice, sale.TotalPrice,
	).Scan(&sale.ID, &sale.SaleDate, &sale.Billed)
	if err != nil {
		return 0, wrapDBError(err, fmt.Sprintf("creating sale for shop %d", sale.ShopID))
	}
	return sale.ID, nil
}

func (r *saleRepository) GetSalesByShop(ctx context.Context, shopID int64) ([]models.SaleView, error) {
	query := saleViewSelect + `
	  WHERE s.shop_id = $1
	  ORDER BY s.sale_date DESC, s.id DESC`
	return r.querySaleViews(ctx, fmt.Sprintf("getting sales for shop %d", shopID), query, shopID)
}

func (r *saleRepository) GetSalesByShopInRange(ctx context.Context, shopID int64, from, to time.Time) ([]models.SaleView, error) {
	query := saleViewSelect + `
	  WHERE s.shop_id = $1 AND s.sale_date >= $2 AND s.sale_date < $3
	  ORDER BY s.sale_date, s.id`
	return r.querySaleViews(ctx, fmt.Sprintf("getting sales for shop %d in range", shopID), query, shopID, from, to)
}

func (r *saleRepository) querySaleViews(ctx context.Context, action, query string, args ...interface{}) ([]models.SaleView, error) {
	sales := []models.SaleView{}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapDBError(err, action)
	}
	defer rows.Close()

	for rows.Next() {
		var v models.SaleView
		if err := rows.Scan(
			&v.ID, &v.FrameID, &v.ProductID, &v.FrameName, &v.LensTypeID, &v.LensType,
			&v.Quantity, &v.UnitPrice, &v.TotalPrice, &v.SaleDate, &v.Billed,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning sale: %v", ErrDatabaseError, err)
		}
		sales = append(sales, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating sales: %v", ErrDatabaseError, err)
	}
	return sales, nil
}

func (r *saleRepository) MarkBilled(ctx context.Context, executor SQLExecutor, shopID int64, ids []int64) (int64, error) {
	query := `UPDATE sales SET billed = TRUE
	          WHERE shop_id = $1 AND id = ANY($2) AND billed = FALSE`
	result, err := executor.ExecContext(ctx, query, shopID, pq.Array(ids))
	if err != nil {
		return 0, wrapDBError(err, fmt.Sprintf("marking sales billed for shop %d", shopID))
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: reading rows affected: %v", ErrDatabaseError, err)
	}
	return n, nil
}

func (r *saleRepository) GetRevenueByShop(ctx context.Context) ([]models.ShopRevenue, error) {
	revenues := []models.ShopRevenue{}
	query := `SELECT sh.id, sh.name, COUNT(s.id), COALESCE(SUM(s.total_price), 0)
	          FROM shops sh
	          LEFT JOIN sales s ON s.shop_id = sh.id
	          GROUP BY sh.id, sh.name
	          ORDER BY sh.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, wrapDBError(err, "getting revenue by shop")
	}
	defer rows.Close()

	for rows.Next() {
		var rev models.ShopRevenue
		if err := rows.Scan(&rev.ShopID, &rev.Name, &rev.SalesCount, &rev.Revenue); err != nil {
			return nil, fmt.Errorf("%w: scanning shop revenue: %v", ErrDatabaseError, err)
		}
		revenues = append(revenues, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating shop revenue: %v", ErrDatabaseError, err)
	}
	return revenues, nil
}
