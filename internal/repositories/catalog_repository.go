package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"frame_ledger_backend/internal/models"
)

// CatalogRepository defines the database operations on frames and lens types.
type CatalogRepository interface {
	// Frame methods
	CreateFrame(ctx context.Context, executor SQLExecutor, frame *models.Frame) (int64, error)
	GetFrameByID(ctx context.Context, executor SQLExecutor, id int64) (*models.Frame, error)
	GetFrames(ctx context.Context) ([]models.Frame, error)
	// UpsertFrameByProductID inserts the frame if its product_id is unknown and
	// returns the id of the stored row. With refresh set, an existing row's
	// name, description and price are overwritten; otherwise it is left untouched.
	UpsertFrameByProductID(ctx context.Context, executor SQLExecutor, frame *models.Frame, refresh bool) (id int64, created bool, err error)

	// LensType methods
	GetLensTypes(ctx context.Context) ([]models.LensType, error)
	GetLensTypeByID(ctx context.Context, executor SQLExecutor, id int64) (*models.LensType, error)
}

type catalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new instance of CatalogRepository.
func NewCatalogRepository(db *sql.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

// --- Frame Methods ---

const frameColumns = `id, product_id, name, description, price, created_at`

func scanFrame(s scanner, frame *models.Frame) error {
	var description sql.NullString
	if err := s.Scan(&frame.ID, &frame.ProductID, &frame.Name, &description, &frame.Price, &frame.CreatedAt); err != nil {
		return err
	}
	if description.Valid {
		frame.Description = &description.String
	}
	return nil
}

func (r *catalogRepository) CreateFrame(ctx context.Context, executor SQLExecutor, frame *models.Frame) (int64, error) {
	query := `INSERT INTO frames (product_id, name, description, price)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at`
	err := executor.QueryRowContext(ctx, query, frame.ProductID, frame.Name, frame.Description, frame.Price).
		Scan(&frame.ID, &frame.CreatedAt)
	if err != nil {
		return 0, wrapDBError(err, fmt.Sprintf("creating frame '%s'", frame.ProductID))
	}
	return frame.ID, nil
}

func (r *catalogRepository) GetFrameByID(ctx context.Context, executor SQLExecutor, id int64) (*models.Frame, error) {
	if executor == nil {
		executor = r.db
	}
	frame := &models.Frame{}
	query := `SELECT ` + frameColumns + ` FROM frames WHERE id = $1`
	if err := scanFrame(executor.QueryRowContext(ctx, query, id), frame); err != nil {
		return nil, wrapDBError(err, fmt.Sprintf("getting frame by ID %d", id))
	}
	return frame, nil
}

func (r *catalogRepository) GetFrames(ctx context.Context) ([]models.Frame, error) {
	frames := []models.Frame{}
	rows, err := r.db.QueryContext(ctx, `SELECT `+frameColumns+` FROM frames ORDER BY product_id`)
	if err != nil {
		return nil, wrapDBError(err, "getting frames")
	}
	defer rows.Close()

	for rows.Next() {
		var frame models.Frame
		if err := scanFrame(rows, &frame); err != nil {
			return nil, fmt.Errorf("%w: scanning frame: %v", ErrDatabaseError, err)
		}
		frames = append(frames, frame)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating frames: %v", ErrDatabaseError, err)
	}
	return frames, nil
}

func (r *catalogRepository) UpsertFrameByProductID(ctx context.Context, executor SQLExecutor, frame *models.Frame, refresh bool) (int64, bool, error) {
	// xmax = 0 only for a freshly inserted tuple.
	var query string
	if refresh {
		query = `INSERT INTO frames (product_id, name, description, price)
		         VALUES ($1, $2, $3, $4)
		         ON CONFLICT (product_id) DO UPDATE
		         SET name = EXCLUDED.name, description = EXCLUDED.description, price = EXCLUDED.price
		         RETURNING id, (xmax = 0) AS inserted`
	} else {
		query = `INSERT INTO frames (product_id, name, description, price)
		         VALUES ($1, $2, $3, $4)
		         ON CONFLICT (product_id) DO NOTHING
		         RETURNING id, TRUE AS inserted`
	}

	var id int64
	var created bool
	err := executor.QueryRowContext(ctx, query, frame.ProductID, frame.Name, frame.Description, frame.Price).Scan(&id, &created)
	if err == nil {
		return id, created, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, false, wrapDBError(err, fmt.Sprintf("upserting frame '%s'", frame.ProductID))
	}

	// DO NOTHING returns no row for an existing product_id.
	err = executor.QueryRowContext(ctx, `SELECT id FROM frames WHERE product_id = $1`, frame.ProductID).Scan(&id)
	if err != nil {
		return 0, false, wrapDBError(err, fmt.Sprintf("resolving frame '%s'", frame.ProductID))
	}
	return id, false, nil
}

// --- LensType Methods ---

func (r *catalogRepository) GetLensTypes(ctx context.Context) ([]models.LensType, error) {
	lensTypes := []models.LensType{}
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, price_multiplier, created_at FROM lens_types ORDER BY price_multiplier, id`)
	if err != nil {
		return nil, wrapDBError(err, "getting lens types")
	}
	defer rows.Close()

	for rows.Next() {
		var lt models.LensType
		if err := rows.Scan(&lt.ID, &lt.Name, &lt.PriceMultiplier, &lt.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning lens type: %v", ErrDatabaseError, err)
		}
		lensTypes = append(lensTypes, lt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating lens types: %v", ErrDatabaseError, err)
	}
	return lensTypes, nil
}

func (r *catalogRepository) GetLensTypeByID(ctx context.Context, executor SQLExecutor, id int64) (*models.LensType, error) {
	if executor == nil {
		executor = r.db
	}
	lt := &models.LensType{}
	err := executor.QueryRowContext(ctx, `SELECT id, name, price_multiplier, created_at FROM lens_types WHERE id = $1`, id).
		Scan(&lt.ID, &lt.Name, &lt.PriceMultiplier, &lt.CreatedAt)
	if err != nil {
		return nil, wrapDBError(err, fmt.Sprintf("getting lens type by ID %d", id))
	}
	return lt, nil
}
