package services

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"frame_ledger_backend/internal/config"
	"frame_ledger_backend/internal/models"
	"frame_ledger_backend/internal/pricing"
	"frame_ledger_backend/internal/repositories"
	"frame_ledger_backend/pkg/utils"
)

// Column names recognised in an inventory CSV header.
const (
	colProductID   = "product_id"
	colName        = "name"
	colDescription = "description"
	colPrice       = "price"
	colQuantity    = "quantity"
)

var requiredImportColumns = []string{colProductID, colName, colPrice}

// ImportService merges external inventory CSV files into the catalog and a shop's stock.
type ImportService interface {
	ImportInventoryCSV(ctx context.Context, shopID int64, r io.Reader) (*models.ImportResult, error)
}

type importService struct {
	catalogRepo   repositories.CatalogRepository
	shopRepo      repositories.ShopRepository
	inventory     InventoryService
	db            *sql.DB
	refreshFrames bool
}

// NewImportService creates a new instance of ImportService.
// framePolicy is config.FramePolicyIgnore or config.FramePolicyRefresh.
func NewImportService(
	cr repositories.CatalogRepository,
	sr repositories.ShopRepository,
	inv InventoryService,
	db *sql.DB,
	framePolicy string,
) ImportService {
	return &importService{
		catalogRepo:   cr,
		shopRepo:      sr,
		inventory:     inv,
		db:            db,
		refreshFrames: framePolicy == config.FramePolicyRefresh,
	}
}

// importRow is a validated CSV line ready to be applied.
type importRow struct {
	line     int
	frame    models.Frame
	quantity int
}

func (s *importService) ImportInventoryCSV(ctx context.Context, shopID int64, r io.Reader) (*models.ImportResult, error) {
	rows, rowErrors, err := parseInventoryCSV(r)
	if err != nil {
		return nil, err
	}
	result := &models.ImportResult{Errors: rowErrors}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	if err := requireShop(ctx, s.shopRepo, tx, shopID); err != nil {
		return nil, err
	}

	for i := range rows {
		row := &rows[i]
		frameID, created, err := s.catalogRepo.UpsertFrameByProductID(ctx, tx, &row.frame, s.refreshFrames)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert frame '%s' (row %d): %w", row.frame.ProductID, row.line, err)
		}
		if created {
			result.FramesCreated++
		}
		// A zero quantity still creates the entry so the frame shows up in the shop's inventory.
		if _, err := s.inventory.AddStock(ctx, tx, shopID, frameID, row.quantity); err != nil {
			return nil, fmt.Errorf("row %d: %w", row.line, err)
		}
		result.ProcessedCount++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit import transaction: %w", err)
	}

	utils.LogInfo("Inventory import finished", map[string]interface{}{
		"shop_id":        shopID,
		"processed":      result.ProcessedCount,
		"frames_created": result.FramesCreated,
		"row_errors":     len(result.Errors),
	})
	return result, nil
}

// parseInventoryCSV reads and validates every row before anything is written.
// A bad header fails the whole import; bad rows are reported and skipped.
func parseInventoryCSV(r io.Reader) ([]importRow, []models.ImportRowError, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("%w: CSV file is empty", ErrValidation)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: unreadable CSV header: %v", ErrValidation, err)
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		name := strings.ToLower(strings.TrimSpace(h))
		if _, dup := columns[name]; !dup && name != "" {
			columns[name] = i
		}
	}
	var missing []string
	for _, col := range requiredImportColumns {
		if _, ok := columns[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, nil, fmt.Errorf("%w: CSV header is missing required columns: %s", ErrValidation, strings.Join(missing, ", "))
	}

	_, hasDescription := columns[colDescription]

	field := func(record []string, col string) string {
		i, ok := columns[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	rows := []importRow{}
	rowErrors := []models.ImportRowError{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				rowErrors = append(rowErrors, models.ImportRowError{Row: parseErr.StartLine, Message: parseErr.Err.Error()})
				continue
			}
			return nil, nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if isBlankRecord(record) {
			continue
		}

		var description *string
		if hasDescription {
			d := field(record, colDescription)
			description = &d
		}
		row, problems := validateImportRecord(
			field(record, colProductID),
			field(record, colName),
			description,
			field(record, colPrice),
			field(record, colQuantity),
		)
		if len(problems) > 0 {
			rowErrors = append(rowErrors, models.ImportRowError{Row: line, Message: strings.Join(problems, "; ")})
			continue
		}
		row.line = line
		rows = append(rows, row)
	}
	return rows, rowErrors, nil
}

// validateImportRecord applies the stored column limits to one row.
// A nil description means the file has no description column.
func validateImportRecord(productID, name string, description *string, price, quantity string) (importRow, []string) {
	var row importRow
	var problems []string

	if productID == "" {
		problems = append(problems, "product_id is required")
	}
	if name == "" {
		problems = append(problems, "name is required")
	}
	if price == "" {
		problems = append(problems, "price is required")
	} else if p, err := pricing.ParsePrice(price); err != nil {
		problems = append(problems, fmt.Sprintf("invalid price: %v", err))
	} else {
		row.frame.Price = p
	}
	if quantity != "" {
		q, err := strconv.ParseInt(quantity, 10, 32)
		if err != nil {
			problems = append(problems, fmt.Sprintf("invalid quantity %q", quantity))
		}
		row.quantity = int(q)
	}

	row.frame.ProductID = productID
	row.frame.Name = name
	row.frame.Description = description
	return row, problems
}

func isBlankRecord(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
