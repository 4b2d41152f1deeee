// Package backup writes the inventory out as CSV.
package backup

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"inventory-manager/internal/domain"
	"inventory-manager/internal/normalize"
	"inventory-manager/internal/service"

	"go.uber.org/zap"
)

// Header is the first record of every backup file.
var Header = []string{"product_name", "product_price", "product_quantity", "date_updated"}

// ErrWriteFile marks failures on the file side of a backup, as opposed to
// failures reading the inventory.
var ErrWriteFile = errors.New("failed to write backup file")

// Exporter dumps every product to CSV, most recently created first.
type Exporter struct {
	svc    service.InventoryService
	logger *zap.Logger
}

func NewExporter(svc service.InventoryService, logger *zap.Logger) *Exporter {
	return &Exporter{svc: svc, logger: logger}
}

// WriteFile replaces the file at path with a fresh backup and returns the
// number of products written. The inventory is read before the file is
// truncated, so a store failure leaves the previous backup intact. File
// errors wrap ErrWriteFile.
func (e *Exporter) WriteFile(ctx context.Context, path string) (int, error) {
	products, err := e.svc.List(ctx)
	if err != nil {
		return 0, err
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to create backup file: %w", ErrWriteFile, err)
	}

	err = encode(f, products)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close backup file: %w", closeErr)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWriteFile, err)
	}

	e.logger.Info("Backup written", zap.String("path", path), zap.Int("products", len(products)))
	return len(products), nil
}

// Write emits the header followed by one record per product.
func (e *Exporter) Write(ctx context.Context, w io.Writer) (int, error) {
	products, err := e.svc.List(ctx)
	if err != nil {
		return 0, err
	}
	if err := encode(w, products); err != nil {
		return 0, err
	}
	return len(products), nil
}

func encode(w io.Writer, products []*domain.Product) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write backup header: %w", err)
	}

	for _, p := range products {
		record := []string{
			p.Name,
			normalize.FormatCurrency(p.PriceCents),
			strconv.Itoa(p.Quantity),
			normalize.FormatDate(p.UpdatedAt),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write product %d: %w", p.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush backup: %w", err)
	}
	return nil
}
