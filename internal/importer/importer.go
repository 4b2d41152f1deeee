// Package importer loads inventory CSV files into the store.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"inventory-manager/internal/normalize"
	"inventory-manager/internal/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Column names of the import file.
const (
	ColumnName     = "product_name"
	ColumnQuantity = "product_quantity"
	ColumnPrice    = "product_price"
	ColumnDate     = "date_updated"
)

var requiredColumns = []string{ColumnName, ColumnQuantity, ColumnPrice, ColumnDate}

// Policy decides what a malformed row does to the rest of the import.
type Policy string

const (
	// PolicyAbort stops at the first malformed row.
	PolicyAbort Policy = "abort"
	// PolicySkip records malformed rows and keeps going.
	PolicySkip Policy = "skip"
)

var ErrMissingColumn = errors.New("missing required column")

// RowError ties a failure to its line in the source file.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Result summarises one import run.
type Result struct {
	RunID   string
	Created int
	Updated int
	Skipped []*RowError
}

// Importer applies CSV rows to the inventory as upserts by product name.
type Importer struct {
	svc    service.InventoryService
	logger *zap.Logger
	policy Policy
}

// New returns an Importer. An unknown policy falls back to PolicyAbort.
func New(svc service.InventoryService, logger *zap.Logger, policy Policy) *Importer {
	if policy != PolicySkip {
		policy = PolicyAbort
	}
	return &Importer{svc: svc, logger: logger, policy: policy}
}

// ImportFile imports the CSV at path. A missing file is reported with an
// error wrapping fs.ErrNotExist.
func (i *Importer) ImportFile(ctx context.Context, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	return i.Import(ctx, f)
}

// Import reads CSV data from r. Rows applied before an aborting error stay
// applied; the partial Result is returned alongside the error.
func (i *Importer) Import(ctx context.Context, r io.Reader) (*Result, error) {
	result := &Result{RunID: uuid.NewString()}
	log := i.logger.With(zap.String("run_id", result.RunID), zap.String("policy", string(i.policy)))
	log.Info("Import started")

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return result, fmt.Errorf("%w: file is empty", ErrMissingColumn)
		}
		return result, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index, err := columnIndex(headers)
	if err != nil {
		return result, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return result, fmt.Errorf("failed to read CSV: %w", err)
			}
			if abort := i.reject(log, result, &RowError{Line: parseErr.Line, Err: err}); abort != nil {
				return result, abort
			}
			continue
		}
		line, _ := reader.FieldPos(0)
		if isBlank(record) {
			continue
		}

		input, err := parseRow(record, index)
		if err != nil {
			if abort := i.reject(log, result, &RowError{Line: line, Err: err}); abort != nil {
				return result, abort
			}
			continue
		}

		_, outcome, err := i.svc.Save(ctx, input)
		if err != nil {
			if errors.Is(err, service.ErrInvalidProduct) {
				if abort := i.reject(log, result, &RowError{Line: line, Err: err}); abort != nil {
					return result, abort
				}
				continue
			}
			return result, fmt.Errorf("failed to save line %d: %w", line, err)
		}

		switch outcome {
		case service.OutcomeCreated:
			result.Created++
		case service.OutcomeUpdated:
			result.Updated++
		}
	}

	log.Info("Import finished",
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", len(result.Skipped)),
	)

	return result, nil
}

// reject applies the policy to a malformed row. It returns non-nil when the
// import must stop.
func (i *Importer) reject(log *zap.Logger, result *Result, rowErr *RowError) error {
	if i.policy == PolicyAbort {
		log.Error("Import aborted on malformed row", zap.Int("line", rowErr.Line), zap.Error(rowErr.Err))
		return rowErr
	}

	log.Warn("Skipping malformed row", zap.Int("line", rowErr.Line), zap.Error(rowErr.Err))
	result.Skipped = append(result.Skipped, rowErr)
	return nil
}

func columnIndex(headers []string) (map[string]int, error) {
	index := map[string]int{}
	for i, h := range headers {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	return index, nil
}

func parseRow(record []string, index map[string]int) (service.ProductInput, error) {
	field := func(col string) (string, error) {
		i := index[col]
		if i >= len(record) {
			return "", fmt.Errorf("missing value for %s", col)
		}
		return strings.TrimSpace(record[i]), nil
	}

	name, err := field(ColumnName)
	if err != nil {
		return service.ProductInput{}, err
	}

	rawQuantity, err := field(ColumnQuantity)
	if err != nil {
		return service.ProductInput{}, err
	}
	quantity, err := normalize.ParseQuantity(rawQuantity)
	if err != nil {
		return service.ProductInput{}, fmt.Errorf("%s: %w", ColumnQuantity, err)
	}

	rawPrice, err := field(ColumnPrice)
	if err != nil {
		return service.ProductInput{}, err
	}
	price, err := normalize.ParseCurrency(rawPrice)
	if err != nil {
		return service.ProductInput{}, fmt.Errorf("%s: %w", ColumnPrice, err)
	}

	rawDate, err := field(ColumnDate)
	if err != nil {
		return service.ProductInput{}, err
	}
	updatedAt, err := normalize.ParseDate(rawDate)
	if err != nil {
		return service.ProductInput{}, fmt.Errorf("%s: %w", ColumnDate, err)
	}

	return service.ProductInput{
		Name:       name,
		Quantity:   quantity,
		PriceCents: price,
		UpdatedAt:  updatedAt,
	}, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
