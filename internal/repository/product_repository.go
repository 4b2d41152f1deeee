package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"inventory-manager/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrProductAlreadyExists = errors.New("product with this name already exists")
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint violation
const uniqueViolation = "23505"

// SortOrder represents the sort direction
type SortOrder string

const (
	SortOrderAsc  SortOrder = "ASC"
	SortOrderDesc SortOrder = "DESC"
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	FindByName(ctx context.Context, name string) (*domain.Product, error)
	List(ctx context.Context, order SortOrder) ([]*domain.Product, error)
	Count(ctx context.Context) (int, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// Create inserts a new product and stores the generated id on it
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (name, quantity, price_cents, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		product.Name,
		product.Quantity,
		product.PriceCents,
		product.UpdatedAt,
	).Scan(&product.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrProductAlreadyExists
		}
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// Update overwrites every column of the product with the given id
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, quantity = $3, price_cents = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Quantity,
		product.PriceCents,
		product.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrProductAlreadyExists
		}
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete removes a product by id
func (r *productRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// FindByID retrieves a product by id
func (r *productRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT id, name, quantity, price_cents, updated_at
		FROM products
		WHERE id = $1
	`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// FindByName retrieves a product by its unique name
func (r *productRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	query := `
		SELECT id, name, quantity, price_cents, updated_at
		FROM products
		WHERE name = $1
	`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by name: %w", err)
	}

	return product, nil
}

// List returns every product ordered by id
func (r *productRepository) List(ctx context.Context, order SortOrder) ([]*domain.Product, error) {
	// Only the two known directions reach the query text
	if order != SortOrderAsc {
		order = SortOrderDesc
	}

	query := fmt.Sprintf(`
		SELECT id, name, quantity, price_cents, updated_at
		FROM products
		ORDER BY id %s
	`, order)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

func (r *productRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return total, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	product := &domain.Product{}
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Quantity,
		&product.PriceCents,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return product, nil
}
