package repository

import (
	"context"
	"sort"

	"inventory-manager/internal/domain"
)

// MemoryProductRepository keeps products in process memory. Ids are never
// reused, matching a database sequence.
type MemoryProductRepository struct {
	products map[int64]domain.Product
	byName   map[string]int64
	nextID   int64
}

// NewMemoryProductRepository creates an empty in-memory store
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: map[int64]domain.Product{},
		byName:   map[string]int64{},
		nextID:   1,
	}
}

func (r *MemoryProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if _, exists := r.byName[product.Name]; exists {
		return ErrProductAlreadyExists
	}

	product.ID = r.nextID
	r.nextID++
	r.products[product.ID] = *product
	r.byName[product.Name] = product.ID
	return nil
}

func (r *MemoryProductRepository) Update(ctx context.Context, product *domain.Product) error {
	current, exists := r.products[product.ID]
	if !exists {
		return ErrProductNotFound
	}
	if owner, taken := r.byName[product.Name]; taken && owner != product.ID {
		return ErrProductAlreadyExists
	}

	delete(r.byName, current.Name)
	r.products[product.ID] = *product
	r.byName[product.Name] = product.ID
	return nil
}

func (r *MemoryProductRepository) Delete(ctx context.Context, id int64) error {
	current, exists := r.products[id]
	if !exists {
		return ErrProductNotFound
	}

	delete(r.products, id)
	delete(r.byName, current.Name)
	return nil
}

func (r *MemoryProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	product, exists := r.products[id]
	if !exists {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

func (r *MemoryProductRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	id, exists := r.byName[name]
	if !exists {
		return nil, ErrProductNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *MemoryProductRepository) List(ctx context.Context, order SortOrder) ([]*domain.Product, error) {
	products := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		product := p
		products = append(products, &product)
	}

	sort.Slice(products, func(i, j int) bool {
		if order == SortOrderAsc {
			return products[i].ID < products[j].ID
		}
		return products[i].ID > products[j].ID
	})

	return products, nil
}

func (r *MemoryProductRepository) Count(ctx context.Context) (int, error) {
	return len(r.products), nil
}
