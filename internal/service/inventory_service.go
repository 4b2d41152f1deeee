package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"inventory-manager/internal/domain"
	"inventory-manager/internal/repository"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var ErrInvalidProduct = errors.New("invalid product")

// SaveOutcome tells whether an upsert inserted a row or overwrote one.
type SaveOutcome int

const (
	OutcomeCreated SaveOutcome = iota + 1
	OutcomeUpdated
)

func (o SaveOutcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeUpdated:
		return "updated"
	default:
		return "unknown"
	}
}

// ProductInput carries the fields of an upsert. A zero UpdatedAt means now.
type ProductInput struct {
	Name       string `validate:"required,max=255"`
	Quantity   int    `validate:"gte=0"`
	PriceCents int64  `validate:"gte=0"`
	UpdatedAt  time.Time
}

// InventoryService defines the product operations used by the importer and the console
type InventoryService interface {
	// Save inserts the product or, when the name is taken, overwrites the
	// existing row with the same name.
	Save(ctx context.Context, input ProductInput) (*domain.Product, SaveOutcome, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id int64) error
}

type inventoryService struct {
	repo     repository.ProductRepository
	logger   *zap.Logger
	validate *validator.Validate
	now      func() time.Time
}

// Option customises an InventoryService
type Option func(*inventoryService)

// WithClock replaces time.Now as the source of default timestamps
func WithClock(now func() time.Time) Option {
	return func(s *inventoryService) {
		s.now = now
	}
}

// NewInventoryService creates a new instance of InventoryService
func NewInventoryService(repo repository.ProductRepository, logger *zap.Logger, opts ...Option) InventoryService {
	s := &inventoryService{
		repo:     repo,
		logger:   logger,
		validate: validator.New(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *inventoryService) Save(ctx context.Context, input ProductInput) (*domain.Product, SaveOutcome, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := s.validate.Struct(input); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrInvalidProduct, err)
	}

	updatedAt := input.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = s.now()
	}

	existing, err := s.repo.FindByName(ctx, input.Name)
	switch {
	case err == nil:
		return s.overwrite(ctx, existing, input, updatedAt)
	case !errors.Is(err, repository.ErrProductNotFound):
		return nil, 0, fmt.Errorf("failed to look up product %q: %w", input.Name, err)
	}

	product := &domain.Product{
		Name:       input.Name,
		Quantity:   input.Quantity,
		PriceCents: input.PriceCents,
		UpdatedAt:  updatedAt,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		if !errors.Is(err, repository.ErrProductAlreadyExists) {
			return nil, 0, fmt.Errorf("failed to create product %q: %w", input.Name, err)
		}

		// The name appeared between the lookup and the insert
		existing, err := s.repo.FindByName(ctx, input.Name)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to look up product %q: %w", input.Name, err)
		}
		return s.overwrite(ctx, existing, input, updatedAt)
	}

	s.logger.Info("Product created",
		zap.Int64("id", product.ID),
		zap.String("name", product.Name),
		zap.Int("quantity", product.Quantity),
		zap.Int64("price_cents", product.PriceCents),
	)

	return product, OutcomeCreated, nil
}

func (s *inventoryService) overwrite(ctx context.Context, existing *domain.Product, input ProductInput, updatedAt time.Time) (*domain.Product, SaveOutcome, error) {
	existing.Name = input.Name
	existing.Quantity = input.Quantity
	existing.PriceCents = input.PriceCents
	existing.UpdatedAt = updatedAt

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, 0, fmt.Errorf("failed to update product %q: %w", input.Name, err)
	}

	s.logger.Info("Product already in inventory, updated",
		zap.Int64("id", existing.ID),
		zap.String("name", existing.Name),
		zap.Int("quantity", existing.Quantity),
		zap.Int64("price_cents", existing.PriceCents),
	)

	return existing, OutcomeUpdated, nil
}

// List returns all products, most recently created first
func (s *inventoryService) List(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.repo.List(ctx, repository.SortOrderDesc)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *inventoryService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return product, nil
}

func (s *inventoryService) Count(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func (s *inventoryService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}

	s.logger.Info("Product deleted", zap.Int64("id", id))
	return nil
}
