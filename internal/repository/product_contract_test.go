package repository

import (
	"context"
	"testing"
	"time"

	"inventory-manager/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runProductRepositoryContract exercises behaviour every store must share.
// newRepo must return an empty repository.
func runProductRepositoryContract(t *testing.T, newRepo func(t *testing.T) ProductRepository) {
	ctx := context.Background()
	stamp := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

	t.Run("create assigns increasing ids", func(t *testing.T) {
		repo := newRepo(t)

		first := &domain.Product{Name: "Widget", Quantity: 5, PriceCents: 250, UpdatedAt: stamp}
		second := &domain.Product{Name: "Gadget", Quantity: 1, PriceCents: 999, UpdatedAt: stamp}
		require.NoError(t, repo.Create(ctx, first))
		require.NoError(t, repo.Create(ctx, second))

		assert.Positive(t, first.ID)
		assert.Greater(t, second.ID, first.ID)

		got, err := repo.FindByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "Widget", got.Name)
		assert.Equal(t, 5, got.Quantity)
		assert.Equal(t, int64(250), got.PriceCents)
		assert.True(t, got.UpdatedAt.Equal(stamp), "updated_at %v", got.UpdatedAt)
	})

	t.Run("duplicate name is rejected", func(t *testing.T) {
		repo := newRepo(t)

		require.NoError(t, repo.Create(ctx, &domain.Product{Name: "Widget", UpdatedAt: stamp}))
		err := repo.Create(ctx, &domain.Product{Name: "Widget", UpdatedAt: stamp})
		assert.ErrorIs(t, err, ErrProductAlreadyExists)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("find by name", func(t *testing.T) {
		repo := newRepo(t)

		require.NoError(t, repo.Create(ctx, &domain.Product{Name: "Widget", Quantity: 3, UpdatedAt: stamp}))

		got, err := repo.FindByName(ctx, "Widget")
		require.NoError(t, err)
		assert.Equal(t, 3, got.Quantity)

		_, err = repo.FindByName(ctx, "widget")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("update overwrites fields", func(t *testing.T) {
		repo := newRepo(t)

		product := &domain.Product{Name: "Widget", Quantity: 5, PriceCents: 250, UpdatedAt: stamp}
		require.NoError(t, repo.Create(ctx, product))

		product.Quantity = 9
		product.PriceCents = 300
		product.UpdatedAt = stamp.AddDate(0, 1, 0)
		require.NoError(t, repo.Update(ctx, product))

		got, err := repo.FindByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 9, got.Quantity)
		assert.Equal(t, int64(300), got.PriceCents)
		assert.True(t, got.UpdatedAt.Equal(product.UpdatedAt))

		missing := &domain.Product{ID: product.ID + 100, Name: "Ghost", UpdatedAt: stamp}
		assert.ErrorIs(t, repo.Update(ctx, missing), ErrProductNotFound)
	})

	t.Run("update into a taken name is rejected", func(t *testing.T) {
		repo := newRepo(t)

		require.NoError(t, repo.Create(ctx, &domain.Product{Name: "Widget", UpdatedAt: stamp}))
		gadget := &domain.Product{Name: "Gadget", UpdatedAt: stamp}
		require.NoError(t, repo.Create(ctx, gadget))

		gadget.Name = "Widget"
		assert.ErrorIs(t, repo.Update(ctx, gadget), ErrProductAlreadyExists)
	})

	t.Run("list orders by id", func(t *testing.T) {
		repo := newRepo(t)

		for _, name := range []string{"A", "B", "C"} {
			require.NoError(t, repo.Create(ctx, &domain.Product{Name: name, UpdatedAt: stamp}))
		}

		desc, err := repo.List(ctx, SortOrderDesc)
		require.NoError(t, err)
		require.Len(t, desc, 3)
		assert.Equal(t, []string{"C", "B", "A"}, names(desc))

		asc, err := repo.List(ctx, SortOrderAsc)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "C"}, names(asc))
	})

	t.Run("delete removes exactly one row", func(t *testing.T) {
		repo := newRepo(t)

		keep := &domain.Product{Name: "Keep", UpdatedAt: stamp}
		drop := &domain.Product{Name: "Drop", UpdatedAt: stamp}
		require.NoError(t, repo.Create(ctx, keep))
		require.NoError(t, repo.Create(ctx, drop))

		require.NoError(t, repo.Delete(ctx, drop.ID))

		_, err := repo.FindByID(ctx, drop.ID)
		assert.ErrorIs(t, err, ErrProductNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, drop.ID), ErrProductNotFound)

		all, err := repo.List(ctx, SortOrderDesc)
		require.NoError(t, err)
		assert.Equal(t, []string{"Keep"}, names(all))

		// The name is free again
		require.NoError(t, repo.Create(ctx, &domain.Product{Name: "Drop", UpdatedAt: stamp}))
	})

	t.Run("empty store", func(t *testing.T) {
		repo := newRepo(t)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)

		all, err := repo.List(ctx, SortOrderDesc)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func names(products []*domain.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}
