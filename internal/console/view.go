package console

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"inventory-manager/internal/domain"
	"inventory-manager/internal/normalize"
	"inventory-manager/internal/repository"
)

type browseResult int

const (
	backToMenu browseResult = iota
	backToSearch
)

func (m *Menu) view(ctx context.Context) error {
	for {
		count, err := m.svc.Count(ctx)
		if err != nil {
			return err
		}
		if count == 0 {
			m.prompt.Println("The inventory is empty.")
			return nil
		}

		answer, err := m.prompt.Choice(ctx, fmt.Sprintf(
			"Enter a product id to search (1-%d), press enter to browse all, or 'q' to return: ", count))
		if err != nil {
			return err
		}

		var products []*domain.Product
		switch answer {
		case quitKey:
			return nil
		case "":
			products, err = m.svc.List(ctx)
			if err != nil {
				return err
			}
		default:
			product, ok, err := m.search(ctx, answer, count)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			products = []*domain.Product{product}
		}

		result, err := m.browse(ctx, products)
		if err != nil {
			return err
		}
		if result == backToMenu {
			return nil
		}
	}
}

// search resolves a typed id within [1, count]. ok is false when the user
// has to try again.
func (m *Menu) search(ctx context.Context, answer string, count int) (*domain.Product, bool, error) {
	id, err := normalize.ParseInteger(answer)
	if err != nil {
		m.prompt.Printf("%q is not a product id, please enter a whole number.\n", answer)
		return nil, false, nil
	}
	if id < 1 {
		m.prompt.Println("Product ids start at 1.")
		return nil, false, nil
	}
	if id > count {
		m.prompt.Printf("%d is out of range, please enter an id from 1 to %d.\n", id, count)
		return nil, false, nil
	}

	product, err := m.svc.Get(ctx, int64(id))
	if errors.Is(err, repository.ErrProductNotFound) {
		m.prompt.Printf("There is no product with id %d.\n", id)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return product, true, nil
}

func (m *Menu) browse(ctx context.Context, products []*domain.Product) (browseResult, error) {
	for i := 0; i < len(products); {
		product := products[i]
		m.show(product)

		action, err := m.prompt.Choice(ctx, "Action: [Nqd] ")
		if err != nil {
			return backToMenu, err
		}

		switch action {
		case "n", "":
			i++
		case quitKey:
			return backToMenu, nil
		case "d":
			if err := m.confirmDelete(ctx, product); err != nil {
				return backToMenu, err
			}
			return backToSearch, nil
		}
	}

	return backToMenu, nil
}

func (m *Menu) show(p *domain.Product) {
	timestamp := normalize.FormatTimestamp(p.UpdatedAt)
	rule := strings.Repeat("=", len(timestamp))

	m.prompt.Println(rule)
	m.prompt.Printf(" Product ID: %d\n", p.ID)
	m.prompt.Printf(" Product Name: %s\n", p.Name)
	m.prompt.Printf(" Product Price: %s\n", normalize.FormatCurrency(p.PriceCents))
	m.prompt.Printf(" Product Quantity: %d\n", p.Quantity)
	m.prompt.Printf(" %s\n", timestamp)
	m.prompt.Println(rule)
	m.prompt.Println("n) next product")
	m.prompt.Println("q) return to main menu")
	m.prompt.Println("d) delete product")
}

func (m *Menu) confirmDelete(ctx context.Context, p *domain.Product) error {
	answer, err := m.prompt.Choice(ctx, "Are you sure? [yN] ")
	if err != nil {
		return err
	}
	if answer != "y" {
		return nil
	}

	err = m.svc.Delete(ctx, p.ID)
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		m.prompt.Printf("Product %d was already removed.\n", p.ID)
	case err != nil:
		return err
	default:
		m.prompt.Println("Product deleted!")
	}
	return nil
}
