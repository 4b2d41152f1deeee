package console

import (
	"context"
	"errors"
	"strings"

	"inventory-manager/internal/normalize"
	"inventory-manager/internal/service"
)

func (m *Menu) add(ctx context.Context) error {
	m.prompt.Println("Enter your product")

	name, err := m.prompt.Ask(ctx, "What is the name of your product? ")
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)

	var price int64
	for {
		raw, err := m.prompt.Ask(ctx, "How much is your product? Please use $ before your entry: ")
		if err != nil {
			return err
		}
		if price, err = normalize.ParseCurrency(raw); err == nil {
			break
		}
		m.prompt.Println("Please enter a price such as $2.50.")
	}

	var quantity int
	for {
		raw, err := m.prompt.Ask(ctx, "How many products do you have? ")
		if err != nil {
			return err
		}
		if quantity, err = normalize.ParseQuantity(raw); err == nil {
			break
		}
		m.prompt.Println("Please enter a whole number of 0 or more.")
	}

	answer, err := m.prompt.Choice(ctx, "Save Entry? [yn] ")
	if err != nil {
		return err
	}
	if answer == "n" {
		m.prompt.Println("Entry discarded.")
		return nil
	}
	if name == "" {
		m.prompt.Println("A product needs a name, nothing was saved.")
		return nil
	}

	product, outcome, err := m.svc.Save(ctx, service.ProductInput{
		Name:       name,
		Quantity:   quantity,
		PriceCents: price,
	})
	if errors.Is(err, service.ErrInvalidProduct) {
		m.prompt.Printf("Could not save %q: %v\n", name, err)
		return nil
	}
	if err != nil {
		return err
	}

	switch outcome {
	case service.OutcomeUpdated:
		m.prompt.Printf("%s is already in inventory, updated.\n", product.Name)
	default:
		m.prompt.Println("Saved successfully!")
	}
	return nil
}
