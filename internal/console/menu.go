package console

import (
	"context"
	"errors"
	"fmt"
	"io"

	"inventory-manager/internal/backup"
	"inventory-manager/internal/service"

	"go.uber.org/zap"
)

// Command is one entry of the main menu.
type Command int

const (
	CommandView Command = iota + 1
	CommandAdd
	CommandBackup
)

// commands is the menu in display order.
var commands = []Command{CommandView, CommandAdd, CommandBackup}

const quitKey = "q"

func (c Command) Key() string {
	switch c {
	case CommandView:
		return "v"
	case CommandAdd:
		return "a"
	case CommandBackup:
		return "b"
	default:
		return ""
	}
}

func (c Command) Description() string {
	switch c {
	case CommandView:
		return "View one of our fine products!"
	case CommandAdd:
		return "Add a product to the inventory"
	case CommandBackup:
		return "Back up your current inventory"
	default:
		return ""
	}
}

func parseCommand(key string) (Command, bool) {
	for _, c := range commands {
		if c.Key() == key {
			return c, true
		}
	}
	return 0, false
}

// Menu is the main loop of the program.
type Menu struct {
	prompt     *Prompter
	svc        service.InventoryService
	exporter   *backup.Exporter
	backupPath string
	logger     *zap.Logger
}

func NewMenu(prompt *Prompter, svc service.InventoryService, exporter *backup.Exporter, backupPath string, logger *zap.Logger) *Menu {
	return &Menu{
		prompt:     prompt,
		svc:        svc,
		exporter:   exporter,
		backupPath: backupPath,
		logger:     logger,
	}
}

// Run shows the menu until the user quits or the input ends, both of which
// return nil. Store failures and context cancellation are returned as errors.
func (m *Menu) Run(ctx context.Context) error {
	for {
		m.prompt.Println()
		m.prompt.Println("Enter 'q' to quit")
		for _, c := range commands {
			m.prompt.Printf("%s) %s\n", c.Key(), c.Description())
		}

		choice, err := m.prompt.Choice(ctx, "Action: ")
		if err != nil {
			return endOfInput(err)
		}
		if choice == quitKey {
			m.logger.Info("User quit")
			return nil
		}

		command, ok := parseCommand(choice)
		if !ok {
			continue
		}

		if err := m.dispatch(ctx, command); err != nil {
			return endOfInput(err)
		}
	}
}

func (m *Menu) dispatch(ctx context.Context, command Command) error {
	switch command {
	case CommandView:
		return m.view(ctx)
	case CommandAdd:
		return m.add(ctx)
	case CommandBackup:
		return m.backup(ctx)
	default:
		return fmt.Errorf("unknown command %d", command)
	}
}

// endOfInput treats exhausted input like quitting.
func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
