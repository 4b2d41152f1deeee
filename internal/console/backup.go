package console

import (
	"context"
	"errors"

	"inventory-manager/internal/backup"

	"go.uber.org/zap"
)

// backup writes the inventory to the configured file. A file that cannot be
// written is reported and the menu carries on; store failures are returned.
func (m *Menu) backup(ctx context.Context) error {
	n, err := m.exporter.WriteFile(ctx, m.backupPath)
	if err != nil {
		if !errors.Is(err, backup.ErrWriteFile) {
			return err
		}
		m.logger.Error("Backup failed", zap.String("path", m.backupPath), zap.Error(err))
		m.prompt.Printf("Backup failed: %v\n", err)
		return nil
	}

	m.prompt.Printf("Backed up %d products to %s\n", n, m.backupPath)
	return nil
}
