package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/terraincognita07/ovumcalendar/internal/db"
	"go.uber.org/zap"
)

// RunPurgeDeviceCommand removes every record stored for one device.
func RunPurgeDeviceCommand(ctx context.Context, options db.StoreOptions, deviceID string, out io.Writer, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	normalizedID := strings.TrimSpace(deviceID)
	if normalizedID == "" {
		return errors.New("device id is required")
	}
	parsed, err := uuid.Parse(normalizedID)
	if err != nil {
		return fmt.Errorf("invalid device id: %w", err)
	}
	normalizedID = parsed.String()

	store, err := db.OpenStore(ctx, options, logger)
	if err != nil {
		return fmt.Errorf("storage init failed: %w", err)
	}
	defer store.Close()

	count, err := store.CountNamespace(ctx, normalizedID)
	if err != nil {
		return fmt.Errorf("count device records: %w", err)
	}
	if count == 0 {
		_, err := fmt.Fprintf(out, "No records stored for device %s\n", normalizedID)
		return err
	}

	if err := store.DeleteNamespace(ctx, normalizedID); err != nil {
		return fmt.Errorf("delete device records: %w", err)
	}
	logger.Info("device purged", zap.String("device_id", normalizedID), zap.Int64("records", count))

	_, err = fmt.Fprintf(out, "Removed %d records for device %s\n", count, normalizedID)
	return err
}
