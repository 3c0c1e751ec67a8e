package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/classroom-service/internal/config"
)

// NewFromConfig picks the storage driver. The local driver keeps files under
// uploadFolder.
func NewFromConfig(ctx context.Context, cfg config.StorageConfig, uploadFolder string, logger *slog.Logger) (FileStorage, error) {
	switch cfg.Driver {
	case "", "local":
		logger.Info("Using local file storage", "folder", uploadFolder)
		return NewLocalStorage(uploadFolder, logger)
	case "b2":
		if cfg.B2AccountID == "" || cfg.B2ApplicationKey == "" || cfg.B2Bucket == "" {
			return nil, fmt.Errorf("b2 storage requires B2_ACCOUNT_ID, B2_APPLICATION_KEY and B2_BUCKET")
		}
		logger.Info("Using B2 file storage", "bucket", cfg.B2Bucket)
		return NewB2Storage(ctx, cfg.B2AccountID, cfg.B2ApplicationKey, cfg.B2Bucket, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
