package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thiagarajant/qqq-tqqq-allocation-sub000/config"
	"github.com/thiagarajant/qqq-tqqq-allocation-sub000/internal/checkpoint"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "ingestor",
	Short: "Bulk historical-price ingestion pipeline",
	Long: `Ingests large sets of CSV/TXT daily price files into the
price history backend. Files are processed in bounded parallel batches
with a durable checkpoint after every batch, so an interrupted run is
detected on the next start instead of silently re-ingesting data.`,
	Version: "1.0.0",
}

// Execute runs the ingestor CLI.
func Execute() error {
	return rootCmd.Execute()
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if level != "" {
		parsed, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		cfg.Level = parsed
	}
	return cfg.Build()
}

// newStore builds the checkpoint store selected by configuration.
func newStore(cfg *config.Config) (checkpoint.Store, error) {
	switch cfg.CheckpointBackend {
	case "", "file":
		return checkpoint.NewFileStore(cfg.CheckpointPath), nil
	case "redis":
		return checkpoint.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, "")
	case "memory":
		return checkpoint.NewMemStore(), nil
	default:
		return nil, fmt.Errorf("unknown checkpoint backend: %s", cfg.CheckpointBackend)
	}
}
