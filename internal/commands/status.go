package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/thiagarajant/qqq-tqqq-allocation-sub000/config"
	"github.com/thiagarajant/qqq-tqqq-allocation-sub000/internal/checkpoint"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the persisted checkpoint of the last ingestion run",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadEnvs()
	if err != nil {
		return fmt.Errorf("fail to load envs: %w", err)
	}

	store, err := newStore(cfg)
	if err != nil {
		return err
	}

	meta, err := store.Load(cmd.Context())
	if err != nil {
		if errors.Is(err, checkpoint.ErrNotFound) {
			fmt.Println("no checkpoint found")
			return nil
		}
		return err
	}

	fmt.Printf("run:             %s\n", meta.ID)
	fmt.Printf("folder:          %s\n", meta.FolderName)
	fmt.Printf("status:          %s\n", meta.Status)
	fmt.Printf("files:           %d/%d (%d failed)\n",
		meta.ProcessedFiles, meta.TotalFiles, len(meta.FailedFiles))
	fmt.Printf("records:         %d ingested of %d extracted\n",
		meta.ProcessedRecords, meta.TotalRecords)
	fmt.Printf("started:         %s\n", meta.StartTime.Format(time.RFC3339))
	fmt.Printf("last update:     %s\n", meta.LastUpdateTime.Format(time.RFC3339))
	if meta.FailureReason != "" {
		fmt.Printf("failure reason:  %s\n", meta.FailureReason)
	}

	if meta.Status == checkpoint.StatusRunning || meta.Status == checkpoint.StatusPaused {
		fmt.Println("\ninterrupted run detected: the original file set is not retained across sessions,")
		fmt.Println("so it cannot be resumed; use `ingestor run --force` to start over")
	}

	return nil
}
