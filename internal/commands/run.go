package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/thiagarajant/qqq-tqqq-allocation-sub000/config"
	"github.com/thiagarajant/qqq-tqqq-allocation-sub000/internal/checkpoint"
	"github.com/thiagarajant/qqq-tqqq-allocation-sub000/internal/ingestclient"
	"github.com/thiagarajant/qqq-tqqq-allocation-sub000/internal/scanner"
	"github.com/thiagarajant/qqq-tqqq-allocation-sub000/prices"
	"go.uber.org/zap"
)

var (
	runPath      string
	runFolder    string
	runBatchSize int
	runForce     bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a bulk ingestion over a directory of price files",
	Long: `Scans a directory for CSV/TXT price files and ingests them in
bounded parallel batches.

Examples:
  # Ingest a stooq-style daily data dump
  ingestor run --path ~/Downloads/data/daily/us

  # Smaller batches for constrained machines
  ingestor run --path ./data --batch-size 20

SIGINT pauses the run: the in-flight batch finishes and checkpoints,
then the process exits cleanly.`,
	RunE: runIngestion,
}

func init() {
	runCmd.Flags().StringVar(&runPath, "path", "", "Directory (or single file) to ingest")
	runCmd.Flags().StringVar(&runFolder, "folder", "", "Folder name recorded with the run (defaults to the path base)")
	runCmd.Flags().IntVar(&runBatchSize, "batch-size", 0, "Files per batch; also the extraction fan-out bound")
	runCmd.Flags().BoolVar(&runForce, "force", false, "Discard an interrupted checkpoint and start over")
	rootCmd.AddCommand(runCmd)
}

func runIngestion(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadEnvs()
	if err != nil {
		return fmt.Errorf("fail to load envs: %w", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	path := runPath
	if path == "" {
		path = cfg.DataPath
	}
	if path == "" {
		return fmt.Errorf("no data path: set --path or DATA_PATH")
	}

	folder := runFolder
	if folder == "" {
		folder = filepath.Base(path)
	}

	batchSize := runBatchSize
	if batchSize <= 0 {
		batchSize = cfg.BatchSize
	}

	store, err := newStore(cfg)
	if err != nil {
		return err
	}

	manager := checkpoint.NewManager(store, logger)

	// An interrupted checkpoint must be acknowledged before new work
	// overwrites it.
	previous, err := manager.Detect(cmd.Context())
	if err != nil {
		return fmt.Errorf("checkpoint detect error: %w", err)
	}
	if previous != nil && (previous.Status == checkpoint.StatusRunning || previous.Status == checkpoint.StatusPaused) {
		if !runForce {
			return fmt.Errorf(
				"interrupted run %s found (%d/%d files processed); rerun with --force to discard it, or `ingestor clear`",
				previous.ID, previous.ProcessedFiles, previous.TotalFiles)
		}
		logger.Warn("discarding interrupted run", zap.String("id", previous.ID))
		if err := manager.Clear(cmd.Context()); err != nil {
			return fmt.Errorf("clear checkpoint error: %w", err)
		}
	}

	files, err := scanner.New(path, logger).Scan(cmd.Context())
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no ingestible files under %s", path)
	}

	uploader := ingestclient.New(
		cfg.APIBaseURL,
		time.Duration(cfg.UploadTimeoutSecs)*time.Second,
		logger,
	)
	service := prices.NewService(uploader, manager, batchSize, logger)

	ctx, stop := context.WithCancel(cmd.Context())
	defer stop()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		<-sigs
		logger.Info("signal received, pausing after current batch")
		if err := service.Pause(context.Background()); err != nil {
			logger.Warn("pause failed", zap.Error(err))
			stop()
		}
	}()

	done := make(chan struct{})
	go reportProgress(ctx, service, logger, done)

	summary, err := service.StartIngestion(ctx, files, folder)
	close(done)
	if err != nil {
		return err
	}

	printSummary(summary, service.Progress())
	return nil
}

// reportProgress logs a live status line until the run finishes.
func reportProgress(ctx context.Context, service *prices.Service, logger *zap.Logger, done <-chan struct{}) {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p := service.Progress()
			logger.Info("progress",
				zap.String("status", string(p.Status)),
				zap.Int("processed", p.ProcessedFiles),
				zap.Int("total", p.TotalFiles),
				zap.String("current", p.CurrentFile),
				zap.Float64("records_per_sec", p.Speed))
		case <-done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func printSummary(summary *prices.RunSummary, p checkpoint.Progress) {
	fmt.Printf("status:             %s\n", p.Status)
	fmt.Printf("files processed:    %d/%d (%d failed)\n", p.ProcessedFiles, p.TotalFiles, p.FailedFiles)
	fmt.Printf("records ingested:   %d\n", summary.RecordsAdded)
	fmt.Printf("symbols added:      %d\n", summary.SymbolsAdded)
	fmt.Printf("duplicates removed: %d\n", summary.DuplicatesRemoved)
	if summary.DedupError != "" {
		fmt.Printf("dedup warning:      %s\n", summary.DedupError)
	}
	if summary.FailedBatches > 0 {
		fmt.Printf("failed batches:     %d\n", summary.FailedBatches)
	}
}
