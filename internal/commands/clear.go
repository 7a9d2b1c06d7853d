package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thiagarajant/qqq-tqqq-allocation-sub000/config"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the persisted ingestion checkpoint",
	RunE:  runClear,
}

func init() {
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadEnvs()
	if err != nil {
		return fmt.Errorf("fail to load envs: %w", err)
	}

	store, err := newStore(cfg)
	if err != nil {
		return err
	}

	if err := store.Delete(cmd.Context()); err != nil {
		return fmt.Errorf("clear checkpoint error: %w", err)
	}

	fmt.Println("checkpoint cleared")
	return nil
}
