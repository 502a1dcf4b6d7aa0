package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RestoreCmd returns the restore command: replace all state from a backup.
func RestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <backup-file>",
		Short: "Replace all state from a backup document",
		Long: `Restore orders and monthly payment statuses from a backup file
previously produced by export. Both collections are fully replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := bootstrap()
			if err != nil {
				return err
			}
			tracker, closeStore, err := openTracker(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read backup: %w", err)
			}
			if err := tracker.RestoreSnapshot(cmd.Context(), data); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Restored %d orders and %d statuses from %s\n",
				len(tracker.Orders()), len(tracker.Statuses()), args[0])
			return nil
		},
	}
}
