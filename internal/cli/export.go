package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// ExportCmd returns the export command: write the backup document to a file.
func ExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a backup of all orders and statuses",
		Long: `Export the full application state (orders and monthly payment
statuses) as a versioned JSON document. Use "-" to write to stdout.`,
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

			data, err := tracker.ExportSnapshot(cmd.Context())
			if err != nil {
				return err
			}

			if output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if output == "" {
				output = "prancheta_backup_" + time.Now().Format("2006-01-02") + ".json"
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write backup: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backup written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default prancheta_backup_<date>.json, \"-\" for stdout)")

	return cmd
}
