package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"prancheta/internal/core"
)

// StatusCmd returns the status command: read or advance a month's payment
// status.
func StatusCmd() *cobra.Command {
	var cycle bool

	cmd := &cobra.Command{
		Use:   "status <month>",
		Short: "Show or cycle the payment status of a month",
		Long: `Show the payment status of a month (YYYY-MM). A month without a
record is pending. With --cycle the status advances one step along
pending -> invoiced -> paid -> pending.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month := args[0]
			if !core.ValidMonthKey(month) {
				return fmt.Errorf("invalid month %q: want YYYY-MM", month)
			}

			cfg, _, err := bootstrap()
			if err != nil {
				return err
			}
			tracker, closeStore, err := openTracker(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			status := tracker.Status(month)
			if cycle {
				status = tracker.CycleStatus(cmd.Context(), month)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", month, statusColor(status).Sprint(statusLabel(status)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&cycle, "cycle", false, "Advance the status one step before printing")

	return cmd
}
