package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"prancheta/internal/core"
)

// ReportCmd returns the report command: a monthly revenue summary on the
// terminal.
func ReportCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the revenue report for a month",
		Long: `Print the monthly summary: estimated revenue, position count,
days worked, payment status and the daily revenue series. Defaults to the
current month.`,
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

			if month == "" {
				month = time.Now().Format("2006-01")
			}
			if !core.ValidMonthKey(month) {
				return fmt.Errorf("invalid month %q: want YYYY-MM", month)
			}

			price := tracker.PricePerPosition()
			orders := core.FilterByMonth(tracker.Orders(), month)
			positions := core.SumPositions(orders)
			revenue := core.Revenue(positions, price)
			status := tracker.Status(month)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Report %s\n\n", month)
			fmt.Fprintf(out, "  Revenue:      %s\n", color.New(color.FgGreen, color.Bold).Sprintf("R$ %s", revenue.Format()))
			fmt.Fprintf(out, "  Positions:    %d (R$ %s each)\n", positions, price.Format())
			fmt.Fprintf(out, "  Orders:       %d\n", len(orders))
			fmt.Fprintf(out, "  Days worked:  %d\n", core.DaysWorked(orders))
			fmt.Fprintf(out, "  Status:       %s\n\n", statusColor(status).Sprint(statusLabel(status)))

			series := core.DailySeries(orders, month, core.DaysInMonth(month), price)
			var maxPositions int
			for _, d := range series {
				if d.Positions > maxPositions {
					maxPositions = d.Positions
				}
			}
			if maxPositions == 0 {
				fmt.Fprintln(out, "  No orders in this month.")
				return nil
			}
			for _, d := range series {
				if d.Positions == 0 {
					continue
				}
				width := d.Positions * 40 / maxPositions
				if width < 1 {
					width = 1
				}
				fmt.Fprintf(out, "  %02d  %-40s  %3d pos  R$ %s\n",
					d.Day, strings.Repeat("█", width), d.Positions, d.Revenue.Format())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "Month to report on (YYYY-MM, default current)")

	return cmd
}

func statusColor(s core.Status) *color.Color {
	switch s {
	case core.StatusPaid:
		return color.New(color.FgGreen)
	case core.StatusInvoiced:
		return color.New(color.FgBlue)
	default:
		return color.New(color.FgYellow)
	}
}

func statusLabel(s core.Status) string {
	switch s {
	case core.StatusPaid:
		return "paid"
	case core.StatusInvoiced:
		return "invoiced"
	default:
		return "pending"
	}
}
