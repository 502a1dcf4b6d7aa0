package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"prancheta/internal/cli"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "prancheta",
		Short: "Offline-first tracker for board production orders",
		Long: `Prancheta tracks board production orders ("pedidos" of "pranchas"),
estimates monthly revenue at a fixed price per position and keeps a
three-state payment status per month. All state lives in a local SQLite
file; nothing leaves the machine.`,
	}

	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.ExportCmd())
	rootCmd.AddCommand(cli.RestoreCmd())
	rootCmd.AddCommand(cli.ReportCmd())
	rootCmd.AddCommand(cli.StatusCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
