package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/plenario/internal/cli"
	"github.com/example/plenario/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "plenario",
		Short:   "Plenario - session conduction for a municipal chamber",
		Version: version.String(),
		Long: `Plenario conducts the sittings of a municipal chamber: agenda (pauta),
attendance and quorum, the committee-opinion gate, and nominal voting.`,
		SilenceUsage:      true,
		PersistentPreRunE: cli.Bootstrap,
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.plenario/config.yaml)")
	rootCmd.PersistentFlags().String("actor", "", "Operator recorded in the audit trail (default $PLENARIO_ACTOR or the OS user)")

	// Conduction
	rootCmd.AddCommand(cli.SittingCmd())
	rootCmd.AddCommand(cli.AgendaCmd())
	rootCmd.AddCommand(cli.AttendanceCmd())
	rootCmd.AddCommand(cli.ItemCmd())
	rootCmd.AddCommand(cli.VoteCmd())

	// Registry
	rootCmd.AddCommand(cli.MatterCmd())
	rootCmd.AddCommand(cli.OpinionCmd())
	rootCmd.AddCommand(cli.PeriodCmd())
	rootCmd.AddCommand(cli.LegislatorCmd())

	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.DevCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
