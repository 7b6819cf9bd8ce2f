package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/plenario/internal/config"
	"github.com/example/plenario/internal/db"
	"github.com/example/plenario/internal/wire"
)

// DevCmd returns the dev command group for development utilities.
func DevCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Development utilities",
		Long: `Development utilities for working with a scratch database.

These commands require PLENARIO_DB to be set, so the chamber's real database
is never reset by accident.`,
	}

	cmd.AddCommand(devResetCmd())
	return cmd
}

func devResetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset the dev database with fresh fixtures",
		Long: `Delete the dev database and recreate it with fixture data.

This command:
1. Deletes the existing dev database file
2. Creates a fresh database with the current schema
3. Seeds a period, nine legislators, matters and two sittings`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath := os.Getenv(config.EnvDB)
			if dbPath == "" {
				return fmt.Errorf("%s not set\n\nThis safety check prevents accidental reset of the chamber's database", config.EnvDB)
			}

			if !force {
				fmt.Printf("This will delete and recreate: %s\n", dbPath)
				fmt.Print("Continue? [y/N] ")
				var response string
				fmt.Scanln(&response)
				if response != "y" && response != "Y" {
					fmt.Println("Aborted.")
					return nil
				}
			}

			db.Close()
			if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to delete database: %w", err)
			}
			fmt.Printf("✓ Deleted %s\n", dbPath)

			db.SetPath(dbPath)
			database, err := db.GetDB()
			if err != nil {
				return fmt.Errorf("failed to create database: %w", err)
			}
			fmt.Println("✓ Created fresh database with schema")

			if err := db.SeedFixtures(database); err != nil {
				return fmt.Errorf("failed to seed fixtures: %w", err)
			}
			fmt.Println("✓ Seeded fixture data")

			fmt.Println("\nDev database reset complete!")
			fmt.Println("\nSeeded entities:")
			fmt.Println("  - 1 period (PER-001) with 9 legislators")
			fmt.Println("  - matters in filed, in_committee and awaiting-opinion states")
			fmt.Println("  - 2 scheduled sittings")
			fmt.Println()
			fmt.Printf("Quorum rule in effect: %s\n", wire.Config().Quorum.Rule)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")
	return cmd
}
