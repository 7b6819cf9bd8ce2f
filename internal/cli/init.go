package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/plenario/internal/config"
	"github.com/example/plenario/internal/db"
	"github.com/example/plenario/internal/wire"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the plenario database and config file",
		Long: `Create ~/.plenario/config.yaml with defaults (unless it exists) and the
database with the required schema.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			if cfgPath == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				cfgPath = p
			}

			if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
				if err := config.Save(cfgPath, wire.Config()); err != nil {
					return err
				}
				fmt.Printf("✓ Config written to %s\n", cfgPath)
			} else {
				fmt.Printf("  Config already present at %s\n", cfgPath)
			}

			db.SetPath(wire.Config().Database.Path)
			dbPath, err := db.GetDBPath()
			if err != nil {
				return fmt.Errorf("failed to get database path: %w", err)
			}
			if _, err := db.GetDB(); err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			fmt.Printf("✓ Database initialized at %s\n", dbPath)

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  plenario period create \"19ª Legislatura\" 2025-01-01 2028-12-31")
			fmt.Println("  plenario legislator register \"Ana Ribeiro\" --party PSB")
			fmt.Println("  plenario sitting schedule \"2026-03-10 19:00\" --period PER-001")
			return nil
		},
	}
}
