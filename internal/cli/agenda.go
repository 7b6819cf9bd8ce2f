package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/plenario/internal/ports/primary"
	"github.com/example/plenario/internal/wire"
)

var agendaCmd = &cobra.Command{
	Use:     "agenda",
	Aliases: []string{"pauta"},
	Short:   "Compose and publish a sitting's agenda",
	Long: `Compose a sitting's agenda (pauta).

Items live in one of three sections: expediente, ordem_do_dia and
explicacoes_pessoais. A published agenda is frozen until unpublished.`,
}

var agendaShowCmd = &cobra.Command{
	Use:   "show [sitting-id]",
	Short: "Show the agenda of a sitting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.AgendaAdapter().Show(NewContext(), args[0])
	},
}

var agendaEligibleCmd = &cobra.Command{
	Use:   "eligible [sitting-id]",
	Short: "List matters that may still be added to the agenda",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.AgendaAdapter().Eligible(NewContext(), args[0])
	},
}

var agendaAddCmd = &cobra.Command{
	Use:   "add [sitting-id] [matter-id]",
	Short: "Add a matter to the agenda",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		section, _ := cmd.Flags().GetString("section")
		return wire.AgendaAdapter().Add(NewContext(), primary.AddItemRequest{
			SittingID: args[0],
			MatterID:  args[1],
			Section:   section,
		})
	},
}

var agendaRemoveCmd = &cobra.Command{
	Use:   "remove [item-id]",
	Short: "Remove an item from an unpublished agenda",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.AgendaAdapter().Remove(NewContext(), args[0])
	},
}

var agendaReorderCmd = &cobra.Command{
	Use:   "reorder [sitting-id] [section] [item-id...]",
	Short: "Set the order of a section",
	Long:  "Set the order of a section. Every item of the section must be listed exactly once.",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.AgendaAdapter().Reorder(NewContext(), primary.ReorderRequest{
			SittingID: args[0],
			Section:   args[1],
			ItemIDs:   args[2:],
		})
	},
}

var agendaMoveCmd = &cobra.Command{
	Use:   "move [item-id] [section]",
	Short: "Move an item to another section",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.AgendaAdapter().Move(NewContext(), args[0], args[1])
	},
}

var agendaPublishCmd = &cobra.Command{
	Use:   "publish [sitting-id]",
	Short: "Publish the agenda",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.AgendaAdapter().Publish(NewContext(), args[0])
	},
}

var agendaUnpublishCmd = &cobra.Command{
	Use:   "unpublish [sitting-id]",
	Short: "Unpublish the agenda of a scheduled sitting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.AgendaAdapter().Unpublish(NewContext(), args[0])
	},
}

func init() {
	agendaAddCmd.Flags().StringP("section", "s", "ordem_do_dia", "Agenda section")

	agendaCmd.AddCommand(agendaShowCmd)
	agendaCmd.AddCommand(agendaEligibleCmd)
	agendaCmd.AddCommand(agendaAddCmd)
	agendaCmd.AddCommand(agendaRemoveCmd)
	agendaCmd.AddCommand(agendaReorderCmd)
	agendaCmd.AddCommand(agendaMoveCmd)
	agendaCmd.AddCommand(agendaPublishCmd)
	agendaCmd.AddCommand(agendaUnpublishCmd)
}

// AgendaCmd returns the agenda command
func AgendaCmd() *cobra.Command {
	return agendaCmd
}
