package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/plenario/internal/ports/primary"
	"github.com/example/plenario/internal/wire"
)

var attendanceCmd = &cobra.Command{
	Use:     "attendance",
	Aliases: []string{"chamada"},
	Short:   "Record attendance and check quorum",
}

var attendanceMarkCmd = &cobra.Command{
	Use:   "mark [sitting-id] [legislator-id] [status]",
	Short: "Record a legislator's attendance",
	Long:  "Record a legislator's attendance: present, absent or absent_justified.",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		justification, _ := cmd.Flags().GetString("justification")
		return wire.ConductionAdapter().Mark(NewContext(), primary.RecordAttendanceRequest{
			SittingID:     args[0],
			LegislatorID:  args[1],
			Status:        args[2],
			Justification: justification,
		})
	},
}

var attendanceRollCmd = &cobra.Command{
	Use:   "roll [sitting-id]",
	Short: "Show the roll call of a sitting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.ConductionAdapter().RollCall(NewContext(), args[0])
	},
}

var attendanceQuorumCmd = &cobra.Command{
	Use:   "quorum [sitting-id]",
	Short: "Check whether the sitting has quorum",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.ConductionAdapter().Quorum(NewContext(), args[0])
	},
}

var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Conduct agenda items",
}

var itemReadCmd = &cobra.Command{
	Use:   "read [item-id]",
	Short: "Mark an item as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.AgendaAdapter().Read(NewContext(), args[0])
	},
}

var itemPostponeCmd = &cobra.Command{
	Use:   "postpone [item-id]",
	Short: "Postpone an item to a later sitting (adiamento)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.AgendaAdapter().Postpone(NewContext(), args[0])
	},
}

var itemWithdrawCmd = &cobra.Command{
	Use:   "withdraw [item-id]",
	Short: "Withdraw an item from the agenda (retirada de pauta)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.AgendaAdapter().Withdraw(NewContext(), args[0])
	},
}

var itemCheckCmd = &cobra.Command{
	Use:   "check [item-id]",
	Short: "Check whether an item may be voted",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.ConductionAdapter().Check(NewContext(), args[0])
	},
}

var voteCmd = &cobra.Command{
	Use:     "vote",
	Aliases: []string{"votacao"},
	Short:   "Run the nominal vote of an agenda item",
}

var voteOpenCmd = &cobra.Command{
	Use:   "open [item-id]",
	Short: "Open voting on an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.ConductionAdapter().Open(NewContext(), args[0])
	},
}

var voteCastCmd = &cobra.Command{
	Use:   "cast [item-id] [legislator-id] [yes|no|abstain]",
	Short: "Record a legislator's vote",
	Long:  "Record a legislator's vote. Casting again replaces the earlier choice while voting is open.",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.ConductionAdapter().Cast(NewContext(), primary.CastVoteRequest{
			ItemID:       args[0],
			LegislatorID: args[1],
			Choice:       args[2],
		})
	},
}

var votePartialCmd = &cobra.Command{
	Use:   "partial [item-id]",
	Short: "Show the running count",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.ConductionAdapter().Partial(NewContext(), args[0])
	},
}

var voteCloseCmd = &cobra.Command{
	Use:   "close [item-id]",
	Short: "Close voting and record the result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.ConductionAdapter().Close(NewContext(), args[0])
	},
}

var voteListCmd = &cobra.Command{
	Use:   "list [item-id]",
	Short: "List the nominal votes of an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.ConductionAdapter().Votes(NewContext(), args[0])
	},
}

func init() {
	attendanceMarkCmd.Flags().StringP("justification", "j", "", "Justification for absent_justified")

	attendanceCmd.AddCommand(attendanceMarkCmd)
	attendanceCmd.AddCommand(attendanceRollCmd)
	attendanceCmd.AddCommand(attendanceQuorumCmd)

	itemCmd.AddCommand(itemReadCmd)
	itemCmd.AddCommand(itemPostponeCmd)
	itemCmd.AddCommand(itemWithdrawCmd)
	itemCmd.AddCommand(itemCheckCmd)

	voteCmd.AddCommand(voteOpenCmd)
	voteCmd.AddCommand(voteCastCmd)
	voteCmd.AddCommand(votePartialCmd)
	voteCmd.AddCommand(voteCloseCmd)
	voteCmd.AddCommand(voteListCmd)
}

// AttendanceCmd returns the attendance command
func AttendanceCmd() *cobra.Command {
	return attendanceCmd
}

// ItemCmd returns the item command
func ItemCmd() *cobra.Command {
	return itemCmd
}

// VoteCmd returns the vote command
func VoteCmd() *cobra.Command {
	return voteCmd
}
