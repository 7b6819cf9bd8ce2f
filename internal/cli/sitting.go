package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/plenario/internal/ports/primary"
	"github.com/example/plenario/internal/wire"
)

var sittingCmd = &cobra.Command{
	Use:     "sitting",
	Aliases: []string{"sessao"},
	Short:   "Manage sittings (scheduled meetings of the chamber)",
	Long:    "Schedule sittings and conduct them from opening to closing",
}

var sittingScheduleCmd = &cobra.Command{
	Use:   "schedule [when]",
	Short: "Schedule a sitting",
	Long: `Schedule a sitting inside a legislative period.

[when] is RFC3339 or a local "YYYY-MM-DD HH:MM". Ordinary sittings cannot be
scheduled on holidays.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		at, err := parseWhen(args[0])
		if err != nil {
			return err
		}
		period, _ := cmd.Flags().GetString("period")
		kind, _ := cmd.Flags().GetString("kind")
		location, _ := cmd.Flags().GetString("location")
		notes, _ := cmd.Flags().GetString("notes")

		return wire.SittingAdapter().Schedule(NewContext(), primary.ScheduleSittingRequest{
			PeriodID:    period,
			Kind:        kind,
			ScheduledAt: at,
			Location:    location,
			Notes:       notes,
		})
	},
}

var sittingListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sittings",
	RunE: func(cmd *cobra.Command, args []string) error {
		period, _ := cmd.Flags().GetString("period")
		status, _ := cmd.Flags().GetString("status")
		limit, _ := cmd.Flags().GetInt("limit")

		return wire.SittingAdapter().List(NewContext(), primary.SittingFilters{
			PeriodID: period,
			Status:   status,
			Limit:    limit,
		})
	},
}

var sittingShowCmd = &cobra.Command{
	Use:   "show [sitting-id]",
	Short: "Show sitting details, quorum and agenda",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.SittingAdapter().Show(NewContext(), args[0])
	},
}

var sittingDeleteCmd = &cobra.Command{
	Use:   "delete [sitting-id]",
	Short: "Delete a scheduled sitting that was never started",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.SittingAdapter().Delete(NewContext(), args[0])
	},
}

var sittingStartCmd = &cobra.Command{
	Use:   "start [sitting-id]",
	Short: "Open a sitting",
	Long:  "Open a scheduled sitting. Requires a published agenda and quorum.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.SittingAdapter().Start(NewContext(), args[0])
	},
}

var sittingSuspendCmd = &cobra.Command{
	Use:   "suspend [sitting-id]",
	Short: "Suspend a sitting in progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.SittingAdapter().Suspend(NewContext(), args[0])
	},
}

var sittingResumeCmd = &cobra.Command{
	Use:   "resume [sitting-id]",
	Short: "Resume a suspended sitting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.SittingAdapter().Resume(NewContext(), args[0])
	},
}

var sittingCloseCmd = &cobra.Command{
	Use:   "close [sitting-id]",
	Short: "Close a sitting and generate its minutes",
	Long: `Close a sitting in progress. Every agenda item must be voted, read, postponed
or withdrawn first.

The minutes are generated and their approval is added to the expediente of
the period's next scheduled sitting.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.SittingAdapter().Close(NewContext(), args[0])
	},
}

var sittingCancelCmd = &cobra.Command{
	Use:   "cancel [sitting-id]",
	Short: "Cancel a scheduled sitting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reason, _ := cmd.Flags().GetString("reason")
		return wire.SittingAdapter().Cancel(NewContext(), args[0], reason)
	},
}

var sittingPostponeCmd = &cobra.Command{
	Use:   "postpone [sitting-id]",
	Short: "Postpone a scheduled sitting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reason, _ := cmd.Flags().GetString("reason")
		return wire.SittingAdapter().Postpone(NewContext(), args[0], reason)
	},
}

var sittingMinutesCmd = &cobra.Command{
	Use:   "minutes [sitting-id]",
	Short: "Print the minutes of a held sitting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.SittingAdapter().Minutes(NewContext(), args[0])
	},
}

var sittingLogCmd = &cobra.Command{
	Use:   "log [sitting-id]",
	Short: "Show the audit trail of a sitting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return wire.SittingAdapter().Log(NewContext(), args[0], limit)
	},
}

func init() {
	sittingScheduleCmd.Flags().StringP("period", "p", "", "Legislative period ID (required)")
	sittingScheduleCmd.Flags().StringP("kind", "k", "ordinary", "Sitting kind: ordinary, extraordinary or solemn")
	sittingScheduleCmd.Flags().String("location", "", "Where the sitting is held")
	sittingScheduleCmd.Flags().String("notes", "", "Free-form notes")
	sittingScheduleCmd.MarkFlagRequired("period")

	sittingListCmd.Flags().StringP("period", "p", "", "Filter by period")
	sittingListCmd.Flags().StringP("status", "s", "", "Filter by status")
	sittingListCmd.Flags().IntP("limit", "n", 0, "Maximum number of sittings")

	sittingCancelCmd.Flags().StringP("reason", "r", "", "Reason recorded on the sitting (required)")
	sittingCancelCmd.MarkFlagRequired("reason")
	sittingPostponeCmd.Flags().StringP("reason", "r", "", "Reason recorded on the sitting (required)")
	sittingPostponeCmd.MarkFlagRequired("reason")

	sittingLogCmd.Flags().IntP("limit", "n", 50, "Maximum number of events")

	sittingCmd.AddCommand(sittingScheduleCmd)
	sittingCmd.AddCommand(sittingListCmd)
	sittingCmd.AddCommand(sittingShowCmd)
	sittingCmd.AddCommand(sittingDeleteCmd)
	sittingCmd.AddCommand(sittingStartCmd)
	sittingCmd.AddCommand(sittingSuspendCmd)
	sittingCmd.AddCommand(sittingResumeCmd)
	sittingCmd.AddCommand(sittingCloseCmd)
	sittingCmd.AddCommand(sittingCancelCmd)
	sittingCmd.AddCommand(sittingPostponeCmd)
	sittingCmd.AddCommand(sittingMinutesCmd)
	sittingCmd.AddCommand(sittingLogCmd)
}

// SittingCmd returns the sitting command
func SittingCmd() *cobra.Command {
	return sittingCmd
}
