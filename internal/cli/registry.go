package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/plenario/internal/ports/primary"
	"github.com/example/plenario/internal/wire"
)

var matterCmd = &cobra.Command{
	Use:     "matter",
	Aliases: []string{"materia"},
	Short:   "Manage matters (bills, motions, requests, vetoes...)",
}

var matterFileCmd = &cobra.Command{
	Use:   "file [kind] [title]",
	Short: "File a matter",
	Long: `File a matter of the given kind.

Kinds: bill, resolution, decree, veto, motion, request, indication,
official_letter, communication. Whether the matter is voted and whether it
needs committee opinions defaults from its kind.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := primary.FileMatterRequest{Kind: args[0], Title: args[1]}
		if cmd.Flags().Changed("vote") {
			v, _ := cmd.Flags().GetBool("vote")
			req.RequiresVote = &v
		}
		if cmd.Flags().Changed("opinion") {
			v, _ := cmd.Flags().GetBool("opinion")
			req.RequiresOpinion = &v
		}
		return wire.RegistryAdapter().FileMatter(NewContext(), req)
	},
}

var matterListCmd = &cobra.Command{
	Use:   "list",
	Short: "List matters",
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("kind")
		status, _ := cmd.Flags().GetString("status")
		limit, _ := cmd.Flags().GetInt("limit")
		return wire.RegistryAdapter().ListMatters(NewContext(), primary.MatterFilters{
			Kind:   kind,
			Status: status,
			Limit:  limit,
		})
	},
}

var matterShowCmd = &cobra.Command{
	Use:   "show [matter-id]",
	Short: "Show a matter and its opinions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.RegistryAdapter().ShowMatter(NewContext(), args[0])
	},
}

var matterStatusCmd = &cobra.Command{
	Use:   "status [matter-id] [status]",
	Short: "Move a matter outside of conduction (e.g. in_committee)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.RegistryAdapter().SetMatterStatus(NewContext(), args[0], args[1])
	},
}

var opinionCmd = &cobra.Command{
	Use:     "opinion",
	Aliases: []string{"parecer"},
	Short:   "Manage committee opinions",
}

var opinionRequestCmd = &cobra.Command{
	Use:   "request [matter-id] [committee]",
	Short: "Request a committee opinion on a matter",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.RegistryAdapter().RequestOpinion(NewContext(), args[0], args[1])
	},
}

var opinionIssueCmd = &cobra.Command{
	Use:   "issue [opinion-id]",
	Short: "Record an opinion as issued",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.RegistryAdapter().IssueOpinion(NewContext(), args[0])
	},
}

var opinionWaiveCmd = &cobra.Command{
	Use:   "waive [opinion-id]",
	Short: "Waive a pending opinion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.RegistryAdapter().WaiveOpinion(NewContext(), args[0])
	},
}

var periodCmd = &cobra.Command{
	Use:   "period",
	Short: "Manage legislative periods",
}

var periodCreateCmd = &cobra.Command{
	Use:   "create [name] [starts-on] [ends-on]",
	Short: "Create a period (dates as YYYY-MM-DD)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.RegistryAdapter().CreatePeriod(NewContext(), primary.CreatePeriodRequest{
			Name:     args[0],
			StartsOn: args[1],
			EndsOn:   args[2],
		})
	},
}

var periodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List periods",
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.RegistryAdapter().ListPeriods(NewContext())
	},
}

var legislatorCmd = &cobra.Command{
	Use:     "legislator",
	Aliases: []string{"vereador"},
	Short:   "Manage legislators and their period membership",
}

var legislatorRegisterCmd = &cobra.Command{
	Use:   "register [name]",
	Short: "Register a legislator",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		party, _ := cmd.Flags().GetString("party")
		return wire.RegistryAdapter().RegisterLegislator(NewContext(), args[0], party)
	},
}

var legislatorListCmd = &cobra.Command{
	Use:   "list",
	Short: "List legislators, or a period's roster with --period",
	RunE: func(cmd *cobra.Command, args []string) error {
		period, _ := cmd.Flags().GetString("period")
		return wire.RegistryAdapter().ListLegislators(NewContext(), period)
	},
}

var legislatorJoinCmd = &cobra.Command{
	Use:   "join [period-id] [legislator-id]",
	Short: "Add a legislator to a period's roster",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.RegistryAdapter().SetMembership(NewContext(), args[0], args[1], true)
	},
}

var legislatorLeaveCmd = &cobra.Command{
	Use:   "leave [period-id] [legislator-id]",
	Short: "Remove a legislator from a period's roster",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.RegistryAdapter().SetMembership(NewContext(), args[0], args[1], false)
	},
}

func init() {
	matterFileCmd.Flags().Bool("vote", false, "Override whether the matter is voted")
	matterFileCmd.Flags().Bool("opinion", false, "Override whether the matter needs committee opinions")

	matterListCmd.Flags().StringP("kind", "k", "", "Filter by kind")
	matterListCmd.Flags().StringP("status", "s", "", "Filter by status")
	matterListCmd.Flags().IntP("limit", "n", 0, "Maximum number of matters")

	legislatorRegisterCmd.Flags().String("party", "", "Party affiliation")
	legislatorListCmd.Flags().StringP("period", "p", "", "Show the roster of this period")

	matterCmd.AddCommand(matterFileCmd)
	matterCmd.AddCommand(matterListCmd)
	matterCmd.AddCommand(matterShowCmd)
	matterCmd.AddCommand(matterStatusCmd)

	opinionCmd.AddCommand(opinionRequestCmd)
	opinionCmd.AddCommand(opinionIssueCmd)
	opinionCmd.AddCommand(opinionWaiveCmd)

	periodCmd.AddCommand(periodCreateCmd)
	periodCmd.AddCommand(periodListCmd)

	legislatorCmd.AddCommand(legislatorRegisterCmd)
	legislatorCmd.AddCommand(legislatorListCmd)
	legislatorCmd.AddCommand(legislatorJoinCmd)
	legislatorCmd.AddCommand(legislatorLeaveCmd)
}

// MatterCmd returns the matter command
func MatterCmd() *cobra.Command {
	return matterCmd
}

// OpinionCmd returns the opinion command
func OpinionCmd() *cobra.Command {
	return opinionCmd
}

// PeriodCmd returns the period command
func PeriodCmd() *cobra.Command {
	return periodCmd
}

// LegislatorCmd returns the legislator command
func LegislatorCmd() *cobra.Command {
	return legislatorCmd
}
