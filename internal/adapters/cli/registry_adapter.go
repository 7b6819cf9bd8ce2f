package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/plenario/internal/ports/primary"
)

// RegistryAdapter covers the chamber's reference data: matters, committee
// opinions, periods and legislators.
type RegistryAdapter struct {
	matters  primary.MatterService
	opinions primary.OpinionService
	roster   primary.RosterService
	out      io.Writer
}

// NewRegistryAdapter creates a new RegistryAdapter.
func NewRegistryAdapter(matters primary.MatterService, opinions primary.OpinionService, roster primary.RosterService, out io.Writer) *RegistryAdapter {
	return &RegistryAdapter{
		matters:  matters,
		opinions: opinions,
		roster:   roster,
		out:      out,
	}
}

// FileMatter registers a matter.
func (a *RegistryAdapter) FileMatter(ctx context.Context, req primary.FileMatterRequest) error {
	m, err := a.matters.FileMatter(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Filed %s %s: %s (vote: %s, opinion: %s)\n", m.Kind, m.ID, m.Title, yesNo(m.RequiresVote), yesNo(m.RequiresOpinion))
	return nil
}

// ListMatters lists matters.
func (a *RegistryAdapter) ListMatters(ctx context.Context, filters primary.MatterFilters) error {
	matters, err := a.matters.ListMatters(ctx, filters)
	if err != nil {
		return fmt.Errorf("failed to list matters: %w", err)
	}

	if len(matters) == 0 {
		fmt.Fprintln(a.out, "No matters found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-9s %-16s %-13s %s\n", "ID", "KIND", "STATUS", "TITLE")
	fmt.Fprintln(a.out, rule)
	for _, m := range matters {
		fmt.Fprintf(a.out, "%-9s %-16s %s %s\n", m.ID, m.Kind, pad(m.Status, 13), m.Title)
	}
	fmt.Fprintln(a.out)
	return nil
}

// ShowMatter prints a matter with its opinions.
func (a *RegistryAdapter) ShowMatter(ctx context.Context, matterID string) error {
	m, err := a.matters.GetMatter(ctx, matterID)
	if err != nil {
		return fmt.Errorf("failed to get matter: %w", err)
	}
	opinions, err := a.opinions.ListOpinions(ctx, matterID)
	if err != nil {
		return fmt.Errorf("failed to list opinions: %w", err)
	}

	fmt.Fprintf(a.out, "\n%s\n", header("Matter %s (%s)", m.ID, m.Kind))
	fmt.Fprintf(a.out, "Title:    %s\n", m.Title)
	fmt.Fprintf(a.out, "Status:   %s\n", colorStatus(m.Status))
	fmt.Fprintf(a.out, "Vote:     %s\n", yesNo(m.RequiresVote))
	fmt.Fprintf(a.out, "Opinion:  %s\n", yesNo(m.RequiresOpinion))
	for _, op := range opinions {
		fmt.Fprintf(a.out, "  %-7s %-30s %s\n", op.ID, op.Committee, colorStatus(op.Status))
	}
	fmt.Fprintln(a.out)
	return nil
}

// SetMatterStatus moves a matter outside conduction.
func (a *RegistryAdapter) SetMatterStatus(ctx context.Context, matterID, status string) error {
	if err := a.matters.SetMatterStatus(ctx, matterID, status); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ %s now %s\n", matterID, colorStatus(status))
	return nil
}

// RequestOpinion opens a committee opinion.
func (a *RegistryAdapter) RequestOpinion(ctx context.Context, matterID, committee string) error {
	op, err := a.opinions.RequestOpinion(ctx, matterID, committee)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Opinion %s requested from %s on %s\n", op.ID, op.Committee, op.MatterID)
	return nil
}

// IssueOpinion finalizes an opinion as issued.
func (a *RegistryAdapter) IssueOpinion(ctx context.Context, opinionID string) error {
	if err := a.opinions.IssueOpinion(ctx, opinionID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Opinion %s %s\n", opinionID, colorStatus("issued"))
	return nil
}

// WaiveOpinion finalizes an opinion as waived.
func (a *RegistryAdapter) WaiveOpinion(ctx context.Context, opinionID string) error {
	if err := a.opinions.WaiveOpinion(ctx, opinionID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Opinion %s %s\n", opinionID, colorStatus("waived"))
	return nil
}

// CreatePeriod registers a legislative period.
func (a *RegistryAdapter) CreatePeriod(ctx context.Context, req primary.CreatePeriodRequest) error {
	p, err := a.roster.CreatePeriod(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Created period %s: %s (%s to %s)\n", p.ID, p.Name, p.StartsOn, p.EndsOn)
	return nil
}

// ListPeriods lists periods.
func (a *RegistryAdapter) ListPeriods(ctx context.Context) error {
	periods, err := a.roster.ListPeriods(ctx)
	if err != nil {
		return fmt.Errorf("failed to list periods: %w", err)
	}
	if len(periods) == 0 {
		fmt.Fprintln(a.out, "No periods found")
		return nil
	}
	for _, p := range periods {
		fmt.Fprintf(a.out, "%-9s %s to %s  %s\n", p.ID, p.StartsOn, p.EndsOn, p.Name)
	}
	return nil
}

// RegisterLegislator registers a legislator.
func (a *RegistryAdapter) RegisterLegislator(ctx context.Context, name, party string) error {
	l, err := a.roster.RegisterLegislator(ctx, name, party)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Registered %s: %s\n", l.ID, l.Name)
	return nil
}

// ListLegislators lists every legislator, or a period's roster when periodID is set.
func (a *RegistryAdapter) ListLegislators(ctx context.Context, periodID string) error {
	var (
		legislators []*primary.Legislator
		err         error
	)
	if periodID != "" {
		legislators, err = a.roster.Roster(ctx, periodID)
	} else {
		legislators, err = a.roster.ListLegislators(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to list legislators: %w", err)
	}

	if len(legislators) == 0 {
		fmt.Fprintln(a.out, "No legislators found")
		return nil
	}
	for _, l := range legislators {
		fmt.Fprintf(a.out, "%-9s %-28s %s\n", l.ID, l.Name, orDash(l.Party))
	}
	return nil
}

// SetMembership seats or unseats a legislator in a period.
func (a *RegistryAdapter) SetMembership(ctx context.Context, periodID, legislatorID string, active bool) error {
	if err := a.roster.SetMembership(ctx, periodID, legislatorID, active); err != nil {
		return err
	}
	verb := "seated in"
	if !active {
		verb = "removed from"
	}
	fmt.Fprintf(a.out, "✓ %s %s %s\n", legislatorID, verb, periodID)
	return nil
}
