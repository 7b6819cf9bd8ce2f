package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/plenario/internal/ports/primary"
)

// AgendaAdapter is a thin adapter that translates CLI operations to AgendaService calls.
type AgendaAdapter struct {
	service primary.AgendaService
	out     io.Writer
}

// NewAgendaAdapter creates a new AgendaAdapter with the given service.
func NewAgendaAdapter(service primary.AgendaService, out io.Writer) *AgendaAdapter {
	return &AgendaAdapter{
		service: service,
		out:     out,
	}
}

// Show prints a sitting's agenda.
func (a *AgendaAdapter) Show(ctx context.Context, sittingID string) error {
	agenda, err := a.service.GetAgenda(ctx, sittingID)
	if err != nil {
		return fmt.Errorf("failed to get agenda: %w", err)
	}
	printAgenda(a.out, agenda)
	return nil
}

// Eligible lists matters that may still be put on the agenda.
func (a *AgendaAdapter) Eligible(ctx context.Context, sittingID string) error {
	matters, err := a.service.ListEligibleMatters(ctx, sittingID)
	if err != nil {
		return fmt.Errorf("failed to list eligible matters: %w", err)
	}

	if len(matters) == 0 {
		fmt.Fprintln(a.out, "No eligible matters")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-9s %-16s %-13s %s\n", "ID", "KIND", "STATUS", "TITLE")
	fmt.Fprintln(a.out, rule)
	for _, m := range matters {
		fmt.Fprintf(a.out, "%-9s %-16s %-13s %s\n", m.ID, m.Kind, m.Status, m.Title)
	}
	fmt.Fprintln(a.out)
	return nil
}

// Add puts a matter on the agenda.
func (a *AgendaAdapter) Add(ctx context.Context, req primary.AddItemRequest) error {
	item, err := a.service.AddItem(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Added %s as %s (%s #%d)\n", item.MatterID, item.ID, item.Section, item.Position)
	return nil
}

// Remove takes an item off an unpublished agenda.
func (a *AgendaAdapter) Remove(ctx context.Context, itemID string) error {
	if err := a.service.RemoveItem(ctx, itemID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Removed %s\n", itemID)
	return nil
}

// Reorder rewrites a section's order.
func (a *AgendaAdapter) Reorder(ctx context.Context, req primary.ReorderRequest) error {
	if err := a.service.Reorder(ctx, req); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Reordered %s of %s\n", req.Section, req.SittingID)
	return nil
}

// Move moves an item to another section.
func (a *AgendaAdapter) Move(ctx context.Context, itemID, section string) error {
	if err := a.service.ChangeSection(ctx, itemID, section); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Moved %s to %s\n", itemID, section)
	return nil
}

// Publish freezes the agenda.
func (a *AgendaAdapter) Publish(ctx context.Context, sittingID string) error {
	if err := a.service.Publish(ctx, sittingID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Agenda of %s published\n", sittingID)
	return nil
}

// Unpublish reopens the agenda.
func (a *AgendaAdapter) Unpublish(ctx context.Context, sittingID string) error {
	if err := a.service.Unpublish(ctx, sittingID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Agenda of %s reopened\n", sittingID)
	return nil
}

// Read marks an item read.
func (a *AgendaAdapter) Read(ctx context.Context, itemID string) error {
	if err := a.service.MarkRead(ctx, itemID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ %s %s\n", itemID, colorStatus("read"))
	return nil
}

// Postpone defers an item.
func (a *AgendaAdapter) Postpone(ctx context.Context, itemID string) error {
	if err := a.service.PostponeItem(ctx, itemID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ %s %s\n", itemID, colorStatus("postponed"))
	return nil
}

// Withdraw withdraws an item.
func (a *AgendaAdapter) Withdraw(ctx context.Context, itemID string) error {
	if err := a.service.WithdrawItem(ctx, itemID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ %s %s\n", itemID, colorStatus("withdrawn"))
	return nil
}
