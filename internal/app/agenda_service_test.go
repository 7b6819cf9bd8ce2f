package app

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/example/plenario/internal/core/fault"
	"github.com/example/plenario/internal/ports/primary"
)

// positions returns "ID:section:position" for every item of a sitting, in
// agenda order.
func positions(t *testing.T, c *chamber, sittingID string) []string {
	t.Helper()
	agenda, err := c.agendaSvc.GetAgenda(context.Background(), sittingID)
	if err != nil {
		t.Fatalf("GetAgenda() error = %v", err)
	}
	var out []string
	for _, it := range agenda.Items {
		out = append(out, it.ID+":"+it.Section+":"+strconv.Itoa(it.Position))
	}
	return out
}

func assertStrings(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("agenda = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("agenda[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAddItem(t *testing.T) {
	ctx := context.Background()
	c := newChamber()
	c.addSitting("SES-001", "2026-03-10T19:00:00Z")
	c.addMatter("MAT-001", true, false)
	c.addMatter("MAT-002", true, false)

	first, err := c.agendaSvc.AddItem(ctx, primary.AddItemRequest{SittingID: "SES-001", MatterID: "MAT-001", Section: "ordem_do_dia"})
	if err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}
	second, err := c.agendaSvc.AddItem(ctx, primary.AddItemRequest{SittingID: "SES-001", MatterID: "MAT-002", Section: "ordem_do_dia"})
	if err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}
	if first.Position != 1 || second.Position != 2 {
		t.Errorf("positions = %d, %d; want 1, 2", first.Position, second.Position)
	}
	if first.Status != "pending" || first.MatterTitle != "Matter MAT-001" {
		t.Errorf("item = %+v, want pending with matter title", first)
	}
	if first.ID == second.ID {
		t.Errorf("items share ID %s", first.ID)
	}
}

func TestAddItemRejections(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(c *chamber)
		req     primary.AddItemRequest
		wantErr error
	}{
		{
			name:    "unknown section",
			setup:   func(c *chamber) {},
			req:     primary.AddItemRequest{SittingID: "SES-001", MatterID: "MAT-001", Section: "recreio"},
			wantErr: fault.ErrValidation,
		},
		{
			name:    "unknown sitting",
			setup:   func(c *chamber) {},
			req:     primary.AddItemRequest{SittingID: "SES-404", MatterID: "MAT-001", Section: "expediente"},
			wantErr: fault.ErrNotFound,
		},
		{
			name:    "unknown matter",
			setup:   func(c *chamber) {},
			req:     primary.AddItemRequest{SittingID: "SES-001", MatterID: "MAT-404", Section: "expediente"},
			wantErr: fault.ErrNotFound,
		},
		{
			name:    "already on this agenda",
			setup:   func(c *chamber) { c.addItem("ITEM-001", "SES-001", "MAT-001", 1) },
			req:     primary.AddItemRequest{SittingID: "SES-001", MatterID: "MAT-001", Section: "expediente"},
			wantErr: fault.ErrInvalidState,
		},
		{
			name: "on another scheduled sitting",
			setup: func(c *chamber) {
				c.addSitting("SES-002", "2026-03-17T19:00:00Z")
				c.addItem("ITEM-001", "SES-002", "MAT-001", 1)
			},
			req:     primary.AddItemRequest{SittingID: "SES-001", MatterID: "MAT-001", Section: "ordem_do_dia"},
			wantErr: fault.ErrInvalidState,
		},
		{
			name:    "matter not ready",
			setup:   func(c *chamber) { c.matters.matters["MAT-001"].Status = "approved" },
			req:     primary.AddItemRequest{SittingID: "SES-001", MatterID: "MAT-001", Section: "ordem_do_dia"},
			wantErr: fault.ErrInvalidState,
		},
		{
			name:    "agenda published",
			setup:   func(c *chamber) { c.sittings.sittings["SES-001"].AgendaPublished = true },
			req:     primary.AddItemRequest{SittingID: "SES-001", MatterID: "MAT-001", Section: "ordem_do_dia"},
			wantErr: fault.ErrInvalidState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newChamber()
			c.addSitting("SES-001", "2026-03-10T19:00:00Z")
			c.addMatter("MAT-001", true, false)
			tt.setup(c)

			_, err := c.agendaSvc.AddItem(context.Background(), tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddItem() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAddThenRemoveRestoresAgenda(t *testing.T) {
	ctx := context.Background()
	c := newChamber()
	c.addSitting("SES-001", "2026-03-10T19:00:00Z")
	for _, id := range []string{"MAT-001", "MAT-002", "MAT-003"} {
		c.addMatter(id, true, false)
	}
	c.addItem("ITEM-001", "SES-001", "MAT-001", 1)
	c.addItem("ITEM-002", "SES-001", "MAT-002", 2)
	before := positions(t, c, "SES-001")

	added, err := c.agendaSvc.AddItem(ctx, primary.AddItemRequest{SittingID: "SES-001", MatterID: "MAT-003", Section: "ordem_do_dia"})
	if err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}
	if err := c.agendaSvc.RemoveItem(ctx, added.ID); err != nil {
		t.Fatalf("RemoveItem() error = %v", err)
	}

	assertStrings(t, positions(t, c, "SES-001"), before)
}

func TestRemoveItemRenumbers(t *testing.T) {
	c := newChamber()
	c.addSitting("SES-001", "2026-03-10T19:00:00Z")
	for _, id := range []string{"MAT-001", "MAT-002", "MAT-003"} {
		c.addMatter(id, true, false)
	}
	c.addItem("ITEM-001", "SES-001", "MAT-001", 1)
	c.addItem("ITEM-002", "SES-001", "MAT-002", 2)
	c.addItem("ITEM-003", "SES-001", "MAT-003", 3)

	if err := c.agendaSvc.RemoveItem(context.Background(), "ITEM-002"); err != nil {
		t.Fatalf("RemoveItem() error = %v", err)
	}

	assertStrings(t, positions(t, c, "SES-001"), []string{
		"ITEM-001:ordem_do_dia:1",
		"ITEM-003:ordem_do_dia:2",
	})
}

func TestReorder(t *testing.T) {
	ctx := context.Background()
	c := newChamber()
	c.addSitting("SES-001", "2026-03-10T19:00:00Z")
	for _, id := range []string{"MAT-001", "MAT-002", "MAT-003"} {
		c.addMatter(id, true, false)
	}
	c.addItem("ITEM-001", "SES-001", "MAT-001", 1)
	c.addItem("ITEM-002", "SES-001", "MAT-002", 2)
	c.addItem("ITEM-003", "SES-001", "MAT-003", 3)

	err := c.agendaSvc.Reorder(ctx, primary.ReorderRequest{SittingID: "SES-001", Section: "ordem_do_dia", ItemIDs: []string{"ITEM-003", "ITEM-001"}})
	if !errors.Is(err, fault.ErrValidation) {
		t.Fatalf("Reorder() with missing item error = %v, want validation", err)
	}

	err = c.agendaSvc.Reorder(ctx, primary.ReorderRequest{SittingID: "SES-001", Section: "ordem_do_dia", ItemIDs: []string{"ITEM-003", "ITEM-001", "ITEM-002"}})
	if err != nil {
		t.Fatalf("Reorder() error = %v", err)
	}
	assertStrings(t, positions(t, c, "SES-001"), []string{
		"ITEM-003:ordem_do_dia:1",
		"ITEM-001:ordem_do_dia:2",
		"ITEM-002:ordem_do_dia:3",
	})
}

func TestChangeSection(t *testing.T) {
	c := newChamber()
	c.addSitting("SES-001", "2026-03-10T19:00:00Z")
	for _, id := range []string{"MAT-001", "MAT-002", "MAT-003"} {
		c.addMatter(id, true, false)
	}
	c.addItem("ITEM-001", "SES-001", "MAT-001", 1)
	c.addItem("ITEM-002", "SES-001", "MAT-002", 2)
	c.addItem("ITEM-003", "SES-001", "MAT-003", 3)

	if err := c.agendaSvc.ChangeSection(context.Background(), "ITEM-001", "expediente"); err != nil {
		t.Fatalf("ChangeSection() error = %v", err)
	}

	assertStrings(t, positions(t, c, "SES-001"), []string{
		"ITEM-001:expediente:1",
		"ITEM-002:ordem_do_dia:1",
		"ITEM-003:ordem_do_dia:2",
	})
}

func TestPublish(t *testing.T) {
	ctx := context.Background()
	c := newChamber()
	c.addSitting("SES-001", "2026-03-10T19:00:00Z")
	c.addMatter("MAT-001", true, false)

	if err := c.agendaSvc.Publish(ctx, "SES-001"); !errors.Is(err, fault.ErrInvalidState) {
		t.Fatalf("Publish() of empty agenda error = %v, want invalid_state", err)
	}

	c.addItem("ITEM-001", "SES-001", "MAT-001", 1)
	if err := c.agendaSvc.Publish(ctx, "SES-001"); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if err := c.agendaSvc.Publish(ctx, "SES-001"); !errors.Is(err, fault.ErrAlreadyPublished) {
		t.Errorf("second Publish() error = %v, want already_published", err)
	}
	if err := c.agendaSvc.RemoveItem(ctx, "ITEM-001"); !errors.Is(err, fault.ErrInvalidState) {
		t.Errorf("RemoveItem() on published agenda error = %v, want invalid_state", err)
	}
	if err := c.agendaSvc.ChangeSection(ctx, "ITEM-001", "expediente"); !errors.Is(err, fault.ErrInvalidState) {
		t.Errorf("ChangeSection() on published agenda error = %v, want invalid_state", err)
	}

	if err := c.agendaSvc.Unpublish(ctx, "SES-001"); err != nil {
		t.Fatalf("Unpublish() error = %v", err)
	}
	if err := c.agendaSvc.Unpublish(ctx, "SES-001"); !errors.Is(err, fault.ErrInvalidState) {
		t.Errorf("second Unpublish() error = %v, want invalid_state", err)
	}
}

func TestListEligibleMatters(t *testing.T) {
	c := newChamber()
	c.addSitting("SES-001", "2026-03-10T19:00:00Z")
	c.addSitting("SES-002", "2026-03-17T19:00:00Z")
	c.addSitting("SES-000", "2026-03-03T19:00:00Z")
	c.sittings.sittings["SES-000"].Status = "held"

	c.addMatter("MAT-001", true, false) // free
	c.addMatter("MAT-002", true, false) // on SES-002, scheduled
	c.addMatter("MAT-003", true, false) // on SES-001 itself
	c.addMatter("MAT-004", true, false) // on a held sitting only
	c.addMatter("MAT-005", true, false)
	c.matters.matters["MAT-005"].Status = "in_committee"
	c.addItem("ITEM-001", "SES-002", "MAT-002", 1)
	c.addItem("ITEM-002", "SES-001", "MAT-003", 1)
	c.addItem("ITEM-003", "SES-000", "MAT-004", 1)

	matters, err := c.agendaSvc.ListEligibleMatters(context.Background(), "SES-001")
	if err != nil {
		t.Fatalf("ListEligibleMatters() error = %v", err)
	}

	var got []string
	for _, m := range matters {
		got = append(got, m.ID)
	}
	assertStrings(t, got, []string{"MAT-001", "MAT-003", "MAT-004"})
}

func TestConductItemOperations(t *testing.T) {
	ctx := context.Background()
	c := startedSitting(t)
	c.addMatter("MAT-002", false, false)
	c.addItem("ITEM-002", "SES-001", "MAT-002", 2)

	if err := c.agendaSvc.MarkRead(ctx, "ITEM-002"); err != nil {
		t.Fatalf("MarkRead() error = %v", err)
	}
	if got := c.matters.matters["MAT-002"].Status; got != "read" {
		t.Errorf("matter status = %q, want read", got)
	}
	if err := c.agendaSvc.PostponeItem(ctx, "ITEM-002"); !errors.Is(err, fault.ErrInvalidState) {
		t.Errorf("PostponeItem() on read item error = %v, want invalid_state", err)
	}

	if err := c.agendaSvc.PostponeItem(ctx, "ITEM-001"); err != nil {
		t.Fatalf("PostponeItem() error = %v", err)
	}
	item, err := c.agendaSvc.GetItem(ctx, "ITEM-001")
	if err != nil {
		t.Fatalf("GetItem() error = %v", err)
	}
	if item.Status != "postponed" {
		t.Errorf("item status = %q, want postponed", item.Status)
	}
	if got := c.matters.matters["MAT-001"].Status; got != "filed" {
		t.Errorf("postponed matter status = %q, want filed", got)
	}
}

func TestConductRequiresSittingInProgress(t *testing.T) {
	c := newChamber()
	c.addSitting("SES-001", "2026-03-10T19:00:00Z")
	c.addMatter("MAT-001", false, false)
	c.addItem("ITEM-001", "SES-001", "MAT-001", 1)

	if err := c.agendaSvc.MarkRead(context.Background(), "ITEM-001"); !errors.Is(err, fault.ErrInvalidState) {
		t.Errorf("MarkRead() on scheduled sitting error = %v, want invalid_state", err)
	}
	if err := c.agendaSvc.WithdrawItem(context.Background(), "ITEM-001"); !errors.Is(err, fault.ErrInvalidState) {
		t.Errorf("WithdrawItem() on scheduled sitting error = %v, want invalid_state", err)
	}
}
