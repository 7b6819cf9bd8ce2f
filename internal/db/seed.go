package db

import (
	"database/sql"
	"fmt"
	"time"
)

// SeedFixtures populates the database with a small chamber: one period, nine
// legislators, a handful of matters in different states, and two sittings.
func SeedFixtures(database *sql.DB) error {
	now := time.Now().UTC()

	if _, err := database.Exec(
		"INSERT INTO periods (id, name, starts_on, ends_on) VALUES ('PER-001', '19ª Legislatura', '2025-01-01', '2028-12-31')",
	); err != nil {
		return fmt.Errorf("seed periods: %w", err)
	}

	legislators := []struct{ id, name, party string }{
		{"LEG-001", "Ana Ribeiro", "PSB"},
		{"LEG-002", "Bruno Carvalho", "PT"},
		{"LEG-003", "Carla Mendes", "MDB"},
		{"LEG-004", "Diego Souza", "PSD"},
		{"LEG-005", "Elisa Ferraz", "PL"},
		{"LEG-006", "Fábio Lima", "PP"},
		{"LEG-007", "Gabriela Rocha", "PDT"},
		{"LEG-008", "Heitor Nunes", "Republicanos"},
		{"LEG-009", "Isabel Prado", "União"},
	}
	for _, l := range legislators {
		if _, err := database.Exec(
			"INSERT INTO legislators (id, name, party) VALUES (?, ?, ?)",
			l.id, l.name, l.party,
		); err != nil {
			return fmt.Errorf("seed legislators: %w", err)
		}
		if _, err := database.Exec(
			"INSERT INTO period_members (period_id, legislator_id, active) VALUES ('PER-001', ?, 1)",
			l.id,
		); err != nil {
			return fmt.Errorf("seed period members: %w", err)
		}
	}

	matters := []struct {
		id, kind, title, status string
		vote, opinion           bool
	}{
		{"MAT-001", "bill", "Institui o programa municipal de hortas comunitárias", "in_process", true, true},
		{"MAT-002", "motion", "Moção de aplauso à rede municipal de ensino", "filed", true, false},
		{"MAT-003", "communication", "Comunicado da Mesa sobre o recesso", "filed", false, false},
		{"MAT-004", "bill", "Altera o código de posturas", "in_committee", true, true},
		{"MAT-005", "request", "Requer informações sobre a coleta seletiva", "filed", true, false},
	}
	for _, m := range matters {
		if _, err := database.Exec(
			"INSERT INTO matters (id, kind, title, status, requires_vote, requires_opinion) VALUES (?, ?, ?, ?, ?, ?)",
			m.id, m.kind, m.title, m.status, m.vote, m.opinion,
		); err != nil {
			return fmt.Errorf("seed matters: %w", err)
		}
	}

	opinions := []struct{ id, matterID, committee, status string }{
		{"OP-001", "MAT-001", "Constituição e Justiça", "issued"},
		{"OP-002", "MAT-001", "Finanças e Orçamento", "pending"},
		{"OP-003", "MAT-004", "Constituição e Justiça", "pending"},
	}
	for _, o := range opinions {
		if _, err := database.Exec(
			"INSERT INTO committee_opinions (id, matter_id, committee, status) VALUES (?, ?, ?, ?)",
			o.id, o.matterID, o.committee, o.status,
		); err != nil {
			return fmt.Errorf("seed opinions: %w", err)
		}
	}

	sittings := []struct {
		id   string
		kind string
		at   time.Time
	}{
		{"SES-001", "ordinary", nextWeekday(now, time.Tuesday)},
		{"SES-002", "ordinary", nextWeekday(now, time.Tuesday).AddDate(0, 0, 7)},
	}
	for _, s := range sittings {
		if _, err := database.Exec(
			"INSERT INTO sittings (id, period_id, kind, scheduled_at, location, status) VALUES (?, 'PER-001', ?, ?, 'Plenário', 'scheduled')",
			s.id, s.kind, s.at,
		); err != nil {
			return fmt.Errorf("seed sittings: %w", err)
		}
	}

	items := []struct {
		id, matterID, section string
		position              int
	}{
		{"ITEM-001", "MAT-003", "expediente", 1},
		{"ITEM-002", "MAT-002", "ordem_do_dia", 1},
		{"ITEM-003", "MAT-005", "ordem_do_dia", 2},
	}
	for _, it := range items {
		if _, err := database.Exec(
			"INSERT INTO agenda_items (id, sitting_id, matter_id, section, position, status) VALUES (?, 'SES-001', ?, ?, ?, 'pending')",
			it.id, it.matterID, it.section, it.position,
		); err != nil {
			return fmt.Errorf("seed agenda items: %w", err)
		}
	}

	return nil
}

// nextWeekday returns 19:00 UTC on the next given weekday after t.
func nextWeekday(t time.Time, day time.Weekday) time.Time {
	d := t.AddDate(0, 0, 1)
	for d.Weekday() != day {
		d = d.AddDate(0, 0, 1)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 19, 0, 0, 0, time.UTC)
}
