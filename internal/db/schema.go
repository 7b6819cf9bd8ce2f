package db

import "database/sql"

// SchemaSQL is the complete schema for fresh plenario installs.
// This schema reflects the current state after all migrations.
//
// # Schema Drift Protection
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. Repository tests
// load it through GetSchemaSQL(); if repository code references a column that
// doesn't exist here, tests fail immediately with "no such column".
//
// When adding new columns or tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
//  3. Run `make test` to verify alignment
const SchemaSQL = `
-- Legislative periods (legislaturas / sessões legislativas)
CREATE TABLE IF NOT EXISTS periods (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	starts_on TEXT NOT NULL,
	ends_on TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Legislators (vereadores)
CREATE TABLE IF NOT EXISTS legislators (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	party TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Period membership: who may sit in a period's sittings
CREATE TABLE IF NOT EXISTS period_members (
	period_id TEXT NOT NULL,
	legislator_id TEXT NOT NULL,
	active INTEGER NOT NULL DEFAULT 1,
	PRIMARY KEY (period_id, legislator_id),
	FOREIGN KEY (period_id) REFERENCES periods(id) ON DELETE CASCADE,
	FOREIGN KEY (legislator_id) REFERENCES legislators(id)
);

-- Matters (proposições)
CREATE TABLE IF NOT EXISTS matters (
	id TEXT PRIMARY KEY,
	kind TEXT NOT NULL CHECK(kind IN ('bill', 'resolution', 'decree', 'veto', 'motion', 'request', 'indication', 'official_letter', 'communication', 'minutes')),
	title TEXT NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('filed', 'in_process', 'in_committee', 'approved', 'rejected', 'read', 'archived')) DEFAULT 'filed',
	requires_vote INTEGER NOT NULL DEFAULT 0,
	requires_opinion INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_matters_status ON matters(status);

-- Committee opinions (pareceres)
CREATE TABLE IF NOT EXISTS committee_opinions (
	id TEXT PRIMARY KEY,
	matter_id TEXT NOT NULL,
	committee TEXT NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('pending', 'issued', 'waived')) DEFAULT 'pending',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (matter_id) REFERENCES matters(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_opinions_matter ON committee_opinions(matter_id);

-- Sittings (sessões plenárias)
CREATE TABLE IF NOT EXISTS sittings (
	id TEXT PRIMARY KEY,
	period_id TEXT NOT NULL,
	kind TEXT NOT NULL CHECK(kind IN ('ordinary', 'extraordinary', 'solemn')),
	scheduled_at DATETIME NOT NULL,
	location TEXT,
	notes TEXT,
	status TEXT NOT NULL CHECK(status IN ('scheduled', 'in_progress', 'held', 'cancelled', 'postponed', 'suspended')) DEFAULT 'scheduled',
	agenda_published INTEGER NOT NULL DEFAULT 0,
	status_reason TEXT,
	started_at DATETIME,
	closed_at DATETIME,
	minutes_ref TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (period_id) REFERENCES periods(id)
);

CREATE INDEX IF NOT EXISTS idx_sittings_period ON sittings(period_id, scheduled_at);
CREATE INDEX IF NOT EXISTS idx_sittings_status ON sittings(status);

-- Agenda items (itens de pauta)
CREATE TABLE IF NOT EXISTS agenda_items (
	id TEXT PRIMARY KEY,
	sitting_id TEXT NOT NULL,
	matter_id TEXT NOT NULL,
	section TEXT NOT NULL CHECK(section IN ('expediente', 'ordem_do_dia', 'explicacoes_pessoais')),
	position INTEGER NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('pending', 'read', 'voting_in_progress', 'voted', 'postponed', 'withdrawn')) DEFAULT 'pending',
	yes_count INTEGER NOT NULL DEFAULT 0,
	no_count INTEGER NOT NULL DEFAULT 0,
	abstain_count INTEGER NOT NULL DEFAULT 0,
	outcome TEXT CHECK(outcome IN ('approved', 'rejected', 'tied')),
	voted_at DATETIME,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (sitting_id) REFERENCES sittings(id) ON DELETE CASCADE,
	FOREIGN KEY (matter_id) REFERENCES matters(id),
	UNIQUE(sitting_id, matter_id),
	UNIQUE(sitting_id, section, position)
);

CREATE INDEX IF NOT EXISTS idx_agenda_items_matter ON agenda_items(matter_id);

-- At most one item per sitting may be under voting
CREATE UNIQUE INDEX IF NOT EXISTS idx_agenda_items_voting ON agenda_items(sitting_id) WHERE status = 'voting_in_progress';

-- Attendance (lista de presença)
CREATE TABLE IF NOT EXISTS attendance (
	sitting_id TEXT NOT NULL,
	legislator_id TEXT NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('present', 'absent', 'absent_justified')) DEFAULT 'absent',
	justification TEXT,
	marked_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (sitting_id, legislator_id),
	FOREIGN KEY (sitting_id) REFERENCES sittings(id) ON DELETE CASCADE,
	FOREIGN KEY (legislator_id) REFERENCES legislators(id)
);

-- Nominal votes
CREATE TABLE IF NOT EXISTS votes (
	item_id TEXT NOT NULL,
	legislator_id TEXT NOT NULL,
	choice TEXT NOT NULL CHECK(choice IN ('yes', 'no', 'abstain')),
	cast_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (item_id, legislator_id),
	FOREIGN KEY (item_id) REFERENCES agenda_items(id) ON DELETE CASCADE,
	FOREIGN KEY (legislator_id) REFERENCES legislators(id)
);

-- Minutes (atas)
CREATE TABLE IF NOT EXISTS minutes (
	ref TEXT PRIMARY KEY,
	sitting_id TEXT NOT NULL,
	body TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (sitting_id) REFERENCES sittings(id)
);

CREATE INDEX IF NOT EXISTS idx_minutes_sitting ON minutes(sitting_id);

-- Sitting events (audit trail of conduction)
CREATE TABLE IF NOT EXISTS sitting_events (
	id TEXT PRIMARY KEY,
	sitting_id TEXT NOT NULL,
	actor_id TEXT,
	action TEXT NOT NULL,
	subject TEXT NOT NULL,
	detail TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (sitting_id) REFERENCES sittings(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_sitting_events_sitting ON sitting_events(sitting_id, id);
`

// InitSchema creates the database schema on a fresh database, or runs any
// pending migrations on an existing one.
func InitSchema(database *sql.DB) error {
	var tableCount int
	err := database.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount > 0 {
		return RunMigrations(database)
	}

	// Fresh install - create the modern schema directly and mark every
	// migration as applied
	if _, err := database.Exec(SchemaSQL); err != nil {
		return err
	}
	if err := createVersionTable(database); err != nil {
		return err
	}
	for _, m := range migrations {
		if _, err := database.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return err
		}
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
