package store

// migration represents a single schema migration.
type migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations is the ordered list of all schema migrations.
var migrations = []migration{
	{
		Version: 1,
		Name:    "create leads",
		SQL: `
			CREATE TABLE leads (
				id          TEXT PRIMARY KEY,
				user_id     TEXT NOT NULL,
				contact     TEXT NOT NULL,
				created_at  TEXT NOT NULL DEFAULT (datetime('now'))
			);

			CREATE INDEX idx_leads_user ON leads (user_id);
			CREATE INDEX idx_leads_created ON leads (created_at);
		`,
	},
}
