package sqlite

import (
	"context"
	"database/sql"
)

type Maintenance struct {
	db *sql.DB
}

func NewMaintenance(db *sql.DB) *Maintenance {
	return &Maintenance{db: db}
}

// ClearAll empties every table, children before parents.
func (m *Maintenance) ClearAll(ctx context.Context) error {
	for _, table := range []string{"review_history", "pull_requests", "team_members", "projects"} {
		if _, err := exec(ctx, m.db, `DELETE FROM `+table); err != nil {
			return err
		}
	}
	return nil
}
