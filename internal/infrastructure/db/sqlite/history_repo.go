package sqlite

import (
	"context"
	"database/sql"
	"time"

	"prtracker/internal/domain/pullrequest"
)

type HistoryRepository struct {
	db *sql.DB
}

func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Add(ctx context.Context, prID int64, action string) error {
	_, err := exec(ctx, r.db,
		`INSERT INTO review_history (pr_id, action, performed_at) VALUES (?, ?, ?)`,
		prID, action, time.Now().Unix())
	return err
}

func (r *HistoryRepository) ListByPR(ctx context.Context, prID int64) ([]pullrequest.History, error) {
	rows, err := query(ctx, r.db,
		`SELECT id, pr_id, action, performed_at
		   FROM review_history
		  WHERE pr_id = ?
		  ORDER BY performed_at, id`,
		prID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []pullrequest.History
	for rows.Next() {
		var h pullrequest.History
		if err := rows.Scan(&h.ID, &h.PRID, &h.Action, &h.PerformedAt); err != nil {
			return nil, err
		}
		res = append(res, h)
	}
	return res, rows.Err()
}
