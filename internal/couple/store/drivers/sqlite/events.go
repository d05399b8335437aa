package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/calendar-couple/couple/internal/couple/domain"
)

type eventsRepo struct {
	db dbtx
	b  sq.StatementBuilderType
}

func (r *eventsRepo) CreateEvent(ctx context.Context, e domain.Event) (int64, error) {
	stmt, args, err := r.b.Insert("events").
		Columns("account_id", "calendar_id", "category_id", "title", "description", "event_at", "created_at").
		Values(e.AccountID, e.CalendarID, e.CategoryID, e.Title, mapStringNull(e.Description), e.EventAt.UTC(), stamp(e.CreatedAt)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert event sql: %w", err)
	}

	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, fmt.Errorf("insert event: %w", err)
	}
	return res.LastInsertId()
}

func (r *eventsRepo) ListEventsByAccount(ctx context.Context, accountID int64) ([]domain.Event, error) {
	stmt, args, err := r.b.Select("id", "account_id", "calendar_id", "category_id", "title", "description", "event_at", "created_at").
		From("events").
		Where(sq.Eq{"account_id": accountID}).
		OrderBy("event_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list events sql: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []domain.Event
	for rows.Next() {
		var (
			e           domain.Event
			description sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.AccountID, &e.CalendarID, &e.CategoryID, &e.Title, &description, &e.EventAt, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Description = mapNullString(description)
		e.EventAt = e.EventAt.UTC()
		e.CreatedAt = e.CreatedAt.UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}
