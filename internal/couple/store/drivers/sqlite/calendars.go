package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/calendar-couple/couple/internal/couple/domain"
)

var calendarColumns = []string{
	"c.id", "c.owner_id", "c.name", "c.type", "c.color", "c.description", "c.created_at", "c.updated_at",
}

type calendarsRepo struct {
	db dbtx
	b  sq.StatementBuilderType
}

func (r *calendarsRepo) CreateCalendar(ctx context.Context, c domain.Calendar) (int64, error) {
	created := stamp(c.CreatedAt)
	stmt, args, err := r.b.Insert("calendars").
		Columns("owner_id", "name", "type", "color", "description", "created_at", "updated_at").
		Values(c.OwnerID, c.Name, string(c.Type), c.Color, mapStringNull(c.Description), created, created).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert calendar sql: %w", err)
	}

	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, fmt.Errorf("insert calendar: %w", err)
	}
	return res.LastInsertId()
}

func (r *calendarsRepo) GetCalendarByID(ctx context.Context, id int64) (domain.Calendar, error) {
	stmt, args, err := r.b.Select(calendarColumns...).
		From("calendars c").
		Where(sq.Eq{"c.id": id}).
		ToSql()
	if err != nil {
		return domain.Calendar{}, fmt.Errorf("build select calendar sql: %w", err)
	}

	c, err := scanCalendar(r.db.QueryRowContext(ctx, stmt, args...))
	if err != nil {
		return domain.Calendar{}, mapNotFound(err)
	}
	return c, nil
}

func (r *calendarsRepo) ListCalendarsForAccount(ctx context.Context, accountID int64) ([]domain.Calendar, error) {
	stmt, args, err := r.b.Select(calendarColumns...).
		From("calendars c").
		Where(sq.Or{
			sq.Eq{"c.owner_id": accountID},
			sq.Expr(
				"EXISTS (SELECT 1 FROM calendar_members m WHERE m.calendar_id = c.id AND m.account_id = ? AND m.status = ?)",
				accountID, string(domain.MemberActive),
			),
		}).
		OrderBy("c.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list calendars sql: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query calendars: %w", err)
	}
	defer rows.Close()

	var out []domain.Calendar
	for rows.Next() {
		c, err := scanCalendar(rows)
		if err != nil {
			return nil, fmt.Errorf("scan calendar: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *calendarsRepo) UpdateCalendar(ctx context.Context, c domain.Calendar) error {
	updated := c.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}
	stmt, args, err := r.b.Update("calendars").
		Set("name", c.Name).
		Set("type", string(c.Type)).
		Set("color", c.Color).
		Set("description", mapStringNull(c.Description)).
		Set("updated_at", updated.UTC()).
		Where(sq.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update calendar sql: %w", err)
	}
	return mustAffect(r.db.ExecContext(ctx, stmt, args...))
}

func (r *calendarsRepo) AddMember(ctx context.Context, m domain.CalendarMember) error {
	stmt, args, err := r.b.Insert("calendar_members").
		Columns("calendar_id", "account_id", "role", "status", "created_at").
		Values(m.CalendarID, m.AccountID, string(m.Role), string(m.Status), stamp(m.CreatedAt)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert calendar member sql: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, stmt, args...); err != nil {
		return mapConstraint(err)
	}
	return nil
}

func (r *calendarsRepo) HasAccess(ctx context.Context, calendarID, accountID int64) (bool, error) {
	stmt, args, err := r.b.Select("1").
		From("calendars c").
		Where(sq.Eq{"c.id": calendarID}).
		Where(sq.Or{
			sq.Eq{"c.owner_id": accountID},
			sq.Expr(
				"EXISTS (SELECT 1 FROM calendar_members m WHERE m.calendar_id = c.id AND m.account_id = ? AND m.status = ?)",
				accountID, string(domain.MemberActive),
			),
		}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build calendar access sql: %w", err)
	}

	var one int
	err = r.db.QueryRowContext(ctx, stmt, args...).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCalendar(row rowScanner) (domain.Calendar, error) {
	var (
		c           domain.Calendar
		typ         string
		description sql.NullString
	)
	if err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &typ, &c.Color, &description, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return domain.Calendar{}, err
	}
	c.Type = domain.CalendarType(typ)
	c.Description = mapNullString(description)
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return c, nil
}
