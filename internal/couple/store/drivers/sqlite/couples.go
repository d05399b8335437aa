package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/calendar-couple/couple/internal/couple/domain"
	"github.com/calendar-couple/couple/internal/couple/store"
)

type couplesRepo struct {
	db dbtx
	b  sq.StatementBuilderType
}

func (r *couplesRepo) CreateCouple(ctx context.Context, c domain.Couple) (int64, error) {
	stmt, args, err := r.b.Insert("couples").
		Columns("account1_id", "account2_id", "start_date", "created_at").
		Values(c.Account1ID, c.Account2ID, c.StartDate.UTC().Format(dateLayout), stamp(c.CreatedAt)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert couple sql: %w", err)
	}

	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, mapConstraint(err)
	}
	return res.LastInsertId()
}

func (r *couplesRepo) GetCoupleByAccountID(ctx context.Context, accountID int64) (domain.Couple, error) {
	stmt, args, err := r.b.Select("id", "account1_id", "account2_id", "start_date", "created_at").
		From("couples").
		Where(sq.Or{sq.Eq{"account1_id": accountID}, sq.Eq{"account2_id": accountID}}).
		Limit(1).
		ToSql()
	if err != nil {
		return domain.Couple{}, fmt.Errorf("build select couple sql: %w", err)
	}

	var (
		c         domain.Couple
		startDate string
	)
	err = r.db.QueryRowContext(ctx, stmt, args...).
		Scan(&c.ID, &c.Account1ID, &c.Account2ID, &startDate, &c.CreatedAt)
	if err != nil {
		return domain.Couple{}, mapNotFound(err)
	}

	c.StartDate, err = time.Parse(dateLayout, startDate)
	if err != nil {
		return domain.Couple{}, fmt.Errorf("parse couple start date %q: %w", startDate, err)
	}
	c.CreatedAt = c.CreatedAt.UTC()
	return c, nil
}

func (r *couplesRepo) ExistsByAccountID(ctx context.Context, accountID int64) (bool, error) {
	_, err := r.GetCoupleByAccountID(ctx, accountID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, store.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (r *couplesRepo) UpdateStartDate(ctx context.Context, coupleID int64, startDate time.Time) error {
	stmt, args, err := r.b.Update("couples").
		Set("start_date", startDate.UTC().Format(dateLayout)).
		Where(sq.Eq{"id": coupleID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update couple start date sql: %w", err)
	}
	return mustAffect(r.db.ExecContext(ctx, stmt, args...))
}

func (r *couplesRepo) DeleteCouple(ctx context.Context, coupleID int64) error {
	stmt, args, err := r.b.Delete("couples").
		Where(sq.Eq{"id": coupleID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete couple sql: %w", err)
	}
	return mustAffect(r.db.ExecContext(ctx, stmt, args...))
}
