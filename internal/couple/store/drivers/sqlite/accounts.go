package sqlite

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/calendar-couple/couple/internal/couple/domain"
)

var accountColumns = []string{
	"id", "email", "name", "role", "provider",
	"is_deleted", "is_banned", "is_withdrawn",
	"created_at", "updated_at",
}

type accountsRepo struct {
	db dbtx
	b  sq.StatementBuilderType
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) (int64, error) {
	if a.Role == "" {
		a.Role = domain.RoleUser
	}
	created := stamp(a.CreatedAt)
	updated := a.UpdatedAt
	if updated.IsZero() {
		updated = created
	}

	stmt, args, err := r.b.Insert("accounts").
		Columns("email", "name", "role", "provider", "is_deleted", "is_banned", "is_withdrawn", "created_at", "updated_at").
		Values(a.Email, a.Name, string(a.Role), a.Provider, a.Deleted, a.Banned, a.Withdrawn, created, updated.UTC()).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert account sql: %w", err)
	}

	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, fmt.Errorf("insert account: %w", err)
	}
	return res.LastInsertId()
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id int64) (domain.Account, error) {
	stmt, args, err := r.b.Select(accountColumns...).
		From("accounts").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.Account{}, fmt.Errorf("build select account sql: %w", err)
	}

	var (
		a    domain.Account
		role string
	)
	err = r.db.QueryRowContext(ctx, stmt, args...).Scan(
		&a.ID, &a.Email, &a.Name, &role, &a.Provider,
		&a.Deleted, &a.Banned, &a.Withdrawn,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	a.Role = domain.Role(role)
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	return a, nil
}

func (r *accountsRepo) UpdateStatus(ctx context.Context, id int64, deleted, banned, withdrawn bool) error {
	stmt, args, err := r.b.Update("accounts").
		Set("is_deleted", deleted).
		Set("is_banned", banned).
		Set("is_withdrawn", withdrawn).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update account status sql: %w", err)
	}
	return mustAffect(r.db.ExecContext(ctx, stmt, args...))
}
