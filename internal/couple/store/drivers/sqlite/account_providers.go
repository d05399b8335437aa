package sqlite

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/calendar-couple/couple/internal/couple/domain"
)

type accountProvidersRepo struct {
	db dbtx
	b  sq.StatementBuilderType
}

func (r *accountProvidersRepo) CreateAccountProvider(ctx context.Context, p domain.AccountProvider) (int64, error) {
	stmt, args, err := r.b.Insert("account_providers").
		Columns("account_id", "provider", "provider_user_id", "created_at").
		Values(p.AccountID, p.Provider, p.ProviderUserID, stamp(p.CreatedAt)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert account provider sql: %w", err)
	}

	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, mapConstraint(err)
	}
	return res.LastInsertId()
}

func (r *accountProvidersRepo) GetByProviderUserID(ctx context.Context, provider, providerUserID string) (domain.AccountProvider, error) {
	stmt, args, err := r.b.Select("id", "account_id", "provider", "provider_user_id", "created_at").
		From("account_providers").
		Where(sq.Eq{"provider": provider, "provider_user_id": providerUserID}).
		ToSql()
	if err != nil {
		return domain.AccountProvider{}, fmt.Errorf("build select account provider sql: %w", err)
	}

	var p domain.AccountProvider
	err = r.db.QueryRowContext(ctx, stmt, args...).
		Scan(&p.ID, &p.AccountID, &p.Provider, &p.ProviderUserID, &p.CreatedAt)
	if err != nil {
		return domain.AccountProvider{}, mapNotFound(err)
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return p, nil
}
