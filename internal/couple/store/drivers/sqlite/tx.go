package sqlite

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/calendar-couple/couple/internal/couple/store"
)

type txStore struct {
	tx *sql.Tx
	b  sq.StatementBuilderType
}

func newTx(tx *sql.Tx, b sq.StatementBuilderType) *txStore {
	return &txStore{tx: tx, b: b}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // the outer DB stays open

func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Accounts() store.Accounts { return &accountsRepo{db: t.tx, b: t.b} }
func (t *txStore) AccountProviders() store.AccountProviders {
	return &accountProvidersRepo{db: t.tx, b: t.b}
}
func (t *txStore) Calendars() store.Calendars { return &calendarsRepo{db: t.tx, b: t.b} }
func (t *txStore) Events() store.Events       { return &eventsRepo{db: t.tx, b: t.b} }
func (t *txStore) Couples() store.Couples     { return &couplesRepo{db: t.tx, b: t.b} }

func (t *txStore) ApplyMigrations() error { return nil } // migrations run before any tx
