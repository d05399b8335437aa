package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/calendar-couple/couple/internal/couple/domain"
	"github.com/calendar-couple/couple/internal/couple/oauth"
	"github.com/calendar-couple/couple/internal/couple/store"
	"github.com/calendar-couple/couple/pkg/clock"
	"github.com/calendar-couple/couple/pkg/slogx"
)

// AccountDirectory looks accounts up and provisions new ones.
type AccountDirectory struct {
	Store store.Store
	Clock clock.Clock
}

// FindByExternalIdentity returns the account linked to (provider,
// externalID). It fails with store.ErrNotFound when no link exists and with
// ErrAccountNotFound when the link points at a removed account.
func (d *AccountDirectory) FindByExternalIdentity(ctx context.Context, provider, externalID string) (domain.Account, error) {
	link, err := d.Store.AccountProviders().GetByProviderUserID(ctx, provider, externalID)
	if err != nil {
		return domain.Account{}, err
	}

	acc, err := d.FindByID(ctx, link.AccountID)
	if err != nil {
		return domain.Account{}, err
	}
	return acc, nil
}

// FindByID fails with ErrAccountNotFound when the account does not exist.
func (d *AccountDirectory) FindByID(ctx context.Context, id int64) (domain.Account, error) {
	acc, err := d.Store.Accounts().GetAccountByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Account{}, ErrAccountNotFound
	}
	if err != nil {
		return domain.Account{}, fmt.Errorf("load account %d: %w", id, err)
	}
	return acc, nil
}

// CreateForIdentity creates a USER account linked to id together with its
// default personal calendar, all in one transaction.
func (d *AccountDirectory) CreateForIdentity(ctx context.Context, provider string, id oauth.Identity) (domain.Account, error) {
	l := slogx.FromContext(ctx)
	now := d.Clock.Now().UTC()

	acc := domain.Account{
		Email:     id.Email,
		Name:      id.Name,
		Role:      domain.RoleUser,
		Provider:  provider,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := d.Store.WithTx(ctx, func(tx store.Tx) error {
		accountID, err := tx.Accounts().CreateAccount(ctx, acc)
		if err != nil {
			return fmt.Errorf("create account: %w", err)
		}
		acc.ID = accountID

		if _, err := tx.AccountProviders().CreateAccountProvider(ctx, domain.AccountProvider{
			AccountID:      accountID,
			Provider:       provider,
			ProviderUserID: id.ExternalID,
			CreatedAt:      now,
		}); err != nil {
			return fmt.Errorf("link provider: %w", err)
		}

		if _, err := createDefaultCalendar(ctx, tx, accountID, now); err != nil {
			return fmt.Errorf("create default calendar: %w", err)
		}
		return nil
	})
	if err != nil {
		l.Error("account provisioning failed",
			slog.String("provider", provider),
			slog.Any("error", err),
		)
		return domain.Account{}, err
	}

	l.Info("account created",
		slog.Int64("account_id", acc.ID),
		slog.String("provider", provider),
	)
	return acc, nil
}
