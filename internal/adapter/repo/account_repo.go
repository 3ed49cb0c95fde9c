package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

// AccountRepositoryPG reads beneficiary balances credited by the Postgres
// payer. An account that never received a payout has a zero balance.
type AccountRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewAccountRepository(sql infra.SQLExecutor) *AccountRepositoryPG {
	return &AccountRepositoryPG{sql: sql}
}

func (r *AccountRepositoryPG) Balance(ctx context.Context, account string) (int64, error) {
	var balance int64
	err := r.sql.QueryRow(ctx, sqlinline.QAccountBalance, account).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return balance, nil
}

var _ domain.AccountRepository = (*AccountRepositoryPG)(nil)
