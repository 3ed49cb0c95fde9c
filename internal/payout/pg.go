package payout

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

// PayerPG settles campaign payouts in PostgreSQL: the beneficiary account is
// credited, a payout row recorded, and the campaign snapshot marked ended in
// one transaction. Any failure leaves all three tables untouched, which is
// what lets the ledger treat the transfer as all-or-nothing.
type PayerPG struct {
	pool *pgxpool.Pool
}

func NewPayerPG(pool *pgxpool.Pool) *PayerPG {
	return &PayerPG{pool: pool}
}

func (p *PayerPG) Transfer(ctx context.Context, campaignID int, beneficiary string, amount int64) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin payout tx: %w", err)
	}
	defer tx.Rollback(ctx)

	run := infra.TxRunner{Tx: tx}
	if _, err := run.Exec(ctx, sqlinline.QCreditAccount, beneficiary, amount); err != nil {
		return fmt.Errorf("credit account %s: %w", beneficiary, err)
	}
	if _, err := run.Exec(ctx, sqlinline.QInsertPayout, campaignID, beneficiary, amount); err != nil {
		return fmt.Errorf("record payout: %w", err)
	}
	// The ended mark must commit with the credit: if it waited for the
	// journal append, a crash in between would restore the campaign open
	// and let a restarted process pay the beneficiary a second time.
	if _, err := run.Exec(ctx, sqlinline.QMarkCampaignEnded, campaignID); err != nil {
		return fmt.Errorf("mark campaign ended: %w", err)
	}

	return tx.Commit(ctx)
}

var _ domain.Payer = (*PayerPG)(nil)
