package repo

import (
	"context"

	"server/internal/domain"
	"server/internal/infra"
	"server/internal/sqlinline"
)

// CampaignRepositoryPG reads campaign snapshots maintained by the event
// journal. The ledger restores from it at boot.
type CampaignRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewCampaignRepository(sql infra.SQLExecutor) *CampaignRepositoryPG {
	return &CampaignRepositoryPG{sql: sql}
}

// ListAll returns every campaign snapshot in creation order. A campaign with
// a recorded payout is always reported as ended, whatever its snapshot row
// says: the payout row commits with the transfer, so it is the authoritative
// at-most-once witness.
func (r *CampaignRepositoryPG) ListAll(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListCampaigns)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Campaign
	for rows.Next() {
		var (
			c      domain.Campaign
			status string
		)
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Beneficiary,
			&c.Goal, &c.Deadline, &c.AmountRaised, &status, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Status = domain.CampaignStatus(status)
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	paid, err := r.paidCampaigns(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if _, ok := paid[items[i].ID]; ok {
			items[i].Status = domain.CampaignStatusEnded
		}
	}
	return items, nil
}

func (r *CampaignRepositoryPG) paidCampaigns(ctx context.Context) (map[int]struct{}, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListPaidCampaignIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	paid := make(map[int]struct{})
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		paid[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return paid, nil
}

var _ domain.CampaignSnapshots = (*CampaignRepositoryPG)(nil)
