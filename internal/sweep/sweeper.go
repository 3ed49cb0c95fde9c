package sweep

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/ledger"
)

// Sweeper periodically ends campaigns whose deadline has passed so payouts
// do not wait for an explicit end call. Every payout still goes through the
// ledger, so its guards apply unchanged; a campaign ended by hand between
// scan and sweep is simply skipped.
type Sweeper struct {
	ledger   *ledger.Ledger
	interval time.Duration
	logger   zerolog.Logger
}

func New(l *ledger.Ledger, interval time.Duration, logger zerolog.Logger) *Sweeper {
	return &Sweeper{ledger: l, interval: interval, logger: logger}
}

// Run blocks until ctx is canceled, sweeping once per interval.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep ends every due campaign once and returns how many payouts
// succeeded.
func (s *Sweeper) Sweep(ctx context.Context) int {
	ended := 0
	for _, id := range s.ledger.DueCampaigns() {
		amount, err := s.ledger.End(ctx, id)
		switch {
		case err == nil:
			ended++
			s.logger.Info().Int("campaign_id", id).Int64("amount", amount).Msg("swept campaign")
		case errors.Is(err, domain.ErrAlreadyEnded):
			// ended concurrently, nothing to do
		default:
			s.logger.Error().Err(err).Int("campaign_id", id).Msg("sweep payout failed")
		}
	}
	return ended
}
