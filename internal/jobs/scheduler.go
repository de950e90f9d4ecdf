package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"giftfall/api/internal/config"
	"giftfall/api/internal/repository"
	"giftfall/api/internal/service"
)

// Scheduler runs the two background sweeps: correcting stale pending
// transactions and expiring lapsed premium subscriptions.
type Scheduler struct {
	cron   *cron.Cron
	cfg    config.JobsConfig
	trades *service.TradeService
	users  *repository.UserRepository
	log    zerolog.Logger
}

func NewScheduler(cfg config.JobsConfig, trades *service.TradeService, users *repository.UserRepository, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithSeconds()),
		cfg:    cfg,
		trades: trades,
		users:  users,
		log:    log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.ReconcileSpec, s.reconcileTransactions); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(s.cfg.PremiumExpirySpec, s.expirePremium); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop waits for in-flight jobs to finish, up to five seconds.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
	}
}

func (s *Scheduler) reconcileTransactions() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	corrected, err := s.trades.Reconcile(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("transaction reconciliation failed")
		return
	}
	if corrected > 0 {
		s.log.Info().Int("corrected", corrected).Msg("stale pending transactions corrected")
	}
}

func (s *Scheduler) expirePremium() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	expired, err := s.users.SweepExpiredPremium(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("premium expiry sweep failed")
		return
	}
	if expired > 0 {
		s.log.Info().Int64("expired", expired).Msg("expired premium subscriptions downgraded")
	}
}
