// Package poller periodically pulls the balance of every active account from
// the external wallet network and records the observations that changed.
package poller

import (
	"context"
	"fmt"
	"sync"
	"time"

	db "github.com/WalletPulse/WalletPulse-Backend/db/sqlc"
	"github.com/WalletPulse/WalletPulse-Backend/providers/wallet"
	"github.com/WalletPulse/WalletPulse-Backend/services/balance"
	"github.com/WalletPulse/WalletPulse-Backend/services/broadcast"
	"github.com/WalletPulse/WalletPulse-Backend/services/monitoring/logging"
	"github.com/WalletPulse/WalletPulse-Backend/services/reconcile"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// Fetcher pulls one account's balance. Satisfied by wallet.WalletProvider.
type Fetcher interface {
	FetchBalance(ctx context.Context, endpointURL, bearerToken string) (*wallet.Observation, error)
}

type Poller struct {
	queries        db.Querier
	balanceService *balance.BalanceService
	hub            *broadcast.Hub
	fetcher        Fetcher
	logger         *logging.Logger

	interval     time.Duration
	batchSize    int
	fetchTimeout time.Duration

	// lastKnown is a fast-path hint only; the balance service re-reads durable
	// state before writing.
	lastKnown *gocache.Cache

	mu         sync.Mutex
	lastPolled map[uuid.UUID]time.Time
}

type Options struct {
	Interval     time.Duration
	BatchSize    int
	FetchTimeout time.Duration
}

func NewPoller(queries db.Querier, balanceService *balance.BalanceService, hub *broadcast.Hub, fetcher Fetcher, logger *logging.Logger, opts Options) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = 2 * time.Second
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 5
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 10 * time.Second
	}
	return &Poller{
		queries:        queries,
		balanceService: balanceService,
		hub:            hub,
		fetcher:        fetcher,
		logger:         logger,
		interval:       opts.Interval,
		batchSize:      opts.BatchSize,
		fetchTimeout:   opts.FetchTimeout,
		lastKnown:      gocache.New(gocache.NoExpiration, 0),
		lastPolled:     make(map[uuid.UUID]time.Time),
	}
}

// Seed loads the most recent snapshot per account into the last-known cache so
// the first tick does not report every account as changed.
func (p *Poller) Seed(ctx context.Context) error {
	snaps, err := p.queries.ListLatestSnapshots(ctx)
	if err != nil {
		return fmt.Errorf("seed last-known cache: %w", err)
	}
	for _, snap := range snaps {
		p.lastKnown.Set(snap.AccountID.String(), snap.BalanceMinor, gocache.NoExpiration)
	}
	p.logger.WithField("accounts", len(snaps)).Info("seeded last-known balance cache")
	return nil
}

// Run ticks at the configured global interval until the context is cancelled.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("poller stopped")
			return
		case <-ticker.C:
			report := p.Tick(ctx)
			p.logger.WithFields(map[string]interface{}{
				"total":     report.Total,
				"succeeded": report.Succeeded,
				"changed":   report.Changed,
				"failed":    report.Failed,
			}).Debug("poll tick complete")
		}
	}
}

type TickReport struct {
	Total     int
	Succeeded int
	Changed   int
	Failed    int
}

// Tick runs one pass over all active accounts in fixed-size batches. One
// account's failure never blocks or fails the rest of the pass.
func (p *Poller) Tick(ctx context.Context) TickReport {
	accounts, err := p.queries.ListActiveAccounts(ctx)
	if err != nil {
		p.logger.WithError(err).Error("could not list active accounts for tick")
		return TickReport{}
	}

	due := p.filterDue(accounts)

	report := TickReport{Total: len(due)}
	var mu sync.Mutex

	for start := 0; start < len(due); start += p.batchSize {
		end := start + p.batchSize
		if end > len(due) {
			end = len(due)
		}

		var wg sync.WaitGroup
		for _, account := range due[start:end] {
			wg.Add(1)
			go func(account db.ListActiveAccountsRow) {
				defer wg.Done()
				changed, err := p.pollOne(ctx, account)

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					report.Failed++
					return
				}
				report.Succeeded++
				if changed {
					report.Changed++
				}
			}(account)
		}
		wg.Wait()
	}

	return report
}

// filterDue applies per-network tick overrides: accounts whose network sets a
// longer interval are skipped until it elapses.
func (p *Poller) filterDue(accounts []db.ListActiveAccountsRow) []db.ListActiveAccountsRow {
	now := time.Now()

	p.mu.Lock()
	defer p.mu.Unlock()

	due := make([]db.ListActiveAccountsRow, 0, len(accounts))
	for _, account := range accounts {
		if account.PollIntervalMs.Valid {
			netInterval := time.Duration(account.PollIntervalMs.Int64) * time.Millisecond
			if last, ok := p.lastPolled[account.ID]; ok && now.Sub(last) < netInterval {
				continue
			}
		}
		p.lastPolled[account.ID] = now
		due = append(due, account)
	}
	return due
}

func (p *Poller) pollOne(ctx context.Context, account db.ListActiveAccountsRow) (bool, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, p.fetchTimeout)
	defer cancel()

	obs, err := p.fetcher.FetchBalance(fetchCtx, account.EndpointUrl, account.BearerToken)
	if err != nil {
		p.logger.WithFields(map[string]interface{}{
			"account_id": account.ID,
			"error":      err.Error(),
		}).Warn("balance fetch failed")
		return false, err
	}

	// Fast path: the hint cache says nothing moved, skip the durable check.
	if cached, ok := p.lastKnown.Get(account.ID.String()); ok {
		if cached.(int64) == obs.BalanceMinor {
			return false, nil
		}
	}

	res, err := p.balanceService.RecordSnapshotIfChanged(fetchCtx, account.ID, obs.BalanceMinor, obs.MobileNumber, balance.SourceRealtimeWorker)
	if err != nil {
		p.logger.WithFields(map[string]interface{}{
			"account_id": account.ID,
			"error":      err.Error(),
		}).Error("could not record snapshot")
		return false, err
	}

	p.lastKnown.Set(account.ID.String(), obs.BalanceMinor, gocache.NoExpiration)

	if !res.Changed {
		return false, nil
	}

	checkedAt := res.Snapshot.CheckedAt
	p.hub.Publish(account.ID, broadcast.Event{
		Type:         broadcast.EventTypeUpdate,
		Balance:      broadcast.MajorUnits(obs.BalanceMinor),
		BalanceMinor: obs.BalanceMinor,
		ChangeMinor:  reconcile.Delta(res.PreviousMinor, obs.BalanceMinor),
		CheckedAt:    &checkedAt,
	})

	return true, nil
}

// CheckResult is one synchronous balance check outcome, shared by the manual
// check endpoint and available to callers that need the raw numbers.
type CheckResult struct {
	BalanceMinor int64
	MobileNumber string
	CheckedAt    time.Time
	Changed      bool
}

// CheckAccount runs one account's fetch/detect/record/broadcast sequence
// synchronously and returns the outcome. Fetch errors pass through untouched
// so callers can distinguish unreachable endpoints from rejected requests.
func (p *Poller) CheckAccount(ctx context.Context, account db.WalletAccount, source string) (CheckResult, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, p.fetchTimeout)
	defer cancel()

	obs, err := p.fetcher.FetchBalance(fetchCtx, account.EndpointUrl, account.BearerToken)
	if err != nil {
		return CheckResult{}, err
	}

	res, err := p.balanceService.RecordSnapshotIfChanged(fetchCtx, account.ID, obs.BalanceMinor, obs.MobileNumber, source)
	if err != nil {
		return CheckResult{}, err
	}

	p.lastKnown.Set(account.ID.String(), obs.BalanceMinor, gocache.NoExpiration)

	checkedAt := res.Snapshot.CheckedAt
	if res.Changed {
		p.hub.Publish(account.ID, broadcast.Event{
			Type:         broadcast.EventTypeUpdate,
			Balance:      broadcast.MajorUnits(obs.BalanceMinor),
			BalanceMinor: obs.BalanceMinor,
			ChangeMinor:  reconcile.Delta(res.PreviousMinor, obs.BalanceMinor),
			CheckedAt:    &checkedAt,
		})
	}

	return CheckResult{
		BalanceMinor: obs.BalanceMinor,
		MobileNumber: obs.MobileNumber,
		CheckedAt:    checkedAt,
		Changed:      res.Changed,
	}, nil
}
