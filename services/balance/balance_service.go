package balance

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	db "github.com/WalletPulse/WalletPulse-Backend/db/sqlc"
	"github.com/WalletPulse/WalletPulse-Backend/services/monitoring/logging"
	"github.com/WalletPulse/WalletPulse-Backend/services/reconcile"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sqlc-dev/pqtype"
)

// Snapshot sources, one per producer path.
const (
	SourceManualCheck    = "manual_check"
	SourceRealtimeWorker = "realtime_worker"
	SourceCronCheck      = "cron_check"
	SourceWebhook        = "webhook"
)

const (
	DirectionIncoming = "incoming"
	DirectionOutgoing = "outgoing"
)

// SeenCache is the optional fast-path duplicate hint consulted before the
// durable existence check. Satisfied by services.RedisService.
type SeenCache interface {
	MarkTransactionSeen(ctx context.Context, transactionID string) error
	TransactionSeen(ctx context.Context, transactionID string) bool
}

// BalanceService is the durable write path for snapshots and transactions and
// the read path for latest-balance and history queries.
type BalanceService struct {
	queries db.Querier
	locks   *reconcile.AccountLock
	seen    SeenCache
	logger  *logging.Logger
}

func NewBalanceService(queries db.Querier, locks *reconcile.AccountLock, seen SeenCache, logger *logging.Logger) *BalanceService {
	return &BalanceService{
		queries: queries,
		locks:   locks,
		seen:    seen,
		logger:  logger,
	}
}

type SnapshotResult struct {
	Changed  bool
	Snapshot db.BalanceSnapshot
	// Previous balance in minor units; nil on first observation.
	PreviousMinor *int64
}

// RecordSnapshotIfChanged reads the latest durable snapshot for the account
// and inserts a new one only when the observed balance differs. The whole
// read-compare-insert sequence holds the account's mutex so two concurrent
// observers cannot both decide "changed" from the same stale value.
func (s *BalanceService) RecordSnapshotIfChanged(ctx context.Context, accountID uuid.UUID, balanceMinor int64, phoneNumber string, source string) (SnapshotResult, error) {
	s.locks.Lock(accountID)
	defer s.locks.Unlock(accountID)

	var lastMinor *int64
	last, err := s.queries.GetLatestSnapshot(ctx, accountID)
	switch {
	case err == sql.ErrNoRows:
		// first observation
	case err != nil:
		return SnapshotResult{}, fmt.Errorf("get latest snapshot: %w", err)
	default:
		lastMinor = &last.BalanceMinor
	}

	if !reconcile.HasChanged(lastMinor, balanceMinor) {
		return SnapshotResult{Changed: false, Snapshot: last, PreviousMinor: lastMinor}, nil
	}

	snap, err := s.queries.CreateBalanceSnapshot(ctx, db.CreateBalanceSnapshotParams{
		AccountID:           accountID,
		BalanceMinor:        balanceMinor,
		ObservedPhoneNumber: phoneNumber,
		Source:              source,
		CheckedAt:           time.Now().UTC(),
	})
	if err != nil {
		return SnapshotResult{}, fmt.Errorf("create snapshot: %w", err)
	}

	return SnapshotResult{Changed: true, Snapshot: snap, PreviousMinor: lastMinor}, nil
}

// GetLatestBalance returns the most recent snapshot, or nil when the account
// has never been observed. Absence is not an error.
func (s *BalanceService) GetLatestBalance(ctx context.Context, accountID uuid.UUID) (*db.BalanceSnapshot, error) {
	snap, err := s.queries.GetLatestSnapshot(ctx, accountID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get latest snapshot: %w", err)
	}
	return &snap, nil
}

type RecordTransactionParams struct {
	TransactionID string
	AccountID     uuid.UUID
	AmountMinor   int64
	FeeMinor      int64
	Direction     string
	Status        string
	Counterparty  string
	RawPayload    []byte
	EventTime     time.Time
}

// RecordTransaction inserts a ledger entry exactly once per transaction id.
// A duplicate call short-circuits to the stored row without error, since the
// webhook sender treats errors as a retry signal.
func (s *BalanceService) RecordTransaction(ctx context.Context, arg RecordTransactionParams) (db.FinancialTransaction, bool, error) {
	if s.seen != nil && s.seen.TransactionSeen(ctx, arg.TransactionID) {
		existing, err := s.queries.GetTransactionByExternalID(ctx, arg.TransactionID)
		if err == nil {
			s.logger.WithField("transaction_id", arg.TransactionID).Info("duplicate transaction skipped (cache)")
			return existing, false, nil
		}
		// Cache said seen but the durable row is missing; fall through to the
		// authoritative path.
	}

	existing, err := s.queries.GetTransactionByExternalID(ctx, arg.TransactionID)
	if err == nil {
		s.logger.WithField("transaction_id", arg.TransactionID).Info("duplicate transaction skipped")
		return existing, false, nil
	}
	if err != sql.ErrNoRows {
		return db.FinancialTransaction{}, false, fmt.Errorf("check transaction: %w", err)
	}

	status := arg.Status
	if status == "" {
		status = "completed"
	}

	var raw pqtype.NullRawMessage
	if len(arg.RawPayload) > 0 {
		raw = pqtype.NullRawMessage{RawMessage: arg.RawPayload, Valid: true}
	}

	eventTime := arg.EventTime
	if eventTime.IsZero() {
		eventTime = time.Now().UTC()
	}

	txn, err := s.queries.CreateFinancialTransaction(ctx, db.CreateFinancialTransactionParams{
		TransactionID: arg.TransactionID,
		AccountID:     arg.AccountID,
		AmountMinor:   arg.AmountMinor,
		FeeMinor:      arg.FeeMinor,
		Direction:     arg.Direction,
		Status:        status,
		Counterparty:  arg.Counterparty,
		RawPayload:    raw,
		EventTime:     eventTime,
	})
	if err != nil {
		// Two deliveries racing past the existence check resolve on the unique
		// index; the loser reads back the winner's row.
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == db.DuplicateEntry {
			existing, getErr := s.queries.GetTransactionByExternalID(ctx, arg.TransactionID)
			if getErr != nil {
				return db.FinancialTransaction{}, false, fmt.Errorf("fetch duplicate transaction: %w", getErr)
			}
			s.logger.WithField("transaction_id", arg.TransactionID).Info("duplicate transaction skipped (insert race)")
			return existing, false, nil
		}
		return db.FinancialTransaction{}, false, fmt.Errorf("create transaction: %w", err)
	}

	if s.seen != nil {
		if cacheErr := s.seen.MarkTransactionSeen(ctx, arg.TransactionID); cacheErr != nil {
			s.logger.WithField("transaction_id", arg.TransactionID).Warn("could not mark transaction in seen cache")
		}
	}

	return txn, true, nil
}
