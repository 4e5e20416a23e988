package balance

import (
	"context"
	"fmt"
	"sort"
	"time"

	db "github.com/WalletPulse/WalletPulse-Backend/db/sqlc"
	"github.com/google/uuid"
)

const (
	HistoryKindTransaction = "transaction"
	HistoryKindSnapshot    = "snapshot"
)

// HistoryItem is the tagged union of the two feed variants. Exactly one of
// Transaction or Snapshot is set, per Kind.
type HistoryItem struct {
	Kind        string                   `json:"kind"`
	Timestamp   time.Time                `json:"timestamp"`
	Transaction *db.FinancialTransaction `json:"transaction,omitempty"`
	Snapshot    *db.BalanceSnapshot      `json:"snapshot,omitempty"`
}

// orderingKey breaks timestamp ties deterministically: transactions sort
// before snapshots, then by row id, so one page request is internally
// consistent.
func (h HistoryItem) orderingKey() string {
	kindRank := "1"
	id := ""
	if h.Kind == HistoryKindTransaction {
		kindRank = "0"
		id = h.Transaction.ID.String()
	} else {
		id = h.Snapshot.ID.String()
	}
	return fmt.Sprintf("%020d:%s:%s", h.Timestamp.UnixNano(), kindRank, id)
}

type HistoryPage struct {
	Items      []HistoryItem `json:"items"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalCount int64         `json:"total_count"`
}

// GetHistory merges transactions and snapshots into one chronologically
// descending page, with total-count pagination over the combined feed.
func (s *BalanceService) GetHistory(ctx context.Context, accountID uuid.UUID, fromTime, toTime *time.Time, page, pageSize int) (HistoryPage, error) {
	if page < 1 || pageSize < 1 {
		return HistoryPage{}, ErrInvalidPage
	}

	from := time.Unix(0, 0).UTC()
	if fromTime != nil {
		from = *fromTime
	}
	to := time.Now().UTC()
	if toTime != nil {
		to = *toTime
	}

	txnCount, err := s.queries.CountTransactionsByAccountInRange(ctx, db.CountTransactionsByAccountInRangeParams{
		AccountID: accountID,
		FromTime:  from,
		ToTime:    to,
	})
	if err != nil {
		return HistoryPage{}, fmt.Errorf("count transactions: %w", err)
	}

	snapCount, err := s.queries.CountSnapshotsByAccountInRange(ctx, db.CountSnapshotsByAccountInRangeParams{
		AccountID: accountID,
		FromTime:  from,
		ToTime:    to,
	})
	if err != nil {
		return HistoryPage{}, fmt.Errorf("count snapshots: %w", err)
	}

	// Fetch enough rows from each side to fill every page up to the requested
	// one; the merge decides which rows land in the window.
	rowLimit := int32(page * pageSize)

	txns, err := s.queries.ListTransactionsByAccountInRange(ctx, db.ListTransactionsByAccountInRangeParams{
		AccountID: accountID,
		FromTime:  from,
		ToTime:    to,
		RowLimit:  rowLimit,
	})
	if err != nil {
		return HistoryPage{}, fmt.Errorf("list transactions: %w", err)
	}

	snaps, err := s.queries.ListSnapshotsByAccountInRange(ctx, db.ListSnapshotsByAccountInRangeParams{
		AccountID: accountID,
		FromTime:  from,
		ToTime:    to,
		RowLimit:  rowLimit,
	})
	if err != nil {
		return HistoryPage{}, fmt.Errorf("list snapshots: %w", err)
	}

	merged := make([]HistoryItem, 0, len(txns)+len(snaps))
	for i := range txns {
		merged = append(merged, HistoryItem{
			Kind:        HistoryKindTransaction,
			Timestamp:   txns[i].EventTime,
			Transaction: &txns[i],
		})
	}
	for i := range snaps {
		merged = append(merged, HistoryItem{
			Kind:      HistoryKindSnapshot,
			Timestamp: snaps[i].CheckedAt,
			Snapshot:  &snaps[i],
		})
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].orderingKey() > merged[j].orderingKey()
	})

	start := (page - 1) * pageSize
	if start > len(merged) {
		start = len(merged)
	}
	end := start + pageSize
	if end > len(merged) {
		end = len(merged)
	}

	return HistoryPage{
		Items:      merged[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalCount: txnCount + snapCount,
	}, nil
}
