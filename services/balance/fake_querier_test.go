package balance

import (
	"context"
	"database/sql"
	"sync"
	"time"

	db "github.com/WalletPulse/WalletPulse-Backend/db/sqlc"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// fakeQuerier is an in-memory stand-in for the generated sqlc queries,
// including the unique index on transaction_id.
type fakeQuerier struct {
	mu           sync.Mutex
	networks     []db.Network
	accounts     []db.WalletAccount
	snapshots    []db.BalanceSnapshot
	transactions []db.FinancialTransaction
	logs         []db.NotificationLog

	failCreateSnapshot bool
}

var _ db.Querier = (*fakeQuerier)(nil)

func newFakeQuerier() *fakeQuerier {
	return &fakeQuerier{}
}

func (f *fakeQuerier) addNetwork(n db.Network) db.Network {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.networks = append(f.networks, n)
	return n
}

func (f *fakeQuerier) addAccount(a db.WalletAccount) db.WalletAccount {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts = append(f.accounts, a)
	return a
}

func (f *fakeQuerier) GetNetworkByPrefix(ctx context.Context, prefix string) (db.Network, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.networks {
		if n.Prefix == prefix {
			return n, nil
		}
	}
	return db.Network{}, sql.ErrNoRows
}

func (f *fakeQuerier) GetWalletAccount(ctx context.Context, id uuid.UUID) (db.WalletAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return db.WalletAccount{}, sql.ErrNoRows
}

func (f *fakeQuerier) ListAccountsByNetwork(ctx context.Context, networkID uuid.UUID) ([]db.WalletAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []db.WalletAccount{}
	for _, a := range f.accounts {
		if a.NetworkID == networkID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeQuerier) ListAccountsByPhone(ctx context.Context, arg db.ListAccountsByPhoneParams) ([]db.WalletAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []db.WalletAccount{}
	for _, a := range f.accounts {
		if a.NetworkID == arg.NetworkID && a.PhoneNumber == arg.PhoneNumber {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeQuerier) ListActiveAccounts(ctx context.Context) ([]db.ListActiveAccountsRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []db.ListActiveAccountsRow{}
	for _, a := range f.accounts {
		if !a.IsActive {
			continue
		}
		row := db.ListActiveAccountsRow{
			ID:          a.ID,
			NetworkID:   a.NetworkID,
			Name:        a.Name,
			EndpointUrl: a.EndpointUrl,
			BearerToken: a.BearerToken,
			PhoneNumber: a.PhoneNumber,
			IsActive:    a.IsActive,
		}
		for _, n := range f.networks {
			if n.ID == a.NetworkID {
				row.PollIntervalMs = n.PollIntervalMs
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func (f *fakeQuerier) CreateBalanceSnapshot(ctx context.Context, arg db.CreateBalanceSnapshotParams) (db.BalanceSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreateSnapshot {
		return db.BalanceSnapshot{}, sql.ErrConnDone
	}
	snap := db.BalanceSnapshot{
		ID:                  uuid.New(),
		AccountID:           arg.AccountID,
		BalanceMinor:        arg.BalanceMinor,
		ObservedPhoneNumber: arg.ObservedPhoneNumber,
		Source:              arg.Source,
		WalletUpdatedAt:     arg.WalletUpdatedAt,
		CheckedAt:           arg.CheckedAt,
	}
	f.snapshots = append(f.snapshots, snap)
	return snap, nil
}

func (f *fakeQuerier) GetLatestSnapshot(ctx context.Context, accountID uuid.UUID) (db.BalanceSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *db.BalanceSnapshot
	for i := range f.snapshots {
		s := &f.snapshots[i]
		if s.AccountID != accountID {
			continue
		}
		if latest == nil || s.CheckedAt.After(latest.CheckedAt) {
			latest = s
		}
	}
	if latest == nil {
		return db.BalanceSnapshot{}, sql.ErrNoRows
	}
	return *latest, nil
}

func (f *fakeQuerier) ListLatestSnapshots(ctx context.Context) ([]db.BalanceSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	latest := map[uuid.UUID]db.BalanceSnapshot{}
	for _, s := range f.snapshots {
		cur, ok := latest[s.AccountID]
		if !ok || s.CheckedAt.After(cur.CheckedAt) {
			latest[s.AccountID] = s
		}
	}
	out := []db.BalanceSnapshot{}
	for _, s := range latest {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeQuerier) ListSnapshotsByAccountInRange(ctx context.Context, arg db.ListSnapshotsByAccountInRangeParams) ([]db.BalanceSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []db.BalanceSnapshot{}
	for _, s := range f.snapshots {
		if s.AccountID == arg.AccountID && !s.CheckedAt.Before(arg.FromTime) && !s.CheckedAt.After(arg.ToTime) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeQuerier) CountSnapshotsByAccountInRange(ctx context.Context, arg db.CountSnapshotsByAccountInRangeParams) (int64, error) {
	items, _ := f.ListSnapshotsByAccountInRange(ctx, db.ListSnapshotsByAccountInRangeParams{
		AccountID: arg.AccountID, FromTime: arg.FromTime, ToTime: arg.ToTime,
	})
	return int64(len(items)), nil
}

func (f *fakeQuerier) CreateFinancialTransaction(ctx context.Context, arg db.CreateFinancialTransactionParams) (db.FinancialTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.transactions {
		if t.TransactionID == arg.TransactionID {
			return db.FinancialTransaction{}, &pq.Error{Code: db.DuplicateEntry}
		}
	}
	txn := db.FinancialTransaction{
		ID:            uuid.New(),
		TransactionID: arg.TransactionID,
		AccountID:     arg.AccountID,
		AmountMinor:   arg.AmountMinor,
		FeeMinor:      arg.FeeMinor,
		Direction:     arg.Direction,
		Status:        arg.Status,
		Counterparty:  arg.Counterparty,
		RawPayload:    arg.RawPayload,
		EventTime:     arg.EventTime,
		CreatedAt:     time.Now().UTC(),
	}
	f.transactions = append(f.transactions, txn)
	return txn, nil
}

func (f *fakeQuerier) GetTransactionByExternalID(ctx context.Context, transactionID string) (db.FinancialTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.transactions {
		if t.TransactionID == transactionID {
			return t, nil
		}
	}
	return db.FinancialTransaction{}, sql.ErrNoRows
}

func (f *fakeQuerier) ListTransactionsByAccountInRange(ctx context.Context, arg db.ListTransactionsByAccountInRangeParams) ([]db.FinancialTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []db.FinancialTransaction{}
	for _, t := range f.transactions {
		if t.AccountID == arg.AccountID && !t.EventTime.Before(arg.FromTime) && !t.EventTime.After(arg.ToTime) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeQuerier) CountTransactionsByAccountInRange(ctx context.Context, arg db.CountTransactionsByAccountInRangeParams) (int64, error) {
	items, _ := f.ListTransactionsByAccountInRange(ctx, db.ListTransactionsByAccountInRangeParams{
		AccountID: arg.AccountID, FromTime: arg.FromTime, ToTime: arg.ToTime,
	})
	return int64(len(items)), nil
}

func (f *fakeQuerier) CreateNotificationLog(ctx context.Context, arg db.CreateNotificationLogParams) (db.NotificationLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry := db.NotificationLog{
		ID:        uuid.New(),
		Type:      arg.Type,
		Message:   arg.Message,
		Payload:   arg.Payload,
		AccountID: arg.AccountID,
		CreatedAt: time.Now().UTC(),
	}
	f.logs = append(f.logs, entry)
	return entry, nil
}
