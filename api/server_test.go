package api

import (
	"context"
	"database/sql"
	"sync"
	"time"

	db "github.com/WalletPulse/WalletPulse-Backend/db/sqlc"
	"github.com/WalletPulse/WalletPulse-Backend/providers/wallet"
	"github.com/WalletPulse/WalletPulse-Backend/services/balance"
	"github.com/WalletPulse/WalletPulse-Backend/services/broadcast"
	"github.com/WalletPulse/WalletPulse-Backend/services/monitoring/logging"
	"github.com/WalletPulse/WalletPulse-Backend/services/poller"
	"github.com/WalletPulse/WalletPulse-Backend/services/reconcile"
	"github.com/WalletPulse/WalletPulse-Backend/services/webhook"
	"github.com/WalletPulse/WalletPulse-Backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// newTestServer wires a Server around in-memory fakes and registers the same
// routes Start does, minus the listener and the poll loop.
func newTestServer(q db.Querier, fetcher poller.Fetcher) *Server {
	gin.SetMode(gin.TestMode)

	logger := logging.NewTestLogger()
	hub := broadcast.NewHub(logger)
	balanceService := balance.NewBalanceService(q, reconcile.NewAccountLock(), nil, logger)

	s := &Server{
		router:         gin.New(),
		queries:        q,
		config:         &utils.Config{},
		logger:         logger,
		hub:            hub,
		balanceService: balanceService,
		ingestService:  webhook.NewIngestService(q, balanceService, hub, logger),
		poller: poller.NewPoller(q, balanceService, hub, fetcher, logger, poller.Options{
			FetchTimeout: time.Second,
		}),
	}

	Accounts{}.router(s)
	Webhook{}.router(s)

	return s
}

// fakeQuerier implements the queries the handlers reach; anything else panics
// via the embedded nil interface.
type fakeQuerier struct {
	db.Querier
	mu           sync.Mutex
	networks     []db.Network
	accounts     []db.WalletAccount
	snapshots    []db.BalanceSnapshot
	transactions []db.FinancialTransaction
	logs         []db.NotificationLog
}

func (f *fakeQuerier) addNetwork(prefix string, webhookEnabled bool) db.Network {
	n := db.Network{ID: uuid.New(), Name: prefix, Prefix: prefix, WebhookEnabled: webhookEnabled, CreatedAt: time.Now()}
	f.networks = append(f.networks, n)
	return n
}

func (f *fakeQuerier) addAccount(networkID uuid.UUID, phone string) db.WalletAccount {
	a := db.WalletAccount{ID: uuid.New(), NetworkID: networkID, PhoneNumber: phone, EndpointUrl: "wallet-" + phone, IsActive: true}
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

func (f *fakeQuerier) CreateBalanceSnapshot(ctx context.Context, arg db.CreateBalanceSnapshotParams) (db.BalanceSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap := db.BalanceSnapshot{
		ID:                  uuid.New(),
		AccountID:           arg.AccountID,
		BalanceMinor:        arg.BalanceMinor,
		ObservedPhoneNumber: arg.ObservedPhoneNumber,
		Source:              arg.Source,
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
		if s.AccountID == accountID && (latest == nil || s.CheckedAt.After(latest.CheckedAt)) {
			latest = s
		}
	}
	if latest == nil {
		return db.BalanceSnapshot{}, sql.ErrNoRows
	}
	return *latest, nil
}

func (f *fakeQuerier) ListSnapshotsByAccountInRange(ctx context.Context, arg db.ListSnapshotsByAccountInRangeParams) ([]db.BalanceSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []db.BalanceSnapshot{}
	for _, s := range f.snapshots {
		if s.AccountID == arg.AccountID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeQuerier) CountSnapshotsByAccountInRange(ctx context.Context, arg db.CountSnapshotsByAccountInRangeParams) (int64, error) {
	rows, _ := f.ListSnapshotsByAccountInRange(ctx, db.ListSnapshotsByAccountInRangeParams{AccountID: arg.AccountID})
	return int64(len(rows)), nil
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
		if t.AccountID == arg.AccountID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeQuerier) CountTransactionsByAccountInRange(ctx context.Context, arg db.CountTransactionsByAccountInRangeParams) (int64, error) {
	rows, _ := f.ListTransactionsByAccountInRange(ctx, db.ListTransactionsByAccountInRangeParams{AccountID: arg.AccountID})
	return int64(len(rows)), nil
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

// fakeFetcher maps endpoint URL to a canned balance or error.
type fakeFetcher struct {
	balances map[string]int64
	errs     map[string]error
}

func (f *fakeFetcher) FetchBalance(ctx context.Context, endpointURL, bearerToken string) (*wallet.Observation, error) {
	if err, ok := f.errs[endpointURL]; ok {
		return nil, err
	}
	return &wallet.Observation{BalanceMinor: f.balances[endpointURL], MobileNumber: "0812345678"}, nil
}
