// Package webhook turns inbound wallet-network push notifications into
// recorded transactions and live broadcast events.
package webhook

import (
	"context"
	"database/sql"
	"fmt"

	db "github.com/WalletPulse/WalletPulse-Backend/db/sqlc"
	"github.com/WalletPulse/WalletPulse-Backend/services/balance"
	"github.com/WalletPulse/WalletPulse-Backend/services/broadcast"
	"github.com/WalletPulse/WalletPulse-Backend/services/monitoring/logging"
	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

// Outcome of one webhook delivery. The HTTP layer maps everything except
// OutcomePersistFailed to 200 so the sender does not retry unroutable or
// already-recorded events.
type Outcome string

const (
	OutcomeHandshake     Outcome = "handshake"
	OutcomeRecorded      Outcome = "recorded"
	OutcomeDuplicate     Outcome = "duplicate"
	OutcomeIgnored       Outcome = "ignored"
	OutcomeDiscarded     Outcome = "discarded"
	OutcomePersistFailed Outcome = "persist_failed"
)

type IngestService struct {
	queries        db.Querier
	balanceService *balance.BalanceService
	hub            *broadcast.Hub
	logger         *logging.Logger
}

func NewIngestService(queries db.Querier, balanceService *balance.BalanceService, hub *broadcast.Hub, logger *logging.Logger) *IngestService {
	return &IngestService{
		queries:        queries,
		balanceService: balanceService,
		hub:            hub,
		logger:         logger,
	}
}

type IngestResult struct {
	Outcome     Outcome
	Transaction *db.FinancialTransaction
}

// Ingest processes one POST delivery for the network identified by prefix.
// mobileOverride comes from the query string and takes part in account
// resolution after the payload's own numbers.
func (s *IngestService) Ingest(ctx context.Context, prefix string, body []byte, mobileOverride string) (IngestResult, error) {
	evt, err := DecodePayload(body)
	if err != nil {
		s.logNotification(ctx, "webhook_bad_payload", "undecodable webhook payload", body, nil)
		return IngestResult{Outcome: OutcomeIgnored}, nil
	}
	if evt.Handshake {
		return IngestResult{Outcome: OutcomeHandshake}, nil
	}

	network, err := s.queries.GetNetworkByPrefix(ctx, prefix)
	if err == sql.ErrNoRows {
		s.logNotification(ctx, "webhook_unroutable", fmt.Sprintf("no network for prefix %q", prefix), evt.Raw, nil)
		return IngestResult{Outcome: OutcomeIgnored}, nil
	}
	if err != nil {
		return IngestResult{Outcome: OutcomePersistFailed}, fmt.Errorf("get network: %w", err)
	}

	// Receive-but-discard mode: the sender's retry logic is satisfied with a
	// 200 but nothing is written.
	if !network.WebhookEnabled {
		s.logNotification(ctx, "webhook_discarded", "webhook persistence disabled for network", evt.Raw, nil)
		return IngestResult{Outcome: OutcomeDiscarded}, nil
	}

	account, direction, err := s.resolveAccount(ctx, network, evt, mobileOverride)
	if err == ErrNoAccountMatch {
		s.logNotification(ctx, "webhook_unroutable", "no account matched webhook payload", evt.Raw, nil)
		return IngestResult{Outcome: OutcomeIgnored}, nil
	}
	if err != nil {
		return IngestResult{Outcome: OutcomePersistFailed}, fmt.Errorf("resolve account: %w", err)
	}

	amountMinor := evt.AmountMinor
	feeMinor := evt.FeeMinor
	if evt.IsFeeEvent() {
		// Business rule: a fee event's amount is the fee deduction itself.
		feeMinor = amountMinor
		direction = balance.DirectionOutgoing
	}

	transactionID, deterministic := balance.DeriveTransactionID(evt.TransactionID, evt.EventType, evt.IssuedAt, amountMinor)
	if !deterministic {
		s.logger.WithField("account_id", account.ID).Warn("webhook payload had no identifying field, using random transaction id")
	}

	counterparty := evt.SenderMobile
	if direction == balance.DirectionOutgoing {
		counterparty = evt.RecipientMobile
	}

	txn, created, err := s.balanceService.RecordTransaction(ctx, balance.RecordTransactionParams{
		TransactionID: transactionID,
		AccountID:     account.ID,
		AmountMinor:   amountMinor,
		FeeMinor:      feeMinor,
		Direction:     direction,
		Counterparty:  counterparty,
		RawPayload:    evt.Raw,
		EventTime:     evt.EventTime,
	})
	if err != nil {
		return IngestResult{Outcome: OutcomePersistFailed}, err
	}
	if !created {
		s.logNotification(ctx, "webhook_duplicate", fmt.Sprintf("duplicate delivery of %s", transactionID), evt.Raw, &account.ID)
		return IngestResult{Outcome: OutcomeDuplicate, Transaction: &txn}, nil
	}

	change := amountMinor
	if direction == balance.DirectionOutgoing {
		change = -amountMinor
	}

	// A transaction event does not necessarily carry the new total; only the
	// delta and transaction metadata are guaranteed accurate.
	s.hub.Publish(account.ID, broadcast.Event{
		Type:        broadcast.EventTypeTransaction,
		ChangeMinor: change,
		Transaction: &broadcast.TransactionInfo{
			TransactionID: txn.TransactionID,
			Direction:     txn.Direction,
			AmountMinor:   txn.AmountMinor,
			FeeMinor:      txn.FeeMinor,
			Counterparty:  txn.Counterparty,
		},
	})

	return IngestResult{Outcome: OutcomeRecorded, Transaction: &txn}, nil
}

// resolveAccount tries, in order: recipient mobile (incoming), sender mobile
// (outgoing), generic mobile or query override, and finally the network's
// sole account. With two or more accounts and no identifying number the event
// is ambiguous and stays unrouted.
func (s *IngestService) resolveAccount(ctx context.Context, network db.Network, evt *Event, mobileOverride string) (db.WalletAccount, string, error) {
	if evt.RecipientMobile != "" {
		if account, ok, err := s.accountByPhone(ctx, network.ID, evt.RecipientMobile); err != nil {
			return db.WalletAccount{}, "", err
		} else if ok {
			return account, balance.DirectionIncoming, nil
		}
	}

	if evt.SenderMobile != "" {
		if account, ok, err := s.accountByPhone(ctx, network.ID, evt.SenderMobile); err != nil {
			return db.WalletAccount{}, "", err
		} else if ok {
			return account, balance.DirectionOutgoing, nil
		}
	}

	for _, mobile := range []string{evt.GenericMobile, mobileOverride} {
		if mobile == "" {
			continue
		}
		if account, ok, err := s.accountByPhone(ctx, network.ID, mobile); err != nil {
			return db.WalletAccount{}, "", err
		} else if ok {
			return account, balance.DirectionIncoming, nil
		}
	}

	accounts, err := s.queries.ListAccountsByNetwork(ctx, network.ID)
	if err != nil {
		return db.WalletAccount{}, "", err
	}
	if len(accounts) == 1 {
		return accounts[0], balance.DirectionIncoming, nil
	}

	return db.WalletAccount{}, "", ErrNoAccountMatch
}

func (s *IngestService) accountByPhone(ctx context.Context, networkID uuid.UUID, phone string) (db.WalletAccount, bool, error) {
	accounts, err := s.queries.ListAccountsByPhone(ctx, db.ListAccountsByPhoneParams{
		NetworkID:   networkID,
		PhoneNumber: phone,
	})
	if err != nil {
		return db.WalletAccount{}, false, err
	}
	if len(accounts) == 0 {
		return db.WalletAccount{}, false, nil
	}
	return accounts[0], true, nil
}

func (s *IngestService) logNotification(ctx context.Context, kind string, message string, payload []byte, accountID *uuid.UUID) {
	var raw pqtype.NullRawMessage
	if len(payload) > 0 {
		raw = pqtype.NullRawMessage{RawMessage: payload, Valid: true}
	}
	var account uuid.NullUUID
	if accountID != nil {
		account = uuid.NullUUID{UUID: *accountID, Valid: true}
	}

	if _, err := s.queries.CreateNotificationLog(ctx, db.CreateNotificationLogParams{
		Type:      kind,
		Message:   message,
		Payload:   raw,
		AccountID: account,
	}); err != nil {
		// Diagnostic trail only; never fail the delivery over it.
		s.logger.WithField("type", kind).Warn("could not write notification log")
	}
}
