package broadcast

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventTypeInitial     = "initial"
	EventTypeUpdate      = "update"
	EventTypeTransaction = "transaction"
)

// TransactionInfo is attached to transaction events; balance totals may be
// unknown for a webhook-driven event, only the delta and metadata are
// guaranteed accurate.
type TransactionInfo struct {
	TransactionID string `json:"transaction_id"`
	Direction     string `json:"direction"`
	AmountMinor   int64  `json:"amount_minor"`
	FeeMinor      int64  `json:"fee_minor"`
	Counterparty  string `json:"counterparty,omitempty"`
}

type Event struct {
	Type         string           `json:"type"`
	Balance      decimal.Decimal  `json:"balance"`
	BalanceMinor int64            `json:"balance_minor_units"`
	ChangeMinor  int64            `json:"change_minor_units"`
	CheckedAt    *time.Time       `json:"checked_at,omitempty"`
	NoData       bool             `json:"no_data,omitempty"`
	Transaction  *TransactionInfo `json:"transaction,omitempty"`
}

// MajorUnits converts a minor-unit amount to its major-unit representation
// (1/100 subdivision, e.g. satang to baht).
func MajorUnits(minor int64) decimal.Decimal {
	return decimal.NewFromInt(minor).Div(decimal.NewFromInt(100))
}
