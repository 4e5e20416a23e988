package balance

import (
	"fmt"

	"github.com/google/uuid"
)

// DeriveTransactionID produces an id for payloads that carry none, observed
// for fee events. The derivation is deterministic over event type, issue time
// and amount so a retried delivery of the same logical event collides while
// distinct fee events do not.
//
// With no usable field at all the fallback is a random id, which downgrades
// that payload shape from exactly-once to at-least-once. Known gap: the
// upstream contract for such payloads is unclear, so this is flagged rather
// than papered over.
func DeriveTransactionID(externalID string, eventType string, issuedAt int64, amountMinor int64) (string, bool) {
	if externalID != "" {
		return externalID, true
	}
	if eventType != "" && issuedAt != 0 {
		return fmt.Sprintf("evt:%s:%d:%d", eventType, issuedAt, amountMinor), true
	}
	return fmt.Sprintf("rnd:%s", uuid.NewString()), false
}
