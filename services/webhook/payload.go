package webhook

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Event is the normalized form of an inbound webhook payload, whichever wire
// shape it arrived in.
type Event struct {
	TransactionID   string
	AmountMinor     int64
	FeeMinor        int64
	RecipientMobile string
	SenderMobile    string
	GenericMobile   string
	EventType       string
	TransactionType string
	IssuedAt        int64
	EventTime       time.Time
	Handshake       bool
	Raw             json.RawMessage
}

// IsFeeEvent reports whether the payload describes a fee deduction rather
// than a transfer. For these events the amount field is the fee.
func (e *Event) IsFeeEvent() bool {
	return strings.HasPrefix(strings.ToUpper(e.EventType), "FEE")
}

// envelopeMessage is the compact signed-token delivery form: the payload of
// interest is the middle segment of a three-part dot-separated token.
type envelopeMessage struct {
	Message string `json:"message"`
	Server  string `json:"server"`
}

// DecodePayload normalizes a raw webhook body. The body is either a token
// envelope ({"message": "<b64>.<b64>.<b64>"}) or a direct JSON object.
// Signature verification of the inbound token is disabled by design; only the
// claims segment is decoded.
func DecodePayload(body []byte) (*Event, error) {
	var env envelopeMessage
	if err := json.Unmarshal(body, &env); err == nil {
		if env.Server == "handshake" {
			return &Event{Handshake: true, Raw: body}, nil
		}
		if strings.Count(env.Message, ".") == 2 {
			return decodeTokenEnvelope(env.Message)
		}
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, ErrBadPayload
	}
	return eventFromFields(fields, body), nil
}

func decodeTokenEnvelope(token string) (*Event, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, ErrBadPayload
	}

	raw, err := json.Marshal(map[string]interface{}(claims))
	if err != nil {
		return nil, ErrBadPayload
	}
	return eventFromFields(claims, raw), nil
}

// Field extraction is an ordered list of name variants per value; the first
// variant present wins. Keeps the "multiple known shapes" policy in one place.
var (
	transactionIDKeys = []string{"transaction_id", "ref_id"}
	amountKeys        = []string{"amount", "amount_net"}
	feeKeys           = []string{"fee", "transaction_fee"}
	recipientKeys     = []string{"recipient_mobile"}
	senderKeys        = []string{"sender_mobile"}
	genericMobileKeys = []string{"mobile_no"}
	eventTypeKeys     = []string{"event_type"}
	txnTypeKeys       = []string{"transaction_type"}
	eventDateKeys     = []string{"transaction_date"}
	issuedAtKeys      = []string{"iat"}
)

func eventFromFields(fields map[string]interface{}, raw json.RawMessage) *Event {
	evt := &Event{
		TransactionID:   firstString(fields, transactionIDKeys),
		AmountMinor:     firstInt64(fields, amountKeys),
		FeeMinor:        firstInt64(fields, feeKeys),
		RecipientMobile: firstString(fields, recipientKeys),
		SenderMobile:    firstString(fields, senderKeys),
		GenericMobile:   firstString(fields, genericMobileKeys),
		EventType:       firstString(fields, eventTypeKeys),
		TransactionType: firstString(fields, txnTypeKeys),
		IssuedAt:        firstInt64(fields, issuedAtKeys),
		EventTime:       firstTime(fields, eventDateKeys),
		Raw:             raw,
	}
	return evt
}

func firstString(fields map[string]interface{}, keys []string) string {
	for _, key := range keys {
		v, ok := fields[key]
		if !ok {
			continue
		}
		switch s := v.(type) {
		case string:
			if s != "" {
				return s
			}
		case json.Number:
			return s.String()
		case float64:
			return strconv.FormatInt(int64(s), 10)
		}
	}
	return ""
}

func firstInt64(fields map[string]interface{}, keys []string) int64 {
	for _, key := range keys {
		v, ok := fields[key]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			return int64(n)
		case json.Number:
			if i, err := n.Int64(); err == nil {
				return i
			}
		case string:
			if i, err := strconv.ParseInt(n, 10, 64); err == nil {
				return i
			}
		}
	}
	return 0
}

func firstTime(fields map[string]interface{}, keys []string) time.Time {
	for _, key := range keys {
		v, ok := fields[key]
		if !ok {
			continue
		}
		switch d := v.(type) {
		case string:
			if t, err := time.Parse(time.RFC3339, d); err == nil {
				return t
			}
			if epoch, err := strconv.ParseInt(d, 10, 64); err == nil {
				return time.Unix(epoch, 0).UTC()
			}
		case float64:
			return time.Unix(int64(d), 0).UTC()
		}
	}
	return time.Time{}
}
