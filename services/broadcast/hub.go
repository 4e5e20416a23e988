// Package broadcast fans balance-change events out to live viewers of an
// account. The hub is an injected instance, not a package singleton, so tests
// can run isolated hubs side by side.
package broadcast

import (
	"sync"

	"github.com/WalletPulse/WalletPulse-Backend/services/monitoring/logging"
	"github.com/google/uuid"
)

// subscriberBuffer bounds how far a slow viewer may fall behind before it is
// dropped instead of blocking the publisher.
const subscriberBuffer = 16

type Subscriber struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	Events    chan Event
}

type Hub struct {
	mu          sync.RWMutex
	subscribers map[uuid.UUID]map[uuid.UUID]*Subscriber
	logger      *logging.Logger
}

func NewHub(logger *logging.Logger) *Hub {
	return &Hub{
		subscribers: make(map[uuid.UUID]map[uuid.UUID]*Subscriber),
		logger:      logger,
	}
}

// Subscribe registers a new viewer for the account and queues the supplied
// initial event as the first frame the viewer will read.
func (h *Hub) Subscribe(accountID uuid.UUID, initial Event) *Subscriber {
	sub := &Subscriber{
		ID:        uuid.New(),
		AccountID: accountID,
		Events:    make(chan Event, subscriberBuffer),
	}
	sub.Events <- initial

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subscribers[accountID] == nil {
		h.subscribers[accountID] = make(map[uuid.UUID]*Subscriber)
	}
	h.subscribers[accountID][sub.ID] = sub

	return sub
}

// Unsubscribe removes the subscriber and closes its channel. Safe to call
// more than once.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	if sub == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	accountSubs, ok := h.subscribers[sub.AccountID]
	if !ok {
		return
	}
	if _, ok := accountSubs[sub.ID]; !ok {
		return
	}

	delete(accountSubs, sub.ID)
	if len(accountSubs) == 0 {
		delete(h.subscribers, sub.AccountID)
	}
	close(sub.Events)
}

// Publish delivers the event to every subscriber of the account. Delivery is
// best effort: a subscriber whose buffer is full is dropped, the rest still
// receive the event, and the publisher never sees an error.
func (h *Hub) Publish(accountID uuid.UUID, event Event) {
	// Sends happen under the read lock: Unsubscribe closes channels under the
	// write lock, so a send can never race a close.
	h.mu.RLock()
	var stalled []*Subscriber
	for _, sub := range h.subscribers[accountID] {
		select {
		case sub.Events <- event:
		default:
			stalled = append(stalled, sub)
		}
	}
	h.mu.RUnlock()

	for _, sub := range stalled {
		h.logger.WithField("account_id", accountID).Warn("dropping stalled balance subscriber")
		h.Unsubscribe(sub)
	}
}

// SubscriberCount reports the current number of viewers for an account.
func (h *Hub) SubscriberCount(accountID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[accountID])
}
