// Package reconcile holds the pure decision logic shared by the poll worker,
// the webhook ingestor and the manual check path, so all three apply the same
// change policy to an observed balance.
package reconcile

// HasChanged reports whether an observed balance differs from the last known
// one. A nil last-known value means the account has never been observed, which
// always counts as a change so the first observation is recorded.
func HasChanged(lastKnownMinor *int64, observedMinor int64) bool {
	if lastKnownMinor == nil {
		return true
	}
	return *lastKnownMinor != observedMinor
}

// Delta returns the signed difference between the observed balance and the
// last known one, in minor units. With no prior value the whole observed
// balance is the delta.
func Delta(lastKnownMinor *int64, observedMinor int64) int64 {
	if lastKnownMinor == nil {
		return observedMinor
	}
	return observedMinor - *lastKnownMinor
}
