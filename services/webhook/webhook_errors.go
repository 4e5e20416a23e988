package webhook

import "fmt"

var (
	ErrNetworkNotFound = fmt.Errorf("no network for webhook prefix")
	ErrNoAccountMatch  = fmt.Errorf("no account matched webhook payload")
	ErrBadPayload      = fmt.Errorf("webhook payload could not be decoded")
)
