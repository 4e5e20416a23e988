// Package wallet is the outbound client for the external wallet network's
// per-account balance endpoint.
package wallet

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/WalletPulse/WalletPulse-Backend/providers"
	"github.com/WalletPulse/WalletPulse-Backend/services/monitoring/logging"
)

var (
	// ErrUnreachable marks transport-level failures (DNS, refused, timeout).
	ErrUnreachable = fmt.Errorf("wallet endpoint unreachable")
)

// StatusError marks a reachable endpoint that rejected the request.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("wallet endpoint returned status %d", e.StatusCode)
}

type WalletProvider struct {
	providers.BaseProvider
}

func NewWalletProvider(timeout time.Duration, logger *logging.Logger) *WalletProvider {
	return &WalletProvider{
		BaseProvider: providers.NewBaseProvider(providers.WalletNetwork, timeout, logger),
	}
}

// FetchBalance pulls the current balance for one account. The endpoint URL and
// bearer token are per-account credentials, not provider configuration.
func (p *WalletProvider) FetchBalance(ctx context.Context, endpointURL, bearerToken string) (*Observation, error) {
	resp, err := p.MakeRequest(ctx, http.MethodGet, endpointURL, bearerToken, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	obs, err := ParseBalanceResponse(body)
	if err != nil {
		return nil, fmt.Errorf("error decoding response body: %w", err)
	}

	return obs, nil
}
