package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/WalletPulse/WalletPulse-Backend/services/monitoring/logging"
)

const (
	WalletNetwork = "WALLET_NETWORK"
)

// BaseProvider contains common fields and methods
type BaseProvider struct {
	Name   string
	Client *http.Client
	Logger *logging.Logger
}

func NewBaseProvider(name string, timeout time.Duration, logger *logging.Logger) BaseProvider {
	return BaseProvider{
		Name: name,
		Client: &http.Client{
			Timeout: timeout,
		},
		Logger: logger,
	}
}

// Request Processing
func (p *BaseProvider) MakeRequest(ctx context.Context, method, url, bearerToken string, body interface{}, extraHeaders map[string]string) (*http.Response, error) {

	var req *http.Request
	var err error

	if p.Logger != nil {
		p.Logger.WithFields(map[string]interface{}{
			"provider": p.Name,
			"method":   method,
			"url":      url,
		}).Debug("External Request")
	}

	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		req, err = http.NewRequestWithContext(ctx, method, url, bytes.NewBuffer(jsonBody))
		if err != nil {
			return nil, err
		}
	} else {
		req, err = http.NewRequestWithContext(ctx, method, url, nil)
	}

	if err != nil {
		return nil, err
	}

	// Set headers
	req.Header.Set("Content-Type", "application/json")
	if bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+bearerToken)
	}
	// Allows for overwriting pre-set keys
	for k, v := range extraHeaders {
		req.Header.Set(k, v)
	}

	// Make the request
	return p.Client.Do(req)
}
