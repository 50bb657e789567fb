// Package emailcheck calls the external email verification service. The
// upstream expects request payloads sealed with a shared client secret and
// responds with a validity verdict. The client applies no retry policy:
// callers decide what a failed check means for their flow.
package emailcheck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Sreemathipalanisamy/gst-service-register/pkg/logger"
	"github.com/Sreemathipalanisamy/gst-service-register/pkg/util"
)

const verifyEndpoint = "/service/verify_email"

// Client represents an email verification API client
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a new email verification client with the given configuration
func NewClient(config Config, timeout time.Duration) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// DevMode reports whether the client auto-approves without a network call.
func (c *Client) DevMode() bool {
	return c.config.BaseURL == ""
}

// VerifyEmail checks an address against the verification service.
func (c *Client) VerifyEmail(ctx context.Context, email string) (*VerificationResult, error) {
	if c.DevMode() {
		logger.Debug("Email verification in dev mode, auto-approving", map[string]interface{}{
			"email": email,
		})
		return &VerificationResult{
			Success: true,
			Valid:   true,
			Message: "dev mode: auto-approved",
		}, nil
	}

	body, err := c.doRequest(ctx, verifyEndpoint, verifyEmailRequest{Email: email})
	if err != nil {
		return nil, err
	}

	var apiResp verifyEmailAPIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal response: %v", ErrServiceFailure, err)
	}

	return &VerificationResult{
		Success: true,
		Valid:   apiResp.Valid,
		Message: apiResp.Message,
	}, nil
}

// doRequest seals the payload and performs an HTTP request to the verification API
func (c *Client) doRequest(ctx context.Context, endpoint string, payload interface{}) ([]byte, error) {
	sealed, err := util.SealPayload(payload, c.config.ClientSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to seal request payload: %w", err)
	}

	reqBody, err := json.Marshal(sealedRequest{EncryptedData: sealed})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	url := c.config.BaseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.config.APIKey)
	req.Header.Set("X-CLIENT-SECRET", c.config.ClientSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		logger.Warn("Email verification API returned an error", map[string]interface{}{
			"status_code": resp.StatusCode,
			"endpoint":    endpoint,
		})
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return nil, fmt.Errorf("%w: status %d", ErrUnauthorized, resp.StatusCode)
		case http.StatusBadRequest:
			return nil, fmt.Errorf("%w: status %d", ErrInvalidRequest, resp.StatusCode)
		default:
			return nil, fmt.Errorf("%w: status %d, body: %s", ErrServiceFailure, resp.StatusCode, string(body))
		}
	}

	return body, nil
}
