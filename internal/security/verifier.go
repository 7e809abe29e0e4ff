package security

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/resibilis/backend-resibilis/internal/resilience"
)

// ErrVerifierUnavailable signals the downstream verifier could not answer.
// Callers treat it as a pass so registration never depends on a third party.
var ErrVerifierUnavailable = errors.New("security: email verifier unavailable")

// RemoteVerifier asks an external reputation service whether an address is
// deliverable. It sits behind a circuit breaker so a slow or failing vendor
// cannot stall registration.
type RemoteVerifier struct {
	BaseURL string
	APIKey  string
	Client  resilience.HTTPClient
}

// NewRemoteVerifier builds a verifier with retry and breaker defaults. The
// transport should already carry otelhttp instrumentation.
func NewRemoteVerifier(baseURL, apiKey string, transport http.RoundTripper) *RemoteVerifier {
	return &RemoteVerifier{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client: resilience.HTTPClient{
			Client:      &http.Client{Transport: transport},
			Breaker:     resilience.NewBreaker(5, 0.5, 30*time.Second).WithTarget("email_verifier"),
			MaxAttempts: 2,
			BaseBackoff: 200 * time.Millisecond,
			Jitter:      0.2,
			Timeout:     2 * time.Second,
		},
	}
}

// Deliverable reports whether the vendor considers the address deliverable.
func (v *RemoteVerifier) Deliverable(ctx context.Context, email string) (bool, error) {
	if v == nil || v.BaseURL == "" {
		return true, nil
	}
	endpoint := v.BaseURL + "/v1/verify?email=" + url.QueryEscape(email)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, err
	}
	if v.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+v.APIKey)
	}

	resp, err := v.Client.Do(ctx, req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrVerifierUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("%w: status %d", ErrVerifierUnavailable, resp.StatusCode)
	}

	var payload struct {
		Deliverable bool `json:"deliverable"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&payload); err != nil {
		return false, fmt.Errorf("%w: %v", ErrVerifierUnavailable, err)
	}
	return payload.Deliverable, nil
}
