package resilience

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// HTTPClient is a tuned HTTP client for upstream API calls with circuit
// breaker protection. Connection reuse is delegated to the transport.
type HTTPClient struct {
	client         *http.Client
	circuitBreaker *CircuitBreaker
}

// NewHTTPClient creates a client sized for a single upstream host.
func NewHTTPClient(timeout time.Duration, cb *CircuitBreaker) *HTTPClient {
	transport := &http.Transport{
		MaxIdleConns:          10,
		MaxConnsPerHost:       20,
		MaxIdleConnsPerHost:   5,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &HTTPClient{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		circuitBreaker: cb,
	}
}

// DoRequest executes an HTTP request through the circuit breaker.
func (hc *HTTPClient) DoRequest(ctx context.Context, method, url string, headers map[string]string) (*http.Response, error) {
	var resp *http.Response

	err := hc.circuitBreaker.Call(func() error {
		req, err := http.NewRequestWithContext(ctx, method, url, nil)
		if err != nil {
			return err
		}

		for key, value := range headers {
			req.Header.Set(key, value)
		}

		start := time.Now()
		resp, err = hc.client.Do(req)
		duration := time.Since(start)

		if err != nil {
			slog.Warn("Upstream request failed", "url", url, "error", err, "duration_ms", duration.Milliseconds())
			return err
		}

		slog.Debug("Upstream request completed", "url", url, "status", resp.StatusCode, "duration_ms", duration.Milliseconds())
		return nil
	})

	if err != nil {
		return nil, err
	}

	return resp, nil
}

// GetStats returns client and circuit breaker statistics
func (hc *HTTPClient) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"circuit_breaker_state":    hc.circuitBreaker.State(),
		"circuit_breaker_failures": hc.circuitBreaker.Failures(),
	}
}

// Close releases idle connections held by the transport.
func (hc *HTTPClient) Close() error {
	if transport, ok := hc.client.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
	return nil
}
