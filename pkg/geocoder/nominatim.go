package geocoder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// NominatimBaseURL is the public OpenStreetMap Nominatim endpoint.
const NominatimBaseURL = "https://nominatim.openstreetmap.org"

// nominatimResponse is the subset of the reverse endpoint's JSON this tool
// consumes.
type nominatimResponse struct {
	Address Address `json:"address"`
}

// NominatimResolver resolves coordinates through the OpenStreetMap Nominatim
// API. The service's usage policy requires a caller-identifying contact and
// at most one request at a time; the mutex and limiter enforce both.
type NominatimResolver struct {
	baseURL     string
	contact     string
	client      *http.Client
	limiter     *rate.Limiter
	maxAttempts int
	logger      zerolog.Logger

	mu sync.Mutex
}

// NewNominatimResolver creates a new NominatimResolver instance. The contact
// string is mandatory; it is sent in the User-Agent header and the email
// query parameter of every request.
func NewNominatimResolver(baseURL, contact string, timeout time.Duration, maxAttempts int,
	limiter *rate.Limiter, logger zerolog.Logger) (*NominatimResolver, error) {
	if contact == "" {
		return nil, errors.New("nominatim requires a contact address")
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	return &NominatimResolver{
		baseURL:     baseURL,
		contact:     contact,
		client:      &http.Client{Timeout: timeout},
		limiter:     limiter,
		maxAttempts: maxAttempts,
		logger:      logger,
	}, nil
}

// Reverse resolves a coordinate pair into an address. Transient failures
// (network errors, 429, 5xx) are retried up to the configured attempt count;
// the limiter spaces out the requests.
func (n *NominatimResolver) Reverse(ctx context.Context, latitude, longitude float64) (Address, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	var lastErr error
	for attempt := 1; attempt <= n.maxAttempts; attempt++ {
		if err := n.limiter.Wait(ctx); err != nil {
			return Address{}, err
		}

		addr, retryable, err := n.reverseOnce(ctx, latitude, longitude)
		if err == nil {
			return addr, nil
		}
		lastErr = err
		if !retryable {
			return Address{}, err
		}

		n.logger.Debug().
			Err(err).
			Int("attempt", attempt).
			Int("max_attempts", n.maxAttempts).
			Float64("latitude", latitude).
			Float64("longitude", longitude).
			Msg("Retrying reverse geocoding request")
	}

	return Address{}, fmt.Errorf("reverse geocoding failed after %d attempts: %w", n.maxAttempts, lastErr)
}

// reverseOnce performs a single reverse request. The boolean reports whether
// the failure is worth another attempt.
func (n *NominatimResolver) reverseOnce(ctx context.Context, latitude, longitude float64) (Address, bool, error) {
	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%.7f", latitude))
	params.Set("lon", fmt.Sprintf("%.7f", longitude))
	params.Set("format", "jsonv2")
	params.Set("addressdetails", "1")
	params.Set("email", n.contact)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/reverse?"+params.Encode(), nil)
	if err != nil {
		return Address{}, false, err
	}
	req.Header.Set("User-Agent", "google-timeline-to-city ("+n.contact+")")

	resp, err := n.client.Do(req)
	if err != nil {
		return Address{}, true, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return Address{}, true, fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return Address{}, false, fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	var body nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Address{}, false, fmt.Errorf("failed to decode nominatim response: %w", err)
	}
	if body.Address == (Address{}) {
		return Address{}, false, ErrNoResult
	}

	return body.Address, false, nil
}
