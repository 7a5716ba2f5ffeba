package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"rider-dispatch/internal/domain"
)

// offerDTO is the wire form of an extended offer.
type offerDTO struct {
	AttemptID         string  `json:"attempt_id"`
	OrderID           string  `json:"order_id"`
	PickupLat         float64 `json:"pickup_lat"`
	PickupLng         float64 `json:"pickup_lng"`
	DropoffLat        float64 `json:"dropoff_lat"`
	DropoffLng        float64 `json:"dropoff_lng"`
	EstimatedEarnings float64 `json:"estimated_earnings"`
	ExpiresAt         string  `json:"expires_at"`
}

// StatusError is a non-2xx response from the rider notification service.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("notify: unexpected status %d", e.Code)
}

// HTTPGateway pushes offers to the rider notification service over HTTP.
type HTTPGateway struct {
	client  *http.Client
	baseURL string
}

// NewHTTPGateway creates a notification gateway. Returns nil when baseURL is
// empty so deployments without a push service degrade to timeouts.
func NewHTTPGateway(baseURL string, timeout time.Duration) *HTTPGateway {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HTTPGateway{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// NotifyOffer posts the offer to the rider's device channel.
func (g *HTTPGateway) NotifyOffer(ctx context.Context, riderID string, offer domain.OfferPayload) error {
	dto := offerDTO{
		AttemptID:         offer.AttemptID,
		OrderID:           offer.OrderID,
		PickupLat:         offer.Pickup.Lat,
		PickupLng:         offer.Pickup.Lng,
		DropoffLat:        offer.Dropoff.Lat,
		DropoffLng:        offer.Dropoff.Lng,
		EstimatedEarnings: offer.EstimatedEarnings,
		ExpiresAt:         offer.ExpiresAt.UTC().Format(time.RFC3339),
	}

	body, err := json.Marshal(dto)
	if err != nil {
		return fmt.Errorf("notify gateway: marshal offer: %w", err)
	}

	url := fmt.Sprintf("%s/riders/%s/offers", g.baseURL, riderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notify gateway: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("notify gateway: NotifyOffer: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("notify gateway: NotifyOffer: %w", &StatusError{Code: resp.StatusCode})
	}
	return nil
}
