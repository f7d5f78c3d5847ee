// Package flipkart fetches seller orders from the Flipkart marketplace API.
// The client owns credential exchange (OAuth client credentials) and
// pagination; callers receive fully mapped domain orders.
package flipkart

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bitukupraveen/multi-billing-sub000/internal/config"
	"github.com/bitukupraveen/multi-billing-sub000/internal/domain"
	"github.com/bitukupraveen/multi-billing-sub000/internal/port"
)

// tokenCache holds one access token with its expiry. It is owned by the
// client instance rather than being process-wide state.
type tokenCache struct {
	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

type client struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	cache        tokenCache
}

// NewClient creates a Flipkart-backed OrderSource.
func NewClient(cfg *config.FlipkartConfig) port.OrderSource {
	return &client{
		baseURL:      strings.TrimSuffix(cfg.BaseURL, "/"),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		httpClient:   &http.Client{Timeout: time.Duration(cfg.TimeoutSecs) * time.Second},
	}
}

func (c *client) Channel() domain.Channel {
	return domain.ChannelFlipkart
}

// accessToken returns a cached token, refreshing it when within a minute of
// expiry.
func (c *client) accessToken(ctx context.Context) (string, error) {
	c.cache.mu.Lock()
	defer c.cache.mu.Unlock()

	if c.cache.token != "" && time.Until(c.cache.expiresAt) > time.Minute {
		return c.cache.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", "Seller_Api")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/oauth-service/oauth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("flipkart token request: %w", err)
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrMarketplaceAuth, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: status %d: %s", domain.ErrMarketplaceAuth, resp.StatusCode, body)
	}

	var tok struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("%w: decoding token: %v", domain.ErrMarketplaceAuth, err)
	}

	c.cache.token = tok.AccessToken
	c.cache.expiresAt = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	return c.cache.token, nil
}

// shipmentPage mirrors the relevant slice of the Flipkart shipments
// response.
type shipmentPage struct {
	Shipments []struct {
		OrderItems []struct {
			OrderID     string  `json:"orderId"`
			OrderItemID string  `json:"orderItemId"`
			SKU         string  `json:"sku"`
			Quantity    int     `json:"quantity"`
			Status      string  `json:"status"`
			OrderDate   string  `json:"orderDate"`
			PriceComponents struct {
				TotalPrice float64 `json:"totalPrice"`
			} `json:"priceComponents"`
		} `json:"orderItems"`
	} `json:"shipments"`
	HasMore     bool   `json:"hasMore"`
	NextPageURL string `json:"nextPageUrl"`
}

// FetchOrders pulls shipments created since the given time, following
// pagination until the API reports no more pages.
func (c *client) FetchOrders(ctx context.Context, since time.Time) ([]domain.Order, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	filter := map[string]any{
		"filter": map[string]any{
			"type": "preDispatch",
			"orderDate": map[string]string{
				"fromDate": since.UTC().Format(time.RFC3339),
			},
		},
	}
	body, err := json.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("flipkart filter: %w", err)
	}

	var orders []domain.Order
	next := c.baseURL + "/sellers/v3/shipments/filter"
	payload := string(body)

	for next != "" {
		page, err := c.fetchPage(ctx, token, next, payload)
		if err != nil {
			return nil, err
		}

		for _, sh := range page.Shipments {
			for _, item := range sh.OrderItems {
				orderedAt, _ := time.Parse(time.RFC3339, item.OrderDate)
				orders = append(orders, domain.Order{
					ID:          uuid.New(),
					Channel:     domain.ChannelFlipkart,
					OrderID:     item.OrderID,
					OrderItemID: item.OrderItemID,
					SKU:         item.SKU,
					Quantity:    item.Quantity,
					Amount:      item.PriceComponents.TotalPrice,
					Status:      mapStatus(item.Status),
					OrderedAt:   orderedAt,
				})
			}
		}

		if !page.HasMore || page.NextPageURL == "" {
			break
		}
		next = c.baseURL + page.NextPageURL
		payload = "" // subsequent pages are GETs on the next-page URL
	}
	return orders, nil
}

func (c *client) fetchPage(ctx context.Context, token, pageURL, payload string) (*shipmentPage, error) {
	method := http.MethodGet
	var body io.Reader
	if payload != "" {
		method = http.MethodPost
		body = strings.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, pageURL, body)
	if err != nil {
		return nil, fmt.Errorf("flipkart request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMarketplaceSync, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrMarketplaceSync, resp.StatusCode, b)
	}

	var page shipmentPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("%w: decoding shipments: %v", domain.ErrMarketplaceSync, err)
	}
	return &page, nil
}

func mapStatus(s string) domain.OrderStatus {
	switch strings.ToUpper(s) {
	case "SHIPPED":
		return domain.OrderStatusShipped
	case "DELIVERED":
		return domain.OrderStatusDelivered
	case "RETURNED":
		return domain.OrderStatusReturned
	case "CANCELLED":
		return domain.OrderStatusCancelled
	default:
		return domain.OrderStatusCreated
	}
}
