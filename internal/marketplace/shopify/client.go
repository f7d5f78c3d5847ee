// Package shopify fetches store orders through the Shopify Admin REST API.
package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bitukupraveen/multi-billing-sub000/internal/config"
	"github.com/bitukupraveen/multi-billing-sub000/internal/domain"
	"github.com/bitukupraveen/multi-billing-sub000/internal/port"
)

type client struct {
	shopDomain  string
	accessToken string
	apiVersion  string
	httpClient  *http.Client
}

// NewClient creates a Shopify-backed OrderSource.
func NewClient(cfg *config.ShopifyConfig) port.OrderSource {
	return &client{
		shopDomain:  cfg.ShopDomain,
		accessToken: cfg.AccessToken,
		apiVersion:  cfg.APIVersion,
		httpClient:  &http.Client{Timeout: time.Duration(cfg.TimeoutSecs) * time.Second},
	}
}

func (c *client) Channel() domain.Channel {
	return domain.ChannelShopify
}

type orderPage struct {
	Orders []struct {
		ID                int64  `json:"id"`
		CreatedAt         string `json:"created_at"`
		FulfillmentStatus string `json:"fulfillment_status"`
		CancelledAt       string `json:"cancelled_at"`
		LineItems         []struct {
			ID       int64  `json:"id"`
			SKU      string `json:"sku"`
			Quantity int    `json:"quantity"`
			Price    string `json:"price"`
		} `json:"line_items"`
	} `json:"orders"`
}

// FetchOrders pulls orders created since the given time, following the
// Link header cursor until the last page.
func (c *client) FetchOrders(ctx context.Context, since time.Time) ([]domain.Order, error) {
	if c.shopDomain == "" || c.accessToken == "" {
		return nil, fmt.Errorf("%w: shopify credentials not configured", domain.ErrMarketplaceAuth)
	}

	q := url.Values{}
	q.Set("status", "any")
	q.Set("limit", "250")
	q.Set("created_at_min", since.UTC().Format(time.RFC3339))

	next := fmt.Sprintf("https://%s/admin/api/%s/orders.json?%s", c.shopDomain, c.apiVersion, q.Encode())

	var orders []domain.Order
	for next != "" {
		page, nextURL, err := c.fetchPage(ctx, next)
		if err != nil {
			return nil, err
		}

		for _, o := range page.Orders {
			createdAt, _ := time.Parse(time.RFC3339, o.CreatedAt)
			status := mapStatus(o.FulfillmentStatus, o.CancelledAt != "")
			orderID := strconv.FormatInt(o.ID, 10)
			for _, item := range o.LineItems {
				price, _ := strconv.ParseFloat(item.Price, 64)
				orders = append(orders, domain.Order{
					ID:          uuid.New(),
					Channel:     domain.ChannelShopify,
					OrderID:     orderID,
					OrderItemID: strconv.FormatInt(item.ID, 10),
					SKU:         item.SKU,
					Quantity:    item.Quantity,
					Amount:      price * float64(item.Quantity),
					Status:      status,
					OrderedAt:   createdAt,
				})
			}
		}
		next = nextURL
	}
	return orders, nil
}

func (c *client) fetchPage(ctx context.Context, pageURL string) (*orderPage, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("shopify request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrMarketplaceSync, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, "", fmt.Errorf("%w: status %d", domain.ErrMarketplaceAuth, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, "", fmt.Errorf("%w: status %d: %s", domain.ErrMarketplaceSync, resp.StatusCode, b)
	}

	var page orderPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, "", fmt.Errorf("%w: decoding orders: %v", domain.ErrMarketplaceSync, err)
	}
	return &page, nextPageURL(resp.Header.Get("Link")), nil
}

// nextPageURL extracts the rel="next" cursor URL from a Shopify Link header.
// Returns "" on the last page.
func nextPageURL(link string) string {
	for _, part := range strings.Split(link, ",") {
		section := strings.Split(part, ";")
		if len(section) < 2 {
			continue
		}
		if strings.TrimSpace(section[1]) == `rel="next"` {
			u := strings.TrimSpace(section[0])
			return strings.Trim(u, "<>")
		}
	}
	return ""
}

func mapStatus(fulfillment string, cancelled bool) domain.OrderStatus {
	if cancelled {
		return domain.OrderStatusCancelled
	}
	switch fulfillment {
	case "fulfilled":
		return domain.OrderStatusDelivered
	case "partial":
		return domain.OrderStatusShipped
	case "restocked":
		return domain.OrderStatusReturned
	default:
		return domain.OrderStatusCreated
	}
}
