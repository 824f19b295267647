// Package sheets talks to the spreadsheet-backed script endpoint that
// serves as the storefront's remote source of truth. Reads return the
// full catalog (and, where the deployment supports it, the full order
// list); writes are fire-and-forget: the transport deliberately mimics
// the original no-cors mode, so the HTTP status and body of a write are
// never inspected and a write is only confirmed indirectly by the next
// fetch. Identical writes submitted twice therefore produce duplicate
// remote records; that gap is inherent to the transport and left intact.
package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/tazamart/backend/internal/domain/catalog"
	"github.com/tazamart/backend/internal/domain/order"
	"github.com/tazamart/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// maxResponseSize caps a fetch response body (10MB)
const maxResponseSize = 10 * 1024 * 1024

// Config holds the remote endpoint settings
type Config struct {
	// Endpoint is the script URL; empty disables remote sync entirely
	Endpoint string
	// Timeout bounds every request so a hung remote can never leave the
	// storefront stuck in a loading state
	Timeout time.Duration
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return shared.NewDomainError("SYNC_NOT_CONFIGURED", "Remote sync endpoint is not configured")
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return shared.NewDomainError("INVALID_ENDPOINT", "Remote sync endpoint must be an http(s) URL")
	}
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
	return nil
}

// FetchResult is one fetch's decoded payload, tagged with a sequence
// number so overlapping fetches can be applied in issuance order and
// stale responses discarded.
type FetchResult struct {
	Seq       uint64
	Products  []catalog.Product
	Orders    []order.Order
	HasOrders bool
}

// Client is the HTTP client for the script endpoint
type Client struct {
	endpoint   string
	httpClient *http.Client
	log        *zap.Logger
	seq        atomic.Uint64
	registry   *opRegistry
}

// NewClient creates a client for the configured endpoint
func NewClient(cfg *Config, log *zap.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		endpoint: cfg.Endpoint,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		log:      log.Named("sheets"),
		registry: newOpRegistry(),
	}, nil
}

// Fetch reads the full remote state. The endpoint answers with either a
// bare product array or an object carrying products and orders.
func (c *Client) Fetch(ctx context.Context) (*FetchResult, error) {
	seq := c.seq.Add(1)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build fetch request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read fetch response: %w", err)
	}

	products, orders, hasOrders, err := decodeFetchBody(body)
	if err != nil {
		return nil, err
	}

	result := &FetchResult{Seq: seq, HasOrders: hasOrders}
	for _, rp := range products {
		p, ok := rp.toProduct()
		if !ok {
			c.log.Warn("skipping remote product with unusable id", zap.String("name", rp.Name))
			continue
		}
		result.Products = append(result.Products, p)
	}
	for _, ro := range orders {
		o, ok := ro.toOrder()
		if !ok {
			continue
		}
		result.Orders = append(result.Orders, o)
	}

	c.log.Debug("fetched remote state",
		zap.Uint64("seq", seq),
		zap.Int("products", len(result.Products)),
		zap.Int("orders", len(result.Orders)),
	)
	return result, nil
}

func decodeFetchBody(body []byte) ([]remoteProduct, []remoteOrder, bool, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil, false, fmt.Errorf("empty fetch response")
	}

	if trimmed[0] == '[' {
		var products []remoteProduct
		if err := json.Unmarshal(trimmed, &products); err != nil {
			return nil, nil, false, fmt.Errorf("malformed product array: %w", err)
		}
		return products, nil, false, nil
	}

	var payload remotePayload
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return nil, nil, false, fmt.Errorf("malformed fetch response: %w", err)
	}
	return payload.Products, payload.Orders, payload.Orders != nil, nil
}

// AddProduct pushes a new product row
func (c *Client) AddProduct(ctx context.Context, p catalog.Product) (Operation, error) {
	return c.write(ctx, actionAddProduct, newProductWrite(actionAddProduct, p))
}

// EditProduct pushes an updated product row
func (c *Client) EditProduct(ctx context.Context, p catalog.Product) (Operation, error) {
	return c.write(ctx, actionEditProduct, newProductWrite(actionEditProduct, p))
}

// DeleteProduct removes a product row
func (c *Client) DeleteProduct(ctx context.Context, id int64) (Operation, error) {
	return c.write(ctx, actionDeleteProduct, productWrite{Action: actionDeleteProduct, ID: strconv.FormatInt(id, 10)})
}

// AddOrder pushes a placed order
func (c *Client) AddOrder(ctx context.Context, o order.Order) (Operation, error) {
	return c.write(ctx, actionAddOrder, newOrderWrite(o))
}

// UpdateOrderStatus pushes an order status change
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID string, status order.Status) (Operation, error) {
	return c.write(ctx, actionUpdateOrderStatus, statusWrite{Action: actionUpdateOrderStatus, ID: orderID, Status: string(status)})
}

// write POSTs a mutation. The response body and status are intentionally
// discarded; on transport success the operation is presumed applied. A
// transport error is returned alongside the still-pending operation so
// the caller can decide whether to reconcile anyway.
func (c *Client) write(ctx context.Context, action string, payload any) (Operation, error) {
	op := c.registry.create(action)

	body, err := json.Marshal(payload)
	if err != nil {
		return op, fmt.Errorf("failed to serialize %s payload: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return op, fmt.Errorf("failed to build %s request: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("remote write transport error",
			zap.String("action", action),
			zap.String("op_id", op.ID.String()),
			zap.Error(err),
		)
		return op, fmt.Errorf("%s write failed: %w", action, err)
	}
	// Opaque write: drain and drop the response unread.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
	_ = resp.Body.Close()

	c.registry.setStatus(op.ID, OpPresumedApplied)
	op, _ = c.registry.get(op.ID)

	c.log.Info("remote write sent",
		zap.String("action", action),
		zap.String("op_id", op.ID.String()),
	)
	return op, nil
}

// MarkReconciled records that a fetch after the write succeeded
func (c *Client) MarkReconciled(id uuid.UUID) {
	c.registry.setStatus(id, OpReconciled)
}

// MarkReconcileFailed records that every fetch after the write failed
func (c *Client) MarkReconcileFailed(id uuid.UUID) {
	c.registry.setStatus(id, OpReconcileFailed)
}

// Operation returns a snapshot of a tracked write operation
func (c *Client) Operation(id uuid.UUID) (Operation, bool) {
	return c.registry.get(id)
}
