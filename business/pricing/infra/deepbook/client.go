package deepbook

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/avela-dev/dcavault/internal/apperror"
	"github.com/avela-dev/dcavault/internal/logger"
	"github.com/avela-dev/dcavault/internal/pool"
	"github.com/avela-dev/dcavault/internal/wsconn"
)

const (
	tracerName = "deepbook"
	meterName  = "deepbook"
)

// ClientConfig holds configuration for the venue WebSocket client.
type ClientConfig struct {
	BaseURL      string        // WebSocket base URL
	Pools        []pool.Key    // pools to subscribe
	ReadTimeout  time.Duration // used as pong timeout
	PingInterval time.Duration
}

// DefaultClientConfig returns sensible defaults.
func DefaultClientConfig(baseURL string, pools []pool.Key) ClientConfig {
	return ClientConfig{
		BaseURL:      baseURL,
		Pools:        pools,
		ReadTimeout:  10 * time.Second,
		PingInterval: 30 * time.Second,
	}
}

// clientMetrics holds OTEL metric instruments.
type clientMetrics struct {
	messagesReceived metric.Int64Counter
	bookUpdates      metric.Int64Counter
	subscriptions    metric.Int64UpDownCounter
	parseErrors      metric.Int64Counter
}

// Client is a WebSocket client for the venue's live book feed.
type Client struct {
	config ClientConfig
	logger logger.LoggerInterface

	conn   *wsconn.Client
	connMu sync.RWMutex

	onBookUpdate func(*BookEvent)
	handlersMu   sync.RWMutex

	nextID atomic.Int64

	tracer  trace.Tracer
	metrics *clientMetrics
}

// NewClient creates a new venue WebSocket client.
func NewClient(cfg ClientConfig, log logger.LoggerInterface) (*Client, error) {
	c := &Client{
		config: cfg,
		logger: log,
		tracer: otel.Tracer(tracerName),
	}

	if err := c.initMetrics(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Client) initMetrics() error {
	meter := otel.Meter(meterName)
	var err error

	c.metrics = &clientMetrics{}

	c.metrics.messagesReceived, err = meter.Int64Counter(
		"deepbook_messages_total",
		metric.WithDescription("Total feed messages received"),
	)
	if err != nil {
		return err
	}

	c.metrics.bookUpdates, err = meter.Int64Counter(
		"deepbook_book_updates_total",
		metric.WithDescription("Total book snapshots received"),
	)
	if err != nil {
		return err
	}

	c.metrics.subscriptions, err = meter.Int64UpDownCounter(
		"deepbook_subscriptions",
		metric.WithDescription("Active pool subscriptions"),
	)
	if err != nil {
		return err
	}

	c.metrics.parseErrors, err = meter.Int64Counter(
		"deepbook_parse_errors_total",
		metric.WithDescription("Message parse errors"),
	)
	if err != nil {
		return err
	}

	return nil
}

// OnBookUpdate registers a handler for book snapshot events.
func (c *Client) OnBookUpdate(handler func(*BookEvent)) {
	c.handlersMu.Lock()
	c.onBookUpdate = handler
	c.handlersMu.Unlock()
}

// Connect establishes the WebSocket connection and subscribes to the
// configured pools.
func (c *Client) Connect(ctx context.Context) error {
	ctx, span := c.tracer.Start(ctx, "deepbook.connect")
	defer span.End()

	if len(c.config.Pools) == 0 {
		return apperror.New(apperror.CodeConfigurationError,
			apperror.WithContext("no pools configured"))
	}

	u, err := url.Parse(c.config.BaseURL)
	if err != nil {
		return apperror.New(apperror.CodeConfigurationError,
			apperror.WithCause(err),
			apperror.WithContext("invalid websocket URL"))
	}
	u.Path = "/ws"

	wsCfg := wsconn.DefaultConfig(u.String(), "deepbook")
	wsCfg.PingInterval = c.config.PingInterval
	wsCfg.PongTimeout = c.config.ReadTimeout

	conn, err := wsconn.New(wsCfg)
	if err != nil {
		return apperror.New(apperror.CodeVenueConnectionFailed,
			apperror.WithCause(err),
			apperror.WithContext("failed to create wsconn"))
	}

	conn.OnMessage(c.handleMessage)
	conn.OnStateChange(func(state wsconn.State, err error) {
		if state == wsconn.StateConnected {
			// Resubscribe after every (re)connect, the feed does not
			// persist subscriptions across connections.
			go c.subscribe(context.Background())
		}
		if err != nil {
			c.logger.Warn(context.Background(), "feed state change",
				"state", string(state), "error", err)
		}
	})

	// The state handler fires inside conn.Connect, before it returns;
	// the conn must be visible to the subscribe goroutine by then.
	c.connMu.Lock()
	c.conn = conn
	c.connMu.Unlock()

	if err := conn.Connect(ctx); err != nil {
		c.connMu.Lock()
		c.conn = nil
		c.connMu.Unlock()
		return apperror.New(apperror.CodeVenueConnectionFailed,
			apperror.WithCause(err),
			apperror.WithContext("failed to connect to venue feed"))
	}

	span.SetAttributes(attribute.Int("pools", len(c.config.Pools)))
	c.logger.Info(ctx, "deepbook feed connected",
		"url", u.String(),
		"pools", len(c.config.Pools))

	return nil
}

// subscribe sends the pool subscription request.
func (c *Client) subscribe(ctx context.Context) {
	c.connMu.RLock()
	conn := c.conn
	c.connMu.RUnlock()
	if conn == nil {
		return
	}

	pools := make([]string, len(c.config.Pools))
	for i, p := range c.config.Pools {
		pools[i] = string(p)
	}

	req := WSRequest{
		Method: "subscribe",
		Pools:  pools,
		ID:     c.nextID.Add(1),
	}

	if err := conn.SendJSON(ctx, req); err != nil {
		c.logger.Warn(ctx, "pool subscription failed", "error", err)
		return
	}

	c.metrics.subscriptions.Add(ctx, int64(len(pools)))
}

// handleMessage processes incoming feed messages.
func (c *Client) handleMessage(ctx context.Context, data []byte) {
	c.metrics.messagesReceived.Add(ctx, 1)

	var event BookEvent
	if err := json.Unmarshal(data, &event); err != nil || event.Pool == "" {
		// Might be a subscription acknowledgement.
		var resp WSResponse
		if json.Unmarshal(data, &resp) == nil && resp.ID != 0 {
			c.logger.Debug(ctx, "subscription acknowledged", "id", resp.ID)
			return
		}
		c.metrics.parseErrors.Add(ctx, 1)
		return
	}

	c.metrics.bookUpdates.Add(ctx, 1)

	c.handlersMu.RLock()
	handler := c.onBookUpdate
	c.handlersMu.RUnlock()
	if handler != nil {
		handler(&event)
	}
}

// Close closes the feed connection.
func (c *Client) Close() error {
	c.connMu.Lock()
	defer c.connMu.Unlock()

	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// IsConnected returns whether the feed is connected.
func (c *Client) IsConnected() bool {
	c.connMu.RLock()
	defer c.connMu.RUnlock()
	return c.conn != nil && c.conn.IsConnected()
}
