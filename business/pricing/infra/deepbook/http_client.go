package deepbook

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/avela-dev/dcavault/business/pricing/domain"
	"github.com/avela-dev/dcavault/internal/apperror"
	"github.com/avela-dev/dcavault/internal/httpclient"
	"github.com/avela-dev/dcavault/internal/logger"
	"github.com/avela-dev/dcavault/internal/pool"
)

const (
	// Public indexer endpoints per network.
	BaseIndexerURL        = "https://deepbook-indexer.mainnet.mystenlabs.com"
	BaseIndexerURLTestnet = "https://deepbook-indexer.testnet.mystenlabs.com"

	level2Endpoint = "/level2"

	httpTimeout = 10 * time.Second
)

// HTTPClientConfig holds configuration for the indexer HTTP client.
type HTTPClientConfig struct {
	BaseURL string        // indexer base URL (empty = mainnet default)
	Timeout time.Duration // request timeout
}

// HTTPClient provides indexer REST access for level2 book queries.
type HTTPClient struct {
	client httpclient.Client
	config HTTPClientConfig
	logger logger.LoggerInterface
	tracer trace.Tracer
}

// NewHTTPClient creates a new indexer HTTP client.
func NewHTTPClient(cfg HTTPClientConfig, log logger.LoggerInterface) (*HTTPClient, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = BaseIndexerURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = httpTimeout
	}

	tracer := otel.Tracer(tracerName)

	client, err := httpclient.NewInstrumentedClient(
		httpclient.WithProviderName("deepbook"),
		httpclient.WithBaseURL(baseURL),
		httpclient.WithRequestTimeout(timeout),
		httpclient.WithTracer(tracer),
		httpclient.WithHeaders(map[string]string{
			"Accept": "application/json",
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	return &HTTPClient{
		client: client,
		config: cfg,
		logger: log,
		tracer: tracer,
	}, nil
}

// GetLevels fetches one side of a pool's book within a price window.
func (c *HTTPClient) GetLevels(ctx context.Context, key pool.Key, priceLo, priceHi decimal.Decimal, side domain.Side) ([]domain.OrderBookLevel, error) {
	ctx, span := c.tracer.Start(ctx, "deepbook.http.get_levels",
		trace.WithAttributes(
			attribute.String("pool", string(key)),
			attribute.String("side", string(side)),
		),
	)
	defer span.End()

	var result Level2Response
	resp, err := c.client.NewRequest(
		httpclient.WithLabels(
			httpclient.NewLabel("endpoint", "level2"),
			httpclient.NewLabel("pool", string(key)),
		),
		httpclient.WithResponseErrorHandler(venueErrorHandler),
	).
		SetQueryParam("pool", string(key)).
		SetQueryParam("price_low", priceLo.String()).
		SetQueryParam("price_high", priceHi.String()).
		SetQueryParam("side", string(side)).
		SetResult(&result).
		Get(ctx, level2Endpoint)

	if err != nil {
		span.RecordError(err)
		return nil, apperror.New(apperror.CodeVenueConnectionFailed,
			apperror.WithCause(err),
			apperror.WithContext(fmt.Sprintf("failed to fetch level2 for pool %s", key)))
	}

	if resp.IsError() {
		return nil, apperror.New(apperror.CodeVenueAPIError,
			apperror.WithContext(fmt.Sprintf("HTTP %d: %s", resp.StatusCode, resp.String())))
	}

	levels := ParseLevels(result.Records, side)

	span.SetAttributes(attribute.Int("levels", len(levels)))
	c.logger.Debug(ctx, "fetched level2 via HTTP",
		"pool", key,
		"side", side,
		"levels", len(levels))

	return levels, nil
}

// VenueAPIError represents an error response from the indexer.
type VenueAPIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *VenueAPIError) Error() string {
	return fmt.Sprintf("venue API error %d: %s", e.Code, e.Message)
}

// venueErrorHandler parses indexer error responses.
func venueErrorHandler(statusCode int, body []byte) error {
	if statusCode == http.StatusTooManyRequests {
		return apperror.New(apperror.CodeVenueRateLimited,
			apperror.WithContext("indexer rate limit hit"))
	}
	if statusCode >= 400 {
		var apiErr VenueAPIError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Code != 0 {
			return &apiErr
		}
		return fmt.Errorf("HTTP %d: %s", statusCode, string(body))
	}
	return nil
}
