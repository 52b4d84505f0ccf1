package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/avela-dev/dcavault/business/vault/app"
	"github.com/avela-dev/dcavault/business/vault/domain"
	"github.com/avela-dev/dcavault/internal/apperror"
	"github.com/avela-dev/dcavault/internal/asset"
	"github.com/avela-dev/dcavault/internal/httpclient"
	"github.com/avela-dev/dcavault/internal/logger"
)

const (
	tracerName = "ledger"

	// vaultModule is the Move module holding the vault struct.
	vaultModule = "dca"
	vaultStruct = "DCAVault"

	defaultTimeout = 15 * time.Second
)

// Ensure Client implements the vault ledger port.
var _ app.Ledger = (*Client)(nil)

// ClientConfig holds configuration for the full-node JSON-RPC client.
type ClientConfig struct {
	RPCURL    string
	PackageID string // package that published the vault module
	Timeout   time.Duration

	// Assets resolves target_asset_type coin types to display symbols.
	// Optional; vaults with an unknown coin type keep the quote fallback.
	Assets  *asset.Registry
	Network asset.Network
}

// Client reads vault objects from a Sui full node.
type Client struct {
	config ClientConfig
	logger logger.LoggerInterface
	http   httpclient.Client
	nextID atomic.Int64
	tracer trace.Tracer
}

// NewClient creates a new full-node client.
func NewClient(cfg ClientConfig, log logger.LoggerInterface) (*Client, error) {
	if cfg.RPCURL == "" {
		return nil, apperror.New(apperror.CodeConfigurationError,
			apperror.WithContext("ledger RPC URL is required"))
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	hc, err := httpclient.NewInstrumentedClient(
		httpclient.WithProviderName("sui_fullnode"),
		httpclient.WithRequestTimeout(cfg.Timeout),
		httpclient.WithHeaders(map[string]string{"Content-Type": "application/json"}),
	)
	if err != nil {
		return nil, err
	}

	return &Client{
		config: cfg,
		logger: log,
		http:   hc,
		tracer: otel.Tracer(tracerName),
	}, nil
}

// vaultStructType returns the fully qualified vault type for filtering.
func (c *Client) vaultStructType() string {
	return fmt.Sprintf("%s::%s::%s", c.config.PackageID, vaultModule, vaultStruct)
}

// GetVault fetches a single vault by object ID.
func (c *Client) GetVault(ctx context.Context, id string) (*domain.Vault, error) {
	ctx, span := c.tracer.Start(ctx, "ledger.get_vault",
		trace.WithAttributes(attribute.String("object_id", id)),
	)
	defer span.End()

	params := []any{id, map[string]any{"showContent": true, "showType": true}}

	var result objectResponse
	if err := c.call(ctx, "sui_getObject", params, &result); err != nil {
		span.RecordError(err)
		return nil, err
	}

	vault, err := c.vaultFromObject(&result)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return vault, nil
}

// ListVaults fetches all vaults owned by an address, following cursor
// pagination. Objects that are not decodable vaults are skipped.
func (c *Client) ListVaults(ctx context.Context, owner string) ([]*domain.Vault, error) {
	ctx, span := c.tracer.Start(ctx, "ledger.list_vaults",
		trace.WithAttributes(attribute.String("owner", owner)),
	)
	defer span.End()

	query := map[string]any{
		"filter":  map[string]any{"StructType": c.vaultStructType()},
		"options": map[string]any{"showContent": true, "showType": true},
	}

	var vaults []*domain.Vault
	var cursor *string
	for {
		params := []any{owner, query, cursor, nil}

		var page ownedObjectsPage
		if err := c.call(ctx, "suix_getOwnedObjects", params, &page); err != nil {
			span.RecordError(err)
			return nil, err
		}

		for i := range page.Data {
			vault, err := c.vaultFromObject(&page.Data[i])
			if err != nil {
				c.logger.Warn(ctx, "skipping undecodable vault object",
					"owner", owner, "error", err)
				continue
			}
			vaults = append(vaults, vault)
		}

		if !page.HasNextPage || page.NextCursor == nil {
			break
		}
		cursor = page.NextCursor
	}

	span.SetAttributes(attribute.Int("vaults", len(vaults)))
	return vaults, nil
}

// vaultFromObject validates and decodes one object response.
func (c *Client) vaultFromObject(obj *objectResponse) (*domain.Vault, error) {
	if obj.Error != nil || obj.Data == nil {
		return nil, apperror.New(apperror.CodeVaultNotFound)
	}
	if obj.Data.Content == nil || obj.Data.Content.DataType != "moveObject" {
		return nil, apperror.New(apperror.CodeInvalidVaultRecord,
			apperror.WithContext(fmt.Sprintf("object %s has no move content", obj.Data.ObjectID)))
	}
	if !strings.HasSuffix(obj.Data.Content.Type, "::"+vaultModule+"::"+vaultStruct) {
		return nil, apperror.New(apperror.CodeInvalidVaultRecord,
			apperror.WithContext(fmt.Sprintf("object %s is not a vault: %s", obj.Data.ObjectID, obj.Data.Content.Type)))
	}
	return decodeVault(obj.Data, c.symbolForType(obj.Data.Content.Fields.TargetAssetType)), nil
}

// symbolForType maps an on-chain coin type to its ticker symbol.
func (c *Client) symbolForType(coinType string) string {
	if c.config.Assets == nil || coinType == "" {
		return ""
	}
	a, ok := c.config.Assets.Get(coinType, c.config.Network)
	if !ok {
		return ""
	}
	return a.Symbol()
}

// call performs one JSON-RPC request and decodes its result.
func (c *Client) call(ctx context.Context, method string, params []any, result any) error {
	req := rpcRequest{
		JSONRPC: "2.0",
		ID:      c.nextID.Add(1),
		Method:  method,
		Params:  params,
	}

	var resp rpcResponse
	httpResp, err := c.http.NewRequest(
		httpclient.WithLabels(httpclient.NewLabel("rpc_method", method)),
	).
		SetBody(req).
		SetResult(&resp).
		Post(ctx, c.config.RPCURL)
	if err != nil {
		return apperror.New(apperror.CodeLedgerConnectionFailed,
			apperror.WithCause(err),
			apperror.WithContext(fmt.Sprintf("rpc %s failed", method)))
	}
	if httpResp.IsError() {
		return apperror.New(apperror.CodeLedgerRPCError,
			apperror.WithContext(fmt.Sprintf("rpc %s returned HTTP %d", method, httpResp.StatusCode)))
	}
	if resp.Error != nil {
		return apperror.New(apperror.CodeLedgerRPCError,
			apperror.WithContext(fmt.Sprintf("rpc %s: %s (code %d)", method, resp.Error.Message, resp.Error.Code)))
	}

	if err := json.Unmarshal(resp.Result, result); err != nil {
		return apperror.New(apperror.CodeLedgerRPCError,
			apperror.WithCause(err),
			apperror.WithContext(fmt.Sprintf("rpc %s: malformed result", method)))
	}
	return nil
}
