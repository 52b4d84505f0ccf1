// Package ledger reads vault objects from a Sui full node over JSON-RPC.
package ledger

import (
	"encoding/json"
	"strconv"

	"github.com/avela-dev/dcavault/business/vault/domain"
)

// rpcRequest is a JSON-RPC 2.0 request envelope.
type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int64  `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

// rpcResponse is a JSON-RPC 2.0 response envelope.
type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int64           `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ownedObjectsPage is the result of suix_getOwnedObjects.
type ownedObjectsPage struct {
	Data        []objectResponse `json:"data"`
	HasNextPage bool             `json:"hasNextPage"`
	NextCursor  *string          `json:"nextCursor"`
}

// objectResponse is one entry of an object query. Deleted or
// inaccessible objects carry an error instead of data.
type objectResponse struct {
	Data  *objectData  `json:"data"`
	Error *objectError `json:"error"`
}

type objectError struct {
	Code     string `json:"code"`
	ObjectID string `json:"object_id"`
}

type objectData struct {
	ObjectID string         `json:"objectId"`
	Version  string         `json:"version"`
	Digest   string         `json:"digest"`
	Type     string         `json:"type"`
	Content  *objectContent `json:"content"`
}

type objectContent struct {
	DataType string      `json:"dataType"`
	Type     string      `json:"type"`
	Fields   vaultFields `json:"fields"`
}

// vaultFields mirrors the on-chain DCAVault Move struct. Integer
// fields arrive as decimal strings.
type vaultFields struct {
	ID              objectID        `json:"id"`
	Owner           string          `json:"owner"`
	Balance         string          `json:"balance"`
	TargetAsset     json.RawMessage `json:"target_asset"`
	TargetAssetType string          `json:"target_asset_type"`
	AmountPerTrade  string          `json:"amount_per_trade"`
	FrequencyMs     string          `json:"frequency_ms"`
	LastExecutionMs string          `json:"last_execution_ms"`
	TotalExecutions string          `json:"total_executions"`
	IsActive        bool            `json:"is_active"`
	TotalInvested   string          `json:"total_invested"`
}

type objectID struct {
	ID string `json:"id"`
}

// decodeVault converts a raw object into a domain vault. Decoding is
// lenient: malformed balances read as zero and a malformed schedule
// marks the vault due immediately, so one bad object never hides the
// rest of an owner's vaults. typeSymbol is the symbol resolved from the
// vault's target_asset_type field, empty when unknown.
func decodeVault(data *objectData, typeSymbol string) *domain.Vault {
	f := data.Content.Fields

	last, freq, ok := domain.ParseSchedule(f.LastExecutionMs, f.FrequencyMs)

	v := &domain.Vault{
		ID:              data.ObjectID,
		Owner:           f.Owner,
		Balance:         parseUint(f.Balance),
		TargetAsset:     decodeTargetAsset(f.TargetAsset, typeSymbol),
		AmountPerTrade:  parseUint(f.AmountPerTrade),
		FrequencyMs:     freq,
		LastExecutionMs: last,
		ScheduleValid:   ok,
		TotalExecutions: parseUint(f.TotalExecutions),
		IsActive:        f.IsActive,
		TotalInvested:   parseUint(f.TotalInvested),
	}
	if v.ID == "" {
		v.ID = f.ID.ID
	}
	return v
}

// decodeTargetAsset handles the shapes the target asset field has taken
// across contract versions: a plain string, a Move String object with a
// bytes field, or a byte vector. Unrecognized shapes fall back to the
// symbol resolved from the coin type, then to the quote currency.
func decodeTargetAsset(raw json.RawMessage, fallback string) string {
	if len(raw) > 0 {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return s
		}

		var wrapped struct {
			Bytes string `json:"bytes"`
		}
		if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Bytes != "" {
			return wrapped.Bytes
		}

		var list []string
		if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 && list[0] != "" {
			return list[0]
		}
	}

	if fallback != "" {
		return fallback
	}
	return "USDC"
}

func parseUint(s string) uint64 {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
