package ledger

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/avela-dev/dcavault/internal/apperror"
	"github.com/avela-dev/dcavault/internal/asset"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, args ...any) {}
func (m *mockLogger) Info(ctx context.Context, msg string, args ...any)  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, args ...any)  {}
func (m *mockLogger) Error(ctx context.Context, msg string, args ...any) {}

func (m *mockLogger) Debugc(ctx context.Context, caller int, msg string, args ...any) {}
func (m *mockLogger) Infoc(ctx context.Context, caller int, msg string, args ...any)  {}
func (m *mockLogger) Warnc(ctx context.Context, caller int, msg string, args ...any)  {}
func (m *mockLogger) Errorc(ctx context.Context, caller int, msg string, args ...any) {}

const testPackageID = "0x1234"

func vaultObjectJSON(objectID, balance, freqMs, lastMs string) string {
	return `{
		"data": {
			"objectId": "` + objectID + `",
			"version": "7",
			"digest": "9WzS",
			"type": "` + testPackageID + `::dca::DCAVault",
			"content": {
				"dataType": "moveObject",
				"type": "` + testPackageID + `::dca::DCAVault",
				"fields": {
					"id": {"id": "` + objectID + `"},
					"owner": "0xowner",
					"balance": "` + balance + `",
					"target_asset": "SUI",
					"amount_per_trade": "100000000",
					"frequency_ms": "` + freqMs + `",
					"last_execution_ms": "` + lastMs + `",
					"total_executions": "3",
					"is_active": true,
					"total_invested": "300000000"
				}
			}
		}
	}`
}

// rpcServer answers each JSON-RPC method with a canned result.
func rpcServer(t *testing.T, results map[string]string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("malformed rpc request: %v", err)
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		result, ok := results[req.Method]
		if !ok {
			t.Errorf("unexpected rpc method %q", req.Method)
			result = "null"
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jsonrpc":"2.0","id":` + strconv.FormatInt(req.ID, 10) + `,"result":` + result + `}`))
	}))
}

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()

	c, err := NewClient(ClientConfig{RPCURL: url, PackageID: testPackageID}, &mockLogger{})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return c
}

func TestGetVault(t *testing.T) {
	server := rpcServer(t, map[string]string{
		"sui_getObject": vaultObjectJSON("0xv1", "900000000", "604800000", "1000"),
	})
	defer server.Close()

	c := newTestClient(t, server.URL)

	v, err := c.GetVault(context.Background(), "0xv1")
	if err != nil {
		t.Fatalf("GetVault() error = %v", err)
	}

	if v.ID != "0xv1" {
		t.Errorf("ID = %q, want 0xv1", v.ID)
	}
	if v.Balance != 900000000 {
		t.Errorf("Balance = %d, want 900000000", v.Balance)
	}
	if v.TargetAsset != "SUI" {
		t.Errorf("TargetAsset = %q, want SUI", v.TargetAsset)
	}
	if v.FrequencyMs != 604800000 || v.LastExecutionMs != 1000 {
		t.Errorf("schedule = (%d, %d), want (604800000, 1000)", v.FrequencyMs, v.LastExecutionMs)
	}
	if !v.ScheduleValid {
		t.Error("ScheduleValid = false, want true")
	}
	if !v.IsActive || v.TotalExecutions != 3 {
		t.Errorf("IsActive = %v, TotalExecutions = %d", v.IsActive, v.TotalExecutions)
	}
}

func TestGetVault_NotFound(t *testing.T) {
	server := rpcServer(t, map[string]string{
		"sui_getObject": `{"error": {"code": "notExists", "object_id": "0xdead"}}`,
	})
	defer server.Close()

	c := newTestClient(t, server.URL)

	_, err := c.GetVault(context.Background(), "0xdead")
	if apperror.GetCode(err) != apperror.CodeVaultNotFound {
		t.Errorf("error code = %v, want %v", apperror.GetCode(err), apperror.CodeVaultNotFound)
	}
}

func TestListVaults(t *testing.T) {
	page := `{
		"data": [` +
		vaultObjectJSON("0xv1", "900000000", "604800000", "1000") + `,` +
		vaultObjectJSON("0xv2", "0", "86400000", "2000") + `,
		{"data": {"objectId": "0xjunk", "content": null}}
	],
		"hasNextPage": false,
		"nextCursor": null
	}`

	server := rpcServer(t, map[string]string{"suix_getOwnedObjects": page})
	defer server.Close()

	c := newTestClient(t, server.URL)

	vaults, err := c.ListVaults(context.Background(), "0xowner")
	if err != nil {
		t.Fatalf("ListVaults() error = %v", err)
	}

	// The contentless object is skipped, not fatal.
	if len(vaults) != 2 {
		t.Fatalf("len(vaults) = %d, want 2", len(vaults))
	}
	if vaults[0].ID != "0xv1" || vaults[1].ID != "0xv2" {
		t.Errorf("vault IDs = %q, %q", vaults[0].ID, vaults[1].ID)
	}
}

func TestListVaults_MalformedScheduleIsLenient(t *testing.T) {
	page := `{
		"data": [` + vaultObjectJSON("0xv1", "900000000", "weekly", "soon") + `],
		"hasNextPage": false
	}`

	server := rpcServer(t, map[string]string{"suix_getOwnedObjects": page})
	defer server.Close()

	c := newTestClient(t, server.URL)

	vaults, err := c.ListVaults(context.Background(), "0xowner")
	if err != nil {
		t.Fatalf("ListVaults() error = %v", err)
	}
	if len(vaults) != 1 {
		t.Fatalf("len(vaults) = %d, want 1", len(vaults))
	}
	if vaults[0].ScheduleValid {
		t.Error("ScheduleValid = true for non-numeric schedule fields")
	}
}

func TestRPCErrorIsSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":-32602,"message":"invalid params"}}`))
	}))
	defer server.Close()

	c := newTestClient(t, server.URL)

	_, err := c.ListVaults(context.Background(), "0xowner")
	if apperror.GetCode(err) != apperror.CodeLedgerRPCError {
		t.Errorf("error code = %v, want %v", apperror.GetCode(err), apperror.CodeLedgerRPCError)
	}
}

func TestTargetAssetResolvedFromCoinType(t *testing.T) {
	// Vault whose target_asset is an unrecognized shape but whose
	// target_asset_type names a registered coin.
	object := `{
		"data": {
			"objectId": "0xv1",
			"type": "` + testPackageID + `::dca::DCAVault",
			"content": {
				"dataType": "moveObject",
				"type": "` + testPackageID + `::dca::DCAVault",
				"fields": {
					"id": {"id": "0xv1"},
					"owner": "0xowner",
					"balance": "100",
					"target_asset": 42,
					"target_asset_type": "` + asset.CoinTypeWETHMainnet + `",
					"amount_per_trade": "10",
					"frequency_ms": "86400000",
					"last_execution_ms": "0",
					"total_executions": "0",
					"is_active": true,
					"total_invested": "0"
				}
			}
		}
	}`

	server := rpcServer(t, map[string]string{"sui_getObject": object})
	defer server.Close()

	c, err := NewClient(ClientConfig{
		RPCURL:    server.URL,
		PackageID: testPackageID,
		Assets:    asset.DefaultRegistry(),
		Network:   asset.Mainnet,
	}, &mockLogger{})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	v, err := c.GetVault(context.Background(), "0xv1")
	if err != nil {
		t.Fatalf("GetVault() error = %v", err)
	}
	if v.TargetAsset != "WETH" {
		t.Errorf("TargetAsset = %q, want WETH", v.TargetAsset)
	}
}

func TestDecodeTargetAssetShapes(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		fallback string
		want     string
	}{
		{name: "plain string", raw: `"SUI"`, want: "SUI"},
		{name: "move string object", raw: `{"bytes": "WETH"}`, want: "WETH"},
		{name: "byte vector head", raw: `["USDT", "x"]`, want: "USDT"},
		{name: "unrecognized uses fallback", raw: `42`, fallback: "SUI", want: "SUI"},
		{name: "unrecognized without fallback", raw: `42`, want: "USDC"},
		{name: "absent without fallback", raw: ``, want: "USDC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var raw json.RawMessage
			if tt.raw != "" {
				raw = json.RawMessage(tt.raw)
			}
			if got := decodeTargetAsset(raw, tt.fallback); got != tt.want {
				t.Errorf("decodeTargetAsset(%s) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
