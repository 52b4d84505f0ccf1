// Package domain contains the core domain types for the swap context.
package domain

import (
	"fmt"

	"github.com/avela-dev/dcavault/internal/pool"
)

const (
	// ClockObjectID is the well-known shared clock object on the ledger.
	ClockObjectID = "0x6"

	// PendingDigest marks a built transaction that has not been signed.
	// The engine never signs; the digest is known only after submission.
	PendingDigest = "pending"

	swapModule   = "vault"
	swapFunction = "execute_swap"
)

// SwapQuote is the priced plan for one swap attempt.
type SwapQuote struct {
	InputAmount    uint64
	ExpectedOutput uint64
	MinOutput      uint64
	SlippageBps    int64
}

// TransactionData is an unsigned swap call, ready for an external signer.
type TransactionData struct {
	PackageID   string
	VaultID     string
	PoolKey     pool.Key
	MinOutput   uint64
	ClockObject string
	Sender      string
}

// NewTransactionData builds the swap call for a vault.
func NewTransactionData(packageID, vaultID, sender string, key pool.Key, minOutput uint64) *TransactionData {
	return &TransactionData{
		PackageID:   packageID,
		VaultID:     vaultID,
		PoolKey:     key,
		MinOutput:   minOutput,
		ClockObject: ClockObjectID,
		Sender:      sender,
	}
}

// Target returns the fully qualified move call target.
func (t *TransactionData) Target() string {
	return fmt.Sprintf("%s::%s::%s", t.PackageID, swapModule, swapFunction)
}

// SwapResult is the terminal outcome of one swap attempt. Success is
// false on any fault; Err then carries a coded, human-readable error.
type SwapResult struct {
	Success     bool
	VaultID     string
	PoolKey     pool.Key
	Quote       *SwapQuote
	Transaction *TransactionData
	Digest      string
	Err         error
}

// Failed builds a failure result for a vault.
func Failed(vaultID string, key pool.Key, err error) *SwapResult {
	return &SwapResult{
		VaultID: vaultID,
		PoolKey: key,
		Err:     err,
	}
}

// ErrorMessage returns the failure message, or "" on success.
func (r *SwapResult) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}
