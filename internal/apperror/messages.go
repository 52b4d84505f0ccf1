package apperror

// messages maps error codes to human-readable messages
var messages = map[Code]string{
	// General validation
	CodeRequiredField:   "Required field is missing",
	CodeInvalidInput:    "Invalid input provided",
	CodeInvalidFormat:   "Invalid data format",
	CodeNotFound:        "Resource not found",
	CodeValidationError: "Validation error",

	// Configuration
	CodeConfigurationError: "Configuration error",

	// External service errors
	CodeExternalServiceError: "External service error",
	CodeServiceTimeout:       "Service request timeout",
	CodeServiceUnavailable:   "Service temporarily unavailable",
	CodeRateLimitExceeded:    "Rate limit exceeded",

	// System errors
	CodeInternalError: "Internal server error",
	CodeUnknownError:  "An unknown error occurred",

	// Order book / pricing
	CodeNoData:                "No price data available for pool",
	CodeInsufficientLiquidity: "Insufficient liquidity in pool",
	CodeInvalidPrice:          "Invalid price calculated",
	CodeOrderbookFetchFailed:  "Failed to fetch order book",
	CodeInvalidOrderbook:      "Invalid order book data",

	// Swap execution
	CodeEstimationFailed: "Failed to estimate swap output",
	CodeNoSession:        "No wallet connected",

	// Venue errors
	CodeVenueConnectionFailed: "Failed to connect to order-book venue",
	CodeVenueAPIError:         "Order-book venue API error",
	CodeVenueRateLimited:      "Order-book venue rate limit exceeded",

	// Ledger errors
	CodeLedgerConnectionFailed: "Failed to connect to ledger node",
	CodeLedgerRPCError:         "Ledger RPC call failed",
	CodeVaultNotFound:          "Vault not found",
	CodeInvalidVaultRecord:     "Invalid vault record",

	// WebSocket errors
	CodeWebSocketConnectionError: "WebSocket connection error",
	CodeWebSocketReconnecting:    "WebSocket reconnecting",
	CodeWebSocketClosed:          "WebSocket connection closed",
	CodeWebSocketSendError:       "Failed to send WebSocket message",

	// Circuit breaker errors
	CodeCircuitOpen:     "Circuit breaker is open",
	CodeCircuitHalfOpen: "Circuit breaker is half-open",
}

// Message returns the default human-readable message for a code.
func Message(code Code) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return string(code)
}
