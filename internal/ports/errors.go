package ports

import "errors"

// Standard application-level errors.
// Adapters should wrap underlying infrastructure errors with these standard errors.
var (
	// General Errors
	ErrUnknown         = errors.New("unknown error occurred")
	ErrInvalidRequest  = errors.New("invalid request parameters or format")
	ErrNotFound        = errors.New("resource not found")
	ErrTimeout         = errors.New("operation timed out")
	ErrContextCanceled = errors.New("operation canceled via context")

	// Market Data Provider Errors
	ErrProviderUnavailable = errors.New("market data provider is unavailable")
	ErrConnectionFailed    = errors.New("failed to connect to the market data provider")
	ErrRateLimited         = errors.New("provider API rate limit exceeded")
	ErrSymbolNotFound      = errors.New("no data available for symbol")

	// Database Specific Errors
	ErrDBConnection = errors.New("database connection error")
	ErrQueryFailed  = errors.New("database query failed")
	ErrUpdateFailed = errors.New("database update failed")
)
