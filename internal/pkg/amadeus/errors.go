package amadeus

import (
	"net/http"

	"github.com/flymeaway/flight-price-scanner/internal/pkg/exception"
)

// ErrTokenRequest means the credential exchange was rejected. Every later
// call depends on the token, so callers treat this as fatal to the scan.
var ErrTokenRequest = exception.ApplicationError{
	Message:    "access token request rejected",
	StatusCode: http.StatusUnauthorized,
}

// ErrRateLimited means the upstream kept answering 429 after the client
// exhausted its retry budget.
var ErrRateLimited = exception.ApplicationError{
	Message:    "flight offers rate limit exceeded",
	StatusCode: http.StatusTooManyRequests,
}

// ErrUpstream covers non-2xx, non-429 answers and transport failures.
var ErrUpstream = exception.ApplicationError{
	Message:    "flight offers upstream error",
	StatusCode: http.StatusBadGateway,
}
