package service

import (
	"net/http"

	"github.com/flymeaway/flight-price-scanner/internal/pkg/exception"
)

// ErrProviderAuth hides the upstream 401 behind a gateway error so an API
// caller does not mistake it for a problem with their own request.
var ErrProviderAuth = exception.ApplicationError{
	Message:    "flight data provider authentication failed",
	StatusCode: http.StatusBadGateway,
}

var ErrHistoryUnavailable = exception.ApplicationError{
	Message:    "search history unavailable",
	StatusCode: http.StatusServiceUnavailable,
}
