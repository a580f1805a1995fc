package transport

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/flymeaway/flight-price-scanner/internal/app/dto"
)

func decodeAirportQuery(req *http.Request) (interface{}, error) {
	query := &dto.AirportQuery{
		Query: req.URL.Query().Get("q"),
	}

	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("error validate request: %w", err)
	}

	return query, nil
}

func decodeHistoryQuery(req *http.Request) (interface{}, error) {
	query := &dto.HistoryQuery{}

	if raw := req.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid limit %q", raw)
		}

		query.Limit = limit
	}

	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("error validate request: %w", err)
	}

	return query, nil
}
