package dto

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/flymeaway/flight-price-scanner/internal/pkg/exception"
)

// longest range the upstream search accepts; anything bigger is a typo
const maxScanRangeDays = 330

// ScanRequest describes one full date-range scan: a route, a preferred
// departure weekday, a stay length and the travel window to sweep.
type ScanRequest struct {
	Origin              string `json:"origin" validate:"required,len=3,alpha,uppercase"`
	Destination         string `json:"destination" validate:"required,len=3,alpha,uppercase"`
	DepartureDay        string `json:"departure_day" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	Nights              int    `json:"nights" validate:"required,min=1,max=90"`
	StartDate           string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate             string `json:"end_date" validate:"required,datetime=2006-01-02"`
	DirectOnly          bool   `json:"direct_only"`
	TravelClass         string `json:"travel_class" validate:"required,oneof=ECONOMY PREMIUM_ECONOMY BUSINESS FIRST"`
	DepartureTimeOption string `json:"departure_time_option" validate:"omitempty,oneof=any morning afternoon_evening evening"`
	ReturnTimeOption    string `json:"return_time_option" validate:"omitempty,oneof=any morning afternoon_evening evening"`
	Currency            string `json:"currency" validate:"omitempty,len=3,alpha,uppercase"`
}

func (s *ScanRequest) Bind(_ *http.Request) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("error validate request: %w", err)
	}

	return nil
}

func (s *ScanRequest) Validate() error {
	if err := ValidateSingleError(s); err != nil {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}

	// tag validation already guarantees both dates parse
	startDate, _ := time.Parse(time.DateOnly, s.StartDate)
	endDate, _ := time.Parse(time.DateOnly, s.EndDate)

	if endDate.Before(startDate) {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    "end_date must not be before start_date",
		}
	}

	if endDate.Sub(startDate) > maxScanRangeDays*24*time.Hour {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    fmt.Sprintf("date range must not exceed %d days", maxScanRangeDays),
		}
	}

	return nil
}

// TrendRow is one row of the price trend: the cheapest matching round
// trip found for one departure date.
type TrendRow struct {
	DepartureDate    string  `json:"departure_date"`
	DepartureTime    string  `json:"departure_time"`
	DepartureFlight  string  `json:"departure_flight"`
	OutboundDuration string  `json:"outbound_duration"`
	ReturnDate       string  `json:"return_date"`
	ReturnTime       string  `json:"return_time"`
	ReturnFlight     string  `json:"return_flight"`
	ReturnDuration   string  `json:"return_duration"`
	Price            float64 `json:"price"`
	Currency         string  `json:"currency"`
	Origin           string  `json:"origin"`
	Destination      string  `json:"destination"`
}

type ScanMetadata struct {
	PairsScanned    int  `json:"pairs_scanned"`
	PairsWithOffers int  `json:"pairs_with_offers"`
	PairsEmpty      int  `json:"pairs_empty"`
	PairsFailed     int  `json:"pairs_failed"`
	SearchTimeMs    int  `json:"search_time_ms"`
	CacheHit        bool `json:"cache_hit"`
}

// ScanResponse is the response struct for the scan endpoint. Cheapest is
// null and Prices empty when no date pair produced a matching offer; that
// is a valid outcome, not an error.
type ScanResponse struct {
	SearchCriteria ScanRequest  `json:"search_criteria"`
	Metadata       ScanMetadata `json:"metadata"`
	Cheapest       *TrendRow    `json:"cheapest"`
	Prices         []TrendRow   `json:"prices"`
}

// AirportQuery is the decoded query of the airport lookup endpoint.
type AirportQuery struct {
	Query string `json:"query" validate:"required,min=2"`
}

func (q *AirportQuery) Validate() error {
	if err := ValidateSingleError(q); err != nil {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}

	return nil
}

type Airport struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type AirportResponse struct {
	Airports []Airport `json:"airports"`
}

// HistoryQuery is the decoded query of the search-history endpoint.
type HistoryQuery struct {
	Limit int `json:"limit" validate:"omitempty,min=1,max=100"`
}

func (q *HistoryQuery) Validate() error {
	if err := ValidateSingleError(q); err != nil {
		return exception.ApplicationError{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		}
	}

	return nil
}

type SearchRecord struct {
	ID        int64           `json:"id"`
	Criteria  json.RawMessage `json:"criteria"`
	CreatedAt time.Time       `json:"created_at"`
}

type HistoryResponse struct {
	Searches []SearchRecord `json:"searches"`
}
