//go:build unit

package dto

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func validScanRequest() ScanRequest {
	return ScanRequest{
		Origin:       "ZRH",
		Destination:  "LIS",
		DepartureDay: "Friday",
		Nights:       7,
		StartDate:    "2026-06-01",
		EndDate:      "2026-06-30",
		TravelClass:  "ECONOMY",
	}
}

func TestScanRequest_Validate(t *testing.T) {
	// Initialize validator for tests
	_ = InitValidator()

	validateRequest := func(mutate func(r *ScanRequest), wantErr bool, wantMsg string) func(t *testing.T) {
		return func(t *testing.T) {
			req := validScanRequest()
			if mutate != nil {
				mutate(&req)
			}

			err := req.Validate()
			if (err != nil) != wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, wantErr)
			}

			if wantErr && err != nil && wantMsg != "" {
				if diff := cmp.Diff(wantMsg, err.Error()); diff != "" {
					t.Fatalf("Validate() error message mismatch (-want +got):\n%s", diff)
				}
			}
		}
	}

	t.Run("valid_request", validateRequest(nil, false, ""))

	t.Run("valid_with_options", validateRequest(func(r *ScanRequest) {
		r.DirectOnly = true
		r.DepartureTimeOption = "morning"
		r.ReturnTimeOption = "evening"
		r.Currency = "USD"
	}, false, ""))

	t.Run("missing_origin", validateRequest(func(r *ScanRequest) {
		r.Origin = ""
	}, true, "origin is a required field"))

	t.Run("lowercase_origin", validateRequest(func(r *ScanRequest) {
		r.Origin = "zrh"
	}, true, ""))

	t.Run("origin_too_long", validateRequest(func(r *ScanRequest) {
		r.Origin = "ZRHX"
	}, true, ""))

	t.Run("bad_departure_day", validateRequest(func(r *ScanRequest) {
		r.DepartureDay = "Freitag"
	}, true, ""))

	t.Run("zero_nights", validateRequest(func(r *ScanRequest) {
		r.Nights = 0
	}, true, ""))

	t.Run("too_many_nights", validateRequest(func(r *ScanRequest) {
		r.Nights = 91
	}, true, ""))

	t.Run("bad_date_format", validateRequest(func(r *ScanRequest) {
		r.StartDate = "01.06.2026"
	}, true, ""))

	t.Run("bad_travel_class", validateRequest(func(r *ScanRequest) {
		r.TravelClass = "COACH"
	}, true, ""))

	t.Run("bad_time_option", validateRequest(func(r *ScanRequest) {
		r.DepartureTimeOption = "night"
	}, true, ""))

	t.Run("end_before_start", validateRequest(func(r *ScanRequest) {
		r.StartDate = "2026-06-30"
		r.EndDate = "2026-06-01"
	}, true, "end_date must not be before start_date"))

	t.Run("range_too_wide", validateRequest(func(r *ScanRequest) {
		r.StartDate = "2026-01-01"
		r.EndDate = "2027-01-01"
	}, true, "date range must not exceed 330 days"))

	t.Run("single_day_range", validateRequest(func(r *ScanRequest) {
		r.EndDate = r.StartDate
	}, false, ""))
}

func TestScanRequest_Bind(t *testing.T) {
	_ = InitValidator()

	bindRequest := func(req ScanRequest, wantErr bool) func(t *testing.T) {
		return func(t *testing.T) {
			err := req.Bind(nil)
			if (err != nil) != wantErr {
				t.Fatalf("Bind() error = %v, wantErr %v", err, wantErr)
			}
		}
	}

	t.Run("valid_bind", bindRequest(validScanRequest(), false))
	t.Run("invalid_bind", bindRequest(ScanRequest{}, true))
}

func TestAirportQuery_Validate(t *testing.T) {
	_ = InitValidator()

	validateRequest := func(query string, wantErr bool) func(t *testing.T) {
		return func(t *testing.T) {
			q := AirportQuery{Query: query}

			err := q.Validate()
			if (err != nil) != wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, wantErr)
			}
		}
	}

	t.Run("valid_query", validateRequest("zurich", false))
	t.Run("missing_query", validateRequest("", true))
	t.Run("too_short", validateRequest("z", true))
}

func TestHistoryQuery_Validate(t *testing.T) {
	_ = InitValidator()

	validateRequest := func(limit int, wantErr bool) func(t *testing.T) {
		return func(t *testing.T) {
			q := HistoryQuery{Limit: limit}

			err := q.Validate()
			if (err != nil) != wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, wantErr)
			}
		}
	}

	t.Run("zero_means_default", validateRequest(0, false))
	t.Run("valid_limit", validateRequest(25, false))
	t.Run("over_limit", validateRequest(101, true))
}
