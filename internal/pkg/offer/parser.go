package offer

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/flymeaway/flight-price-scanner/internal/pkg/exception"
)

// upstream timestamps carry no zone, e.g. "2024-06-07T21:35:00"
const timestampLayout = "2006-01-02T15:04:05"

var ErrMalformedResponse = exception.ApplicationError{
	Message:    "malformed flight offers response",
	StatusCode: http.StatusBadGateway,
}

// raw response shape of the upstream flight-offers endpoint. Only the
// fields the scanner consumes are declared; everything else is dropped
// during decoding.
type searchResponse struct {
	Data []rawOffer `json:"data"`
}

type rawOffer struct {
	Price       rawPrice       `json:"price"`
	Itineraries []rawItinerary `json:"itineraries"`
}

type rawPrice struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

type rawItinerary struct {
	Duration string       `json:"duration"`
	Segments []rawSegment `json:"segments"`
}

type rawSegment struct {
	Departure   rawEndpoint `json:"departure"`
	Arrival     rawEndpoint `json:"arrival"`
	CarrierCode string      `json:"carrierCode"`
	Number      string      `json:"number"`
	Duration    string      `json:"duration"`
}

type rawEndpoint struct {
	IATACode string `json:"iataCode"`
	At       string `json:"at"`
}

// ParseResponse converts a raw flight-offers payload into typed offers,
// preserving upstream ordering of offers, itineraries and segments.
// Any shape mismatch fails loudly: prices are never silently zeroed and
// one-way results are rejected since the scanner is round-trip only.
func ParseResponse(body []byte) ([]Offer, error) {
	var response searchResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("decode body (%s): %w", err, ErrMalformedResponse)
	}

	offers := make([]Offer, 0, len(response.Data))

	for i, raw := range response.Data {
		parsed, err := parseOffer(raw)
		if err != nil {
			return nil, fmt.Errorf("offer %d: %w", i, err)
		}

		offers = append(offers, parsed)
	}

	return offers, nil
}

func parseOffer(raw rawOffer) (Offer, error) {
	price, err := strconv.ParseFloat(raw.Price.Total, 64)
	if err != nil {
		return Offer{}, fmt.Errorf("non-numeric price %q: %w", raw.Price.Total, ErrMalformedResponse)
	}

	if price <= 0 {
		return Offer{}, fmt.Errorf("non-positive price %v: %w", price, ErrMalformedResponse)
	}

	if raw.Price.Currency == "" {
		return Offer{}, fmt.Errorf("missing currency: %w", ErrMalformedResponse)
	}

	// outbound then return, nothing else: downstream logic is
	// round-trip only
	if len(raw.Itineraries) != 2 {
		return Offer{}, fmt.Errorf("expected 2 itineraries, got %d: %w",
			len(raw.Itineraries), ErrMalformedResponse)
	}

	outbound, err := parseItinerary(raw.Itineraries[0])
	if err != nil {
		return Offer{}, fmt.Errorf("outbound itinerary: %w", err)
	}

	inbound, err := parseItinerary(raw.Itineraries[1])
	if err != nil {
		return Offer{}, fmt.Errorf("return itinerary: %w", err)
	}

	return Offer{
		Price:    price,
		Currency: raw.Price.Currency,
		Outbound: outbound,
		Return:   inbound,
	}, nil
}

func parseItinerary(raw rawItinerary) (Itinerary, error) {
	if len(raw.Segments) == 0 {
		return Itinerary{}, fmt.Errorf("itinerary without segments: %w", ErrMalformedResponse)
	}

	segments := make([]Segment, len(raw.Segments))

	for i, seg := range raw.Segments {
		departureAt, err := time.Parse(timestampLayout, seg.Departure.At)
		if err != nil {
			return Itinerary{}, fmt.Errorf("segment %d departure time %q: %w",
				i, seg.Departure.At, ErrMalformedResponse)
		}

		arrivalAt, err := time.Parse(timestampLayout, seg.Arrival.At)
		if err != nil {
			return Itinerary{}, fmt.Errorf("segment %d arrival time %q: %w",
				i, seg.Arrival.At, ErrMalformedResponse)
		}

		segments[i] = Segment{
			Origin:      seg.Departure.IATACode,
			Destination: seg.Arrival.IATACode,
			DepartureAt: departureAt,
			ArrivalAt:   arrivalAt,
			CarrierCode: seg.CarrierCode,
			Number:      seg.Number,
			Duration:    seg.Duration,
		}
	}

	return Itinerary{
		Duration: raw.Duration,
		Segments: segments,
	}, nil
}
