package offer

import (
	"fmt"
	"time"
)

// Segment is one non-stop flight leg. Timestamps are timezone-naive local
// times as returned by the upstream search API.
type Segment struct {
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	DepartureAt time.Time `json:"departure_at"`
	ArrivalAt   time.Time `json:"arrival_at"`
	CarrierCode string    `json:"carrier_code"`
	Number      string    `json:"number"`
	Duration    string    `json:"duration"`
}

// FlightNumber returns the display form, e.g. "LX 318".
func (s Segment) FlightNumber() string {
	return fmt.Sprintf("%s %s", s.CarrierCode, s.Number)
}

// Itinerary is an ordered, non-empty sequence of segments for one journey
// direction. Duration is the upstream ISO-8601 total travel time.
type Itinerary struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

// DepartureAt returns the departure time of the first segment.
func (i Itinerary) DepartureAt() time.Time {
	return i.Segments[0].DepartureAt
}

// Offer is a priced round trip: outbound and return itineraries in fixed
// order, with a single currency-tagged total price.
type Offer struct {
	Price    float64   `json:"price"`
	Currency string    `json:"currency"`
	Outbound Itinerary `json:"outbound"`
	Return   Itinerary `json:"return"`
}

// Cheapest returns the minimum-price offer, keeping the first encountered
// one on exact ties. Returns nil for an empty slice.
func Cheapest(offers []Offer) *Offer {
	if len(offers) == 0 {
		return nil
	}

	cheapest := &offers[0]
	for i := 1; i < len(offers); i++ {
		if offers[i].Price < cheapest.Price {
			cheapest = &offers[i]
		}
	}

	return cheapest
}
