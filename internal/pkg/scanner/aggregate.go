package scanner

import (
	"sort"

	"github.com/flymeaway/flight-price-scanner/internal/pkg/offer"
)

// PricePoint is one successful date pair in the price trend: the cheapest
// surviving offer for that departure date.
type PricePoint struct {
	Pair     DatePair
	Price    float64
	Currency string
	Offer    offer.Offer
}

// ScanResult is the read-only aggregate of a finished scan. Results holds
// one entry per date pair in chronological departure order; Trend holds
// one point per pair that produced an offer; Cheapest is nil when no pair
// did, which is a legitimate outcome rather than an error.
type ScanResult struct {
	Results  []DatePairResult
	Trend    []PricePoint
	Cheapest *PricePoint
}

// Counts breaks the per-pair outcomes down for reporting.
func (r ScanResult) Counts() (withOffers, empty, failed int) {
	for _, result := range r.Results {
		switch {
		case result.Status == StatusOffer:
			withOffers++
		case result.Status == StatusNoOffers:
			empty++
		default:
			failed++
		}
	}

	return withOffers, empty, failed
}

// Aggregate reduces the collected per-pair outcomes into a ScanResult.
// Pairs may have completed out of order under concurrency, so everything
// is re-sorted by departure date first; the global-cheapest tie break uses
// that date order, not completion order.
func Aggregate(results []DatePairResult) ScanResult {
	sorted := make([]DatePairResult, len(results))
	copy(sorted, results)

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Pair.Departure.Before(sorted[j].Pair.Departure)
	})

	var (
		trend    []PricePoint
		cheapest *PricePoint
	)

	for _, result := range sorted {
		if result.Status != StatusOffer {
			continue
		}

		point := PricePoint{
			Pair:     result.Pair,
			Price:    result.Offer.Price,
			Currency: result.Offer.Currency,
			Offer:    *result.Offer,
		}
		trend = append(trend, point)

		// strict less keeps the earlier date on exact ties
		if cheapest == nil || point.Price < cheapest.Price {
			latest := point
			cheapest = &latest
		}
	}

	return ScanResult{Results: sorted, Trend: trend, Cheapest: cheapest}
}
