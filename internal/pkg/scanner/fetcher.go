package scanner

import (
	"context"
	"errors"
	"time"

	"github.com/flymeaway/flight-price-scanner/internal/pkg/amadeus"
	"github.com/flymeaway/flight-price-scanner/internal/pkg/offer"
)

// Status classifies the outcome of one date pair.
type Status string

const (
	// StatusOffer means at least one offer survived filtering; the
	// cheapest survivor is attached.
	StatusOffer Status = "offer"
	// StatusNoOffers is a valid empty outcome: the upstream had nothing,
	// or filtering removed everything.
	StatusNoOffers Status = "no_offers"
	// StatusRateLimited means 429s persisted through the per-call
	// retries.
	StatusRateLimited Status = "rate_limited"
	// StatusUpstreamError covers other non-2xx answers and transport
	// failures.
	StatusUpstreamError Status = "upstream_error"
	// StatusParseError means the response shape did not match
	// expectations.
	StatusParseError Status = "parse_error"
)

// DatePairResult is the single, immutable outcome produced for one date
// pair: a cheapest surviving offer, an explicit empty marker, or a
// captured failure.
type DatePairResult struct {
	Pair   DatePair
	Status Status
	Offer  *offer.Offer
	Err    error
}

// Failed reports whether the pair ended in a captured failure rather than
// an offer or a legitimate empty outcome.
func (r DatePairResult) Failed() bool {
	return r.Status != StatusOffer && r.Status != StatusNoOffers
}

// OfferSearcher performs one retried upstream search for a date pair and
// returns parsed offers in upstream order.
type OfferSearcher interface {
	SearchOffers(ctx context.Context, token string, query amadeus.OffersQuery) ([]offer.Offer, error)
}

// Fetcher turns one date pair into exactly one DatePairResult. It never
// fails the surrounding scan: every error is captured into the result.
type Fetcher struct {
	source OfferSearcher
}

func NewFetcher(source OfferSearcher) *Fetcher {
	return &Fetcher{source: source}
}

func (f *Fetcher) Fetch(ctx context.Context, token string, cfg Config, pair DatePair) DatePairResult {
	offers, err := f.source.SearchOffers(ctx, token, offersQuery(cfg, pair))
	if err != nil {
		return DatePairResult{Pair: pair, Status: classify(err), Err: err}
	}

	survivors := offer.Filter(offers, cfg.DirectOnly, cfg.DeparturePref, cfg.ReturnPref)

	cheapest := offer.Cheapest(survivors)
	if cheapest == nil {
		return DatePairResult{Pair: pair, Status: StatusNoOffers}
	}

	return DatePairResult{Pair: pair, Status: StatusOffer, Offer: cheapest}
}

func classify(err error) Status {
	switch {
	case errors.Is(err, amadeus.ErrRateLimited):
		return StatusRateLimited
	case errors.Is(err, offer.ErrMalformedResponse):
		return StatusParseError
	default:
		return StatusUpstreamError
	}
}

func offersQuery(cfg Config, pair DatePair) amadeus.OffersQuery {
	return amadeus.OffersQuery{
		Origin:        cfg.Origin,
		Destination:   cfg.Destination,
		DepartureDate: pair.Departure.Format(time.DateOnly),
		ReturnDate:    pair.Return.Format(time.DateOnly),
		TravelClass:   cfg.TravelClass,
		NonStop:       cfg.DirectOnly,
		Currency:      cfg.Currency,
	}
}
