package scanner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/flymeaway/flight-price-scanner/internal/pkg/amadeus"
	"github.com/flymeaway/flight-price-scanner/internal/pkg/offer"
)

type stubTokenSource struct {
	token string
	err   error
	calls int
}

func (s *stubTokenSource) Acquire(context.Context) (string, error) {
	s.calls++

	return s.token, s.err
}

// countingSearcher is safe for concurrent use and answers per departure
// date.
type countingSearcher struct {
	mu      sync.Mutex
	calls   map[string]int
	answers map[string]searchAnswer
}

type searchAnswer struct {
	offers []offer.Offer
	err    error
}

func newCountingSearcher() *countingSearcher {
	return &countingSearcher{
		calls:   make(map[string]int),
		answers: make(map[string]searchAnswer),
	}
}

func (s *countingSearcher) SearchOffers(_ context.Context, _ string, query amadeus.OffersQuery) ([]offer.Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls[query.DepartureDate]++
	answer := s.answers[query.DepartureDate]

	return answer.offers, answer.err
}

func testOptions() Options {
	return Options{
		Concurrency:  3,
		PaceInterval: time.Millisecond,
		Cooldown:     5 * time.Millisecond,
	}
}

func juneFridays() Config {
	return Config{
		Origin:      "ZRH",
		Destination: "LIS",
		Weekday:     time.Friday,
		Nights:      7,
		StartDate:   day(2026, time.June, 1),
		EndDate:     day(2026, time.June, 30),
		Currency:    "EUR",
	}
}

func TestScanner_Scan(t *testing.T) {
	source := newCountingSearcher()
	source.answers["2026-06-05"] = searchAnswer{offers: []offer.Offer{directOffer(500, 9, 10)}}
	source.answers["2026-06-12"] = searchAnswer{offers: []offer.Offer{directOffer(312.40, 9, 10)}}
	source.answers["2026-06-19"] = searchAnswer{err: fmt.Errorf("search offers: %w", amadeus.ErrUpstream)}
	// 2026-06-26 left unanswered, an empty upstream result

	tokens := &stubTokenSource{token: "token"}

	var (
		mu       sync.Mutex
		progress []Progress
	)

	opts := testOptions()
	opts.OnProgress = func(p Progress) {
		mu.Lock()
		progress = append(progress, p)
		mu.Unlock()
	}

	engine := New(tokens, source, opts)

	got, err := engine.Scan(context.Background(), juneFridays())
	assert.NoError(t, err)

	assert.Equal(t, 1, tokens.calls)

	// exactly one fetch and one result per date pair
	assert.Len(t, got.Results, 4)
	for date, calls := range source.calls {
		assert.Equalf(t, 1, calls, "date %s fetched %d times", date, calls)
	}

	withOffers, empty, failed := got.Counts()
	assert.Equal(t, 2, withOffers)
	assert.Equal(t, 1, empty)
	assert.Equal(t, 1, failed)

	if assert.NotNil(t, got.Cheapest) {
		assert.Equal(t, 312.40, got.Cheapest.Price)
		assert.Equal(t, day(2026, time.June, 12), got.Cheapest.Pair.Departure)
	}

	// progress is monotone and accounts for every pair exactly once
	assert.Len(t, progress, 4)
	for i, p := range progress {
		assert.Equal(t, i+1, p.Completed)
		assert.Equal(t, 4, p.Total)
	}
}

func TestScanner_Scan_TokenFailure(t *testing.T) {
	tokens := &stubTokenSource{err: fmt.Errorf("token endpoint: %w", amadeus.ErrTokenRequest)}
	engine := New(tokens, newCountingSearcher(), testOptions())

	_, err := engine.Scan(context.Background(), juneFridays())

	assert.Error(t, err)
	assert.True(t, errors.Is(err, amadeus.ErrTokenRequest))
}

func TestScanner_Scan_InvalidConfig(t *testing.T) {
	tokens := &stubTokenSource{token: "token"}
	engine := New(tokens, newCountingSearcher(), testOptions())

	cfg := juneFridays()
	cfg.Nights = 0

	_, err := engine.Scan(context.Background(), cfg)

	assert.Error(t, err)
	// the config is rejected before any credentials are spent
	assert.Equal(t, 0, tokens.calls)
}

func TestScanner_Scan_AllEmpty(t *testing.T) {
	engine := New(&stubTokenSource{token: "token"}, newCountingSearcher(), testOptions())

	got, err := engine.Scan(context.Background(), juneFridays())

	assert.NoError(t, err)
	assert.Nil(t, got.Cheapest)
	assert.Empty(t, got.Trend)
	assert.Len(t, got.Results, 4)
}

func TestScanner_Scan_RateLimitCooldown(t *testing.T) {
	source := newCountingSearcher()
	for _, date := range []string{"2026-06-05", "2026-06-12", "2026-06-19", "2026-06-26"} {
		source.answers[date] = searchAnswer{err: fmt.Errorf("search offers: %w", amadeus.ErrRateLimited)}
	}

	var (
		mu        sync.Mutex
		cooldowns []time.Duration
	)

	opts := testOptions()
	opts.OnCooldown = func(d time.Duration) {
		mu.Lock()
		cooldowns = append(cooldowns, d)
		mu.Unlock()
	}

	engine := New(&stubTokenSource{token: "token"}, source, opts)

	got, err := engine.Scan(context.Background(), juneFridays())
	assert.NoError(t, err)

	// every pair still gets its own captured outcome
	assert.Len(t, got.Results, 4)
	for _, result := range got.Results {
		assert.Equal(t, StatusRateLimited, result.Status)
	}

	mu.Lock()
	defer mu.Unlock()
	assert.NotEmpty(t, cooldowns)
	for _, d := range cooldowns {
		assert.Equal(t, opts.Cooldown, d)
	}
}

func TestScanner_Scan_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := New(&stubTokenSource{token: "token"}, newCountingSearcher(), testOptions())

	got, err := engine.Scan(ctx, juneFridays())

	// cancellation is captured per pair, never lost
	assert.NoError(t, err)
	assert.Len(t, got.Results, 4)
	for _, result := range got.Results {
		assert.True(t, result.Failed())
	}
}
