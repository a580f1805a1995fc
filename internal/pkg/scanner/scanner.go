package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultConcurrency  = 5
	defaultPaceInterval = 200 * time.Millisecond
	defaultCooldown     = 60 * time.Second
)

// TokenSource exchanges credentials for a bearer token owned by one scan.
type TokenSource interface {
	Acquire(ctx context.Context) (string, error)
}

// Progress reports how many date pairs have completed, in whichever order
// they finished. Completed is monotonically non-decreasing and reaches
// Total exactly when every pair is accounted for.
type Progress struct {
	Completed int
	Total     int
}

type Options struct {
	// Concurrency caps in-flight upstream requests. The upstream
	// tolerates only a handful before 429 pressure erases the gain.
	Concurrency int
	// PaceInterval spaces out request admissions.
	PaceInterval time.Duration
	// Cooldown pauses all new dispatch after a rate limit survived the
	// per-call retries.
	Cooldown   time.Duration
	OnProgress func(Progress)
	OnCooldown func(time.Duration)
}

// Scanner sweeps a date range for the cheapest matching round trip per
// date pair. One scan issues exactly one fetch per pair under a bounded
// concurrency cap, and a pair's failure never aborts the others.
type Scanner struct {
	tokens  TokenSource
	fetcher *Fetcher
	opts    Options
	pace    *rate.Limiter

	mu       sync.Mutex
	resumeAt time.Time
}

func New(tokens TokenSource, source OfferSearcher, opts Options) *Scanner {
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}

	if opts.PaceInterval <= 0 {
		opts.PaceInterval = defaultPaceInterval
	}

	if opts.Cooldown <= 0 {
		opts.Cooldown = defaultCooldown
	}

	return &Scanner{
		tokens:  tokens,
		fetcher: NewFetcher(source),
		opts:    opts,
		pace:    rate.NewLimiter(rate.Every(opts.PaceInterval), 1),
	}
}

// Scan acquires one access token and drives the fetcher across every date
// pair of the config. Only token acquisition is fatal; all per-pair
// conditions are captured into the returned result set.
func (s *Scanner) Scan(ctx context.Context, cfg Config) (ScanResult, error) {
	if err := cfg.Validate(); err != nil {
		return ScanResult{}, fmt.Errorf("invalid scan config: %w", err)
	}

	token, err := s.tokens.Acquire(ctx)
	if err != nil {
		return ScanResult{}, fmt.Errorf("acquire access token: %w", err)
	}

	pairs := cfg.DatePairs()
	results := make(chan DatePairResult, len(pairs))
	sem := make(chan struct{}, s.opts.Concurrency)

	var waitGroup sync.WaitGroup

	waitGroup.Add(len(pairs))
	for _, pair := range pairs {
		go func(pair DatePair) {
			defer waitGroup.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			results <- s.fetchPaced(ctx, token, cfg, pair)
		}(pair)
	}

	go func() {
		waitGroup.Wait()
		close(results)
	}()

	collected := make([]DatePairResult, 0, len(pairs))
	for result := range results {
		collected = append(collected, result)

		if result.Failed() {
			slog.WarnContext(ctx, "date pair failed",
				slog.String("departure", result.Pair.Departure.Format(time.DateOnly)),
				slog.String("status", string(result.Status)),
				slog.Any("error", result.Err))
		}

		if s.opts.OnProgress != nil {
			s.opts.OnProgress(Progress{Completed: len(collected), Total: len(pairs)})
		}
	}

	return Aggregate(collected), nil
}

// fetchPaced admits one request through the pacing limiter and any active
// cooldown window, then fetches. Cancellation is captured into the pair's
// result so the collector still sees exactly one outcome per pair.
func (s *Scanner) fetchPaced(ctx context.Context, token string, cfg Config, pair DatePair) DatePairResult {
	if err := s.pace.Wait(ctx); err != nil {
		return DatePairResult{Pair: pair, Status: StatusUpstreamError, Err: err}
	}

	if err := s.waitCooldown(ctx); err != nil {
		return DatePairResult{Pair: pair, Status: StatusUpstreamError, Err: err}
	}

	result := s.fetcher.Fetch(ctx, token, cfg, pair)

	if result.Status == StatusRateLimited {
		s.beginCooldown()
	}

	return result
}

func (s *Scanner) waitCooldown(ctx context.Context) error {
	for {
		s.mu.Lock()
		remaining := time.Until(s.resumeAt)
		s.mu.Unlock()

		if remaining <= 0 {
			return nil
		}

		select {
		case <-time.After(remaining):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// beginCooldown pauses all new dispatch. Further rate limits while
// already cooling down re-arm the window rather than stacking it.
func (s *Scanner) beginCooldown() {
	s.mu.Lock()
	resumeAt := time.Now().Add(s.opts.Cooldown)
	armed := resumeAt.After(s.resumeAt)
	if armed {
		s.resumeAt = resumeAt
	}
	s.mu.Unlock()

	if armed && s.opts.OnCooldown != nil {
		s.opts.OnCooldown(s.opts.Cooldown)
	}
}
