package amadeus

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/go-resty/resty/v2"

	"github.com/flymeaway/flight-price-scanner/internal/pkg/offer"
)

const (
	tokenPath  = "/v1/security/oauth2/token"
	offersPath = "/v2/shopping/flight-offers"

	// API maximum; request everything since time-of-day filtering
	// discards many offers downstream
	maxOfferResults = 250

	throttleKey = "amadeus:flight-offers"
)

type Config struct {
	BaseURL        string
	APIKey         string
	APISecret      string
	RequestTimeout time.Duration
	MaxRetries     int
	RetryBudget    time.Duration
	RateLimitRPS   int
	Limiter        *redis_rate.Limiter
}

// Client talks to the Amadeus self-service API: an OAuth2
// client-credentials token endpoint plus the flight-offers search
// endpoint. Offer searches retry on 429 and transport failures with
// exponential backoff under an overall budget; the token exchange never
// retries.
type Client struct {
	auth *resty.Client
	api  *resty.Client
	cfg  Config
}

func NewClient(cfg Config) *Client {
	auth := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.RequestTimeout)

	api := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.RequestTimeout).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(10 * time.Second).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return err != nil || resp.StatusCode() == http.StatusTooManyRequests
		})

	return &Client{auth: auth, api: api, cfg: cfg}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Acquire exchanges the configured credentials for a bearer token. The
// token is owned by one scan run and never refreshed automatically.
func (c *Client) Acquire(ctx context.Context) (string, error) {
	var token tokenResponse

	resp, err := c.auth.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetFormData(map[string]string{
			"grant_type":    "client_credentials",
			"client_id":     c.cfg.APIKey,
			"client_secret": c.cfg.APISecret,
		}).
		SetResult(&token).
		Post(tokenPath)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}

	if !resp.IsSuccess() {
		return "", fmt.Errorf("status %d (%s): %w",
			resp.StatusCode(), resp.String(), ErrTokenRequest)
	}

	if token.AccessToken == "" {
		return "", fmt.Errorf("empty access token: %w", ErrTokenRequest)
	}

	return token.AccessToken, nil
}

// OffersQuery identifies one round-trip search. Dates are YYYY-MM-DD.
type OffersQuery struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	TravelClass   string
	NonStop       bool
	Currency      string
}

// SearchOffers runs one flight-offers request for a single date pair and
// returns the parsed offers in upstream order. An empty slice is a valid
// "nothing available" outcome, not an error.
func (c *Client) SearchOffers(ctx context.Context, token string, query OffersQuery) ([]offer.Offer, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.RetryBudget)
	defer cancel()

	if err := c.throttle(ctx); err != nil {
		return nil, err
	}

	resp, err := c.api.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParams(map[string]string{
			"originLocationCode":      query.Origin,
			"destinationLocationCode": query.Destination,
			"departureDate":           query.DepartureDate,
			"returnDate":              query.ReturnDate,
			"adults":                  "1",
			"max":                     strconv.Itoa(maxOfferResults),
			"nonStop":                 strconv.FormatBool(query.NonStop),
			"travelClass":             query.TravelClass,
			"currencyCode":            query.Currency,
		}).
		Get(offersPath)
	if err != nil {
		return nil, fmt.Errorf("flight offers request (%s): %w", err, ErrUpstream)
	}

	switch {
	case resp.StatusCode() == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%s to %s: %w",
			query.DepartureDate, query.ReturnDate, ErrRateLimited)
	case !resp.IsSuccess():
		return nil, fmt.Errorf("status %d (%s): %w",
			resp.StatusCode(), resp.String(), ErrUpstream)
	}

	offers, err := offer.ParseResponse(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("%s to %s: %w",
			query.DepartureDate, query.ReturnDate, err)
	}

	return offers, nil
}

// throttle blocks until the shared request budget admits one more call.
// The limiter is optional and advisory; if it cannot be reached the call
// proceeds rather than failing the date pair.
func (c *Client) throttle(ctx context.Context) error {
	if c.cfg.Limiter == nil || c.cfg.RateLimitRPS <= 0 {
		return nil
	}

	for {
		res, err := c.cfg.Limiter.Allow(ctx, throttleKey,
			redis_rate.PerSecond(c.cfg.RateLimitRPS))
		if err != nil {
			slog.WarnContext(ctx, "request limiter unavailable",
				slog.String("error", err.Error()))

			return nil
		}

		if res.Allowed > 0 {
			return nil
		}

		select {
		case <-time.After(res.RetryAfter):
		case <-ctx.Done():
			return fmt.Errorf("waiting for request slot: %w", ctx.Err())
		}
	}
}
