package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/flymeaway/flight-price-scanner/internal/app/dto"
	"github.com/flymeaway/flight-price-scanner/internal/pkg/amadeus"
	"github.com/flymeaway/flight-price-scanner/internal/pkg/exception"
	"github.com/flymeaway/flight-price-scanner/internal/pkg/history"
	"github.com/flymeaway/flight-price-scanner/internal/pkg/offer"
	"github.com/flymeaway/flight-price-scanner/internal/pkg/scanner"
	"github.com/flymeaway/flight-price-scanner/internal/pkg/utils"
)

const defaultHistoryLimit = 10

type ScanRunner interface {
	Scan(ctx context.Context, cfg scanner.Config) (scanner.ScanResult, error)
}

type ScanCacher interface {
	GetLockKey(req dto.ScanRequest) string
	GetCacheKey(req dto.ScanRequest) string
	AcquireLock(ctx context.Context, key string, timeout time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
	GetScan(ctx context.Context, key string) ([]dto.TrendRow, error)
	GetMetadata(ctx context.Context, key string) (dto.ScanMetadata, error)
	SetScan(ctx context.Context,
		key string,
		rows []dto.TrendRow,
		metadata dto.ScanMetadata,
		expiration time.Duration,
	) error
}

type SearchHistory interface {
	RecordSearch(ctx context.Context, criteria any) (int64, error)
	RecordPrices(ctx context.Context, searchID int64, rows any) error
	RecordOffers(ctx context.Context, searchID int64, offers any) error
	RecentSearches(ctx context.Context, limit int) ([]history.SearchRecord, error)
}

var weekdays = map[string]time.Weekday{
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
	"Sunday":    time.Sunday,
}

type ScannerService struct {
	Runner              ScanRunner
	Cache               ScanCacher
	History             SearchHistory
	ScanCacheExpiration time.Duration
	ScanLockTimeout     time.Duration
}

func NewScannerService(runner ScanRunner, cache ScanCacher, searchHistory SearchHistory,
	scanCacheExpiration time.Duration, scanLockTimeout time.Duration) *ScannerService {
	return &ScannerService{
		Runner:              runner,
		Cache:               cache,
		History:             searchHistory,
		ScanCacheExpiration: scanCacheExpiration,
		ScanLockTimeout:     scanLockTimeout,
	}
}

// ScanFlights runs one full date-range scan for the request, serving a
// recent identical scan from cache when possible. An empty result set is
// returned as-is: no matching offers is a valid outcome the caller must
// render, not an error.
func (s *ScannerService) ScanFlights(
	ctx context.Context,
	req dto.ScanRequest,
) (dto.ScanResponse, error) {
	var (
		rows     []dto.TrendRow
		metadata dto.ScanMetadata
	)

	startTime := time.Now()
	cacheHit := false

	cacheKey := s.Cache.GetCacheKey(req)
	lockKey := s.Cache.GetLockKey(req)

	rows, err := s.Cache.GetScan(ctx, cacheKey)
	if err == nil {
		cacheHit = true
	} else {
		slog.WarnContext(ctx, "failed to get scan from cache", slog.String("error", err.Error()))
	}

	metadata, err = s.Cache.GetMetadata(ctx, cacheKey)
	if err != nil {
		slog.WarnContext(ctx, "failed to get metadata from cache", slog.String("error", err.Error()))
	}

	if !cacheHit {
		rows, metadata, err = s.runScan(ctx, req)
		if err != nil {
			return dto.ScanResponse{}, err
		}

		// if there are concurrent identical scans, only the one that
		// acquires the lock saves to cache; the rest already paid for
		// their own upstream sweep anyway
		acquired, err := s.Cache.AcquireLock(ctx, lockKey, s.ScanLockTimeout)
		if err != nil {
			return dto.ScanResponse{}, fmt.Errorf("failed to acquire lock: %w", err)
		}
		defer s.Cache.ReleaseLock(ctx, lockKey)

		if acquired {
			err = s.Cache.SetScan(ctx, cacheKey, rows, metadata, s.ScanCacheExpiration)
			if err != nil {
				return dto.ScanResponse{}, fmt.Errorf("failed to set scan to cache: %w", err)
			}
		}
	}

	metadata.SearchTimeMs = int(time.Since(startTime).Milliseconds())
	metadata.CacheHit = cacheHit

	return dto.ScanResponse{
		SearchCriteria: req,
		Metadata:       metadata,
		Cheapest:       cheapestRow(rows),
		Prices:         rows,
	}, nil
}

func (s *ScannerService) runScan(ctx context.Context,
	req dto.ScanRequest,
) ([]dto.TrendRow, dto.ScanMetadata, error) {
	cfg, err := toScannerConfig(req)
	if err != nil {
		return nil, dto.ScanMetadata{}, exception.ApplicationError{
			StatusCode: 400,
			Message:    err.Error(),
		}
	}

	searchID := s.recordSearch(ctx, req)

	result, err := s.Runner.Scan(ctx, cfg)
	if err != nil {
		if errors.Is(err, amadeus.ErrTokenRequest) {
			slog.ErrorContext(ctx, "token acquisition failed", slog.Any("error", err))

			return nil, dto.ScanMetadata{}, ErrProviderAuth
		}

		return nil, dto.ScanMetadata{}, fmt.Errorf("failed to run scan: %w", err)
	}

	rows := buildRows(req, result)

	withOffers, empty, failed := result.Counts()
	metadata := dto.ScanMetadata{
		PairsScanned:    len(result.Results),
		PairsWithOffers: withOffers,
		PairsEmpty:      empty,
		PairsFailed:     failed,
	}

	s.recordOutcome(ctx, searchID, rows, result)

	return rows, metadata, nil
}

// RecentSearches lists the newest recorded searches for display on the
// history page.
func (s *ScannerService) RecentSearches(
	ctx context.Context,
	req dto.HistoryQuery,
) (dto.HistoryResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	records, err := s.History.RecentSearches(ctx, limit)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list recent searches", slog.Any("error", err))

		return dto.HistoryResponse{}, ErrHistoryUnavailable
	}

	searches := make([]dto.SearchRecord, len(records))
	for i, record := range records {
		searches[i] = dto.SearchRecord{
			ID:        record.ID,
			Criteria:  record.Data,
			CreatedAt: record.CreatedAt,
		}
	}

	return dto.HistoryResponse{Searches: searches}, nil
}

// recordSearch is best effort: auditing must never fail a scan.
func (s *ScannerService) recordSearch(ctx context.Context, req dto.ScanRequest) int64 {
	searchID, err := s.History.RecordSearch(ctx, req)
	if err != nil {
		slog.WarnContext(ctx, "failed to record search inputs", slog.String("error", err.Error()))

		return 0
	}

	return searchID
}

func (s *ScannerService) recordOutcome(ctx context.Context, searchID int64,
	rows []dto.TrendRow, result scanner.ScanResult) {
	if searchID == 0 {
		return
	}

	if err := s.History.RecordPrices(ctx, searchID, rows); err != nil {
		slog.WarnContext(ctx, "failed to record flight prices", slog.String("error", err.Error()))
	}

	if err := s.History.RecordOffers(ctx, searchID, result.Trend); err != nil {
		slog.WarnContext(ctx, "failed to record parsed offers", slog.String("error", err.Error()))
	}
}

func toScannerConfig(req dto.ScanRequest) (scanner.Config, error) {
	weekday, ok := weekdays[req.DepartureDay]
	if !ok {
		return scanner.Config{}, fmt.Errorf("unknown departure day %q", req.DepartureDay)
	}

	startDate, err := time.Parse(time.DateOnly, req.StartDate)
	if err != nil {
		return scanner.Config{}, fmt.Errorf("invalid start date: %w", err)
	}

	endDate, err := time.Parse(time.DateOnly, req.EndDate)
	if err != nil {
		return scanner.Config{}, fmt.Errorf("invalid end date: %w", err)
	}

	departurePref, err := offer.ParseTimeWindow(req.DepartureTimeOption)
	if err != nil {
		return scanner.Config{}, fmt.Errorf("invalid departure time option: %w", err)
	}

	returnPref, err := offer.ParseTimeWindow(req.ReturnTimeOption)
	if err != nil {
		return scanner.Config{}, fmt.Errorf("invalid return time option: %w", err)
	}

	currency := req.Currency
	if currency == "" {
		currency = "EUR"
	}

	return scanner.Config{
		Origin:        req.Origin,
		Destination:   req.Destination,
		Weekday:       weekday,
		Nights:        req.Nights,
		StartDate:     startDate,
		EndDate:       endDate,
		TravelClass:   req.TravelClass,
		DirectOnly:    req.DirectOnly,
		DeparturePref: departurePref,
		ReturnPref:    returnPref,
		Currency:      currency,
	}, nil
}

func buildRows(req dto.ScanRequest, result scanner.ScanResult) []dto.TrendRow {
	rows := make([]dto.TrendRow, 0, len(result.Trend))

	for _, point := range result.Trend {
		outbound := point.Offer.Outbound
		inbound := point.Offer.Return

		rows = append(rows, dto.TrendRow{
			DepartureDate:    point.Pair.Departure.Format(time.DateOnly),
			DepartureTime:    outbound.DepartureAt().Format("15:04"),
			DepartureFlight:  flightList(outbound),
			OutboundDuration: formatDuration(outbound.Duration),
			ReturnDate:       point.Pair.Return.Format(time.DateOnly),
			ReturnTime:       inbound.DepartureAt().Format("15:04"),
			ReturnFlight:     flightList(inbound),
			ReturnDuration:   formatDuration(inbound.Duration),
			Price:            math.Round(point.Price*100) / 100,
			Currency:         point.Currency,
			Origin:           req.Origin,
			Destination:      req.Destination,
		})
	}

	return rows
}

func flightList(itinerary offer.Itinerary) string {
	numbers := make([]string, len(itinerary.Segments))
	for i, segment := range itinerary.Segments {
		numbers[i] = segment.FlightNumber()
	}

	return strings.Join(numbers, ", ")
}

func formatDuration(iso string) string {
	return utils.ConvertMinutesToDuration(int64(offer.ParseISODuration(iso) / time.Minute))
}

// cheapestRow picks the lowest price; rows are date ordered, so strict
// less keeps the earlier date on exact ties.
func cheapestRow(rows []dto.TrendRow) *dto.TrendRow {
	var cheapest *dto.TrendRow

	for i := range rows {
		if cheapest == nil || rows[i].Price < cheapest.Price {
			cheapest = &rows[i]
		}
	}

	return cheapest
}
