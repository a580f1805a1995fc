package scanner

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/flymeaway/flight-price-scanner/internal/app/dto"
)

type RedisClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// ScanCache keeps finished scan outcomes in Redis so an identical scan
// within the expiration window does not hit the upstream again. Prices
// are point-in-time snapshots, so a short TTL is expected.
type ScanCache struct {
	redis RedisClient
}

func NewScanCache(redis RedisClient) *ScanCache {
	return &ScanCache{
		redis: redis,
	}
}

func (c *ScanCache) GetLockKey(req dto.ScanRequest) string {
	return "scan:lock:" + requestKey(req)
}

func (c *ScanCache) GetCacheKey(req dto.ScanRequest) string {
	return "scan:cache:" + requestKey(req)
}

func requestKey(req dto.ScanRequest) string {
	return fmt.Sprintf("%s:%s:%s:%d:%s:%s:%t:%s:%s:%s:%s",
		req.Origin, req.Destination, req.DepartureDay, req.Nights,
		req.StartDate, req.EndDate, req.DirectOnly, req.TravelClass,
		req.DepartureTimeOption, req.ReturnTimeOption, req.Currency)
}

func (c *ScanCache) AcquireLock(ctx context.Context, key string, timeout time.Duration) (bool, error) {
	return c.redis.SetNX(ctx, key, "1", timeout).Result()
}

func (c *ScanCache) ReleaseLock(ctx context.Context, key string) error {
	return c.redis.Del(ctx, key).Err()
}

func (c *ScanCache) SetScan(ctx context.Context,
	key string,
	rows []dto.TrendRow,
	metadata dto.ScanMetadata,
	expiration time.Duration,
) error {
	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to marshal trend rows: %w", err)
	}

	err = c.redis.Set(ctx, key, data, expiration).Err()
	if err != nil {
		return fmt.Errorf("failed to set trend rows: %w", err)
	}

	metadataBytes, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	err = c.redis.Set(ctx, key+":metadata", metadataBytes, expiration).Err()
	if err != nil {
		return fmt.Errorf("failed to set metadata: %w", err)
	}

	return nil
}

func (c *ScanCache) GetScan(ctx context.Context, key string) ([]dto.TrendRow, error) {
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}

	var rows []dto.TrendRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}

	return rows, nil
}

func (c *ScanCache) GetMetadata(ctx context.Context, key string) (dto.ScanMetadata, error) {
	metadataBytes, err := c.redis.Get(ctx, key+":metadata").Bytes()
	if err != nil {
		return dto.ScanMetadata{}, err
	}

	var metadata dto.ScanMetadata
	if err := json.Unmarshal(metadataBytes, &metadata); err != nil {
		return dto.ScanMetadata{}, err
	}

	return metadata, nil
}
