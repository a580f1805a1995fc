//go:build unit

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/flymeaway/flight-price-scanner/internal/app/dto"
	"github.com/flymeaway/flight-price-scanner/internal/pkg/history"
	"github.com/flymeaway/flight-price-scanner/internal/pkg/scanner"
)

// MockScanRunner is a testify mock of the ScanRunner interface.
type MockScanRunner struct {
	mock.Mock
}

func NewMockScanRunner(t *testing.T) *MockScanRunner {
	m := &MockScanRunner{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockScanRunner) Scan(ctx context.Context, cfg scanner.Config) (scanner.ScanResult, error) {
	args := m.Called(ctx, cfg)

	return args.Get(0).(scanner.ScanResult), args.Error(1)
}

// MockScanCacher is a testify mock of the ScanCacher interface.
type MockScanCacher struct {
	mock.Mock
}

func NewMockScanCacher(t *testing.T) *MockScanCacher {
	m := &MockScanCacher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockScanCacher) GetLockKey(req dto.ScanRequest) string {
	return m.Called(req).String(0)
}

func (m *MockScanCacher) GetCacheKey(req dto.ScanRequest) string {
	return m.Called(req).String(0)
}

func (m *MockScanCacher) AcquireLock(ctx context.Context, key string, timeout time.Duration) (bool, error) {
	args := m.Called(ctx, key, timeout)

	return args.Bool(0), args.Error(1)
}

func (m *MockScanCacher) ReleaseLock(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockScanCacher) GetScan(ctx context.Context, key string) ([]dto.TrendRow, error) {
	args := m.Called(ctx, key)

	var rows []dto.TrendRow
	if args.Get(0) != nil {
		rows = args.Get(0).([]dto.TrendRow)
	}

	return rows, args.Error(1)
}

func (m *MockScanCacher) GetMetadata(ctx context.Context, key string) (dto.ScanMetadata, error) {
	args := m.Called(ctx, key)

	return args.Get(0).(dto.ScanMetadata), args.Error(1)
}

func (m *MockScanCacher) SetScan(ctx context.Context, key string, rows []dto.TrendRow,
	metadata dto.ScanMetadata, expiration time.Duration) error {
	return m.Called(ctx, key, rows, metadata, expiration).Error(0)
}

// MockSearchHistory is a testify mock of the SearchHistory interface.
type MockSearchHistory struct {
	mock.Mock
}

func NewMockSearchHistory(t *testing.T) *MockSearchHistory {
	m := &MockSearchHistory{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockSearchHistory) RecordSearch(ctx context.Context, criteria any) (int64, error) {
	args := m.Called(ctx, criteria)

	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSearchHistory) RecordPrices(ctx context.Context, searchID int64, rows any) error {
	return m.Called(ctx, searchID, rows).Error(0)
}

func (m *MockSearchHistory) RecordOffers(ctx context.Context, searchID int64, offers any) error {
	return m.Called(ctx, searchID, offers).Error(0)
}

func (m *MockSearchHistory) RecentSearches(ctx context.Context, limit int) ([]history.SearchRecord, error) {
	args := m.Called(ctx, limit)

	var records []history.SearchRecord
	if args.Get(0) != nil {
		records = args.Get(0).([]history.SearchRecord)
	}

	return records, args.Error(1)
}
