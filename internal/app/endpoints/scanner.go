package endpoints

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kit/kit/endpoint"

	"github.com/flymeaway/flight-price-scanner/internal/app/dto"
)

type ScannerService interface {
	ScanFlights(ctx context.Context, req dto.ScanRequest) (dto.ScanResponse, error)
	RecentSearches(ctx context.Context, req dto.HistoryQuery) (dto.HistoryResponse, error)
}

type ScannerEndpoint struct {
	ScanFlights    endpoint.Endpoint
	RecentSearches endpoint.Endpoint
}

func MakeScannerEndpoint(service ScannerService) ScannerEndpoint {
	return ScannerEndpoint{
		ScanFlights:    makeScanFlightsEndpoint(service),
		RecentSearches: makeRecentSearchesEndpoint(service),
	}
}

func makeScanFlightsEndpoint(service ScannerService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.ScanRequest)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		response, err := service.ScanFlights(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("scanner service: %w", err)
		}

		return response, nil
	}
}

func makeRecentSearchesEndpoint(service ScannerService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.HistoryQuery)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		response, err := service.RecentSearches(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("scanner service: %w", err)
		}

		return response, nil
	}
}
