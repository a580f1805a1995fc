package endpoints

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-kit/kit/endpoint"

	"github.com/flymeaway/flight-price-scanner/internal/app/dto"
)

type AirportService interface {
	SearchAirports(ctx context.Context, req dto.AirportQuery) (dto.AirportResponse, error)
}

type AirportEndpoint struct {
	SearchAirports endpoint.Endpoint
}

func MakeAirportEndpoint(service AirportService) AirportEndpoint {
	return AirportEndpoint{
		SearchAirports: makeSearchAirportsEndpoint(service),
	}
}

func makeSearchAirportsEndpoint(service AirportService) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.AirportQuery)
		if !ok || request == nil {
			return nil, errors.New("invalid type")
		}

		response, err := service.SearchAirports(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("airport service: %w", err)
		}

		return response, nil
	}
}
