package service

import (
	"context"

	"github.com/flymeaway/flight-price-scanner/internal/app/dto"
	"github.com/flymeaway/flight-price-scanner/internal/pkg/airports"
)

const maxAirportMatches = 20

// AirportService answers airport autocomplete lookups from the bundled
// dataset.
type AirportService struct {
	Index *airports.Index
}

func NewAirportService(index *airports.Index) *AirportService {
	return &AirportService{Index: index}
}

func (s *AirportService) SearchAirports(
	_ context.Context,
	req dto.AirportQuery,
) (dto.AirportResponse, error) {
	matches := s.Index.Search(req.Query)
	if len(matches) > maxAirportMatches {
		matches = matches[:maxAirportMatches]
	}

	results := make([]dto.Airport, len(matches))
	for i, airport := range matches {
		results[i] = dto.Airport{
			Code:    airport.Code,
			Name:    airport.Name,
			City:    airport.City,
			Country: airport.Country,
		}
	}

	return dto.AirportResponse{Airports: results}, nil
}
