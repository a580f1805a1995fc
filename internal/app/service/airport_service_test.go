//go:build unit

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flymeaway/flight-price-scanner/internal/app/dto"
	"github.com/flymeaway/flight-price-scanner/internal/pkg/airports"
)

func TestAirportService_SearchAirports(t *testing.T) {
	index, err := airports.Load()
	require.NoError(t, err)

	s := NewAirportService(index)

	searchRequest := func(query string, wantCode string, wantFound bool) func(t *testing.T) {
		return func(t *testing.T) {
			got, err := s.SearchAirports(context.Background(), dto.AirportQuery{Query: query})
			assert.NoError(t, err)

			if !wantFound {
				assert.Empty(t, got.Airports)

				return
			}

			require.NotEmpty(t, got.Airports)

			codes := make([]string, len(got.Airports))
			for i, airport := range got.Airports {
				codes[i] = airport.Code
			}
			assert.Contains(t, codes, wantCode)
			assert.LessOrEqual(t, len(got.Airports), maxAirportMatches)
		}
	}

	t.Run("by_city", searchRequest("zurich", "ZRH", true))
	t.Run("by_code", searchRequest("LIS", "LIS", true))
	t.Run("no_match", searchRequest("atlantis", "", false))
	t.Run("broad_query_capped", searchRequest("airport", "AMS", true))
}
