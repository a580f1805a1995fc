package airports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	index, err := Load()
	require.NoError(t, err)
	assert.NotEmpty(t, index.airports)
}

func TestIndex_Search_Closure(t *testing.T) {
	index, err := Load()
	require.NoError(t, err)

	searchRequest := func(term string, wantCode string, wantFound bool) func(t *testing.T) {
		return func(t *testing.T) {
			matches := index.Search(term)

			if !wantFound {
				assert.Empty(t, matches)

				return
			}

			require.NotEmpty(t, matches)

			codes := make([]string, len(matches))
			for i, airport := range matches {
				codes[i] = airport.Code
			}
			assert.Contains(t, codes, wantCode)
		}
	}

	t.Run("by_code", searchRequest("ZRH", "ZRH", true))
	t.Run("by_code_lowercase", searchRequest("zrh", "ZRH", true))
	t.Run("by_city", searchRequest("lisbon", "LIS", true))
	t.Run("by_country", searchRequest("portugal", "LIS", true))
	t.Run("by_partial_name", searchRequest("schiphol", "AMS", true))
	t.Run("whitespace_trimmed", searchRequest("  zurich  ", "ZRH", true))
	t.Run("no_match", searchRequest("atlantis", "", false))
	t.Run("blank_term", searchRequest("   ", "", false))
}

func TestIndex_Lookup(t *testing.T) {
	index, err := Load()
	require.NoError(t, err)

	airport, ok := index.Lookup("zrh")
	require.True(t, ok)
	assert.Equal(t, "ZRH", airport.Code)
	assert.Equal(t, "Zurich (ZRH)", airport.DisplayName())

	_, ok = index.Lookup("XXX")
	assert.False(t, ok)
}
