package history

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestStore_RecordSearch(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	criteria := map[string]any{"origin": "ZRH", "destination": "LIS"}

	firstID, err := store.RecordSearch(ctx, criteria)
	require.NoError(t, err)
	assert.Positive(t, firstID)

	secondID, err := store.RecordSearch(ctx, criteria)
	require.NoError(t, err)
	assert.Greater(t, secondID, firstID)
}

func TestStore_RecordOutcome(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	searchID, err := store.RecordSearch(ctx, map[string]any{"origin": "ZRH"})
	require.NoError(t, err)

	rows := []map[string]any{{"departure_date": "2026-06-05", "price": 312.40}}
	assert.NoError(t, store.RecordPrices(ctx, searchID, rows))
	assert.NoError(t, store.RecordOffers(ctx, searchID, rows))
}

func TestStore_RecentSearches(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	for _, origin := range []string{"ZRH", "GVA", "BSL"} {
		_, err := store.RecordSearch(ctx, map[string]string{"origin": origin})
		require.NoError(t, err)
	}

	records, err := store.RecentSearches(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// newest first
	assert.JSONEq(t, `{"origin":"BSL"}`, string(records[0].Data))
	assert.JSONEq(t, `{"origin":"GVA"}`, string(records[1].Data))

	all, err := store.RecentSearches(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestStore_RecentSearches_Empty(t *testing.T) {
	store := openStore(t)

	records, err := store.RecentSearches(context.Background(), 10)
	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestStore_UnmarshalablePayload(t *testing.T) {
	store := openStore(t)

	_, err := store.RecordSearch(context.Background(), func() {})
	assert.Error(t, err)
}
