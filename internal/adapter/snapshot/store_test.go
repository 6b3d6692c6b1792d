package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elnur383/exchange/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "market_state.json"))
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	state := domain.MarketState{
		Name:   "NYSE",
		Value:  decimal.NewFromFloat(1234.56),
		IsOpen: true,
	}

	require.NoError(t, store.Save(state))
	loaded, err := store.Load()

	require.NoError(t, err)
	assert.Equal(t, state.Name, loaded.Name)
	assert.True(t, state.Value.Equal(loaded.Value))
	assert.Equal(t, state.IsOpen, loaded.IsOpen)
}

func TestSave_Overwrites(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(domain.MarketState{Name: "old", Value: decimal.NewFromInt(1)}))
	require.NoError(t, store.Save(domain.MarketState{Name: "new", Value: decimal.NewFromInt(2), IsOpen: true}))

	loaded, err := store.Load()

	require.NoError(t, err)
	assert.Equal(t, "new", loaded.Name)
	assert.True(t, loaded.IsOpen)
}

func TestLoad_Missing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load()

	assert.ErrorIs(t, err, domain.ErrSnapshotMissing)
}

func TestLoad_CorruptJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "market_state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewStore(path).Load()

	assert.ErrorIs(t, err, domain.ErrSnapshotCorrupt)
}

func TestLoad_MissingField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "market_state.json")
	// isOpen absent: a zero value is fine, a missing field is not.
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"NYSE","value":"100"}`), 0o644))

	_, err := NewStore(path).Load()

	assert.ErrorIs(t, err, domain.ErrSnapshotCorrupt)
}
