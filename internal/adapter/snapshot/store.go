// Package snapshot persists the market state as a single JSON document,
// written at shutdown and consulted at startup. It is never on the hot path.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/shopspring/decimal"

	"github.com/elnur383/exchange/internal/domain"
)

// Store reads and writes the market-state snapshot file. It implements
// domain.MarketStateStore.
type Store struct {
	path string
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// document is the wire format: {"name": string, "value": decimal, "isOpen": bool}.
// Pointer fields distinguish an absent field from a zero value so Load can
// reject incomplete documents.
type document struct {
	Name   *string          `json:"name"`
	Value  *decimal.Decimal `json:"value"`
	IsOpen *bool            `json:"isOpen"`
}

// Save serializes the market state, overwriting any existing snapshot.
func (s *Store) Save(state domain.MarketState) error {
	doc := document{
		Name:   &state.Name,
		Value:  &state.Value,
		IsOpen: &state.IsOpen,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode market snapshot: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write market snapshot: %w", err)
	}
	return nil
}

// Load returns the persisted market state. It returns ErrSnapshotMissing
// when no file exists and ErrSnapshotCorrupt when the document cannot be
// parsed or is missing a field; callers fall back to their in-memory state.
func (s *Store) Load() (domain.MarketState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.MarketState{}, domain.ErrSnapshotMissing
		}
		return domain.MarketState{}, fmt.Errorf("failed to read market snapshot: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.MarketState{}, fmt.Errorf("%w: %v", domain.ErrSnapshotCorrupt, err)
	}
	if doc.Name == nil || doc.Value == nil || doc.IsOpen == nil {
		return domain.MarketState{}, fmt.Errorf("%w: missing field", domain.ErrSnapshotCorrupt)
	}

	return domain.MarketState{
		Name:   *doc.Name,
		Value:  *doc.Value,
		IsOpen: *doc.IsOpen,
	}, nil
}
