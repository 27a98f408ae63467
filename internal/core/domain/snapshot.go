package domain

import (
	"encoding/json"
	"fmt"
)

// EncodeSnapshot serializes the cart as a JSON array of entries in cart order.
func EncodeSnapshot(s CartState) ([]byte, error) {
	entries := s.entries
	if entries == nil {
		entries = []CartEntry{}
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return b, nil
}

// DecodeSnapshot rejects snapshots that would break the cart invariants
// (duplicate ids, non-positive amounts) instead of repairing them.
func DecodeSnapshot(b []byte) (CartState, error) {
	var entries []CartEntry
	if err := json.Unmarshal(b, &entries); err != nil {
		return CartState{}, fmt.Errorf("decode snapshot: %w", err)
	}
	s, err := NewCartState(entries...)
	if err != nil {
		return CartState{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return s, nil
}
