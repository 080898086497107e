package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// BoughtFile is a file-backed store for the shopping checklist: one JSON
// document mapping list identity to the item keys marked bought. The whole
// document is re-read and rewritten on every toggle; there is a single
// logical writer (the active session), so no locking is needed.
type BoughtFile struct {
	path string
}

// NewBoughtFile creates a BoughtFile and ensures its directory exists.
func NewBoughtFile(path string) (*BoughtFile, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &BoughtFile{path: path}, nil
}

// load reads the whole document. A missing, unreadable or corrupted file
// degrades to an empty document; stale checklist state is never worth an
// error.
func (s *BoughtFile) load() map[string][]string {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return map[string][]string{}
	}
	var doc map[string][]string
	if err := json.Unmarshal(raw, &doc); err != nil || doc == nil {
		return map[string][]string{}
	}
	return doc
}

// Bought returns the set of item keys marked bought for a list.
func (s *BoughtFile) Bought(listID string) map[string]bool {
	set := make(map[string]bool)
	for _, key := range s.load()[listID] {
		set[key] = true
	}
	return set
}

// SetBought marks or unmarks one item key for a list, rewriting the whole
// document.
func (s *BoughtFile) SetBought(listID, itemKey string, bought bool) error {
	doc := s.load()

	keys := doc[listID]
	idx := -1
	for i, k := range keys {
		if k == itemKey {
			idx = i
			break
		}
	}
	switch {
	case bought && idx < 0:
		keys = append(keys, itemKey)
	case !bought && idx >= 0:
		keys = append(keys[:idx], keys[idx+1:]...)
	default:
		return nil
	}
	doc[listID] = keys

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal bought state: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write bought state file: %w", err)
	}
	return nil
}
