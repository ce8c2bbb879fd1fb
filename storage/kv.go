package storage

import (
	"encoding/json"
	"fmt"

	"github.com/peterbourgon/diskv/v3"
)

// Store is a string-keyed JSON blob store backed by diskv. Each key maps to
// a single file; a Set replaces the whole value, so callers always persist a
// full snapshot of whatever they own under that key.
type Store struct {
	d *diskv.Diskv
}

func Open(basePath string) *Store {
	return &Store{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 1024 * 1024, // 1MB
	})}
}

// Get reads key into v. A missing key, or a blob that is not valid JSON for
// v, reports false without an error so the caller can fall back to defaults.
func (s *Store) Get(key string, v interface{}) bool {
	raw, err := s.d.Read(key)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false
	}
	return true
}

// Set serializes v and overwrites key. Failures are returned to the caller,
// which treats the write as best-effort: the in-memory state stays
// authoritative for the session.
func (s *Store) Set(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.d.Write(key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *Store) Has(key string) bool {
	return s.d.Has(key)
}

func (s *Store) Remove(key string) error {
	if !s.d.Has(key) {
		return nil
	}
	return s.d.Erase(key)
}
