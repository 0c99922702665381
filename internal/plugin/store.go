package plugin

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pairview/pairview/internal/core/kv"
	"github.com/pairview/pairview/internal/core/mapping"
)

// storageKey is the single fixed key the mapping set is stored under.
const storageKey = "componentMappings"

// runKey holds the last generation outcome inside the "state" scope.
const runKey = "lastGeneration"

// legacyStaleness is the synthesized age for stored sets that predate the
// timestamp field, so staleness warnings still fire on old data.
const legacyStaleness = 7 * 24 * time.Hour

// RunRecord is the outcome of the most recent generation batch.
type RunRecord struct {
	Pairs     int   `json:"pairs"`
	HadErrors bool  `json:"hadErrors"`
	Timestamp int64 `json:"timestamp"`
}

// MappingStore persists the mapping set as one opaque blob. Writes are
// last-write-wins with no version check; concurrent saves can overwrite
// each other.
type MappingStore struct {
	kv   kv.KV
	runs *kv.TypedKV[RunRecord]
	now  func() time.Time
}

// NewMappingStore creates a store over the given KV backend.
func NewMappingStore(store kv.KV) *MappingStore {
	return &MappingStore{
		kv:   store,
		runs: kv.Scoped[RunRecord](store, "state"),
		now:  time.Now,
	}
}

// Save writes the set. The error is returned so the gap in the outward
// fire-and-forget contract stays visible; the bridge logs and drops it.
func (s *MappingStore) Save(ctx context.Context, set mapping.PersistedSet) error {
	if err := s.kv.Set(ctx, storageKey, set); err != nil {
		return fmt.Errorf("save mappings: %w", err)
	}
	return nil
}

// Load reads the stored set. A missing key returns (nil, nil): no data is an
// expected outcome, not an error. Legacy bare-array blobs are wrapped with a
// synthesized timestamp.
func (s *MappingStore) Load(ctx context.Context) (*mapping.PersistedSet, error) {
	entry, err := s.kv.GetRaw(ctx, storageKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load mappings: %w", err)
	}
	return normalize(entry.Value, s.now())
}

// RecordRun stores the outcome of a generation batch under its own scoped
// key, separate from the mapping blob.
func (s *MappingStore) RecordRun(ctx context.Context, pairs int, hadErrors bool) error {
	rec := RunRecord{Pairs: pairs, HadErrors: hadErrors, Timestamp: s.now().UnixMilli()}
	if err := s.runs.Set(ctx, runKey, rec); err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// LastRun returns the most recent generation outcome, or (nil, nil) when no
// batch has run yet.
func (s *MappingStore) LastRun(ctx context.Context) (*RunRecord, error) {
	rec, err := s.runs.Get(ctx, runKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("last run: %w", err)
	}
	return &rec, nil
}

func normalize(raw json.RawMessage, now time.Time) (*mapping.PersistedSet, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	// Legacy shape: a bare mapping array with no timestamp.
	if trimmed[0] == '[' {
		var list []mapping.Mapping
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("load mappings: legacy shape: %w", err)
		}
		return &mapping.PersistedSet{
			Mappings:  list,
			Timestamp: now.Add(-legacyStaleness).UnixMilli(),
		}, nil
	}

	var set mapping.PersistedSet
	if err := json.Unmarshal(trimmed, &set); err != nil {
		return nil, fmt.Errorf("load mappings: %w", err)
	}
	return &set, nil
}
