package menufig

import (
	"encoding/json"
	"fmt"
	"maps"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Snapshot is the complete current mapping of elem_id to control value.
// Values keep their native shape: scalar, list, or the checkbox
// sentinel list.
type Snapshot map[string]any

// Encode serializes the snapshot as a canonical JSON object (keys
// sorted, UTF-8).
func (s Snapshot) Encode() (string, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode settings: %w", err)
	}
	return string(raw), nil
}

// parseCacheSize bounds the memoized ParseSnapshot results.
const parseCacheSize = 128

// snapshotStore holds the live control values for one session and
// publishes a full snapshot on every change. Each update replaces the
// snapshot wholesale so observers never see a partial mapping.
type snapshotStore struct {
	values  map[string]any
	order   []string // live elem_ids, compile order
	Updated Signal[Snapshot]

	// Parsing a serialized document is pure, so results are memoized.
	// The cache is owned by the store to keep sessions isolated.
	parsed *lru.Cache[string, Snapshot]
}

// newSnapshotStore seeds the store from the compiled controls'
// resolved initial values.
func newSnapshotStore(controls []Control) *snapshotStore {
	cache, _ := lru.New[string, Snapshot](parseCacheSize)
	st := &snapshotStore{
		values: make(map[string]any, len(controls)),
		parsed: cache,
	}
	for _, c := range controls {
		st.values[c.ElemID] = c.Value
		st.order = append(st.order, c.ElemID)
	}
	return st
}

// Live reports whether elemID names a live control.
func (st *snapshotStore) Live(elemID string) bool {
	_, ok := st.values[elemID]
	return ok
}

// Set records a control's new value and publishes the recomputed
// snapshot atomically.
func (st *snapshotStore) Set(elemID string, value any) {
	st.values[elemID] = value
	st.Updated.Emit(st.Snapshot())
}

// Get returns the current value of a live control.
func (st *snapshotStore) Get(elemID string) any {
	return st.values[elemID]
}

// Snapshot returns a fresh copy of the full mapping.
func (st *snapshotStore) Snapshot() Snapshot {
	return maps.Clone(map[string]any(st.values))
}

// ParseSnapshot decodes a serialized settings document. Same input,
// same result; results are served from an LRU cache purely for
// throughput. Callers receive their own copy of the mapping.
func (st *snapshotStore) ParseSnapshot(doc string) (Snapshot, error) {
	if cached, ok := st.parsed.Get(doc); ok {
		return maps.Clone(cached), nil
	}
	var snap Snapshot
	if err := json.Unmarshal([]byte(doc), &snap); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	st.parsed.Add(doc, snap)
	return maps.Clone(snap), nil
}

// SettingsDocument is an exported settings file: content plus the name
// the hosting layer should offer for download.
type SettingsDocument struct {
	Content  string
	Filename string
}

// ExportSettings serializes the current snapshot under the
// "<product>.settings.json" naming convention.
func (st *snapshotStore) ExportSettings(product string) (SettingsDocument, error) {
	content, err := st.Snapshot().Encode()
	if err != nil {
		return SettingsDocument{}, err
	}
	return SettingsDocument{
		Content:  content,
		Filename: product + ".settings.json",
	}, nil
}
