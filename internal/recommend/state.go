// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

package recommend

import (
	"time"
)

// State is the frozen snapshot every request reads from. It is assembled
// once at startup and never mutated, so it can be shared by pointer.
type State struct {
	epochYear  int
	catalog    *Catalog
	history    *History
	profiles   MonthlyGenreProfile
	watched    KeySet
	candidates []CatalogEntry
	scorer     *Scorer
	loadedAt   time.Time
}

// NewState derives profiles, the watched set and the candidate index from
// catalog and history. A nil catalog or history is treated as empty.
func NewState(catalog *Catalog, history *History, epochYear int) *State {
	if catalog == nil {
		catalog = NewCatalog(nil)
	}
	if history == nil {
		history = NewHistory(nil)
	}

	watched := history.Keys()
	candidates := make([]CatalogEntry, 0, catalog.Len())
	for _, e := range catalog.Entries() {
		if !watched.Has(e.Key) {
			candidates = append(candidates, e)
		}
	}

	return &State{
		epochYear:  epochYear,
		catalog:    catalog,
		history:    history,
		profiles:   BuildProfiles(history.Records(), epochYear),
		watched:    watched,
		candidates: candidates,
		scorer:     NewScorer(candidates),
		loadedAt:   time.Now(),
	}
}

// EpochYear returns the year whose January is month 1.
func (s *State) EpochYear() int {
	return s.epochYear
}

// Catalog returns the full catalog, watched entries included.
func (s *State) Catalog() *Catalog {
	return s.catalog
}

// History returns the watch log.
func (s *State) History() *History {
	return s.history
}

// Candidates returns the unwatched catalog entries. Callers must not modify the slice.
func (s *State) Candidates() []CatalogEntry {
	return s.candidates
}

// IsWatched reports whether key appears in the history.
func (s *State) IsWatched(key MovieKey) bool {
	return s.watched.Has(key)
}

// LoadedAt returns when the state was assembled.
func (s *State) LoadedAt() time.Time {
	return s.loadedAt
}
