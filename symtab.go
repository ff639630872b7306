// Copyright 2024 The lite-manager Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package lm

// cacheSlots is the fixed size of SymbolTable's find() lookup cache,
// per spec.md §3 ("a small LRU-like lookup cache (fixed small size, e.g.,
// 16 slots)").
const cacheSlots = 16

type cacheEntry struct {
	name string
	sym  *Symbol
	hits uint32
}

// SymbolTable is an insertion-ordered mapping from symbol name to record,
// with a small cache (every slot is checked on lookup) to speed up repeated find() calls during
// dependency evaluation and variable-line parsing (spec.md §4.2).
//
// The cache is a pure speedup: correctness never depends on what it holds.
type SymbolTable struct {
	order []*Symbol
	byName map[string]*Symbol
	cache  [cacheSlots]cacheEntry
}

// NewSymbolTable returns an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{byName: make(map[string]*Symbol)}
}

// Insert appends a fresh record and returns it for the caller to populate.
// name must be unique within the table; re-inserting an existing name
// returns its existing record unchanged, and the table keeps one entry
// for it.
func (t *SymbolTable) Insert(name string) *Symbol {
	name = intern(name)
	if s, ok := t.byName[name]; ok {
		return s
	}
	s := &Symbol{Name: name}
	t.byName[name] = s
	t.order = append(t.order, s)
	return s
}

// Find looks up name, consulting the cache first and falling back to the
// map; either way it is O(1) average, but the spec models this as a linear
// scan with an LRU-evicted cache, so Find also maintains the hit-counter
// discipline spec.md describes.
func (t *SymbolTable) Find(name string) (*Symbol, bool) {
	for i := range t.cache {
		if t.cache[i].name == name && t.cache[i].sym != nil {
			t.cache[i].hits++
			return t.cache[i].sym, true
		}
	}
	s, ok := t.byName[name]
	if !ok {
		return nil, false
	}
	t.promote(name, s)
	return s, true
}

// promote inserts (name, s) into the cache, evicting the slot with the
// smallest hit counter (evict-least-used, per spec.md §3).
func (t *SymbolTable) promote(name string, s *Symbol) {
	victim := 0
	for i := range t.cache {
		if t.cache[i].sym == nil {
			victim = i
			break
		}
		if t.cache[i].hits < t.cache[victim].hits {
			victim = i
		}
	}
	t.cache[victim] = cacheEntry{name: name, sym: s, hits: 1}
}

// Iterate yields records in insertion order, used by the emitter.
func (t *SymbolTable) Iterate() []*Symbol {
	return t.order
}

// Len reports the number of declared symbols.
func (t *SymbolTable) Len() int { return len(t.order) }
