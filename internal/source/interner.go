package source

import (
	"strings"
	"sync"
)

type StringID uint32

const NoStringID StringID = 0

// Interner maps identifier text to compact ids. Safe for concurrent use.
type Interner struct {
	mu    sync.RWMutex
	byID  []string            // byID[0] = "" для NoStringID
	index map[string]StringID // строка -> ID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": NoStringID},
	}
}

// Intern returns the id for s, inserting it if needed.
func (i *Interner) Intern(s string) StringID {
	if id, ok := i.Find(s); ok {
		return id
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	if id, ok := i.index[s]; ok {
		return id
	}
	cpy := strings.Clone(s)
	id := StringID(len(i.byID)) // #nosec G115 -- identifiers count fits uint32
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// Find looks s up without inserting it.
func (i *Interner) Find(s string) (StringID, bool) {
	i.mu.RLock()
	id, ok := i.index[s]
	i.mu.RUnlock()
	return id, ok
}

// Lookup возвращает строку по ID.
func (i *Interner) Lookup(id StringID) (string, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if int(id) >= len(i.byID) {
		return "", false
	}
	return i.byID[id], true
}

// MustLookup is Lookup that panics on an unknown id.
func (i *Interner) MustLookup(id StringID) string {
	s, ok := i.Lookup(id)
	if !ok {
		panic("invalid string ID")
	}
	return s
}

// Len includes NoStringID, so it is never less than 1.
func (i *Interner) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.byID)
}
