package source

import (
	"slices"

	"golang.org/x/text/unicode/norm"
)

// StringID identifies an interned string. NoStringID maps to "".
type StringID uint32

const NoStringID StringID = 0

// Interner deduplicates identifier text. Strings are stored in NFC form so
// composed and decomposed spellings of the same identifier share one ID.
type Interner struct {
	byID  []string
	index map[string]StringID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": NoStringID},
	}
}

// Intern returns the ID of s, inserting it on first use.
func (i *Interner) Intern(s string) StringID {
	if !norm.NFC.IsNormalString(s) {
		s = norm.NFC.String(s)
	}
	if id, ok := i.index[s]; ok {
		return id
	}
	cpy := string([]byte(s))
	id := StringID(len(i.byID)) // #nosec G115 -- identifier count stays far below 2^32
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// Find returns the ID of s without inserting it.
func (i *Interner) Find(s string) (StringID, bool) {
	if !norm.NFC.IsNormalString(s) {
		s = norm.NFC.String(s)
	}
	id, ok := i.index[s]
	return id, ok
}

// Lookup returns the string for id.
func (i *Interner) Lookup(id StringID) (string, bool) {
	if !i.Has(id) {
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

func (i *Interner) Has(id StringID) bool {
	return int(id) < len(i.byID)
}

// Len counts interned strings including the empty string.
func (i *Interner) Len() int {
	return len(i.byID)
}

// Snapshot returns a copy of every interned string.
func (i *Interner) Snapshot() []string {
	return slices.Clone(i.byID)
}
