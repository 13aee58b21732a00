package diag

import (
	"fmt"
	"sort"
	"sync"

	"recast/internal/source"
)

// Bag is a bounded collection of diagnostics. It is safe for concurrent Add
// so parallel per-file builds can share one bag.
type Bag struct {
	mu      sync.Mutex
	items   []Diagnostic
	max     int
	dropped int
}

// NewBag creates a bag holding at most max diagnostics; max <= 0 means unbounded.
func NewBag(max int) *Bag {
	capacity := max
	if capacity <= 0 || capacity > 64 {
		capacity = 64
	}
	return &Bag{
		items: make([]Diagnostic, 0, capacity),
		max:   max,
	}
}

// Add appends d unless the limit is reached. It reports whether d was kept.
func (b *Bag) Add(d Diagnostic) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.max > 0 && len(b.items) >= b.max {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() int {
	return b.max
}

// Dropped reports how many diagnostics were refused because of the limit.
func (b *Bag) Dropped() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

// HasErrors reports whether any diagnostic has Severity >= Error.
func (b *Bag) HasErrors() bool {
	return b.count(SevError) > 0
}

// HasWarnings reports whether any diagnostic has Severity >= Warning.
func (b *Bag) HasWarnings() bool {
	return b.count(SevWarning) > 0
}

func (b *Bag) count(floor Severity) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for i := range b.items {
		if b.items[i].Severity >= floor {
			n++
		}
	}
	return n
}

func (b *Bag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// Items returns the diagnostics. Do not modify the returned slice.
func (b *Bag) Items() []Diagnostic {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.items
}

// Filter returns a new bag with the diagnostics of at least severity floor.
func (b *Bag) Filter(floor Severity) *Bag {
	out := NewBag(b.max)
	for _, d := range b.Items() {
		if d.Severity >= floor {
			out.Add(d)
		}
	}
	return out
}

// Merge appends every diagnostic of other, growing the limit when needed.
func (b *Bag) Merge(other *Bag) {
	if other == nil || other == b {
		return
	}
	incoming := other.Items()
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.max > 0 && len(b.items)+len(incoming) > b.max {
		b.max = len(b.items) + len(incoming)
	}
	b.items = append(b.items, incoming...)
}

// Sort orders diagnostics by file, start, end, severity (desc), code (asc).
func (b *Bag) Sort() {
	b.mu.Lock()
	defer b.mu.Unlock()
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

// Dedup drops diagnostics repeating an earlier code, span and message.
func (b *Bag) Dedup() {
	b.mu.Lock()
	defer b.mu.Unlock()
	seen := make(map[string]bool)
	kept := make([]Diagnostic, 0, len(b.items))
	for _, d := range b.items {
		key := fmt.Sprintf("%s:%s:%s", d.Code.ID(), d.Primary.String(), d.Message)
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, d)
	}
	b.items = kept
}

// Strings renders every diagnostic in its flat single-line form.
func (b *Bag) Strings(fs *source.FileSet) []string {
	items := b.Items()
	out := make([]string, 0, len(items))
	for _, d := range items {
		out = append(out, d.Format(fs))
	}
	return out
}
