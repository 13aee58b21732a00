package symbols

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/vmihailenco/msgpack/v5"

	"recast/internal/source"
)

// SnapshotSchema is bumped whenever Record changes shape.
const SnapshotSchema uint16 = 1

// UsageRecord is one reference site in a snapshot.
type UsageRecord struct {
	File     source.FileID `json:"file" msgpack:"file"`
	Start    uint32        `json:"start" msgpack:"start"`
	End      uint32        `json:"end" msgpack:"end"`
	Position string        `json:"position,omitempty" msgpack:"position,omitempty"`
	Scope    SymbolID      `json:"scope,omitempty" msgpack:"scope,omitempty"`
}

// Record is the flat form of one symbol.
type Record struct {
	ID          SymbolID      `json:"id" msgpack:"id"`
	Name        string        `json:"name,omitempty" msgpack:"name,omitempty"`
	FullName    string        `json:"full_name,omitempty" msgpack:"full_name,omitempty"`
	Kind        string        `json:"kind" msgpack:"kind"`
	Parent      SymbolID      `json:"parent,omitempty" msgpack:"parent,omitempty"`
	File        source.FileID `json:"file" msgpack:"file"`
	Children    []SymbolID    `json:"children,omitempty" msgpack:"children,omitempty"`
	Bases       []SymbolID    `json:"bases,omitempty" msgpack:"bases,omitempty"`
	Root        SymbolID      `json:"root,omitempty" msgpack:"root,omitempty"`
	AliasTarget SymbolID      `json:"alias_target,omitempty" msgpack:"alias_target,omitempty"`
	Loaded      []SymbolID    `json:"loaded,omitempty" msgpack:"loaded,omitempty"`
	MergedInto  SymbolID      `json:"merged_into,omitempty" msgpack:"merged_into,omitempty"`
	Accessible  bool          `json:"accessible" msgpack:"accessible"`
	Modifiers   string        `json:"modifiers,omitempty" msgpack:"modifiers,omitempty"`
	Decls       int           `json:"decls" msgpack:"decls"`
	ValueType   SymbolID      `json:"value_type,omitempty" msgpack:"value_type,omitempty"`
	Usages      []UsageRecord `json:"usages,omitempty" msgpack:"usages,omitempty"`
}

// Snapshot is the exported forest.
type Snapshot struct {
	Schema  uint16     `json:"schema" msgpack:"schema"`
	Roots   []SymbolID `json:"roots" msgpack:"roots"`
	Symbols []Record   `json:"symbols" msgpack:"symbols"`
}

// Snapshot exports every symbol, merged ones included, in allocation order.
// When files is non-nil usage sites carry a path:line:col position.
func (t *Table) Snapshot(files *source.FileSet) *Snapshot {
	snap := &Snapshot{Schema: SnapshotSchema, Roots: t.Roots()}
	for _, id := range t.Symbols.IDs() {
		sym := t.Get(id)
		rec := Record{
			ID:          id,
			Kind:        sym.Kind.String(),
			Parent:      sym.Parent,
			File:        sym.File,
			Children:    sym.Children,
			Bases:       sym.Bases,
			Root:        sym.Root,
			AliasTarget: sym.AliasTarget,
			Loaded:      sym.Loaded,
			MergedInto:  sym.MergedInto,
			Accessible:  sym.Accessible,
			Modifiers:   sym.Modifiers.String(),
			Decls:       len(sym.Decls),
			ValueType:   sym.ValueType,
		}
		if sym.Name != source.NoStringID {
			rec.Name = t.Strings.MustLookup(sym.Name)
			rec.FullName = t.FullName(id)
		}
		for _, u := range sym.Usages {
			ur := UsageRecord{File: u.File, Start: u.Span.Start, End: u.Span.End, Scope: u.Scope}
			if files != nil {
				ur.Position = files.Position(u.Span)
			}
			rec.Usages = append(rec.Usages, ur)
		}
		snap.Symbols = append(snap.Symbols, rec)
	}
	return snap
}

// Record returns the record of id, or nil.
func (s *Snapshot) Record(id SymbolID) *Record {
	i := int(id) - 1
	if i < 0 || i >= len(s.Symbols) || s.Symbols[i].ID != id {
		return nil
	}
	return &s.Symbols[i]
}

// WriteJSON encodes the snapshot as indented JSON.
func (s *Snapshot) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WriteMsgpack encodes the snapshot as msgpack.
func (s *Snapshot) WriteMsgpack(w io.Writer) error {
	return msgpack.NewEncoder(w).Encode(s)
}

// ReadMsgpack decodes a snapshot written by WriteMsgpack.
func ReadMsgpack(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	if err := msgpack.NewDecoder(r).Decode(&s); err != nil {
		return nil, errors.Wrap(err, "decode snapshot")
	}
	if s.Schema != SnapshotSchema {
		return nil, errors.Newf("snapshot schema %d, want %d", s.Schema, SnapshotSchema)
	}
	return &s, nil
}

// WriteTree prints the surviving forest, one symbol per line, indented by
// depth. Anonymous scopes are shown by kind.
func (s *Snapshot) WriteTree(w io.Writer) error {
	var write func(id SymbolID, depth int) error
	write = func(id SymbolID, depth int) error {
		rec := s.Record(id)
		if rec == nil {
			return nil
		}
		var sb strings.Builder
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(rec.Kind)
		if rec.Name != "" {
			sb.WriteByte(' ')
			sb.WriteString(rec.Name)
		}
		if rec.Decls > 1 {
			fmt.Fprintf(&sb, " (%d declarations)", rec.Decls)
		}
		if rec.AliasTarget.IsValid() {
			if target := s.Record(rec.AliasTarget); target != nil {
				fmt.Fprintf(&sb, " = %s", target.FullName)
			}
		}
		if len(rec.Usages) > 0 {
			fmt.Fprintf(&sb, " [%d uses]", len(rec.Usages))
		}
		sb.WriteByte('\n')
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
		for _, c := range rec.Children {
			if child := s.Record(c); child != nil && child.MergedInto.IsValid() {
				continue
			}
			if err := write(c, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	for _, root := range s.Roots {
		if err := write(root, 0); err != nil {
			return err
		}
	}
	return nil
}
