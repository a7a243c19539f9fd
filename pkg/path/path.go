// Package path defines the hierarchical input of a layout run.
//
// A [Path] is a chain of typed, named elements ordered from ancestor to
// descendant: ["Platform", "Payments", "Ledger"] states that Payments is a
// child of Platform and Ledger a child of Payments. Many paths sharing
// prefixes describe a forest; paths sharing a child under different parents
// describe a DAG.
//
// Paths are read from JSON as an array of arrays:
//
//	[
//	  [{"identifier": "a", "name": "A", "type": "system"},
//	   {"identifier": "a1", "name": "A1", "type": "service"}]
//	]
package path

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	// ErrEmptyPath is returned by [Path.Validate] for a path with no elements.
	ErrEmptyPath = errors.New("path must not be empty")

	// ErrMissingIdentifier is returned by [Path.Validate] when an element has
	// an empty identifier.
	ErrMissingIdentifier = errors.New("element identifier must not be empty")
)

// Element is one node of a path.
type Element struct {
	ID   string `json:"identifier"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// DisplayName returns Name, falling back to ID.
func (e Element) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return e.ID
}

// Path is an ancestor-to-descendant chain.
type Path []Element

// Of builds a path from identifiers, using each identifier as its name.
func Of(ids ...string) Path {
	p := make(Path, len(ids))
	for i, id := range ids {
		p[i] = Element{ID: id, Name: id}
	}
	return p
}

// Validate reports whether the path is usable.
func (p Path) Validate() error {
	if len(p) == 0 {
		return ErrEmptyPath
	}
	for i, e := range p {
		if e.ID == "" {
			return fmt.Errorf("element %d: %w", i, ErrMissingIdentifier)
		}
	}
	return nil
}

// Pairs returns every adjacent (parent, child) pair in order.
func (p Path) Pairs() [][2]Element {
	if len(p) < 2 {
		return nil
	}
	out := make([][2]Element, 0, len(p)-1)
	for i := 1; i < len(p); i++ {
		out = append(out, [2]Element{p[i-1], p[i]})
	}
	return out
}

// Read decodes a JSON array of paths and validates each one.
func Read(r io.Reader) ([]Path, error) {
	var paths []Path
	if err := json.NewDecoder(r).Decode(&paths); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	for i, p := range paths {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("path %d: %w", i, err)
		}
	}
	return paths, nil
}

// ReadFile reads paths from a JSON file.
func ReadFile(name string) ([]Path, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()
	return Read(f)
}

// Marshal serializes paths to pretty-printed JSON.
func Marshal(paths []Path) ([]byte, error) {
	return json.MarshalIndent(paths, "", "  ")
}
