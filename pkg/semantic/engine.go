// Package semantic folds hierarchical paths into one deduplicated DAG.
//
// Every distinct identifier becomes one [Element]. For each adjacent
// (parent, child) pair of a path the child is recorded under the parent at
// most once, and the parent is recorded in the child's parent set, so an
// element may end up with several parents. A path of length one yields a
// childless root.
//
// Elements, children and parents are returned in first-seen order, which
// keeps downstream layout deterministic. Queries for unknown identifiers
// return empty results.
package semantic

import (
	"slices"

	"github.com/matzehuels/smartview/pkg/errors"
	"github.com/matzehuels/smartview/pkg/path"
)

// Element is one semantic node with its deduplicated children.
type Element struct {
	Node     path.Element
	Children []path.Element
	IsRoot   bool
}

// IsLeaf reports whether the element has no children.
func (e Element) IsLeaf() bool { return len(e.Children) == 0 }

type entry struct {
	node     path.Element
	children []string
	parents  []string
}

// Engine accumulates paths. The zero value is not usable; call New.
type Engine struct {
	entries map[string]*entry
	order   []string
}

// New creates an empty Engine.
func New() *Engine {
	return &Engine{entries: make(map[string]*entry)}
}

// Build folds every path into a new Engine.
func Build(paths []path.Path) (*Engine, error) {
	e := New()
	for i, p := range paths {
		if err := e.Add(p); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "path %d", i)
		}
	}
	return e, nil
}

// Add folds one path into the engine.
func (e *Engine) Add(p path.Path) error {
	if err := p.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid path")
	}
	if len(p) == 1 {
		e.ensure(p[0])
		return nil
	}
	for _, pair := range p.Pairs() {
		parent, child := e.ensure(pair[0]), e.ensure(pair[1])
		if !slices.Contains(parent.children, child.node.ID) {
			parent.children = append(parent.children, child.node.ID)
		}
		if !slices.Contains(child.parents, parent.node.ID) {
			child.parents = append(child.parents, parent.node.ID)
		}
	}
	return nil
}

func (e *Engine) ensure(n path.Element) *entry {
	if en, ok := e.entries[n.ID]; ok {
		return en
	}
	en := &entry{node: n}
	e.entries[n.ID] = en
	e.order = append(e.order, n.ID)
	return en
}

// Len returns the number of distinct elements.
func (e *Engine) Len() int { return len(e.order) }

// Element returns the element with the given identifier.
func (e *Engine) Element(id string) (Element, bool) {
	en, ok := e.entries[id]
	if !ok {
		return Element{}, false
	}
	return e.element(en), true
}

func (e *Engine) element(en *entry) Element {
	return Element{
		Node:     en.node,
		Children: e.nodes(en.children),
		IsRoot:   len(en.parents) == 0,
	}
}

func (e *Engine) nodes(ids []string) []path.Element {
	out := make([]path.Element, len(ids))
	for i, id := range ids {
		out[i] = e.entries[id].node
	}
	return out
}

// Elements returns every element in first-seen order.
func (e *Engine) Elements() []Element {
	return e.filter(func(*entry) bool { return true })
}

// FindLeaves returns every element without children.
func (e *Engine) FindLeaves() []Element {
	return e.filter(func(en *entry) bool { return len(en.children) == 0 })
}

// Leaves is FindLeaves.
func (e *Engine) Leaves() []Element { return e.FindLeaves() }

// Roots returns every element without parents.
func (e *Engine) Roots() []Element {
	return e.filter(func(en *entry) bool { return len(en.parents) == 0 })
}

func (e *Engine) filter(keep func(*entry) bool) []Element {
	out := []Element{}
	for _, id := range e.order {
		if en := e.entries[id]; keep(en) {
			out = append(out, e.element(en))
		}
	}
	return out
}

// Parents returns the distinct parents of id.
func (e *Engine) Parents(id string) []path.Element {
	en, ok := e.entries[id]
	if !ok {
		return []path.Element{}
	}
	return e.nodes(en.parents)
}

// Children returns the distinct children of id.
func (e *Engine) Children(id string) []path.Element {
	en, ok := e.entries[id]
	if !ok {
		return []path.Element{}
	}
	return e.nodes(en.children)
}

// ParentIDs returns the identifiers of the parents of id.
func (e *Engine) ParentIDs(id string) []string {
	if en, ok := e.entries[id]; ok {
		return slices.Clone(en.parents)
	}
	return []string{}
}

// ChildIDs returns the identifiers of the children of id.
func (e *Engine) ChildIDs(id string) []string {
	if en, ok := e.entries[id]; ok {
		return slices.Clone(en.children)
	}
	return []string{}
}
