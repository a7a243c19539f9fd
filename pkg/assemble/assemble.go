// Package assemble turns a semantic DAG into a positioned view.
//
// Both strategies share one base: [Flatten] expands the DAG into a forest in
// which an element with several parents appears once per parent, and
// [GroupParentNodes] rebuilds that forest from its flat parent links and
// weighs every node by its descendant count.
//
//   - [Nested] wraps every parent around its children: a labeled row holding
//     a column of child rows, heaviest children first.
//   - [Hierarchy] measures each subtree against a column budget, then places
//     nodes page by page with a [PlotCursor].
//
// Use [New] to pick a strategy by settings name, or [Assemble] to run the
// whole flow.
package assemble

import (
	"github.com/matzehuels/smartview/pkg/errors"
	"github.com/matzehuels/smartview/pkg/layout"
	"github.com/matzehuels/smartview/pkg/semantic"
	"github.com/matzehuels/smartview/pkg/settings"
	"github.com/matzehuels/smartview/pkg/view"
)

// Options configures one assembly run.
type Options struct {
	Settings settings.Settings
	IDs      layout.IDSource
	ViewID   string
	ViewName string
}

// Strategy positions a weighted view forest.
type Strategy interface {
	Name() string
	Layout(roots []*Node, opts Options) (view.View, error)
}

// New returns the strategy registered under name.
func New(name string) (Strategy, error) {
	switch name {
	case settings.LayoutNested, "":
		return Nested{}, nil
	case settings.LayoutHierarchy:
		return Hierarchy{}, nil
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unknown layout type %q", name)
}

// Assemble expands e into a view forest and lays it out with the strategy
// named by opts.Settings.LayoutType.
func Assemble(e *semantic.Engine, opts Options) (view.View, error) {
	opts.Settings.ApplyDefaults()
	if err := opts.Settings.Validate(); err != nil {
		return view.View{}, err
	}
	if opts.IDs == nil {
		opts.IDs = layout.NewSequence("n")
	}
	strategy, err := New(opts.Settings.LayoutType)
	if err != nil {
		return view.View{}, err
	}
	flat, err := Flatten(e, opts.IDs)
	if err != nil {
		return view.View{}, err
	}
	roots, err := GroupParentNodes(flat)
	if err != nil {
		return view.View{}, err
	}
	return strategy.Layout(roots, opts)
}
