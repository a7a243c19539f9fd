package assemble

import (
	"fmt"
	"testing"

	"github.com/matzehuels/smartview/pkg/errors"
	"github.com/matzehuels/smartview/pkg/layout"
	"github.com/matzehuels/smartview/pkg/path"
	"github.com/matzehuels/smartview/pkg/semantic"
	"github.com/matzehuels/smartview/pkg/settings"
	"github.com/matzehuels/smartview/pkg/view"
)

const tol = 1e-6

var strategies = []string{settings.LayoutNested, settings.LayoutHierarchy}

func build(t *testing.T, paths ...path.Path) *semantic.Engine {
	t.Helper()
	e, err := semantic.Build(paths)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func run(t *testing.T, layoutType string, paths ...path.Path) view.View {
	t.Helper()
	s := settings.Default()
	s.LayoutType = layoutType
	v, err := Assemble(build(t, paths...), Options{Settings: s, IDs: layout.NewSequence("v"), ViewID: "view", ViewName: "test"})
	if err != nil {
		t.Fatalf("Assemble(%s) error = %v", layoutType, err)
	}
	return v
}

func TestFlattenDuplicatesSharedChild(t *testing.T) {
	e := build(t, path.Of("A", "D"), path.Of("C", "D"))
	flat, err := Flatten(e, layout.NewSequence("n"))
	if err != nil {
		t.Fatal(err)
	}
	want := []struct{ model, view, parent string }{
		{"A", "n1", ""},
		{"D", "n2", "n1"},
		{"C", "n3", ""},
		{"D", "n4", "n3"},
	}
	if len(flat) != len(want) {
		t.Fatalf("len(flat) = %d, want %d", len(flat), len(want))
	}
	for i, w := range want {
		f := flat[i]
		if f.ModelNodeID != w.model || f.ViewNodeID != w.view || f.ParentID != w.parent {
			t.Errorf("flat[%d] = %s/%s under %q, want %s/%s under %q",
				i, f.ModelNodeID, f.ViewNodeID, f.ParentID, w.model, w.view, w.parent)
		}
	}
}

func TestFlattenDeepCopiesSubtree(t *testing.T) {
	e := build(t, path.Of("R1", "M", "L"), path.Of("R2", "M"))
	flat, err := Flatten(e, layout.NewSequence("n"))
	if err != nil {
		t.Fatal(err)
	}
	count := map[string]int{}
	seen := map[string]bool{}
	for _, f := range flat {
		count[f.ModelNodeID]++
		if seen[f.ViewNodeID] {
			t.Errorf("view id %s emitted twice", f.ViewNodeID)
		}
		seen[f.ViewNodeID] = true
	}
	wantCount := map[string]int{"R1": 1, "R2": 1, "M": 2, "L": 2}
	for id, n := range wantCount {
		if count[id] != n {
			t.Errorf("occurrences of %s = %d, want %d", id, count[id], n)
		}
	}
}

func TestFlattenKeepsChildOrder(t *testing.T) {
	e := build(t, path.Of("P", "X", "Y"), path.Of("P", "Z"))
	flat, err := Flatten(e, layout.NewSequence("n"))
	if err != nil {
		t.Fatal(err)
	}
	var kids []string
	for _, f := range flat {
		if f.ParentID == flat[0].ViewNodeID {
			kids = append(kids, f.ModelNodeID)
		}
	}
	if fmt.Sprint(kids) != "[X Z]" {
		t.Errorf("children of P = %v, want [X Z]", kids)
	}
}

func TestFlattenCycle(t *testing.T) {
	tests := []struct {
		name  string
		paths []path.Path
	}{
		{"two nodes", []path.Path{path.Of("A", "B"), path.Of("B", "A")}},
		{"self loop", []path.Path{path.Of("A", "A")}},
		{"behind a root", []path.Path{path.Of("R", "A", "B", "A")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Flatten(build(t, tt.paths...), layout.NewSequence("n"))
			if !errors.Is(err, errors.ErrCodeCycleDetected) {
				t.Errorf("Flatten() error = %v, want CYCLE_DETECTED", err)
			}
		})
	}
}

func TestGroupParentNodes(t *testing.T) {
	flat := []view.Node{
		{ViewNodeID: "r"},
		{ViewNodeID: "a", ParentID: "r"},
		{ViewNodeID: "b", ParentID: "a"},
		{ViewNodeID: "c", ParentID: "a"},
		{ViewNodeID: "d", ParentID: "r"},
		{ViewNodeID: "o", ParentID: "unknown"},
	}
	roots, err := GroupParentNodes(flat)
	if err != nil {
		t.Fatal(err)
	}
	if len(roots) != 2 || roots[0].ViewID != "r" || roots[1].ViewID != "o" {
		t.Fatalf("roots = %v, want [r o]", roots)
	}
	r := roots[0]
	if r.NestedCount != 4 {
		t.Errorf("r.NestedCount = %d, want 4", r.NestedCount)
	}
	if a := r.Children[0]; a.NestedCount != 2 || a.Parent != r {
		t.Errorf("a = %+v, want NestedCount 2 under r", a)
	}
	if got := byWeight(r.Children); got[0].ViewID != "a" || got[1].ViewID != "d" {
		t.Errorf("byWeight order = %s,%s, want a,d", got[0].ViewID, got[1].ViewID)
	}
}

func TestGroupParentNodesErrors(t *testing.T) {
	if _, err := GroupParentNodes([]view.Node{{ViewNodeID: "a"}, {ViewNodeID: "a"}}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("duplicate id error = %v, want INVALID_INPUT", err)
	}
	loop := []view.Node{{ViewNodeID: "a", ParentID: "b"}, {ViewNodeID: "b", ParentID: "a"}}
	if _, err := GroupParentNodes(loop); !errors.Is(err, errors.ErrCodeCycleDetected) {
		t.Errorf("loop error = %v, want CYCLE_DETECTED", err)
	}
}

func TestSharedChildBothStrategies(t *testing.T) {
	for _, lt := range strategies {
		t.Run(lt, func(t *testing.T) {
			v := run(t, lt, path.Of("A", "D"), path.Of("C", "D"))
			checkGeometry(t, v)

			ds := v.Similar("D")
			if len(ds) != 2 {
				t.Fatalf("Similar(D) = %d nodes, want 2", len(ds))
			}
			if ds[0].ViewNodeID == ds[1].ViewNodeID {
				t.Errorf("duplicates share view id %s", ds[0].ViewNodeID)
			}
			parents := map[string]bool{}
			for _, d := range ds {
				p, ok := v.Node(d.ParentID)
				if !ok {
					t.Fatalf("D occurrence %s has no parent", d.ViewNodeID)
				}
				parents[p.ModelNodeID] = true
			}
			if !parents["A"] || !parents["C"] {
				t.Errorf("D parents = %v, want A and C", parents)
			}

			want := map[string]struct{ x, y, w, h float64 }{
				"A": {0, 0, 140, 105},
				"C": {150, 0, 140, 105},
			}
			for model, w := range want {
				n := v.Similar(model)[0]
				if n.X != w.x || n.Y != w.y || n.Width != w.w || n.Height != w.h {
					t.Errorf("%s = (%v,%v %vx%v), want (%v,%v %vx%v)", model, n.X, n.Y, n.Width, n.Height, w.x, w.y, w.w, w.h)
				}
			}
			for _, d := range ds {
				p, _ := v.Node(d.ParentID)
				if d.X != p.X+10 || d.Y != p.Y+35 {
					t.Errorf("D at (%v,%v), want (%v,%v)", d.X, d.Y, p.X+10, p.Y+35)
				}
			}
		})
	}
}

func TestChildRowBreaking(t *testing.T) {
	var paths []path.Path
	for i := range 7 {
		paths = append(paths, path.Of("R", fmt.Sprintf("L%d", i)))
	}
	for _, lt := range strategies {
		t.Run(lt, func(t *testing.T) {
			v := run(t, lt, paths...)
			checkGeometry(t, v)

			r := v.Similar("R")[0]
			if r.Width != 400 || r.Height != 245 {
				t.Errorf("R = %vx%v, want 400x245", r.Width, r.Height)
			}
			for i := range 7 {
				l := v.Similar(fmt.Sprintf("L%d", i))[0]
				wantX := 10 + float64(i%3)*130
				wantY := 35 + float64(i/3)*70
				if l.X != wantX || l.Y != wantY {
					t.Errorf("L%d at (%v,%v), want (%v,%v)", i, l.X, l.Y, wantX, wantY)
				}
			}
		})
	}
}

func TestTopLevelRowBreaking(t *testing.T) {
	var paths []path.Path
	for i := range 7 {
		paths = append(paths, path.Of(fmt.Sprintf("N%d", i)))
	}
	for _, lt := range strategies {
		t.Run(lt, func(t *testing.T) {
			v := run(t, lt, paths...)
			checkGeometry(t, v)
			if len(v.ViewNodes) != 7 {
				t.Fatalf("len(ViewNodes) = %d, want 7", len(v.ViewNodes))
			}
			last := v.Similar("N6")[0]
			if last.X != 0 || last.Y != 70 {
				t.Errorf("N6 at (%v,%v), want (0,70)", last.X, last.Y)
			}
			if v.Bounds.Width() != 770 || v.Bounds.Height() != 130 {
				t.Errorf("bounds = %vx%v, want 770x130", v.Bounds.Width(), v.Bounds.Height())
			}
		})
	}
}

func TestHeaviestChildFirst(t *testing.T) {
	for _, lt := range strategies {
		t.Run(lt, func(t *testing.T) {
			v := run(t, lt, path.Of("P", "light"), path.Of("P", "heavy", "x"), path.Of("P", "heavy", "y"))
			checkGeometry(t, v)
			light, heavy := v.Similar("light")[0], v.Similar("heavy")[0]
			if heavy.X >= light.X && heavy.Y >= light.Y {
				t.Errorf("heavy at (%v,%v) placed after light at (%v,%v)", heavy.X, heavy.Y, light.X, light.Y)
			}
		})
	}
}

func TestDeepForestGeometry(t *testing.T) {
	var paths []path.Path
	for r := range 3 {
		for m := range 4 {
			for l := range r + 2 {
				paths = append(paths, path.Of(
					fmt.Sprintf("r%d", r),
					fmt.Sprintf("r%d.m%d", r, m),
					fmt.Sprintf("r%d.m%d.l%d", r, m, l)))
			}
		}
	}
	paths = append(paths, path.Of("r0", "shared"), path.Of("r2.m1", "shared"))
	for _, lt := range strategies {
		t.Run(lt, func(t *testing.T) {
			v := run(t, lt, paths...)
			checkGeometry(t, v)
			if got := len(v.Similar("shared")); got != 2 {
				t.Errorf("Similar(shared) = %d, want 2", got)
			}
			for i := 1; i < len(v.ViewNodes); i++ {
				if v.ViewNodes[i-1].NestedCount < v.ViewNodes[i].NestedCount {
					t.Fatalf("ViewNodes not sorted parents-first at %d", i)
				}
			}
		})
	}
}

func TestAssembleErrors(t *testing.T) {
	e := build(t, path.Of("A", "B"))
	s := settings.Default()
	s.LayoutType = "radial"
	if _, err := Assemble(e, Options{Settings: s}); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("bad layout type error = %v, want INVALID_CONFIG", err)
	}
	if _, err := New("radial"); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("New(radial) error = %v, want UNSUPPORTED", err)
	}
	cyclic := build(t, path.Of("A", "B"), path.Of("B", "A"))
	if _, err := Assemble(cyclic, Options{}); !errors.Is(err, errors.ErrCodeCycleDetected) {
		t.Errorf("cycle error = %v, want CYCLE_DETECTED", err)
	}
}

func TestAssembleZeroSettings(t *testing.T) {
	v, err := Assemble(build(t, path.Of("A", "B")), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(v.ViewNodes) != 2 {
		t.Errorf("len(ViewNodes) = %d, want 2", len(v.ViewNodes))
	}
}

func checkGeometry(t *testing.T, v view.View) {
	t.Helper()
	byParent := map[string][]view.Node{}
	for _, n := range v.ViewNodes {
		byParent[n.ParentID] = append(byParent[n.ParentID], n)
		if n.ParentID == "" {
			continue
		}
		p, ok := v.Node(n.ParentID)
		if !ok {
			t.Errorf("%s: parent %s missing", n.ViewNodeID, n.ParentID)
			continue
		}
		if n.X < p.X-tol || n.Y < p.Y-tol || n.Right() > p.Right()+tol || n.Bottom() > p.Bottom()+tol {
			t.Errorf("%s escapes parent %s", n.ViewNodeID, p.ViewNodeID)
		}
	}
	for parent, kids := range byParent {
		for i := range kids {
			for j := i + 1; j < len(kids); j++ {
				a, b := kids[i], kids[j]
				if a.X < b.Right()-tol && b.X < a.Right()-tol && a.Y < b.Bottom()-tol && b.Y < a.Bottom()-tol {
					t.Errorf("siblings %s and %s overlap under %q", a.ViewNodeID, b.ViewNodeID, parent)
				}
			}
		}
	}
}
