package pipeline

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/smartview/pkg/cache"
	"github.com/matzehuels/smartview/pkg/errors"
	"github.com/matzehuels/smartview/pkg/layout"
	"github.com/matzehuels/smartview/pkg/path"
	"github.com/matzehuels/smartview/pkg/settings"
	"github.com/matzehuels/smartview/pkg/view"
)

func samplePaths() []path.Path {
	return []path.Path{path.Of("A", "D"), path.Of("C", "D")}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"dot", false},
		{"invalid", true},
		{"SVG", true},
		{"", true},
	}
	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "dot"}); err != nil {
		t.Errorf("ValidateFormats(valid) error = %v", err)
	}
	if err := ValidateFormats([]string{"svg", "gif"}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ValidateFormats(gif) error = %v, want INVALID_INPUT", err)
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("ValidateFormats(nil) error = %v", err)
	}
}

func TestParseFormats(t *testing.T) {
	got := ParseFormats(" SVG, json,,dot ")
	want := []string{"svg", "json", "dot"}
	if len(got) != len(want) {
		t.Fatalf("ParseFormats() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ParseFormats()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.VizType != DefaultVizType || opts.Scale != DefaultScale || opts.ViewName != DefaultViewName {
		t.Errorf("defaults not applied: %+v", opts)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Settings.LayoutType != settings.LayoutNested || opts.IDs == nil || opts.Logger == nil {
		t.Errorf("layout defaults not applied: %+v", opts)
	}
}

func TestOptionsInvalid(t *testing.T) {
	opts := Options{VizType: "treemap"}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("VizType treemap accepted")
	}
	opts = Options{Settings: settings.Settings{LayoutType: "radial"}}
	if err := opts.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("bad layout type error = %v, want INVALID_CONFIG", err)
	}
}

func TestGenerate(t *testing.T) {
	v, err := Generate(samplePaths(), Options{IDs: layout.NewSequence("n"), ViewID: "v1", ViewName: "shared"})
	if err != nil {
		t.Fatal(err)
	}
	if v.ID != "v1" || v.Name != "shared" {
		t.Errorf("view = %s/%s, want v1/shared", v.ID, v.Name)
	}
	if got := len(v.Similar("D")); got != 2 {
		t.Errorf("Similar(D) = %d, want 2", got)
	}
}

func TestGenerateRandomViewID(t *testing.T) {
	a, err := Generate(samplePaths(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Generate(samplePaths(), Options{})
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("view ids %q and %q, want distinct non-empty", a.ID, b.ID)
	}
}

func TestGenerateWrapsFailures(t *testing.T) {
	tests := []struct {
		name  string
		paths []path.Path
		opts  Options
		cause errors.Code
	}{
		{"cycle", []path.Path{path.Of("A", "B"), path.Of("B", "A")}, Options{}, errors.ErrCodeCycleDetected},
		{"no paths", nil, Options{}, errors.ErrCodeInvalidInput},
		{"empty identifier", []path.Path{{{Name: "x"}}}, Options{}, errors.ErrCodeInvalidInput},
		{"bad settings", samplePaths(), Options{Settings: settings.Settings{SizeUnit: -1}}, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tt.paths, tt.opts)
			if got := errors.GetCode(err); got != errors.ErrCodeRenderFailed {
				t.Fatalf("GetCode() = %v, want RENDER_FAILED", got)
			}
			if errors.UserMessage(err) != "unable to render" {
				t.Errorf("UserMessage() = %q", errors.UserMessage(err))
			}
			if !errors.Is(err, tt.cause) {
				t.Errorf("cause %v not in chain: %v", tt.cause, err)
			}
		})
	}
}

func TestRender(t *testing.T) {
	v, err := Generate(samplePaths(), Options{IDs: layout.NewSequence("n"), ViewID: "v1"})
	if err != nil {
		t.Fatal(err)
	}
	artifacts, err := Render(v, Options{Formats: []string{FormatSVG, FormatJSON, FormatDOT}})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(artifacts[FormatSVG], []byte("<svg")) {
		t.Error("svg artifact is not an svg document")
	}
	if !bytes.Contains(artifacts[FormatDOT], []byte(`"A" -> "D"`)) {
		t.Errorf("dot artifact missing edge:\n%s", artifacts[FormatDOT])
	}
	back, err := view.Unmarshal(artifacts[FormatJSON])
	if err != nil {
		t.Fatal(err)
	}
	if len(back.ViewNodes) != len(v.ViewNodes) {
		t.Errorf("json artifact has %d nodes, want %d", len(back.ViewNodes), len(v.ViewNodes))
	}
}

func TestRenderUnsupported(t *testing.T) {
	if _, err := Render(view.View{}, Options{Formats: []string{"gif"}}); err == nil {
		t.Error("Render(gif) error = nil")
	}
}

type countingCache struct {
	cache.Cache
	sets int
}

func (c *countingCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.sets++
	return c.Cache.Set(ctx, key, data, ttl)
}

func TestRunnerCachesView(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	c := &countingCache{Cache: fc}
	r := NewRunner(c, nil, nil)
	ctx := context.Background()
	opts := Options{ViewID: "v1", Formats: []string{FormatJSON, FormatDOT}}

	first, err := r.Execute(ctx, samplePaths(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheHit {
		t.Error("first run hit the cache")
	}
	if first.Stats.PathCount != 2 || first.Stats.NodeCount != 4 {
		t.Errorf("Stats = %+v, want 2 paths, 4 nodes", first.Stats)
	}
	if c.sets != 3 {
		t.Errorf("cache sets = %d, want 3 (view and two artifacts)", c.sets)
	}

	second, err := r.Execute(ctx, samplePaths(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheHit {
		t.Error("second run missed the cache")
	}
	if !bytes.Equal(first.Artifacts[FormatJSON], second.Artifacts[FormatJSON]) {
		t.Error("cached json artifact differs")
	}
	if c.sets != 3 {
		t.Errorf("cache sets after hit = %d, want 3", c.sets)
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, samplePaths(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheHit {
		t.Error("refresh run hit the cache")
	}
}

func TestRunnerSettingsChangeKey(t *testing.T) {
	fc, _ := cache.NewFileCache(t.TempDir())
	r := NewRunner(fc, nil, nil)
	ctx := context.Background()

	opts := Options{ViewID: "v1", Formats: []string{FormatJSON}}
	if _, err := r.Execute(ctx, samplePaths(), opts); err != nil {
		t.Fatal(err)
	}
	opts.Settings.LayoutType = settings.LayoutHierarchy
	res, err := r.Execute(ctx, samplePaths(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheHit {
		t.Error("different layout type reused the cached view")
	}
}

func TestRunnerIDSchemeChangesKey(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	ctx := context.Background()

	if _, err := r.Layout(ctx, samplePaths(), Options{ViewID: "v"}); err != nil {
		t.Fatal(err)
	}
	v, hit, err := r.LayoutWithCacheInfo(ctx, samplePaths(), Options{ViewID: "v", IDs: layout.NewSequence("n")})
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("sequential ids reused a view cached with uuids")
	}
	for _, n := range v.ViewNodes {
		if !strings.HasPrefix(n.ViewNodeID, "n") {
			t.Errorf("ViewNodeID = %q, want n prefix", n.ViewNodeID)
		}
	}

	_, hit, err = r.LayoutWithCacheInfo(ctx, samplePaths(), Options{ViewID: "v", IDs: layout.NewSequence("n")})
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Error("second sequential run missed the cache")
	}
}

func TestRunnerErrors(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), samplePaths(), Options{Formats: []string{"gif"}})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad format error = %v, want INVALID_INPUT", err)
	}
	_, err = r.Execute(context.Background(), []path.Path{path.Of("A", "A")}, Options{})
	if !errors.Is(err, errors.ErrCodeCycleDetected) {
		t.Errorf("cycle error = %v, want CYCLE_DETECTED", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
