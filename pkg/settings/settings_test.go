package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/smartview/pkg/errors"
	"github.com/matzehuels/smartview/pkg/layout"
)

func TestDefault(t *testing.T) {
	s := Default()
	if err := s.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if s.LayoutType != LayoutNested || s.MaxHorizontalCount != 6 || s.MaxChildHorizontalCount != 3 {
		t.Errorf("Default() = %+v", s)
	}
	if got := s.ElementSize(); got.Width != 120 || got.Height != 60 {
		t.Errorf("ElementSize() = %+v, want 120x60", got)
	}
	if got := s.Presets()[layout.PresetCompact]; got.Width != 80 || got.Height != 40 {
		t.Errorf("compact preset = %+v, want 80x40", got)
	}
}

func TestApplyDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   Settings
		want Settings
	}{
		{"zero", Settings{}, Default()},
		{
			"layout only",
			Settings{LayoutType: "Hierarchy", MaxHorizontalCount: 2},
			func() Settings { s := Default(); s.LayoutType = LayoutHierarchy; s.MaxHorizontalCount = 2; return s }(),
		},
		{
			"explicit zero padding kept",
			func() Settings { s := Default(); s.LeftPadding = 0; s.SpaceBetween = 0; return s }(),
			func() Settings { s := Default(); s.LeftPadding = 0; s.SpaceBetween = 0; return s }(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in
			got.ApplyDefaults()
			if got != tt.want {
				t.Errorf("ApplyDefaults() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{"defaults", func(*Settings) {}, false},
		{"unknown layout", func(s *Settings) { s.LayoutType = "radial" }, true},
		{"zero columns", func(s *Settings) { s.MaxHorizontalCount = 0 }, true},
		{"negative spacing", func(s *Settings) { s.SpaceBetween = -1 }, true},
		{"zero unit", func(s *Settings) { s.SizeUnit = 0 }, true},
		{"zero padding", func(s *Settings) { s.LeftPadding = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(&s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Validate() code = %v, want INVALID_CONFIG", errors.GetCode(err))
			}
		})
	}
}

func TestDecodeFormats(t *testing.T) {
	tests := []struct {
		ext  string
		data string
	}{
		{".toml", "layoutType = \"hierarchy\"\nmaxHorizontalCount = 4\nspaceBetween = 12.5\n"},
		{".yaml", "layoutType: hierarchy\nmaxHorizontalCount: 4\nspaceBetween: 12.5\n"},
		{".json", `{"layoutType": "hierarchy", "maxHorizontalCount": 4, "spaceBetween": 12.5}`},
	}
	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			s, err := Decode([]byte(tt.data), tt.ext)
			if err != nil {
				t.Fatal(err)
			}
			if s.LayoutType != LayoutHierarchy || s.MaxHorizontalCount != 4 || s.SpaceBetween != 12.5 {
				t.Errorf("Decode() = %+v", s)
			}
			if s.MaxChildHorizontalCount != DefaultMaxChildHorizontalCount {
				t.Errorf("MaxChildHorizontalCount = %d, want default", s.MaxChildHorizontalCount)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := Decode([]byte("x"), ".ini"); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("unknown format error = %v", err)
	}
	if _, err := Decode([]byte("layoutType: [\n"), ".yaml"); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("malformed yaml error = %v", err)
	}
	if _, err := Decode([]byte(`{"layoutType": "radial"}`), ".json"); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("invalid value error = %v", err)
	}
}

func TestDecodeExplicitZero(t *testing.T) {
	s, err := Decode([]byte("leftPadding = 0\nspaceBetween = 0\n"), ".toml")
	if err != nil {
		t.Fatal(err)
	}
	if s.LeftPadding != 0 || s.SpaceBetween != 0 {
		t.Errorf("explicit zeros replaced: left=%v spacing=%v", s.LeftPadding, s.SpaceBetween)
	}
	if s.RightPadding != DefaultPadding {
		t.Errorf("RightPadding = %v, want default %v", s.RightPadding, DefaultPadding)
	}
	s.ApplyDefaults()
	if s.LeftPadding != 0 {
		t.Errorf("ApplyDefaults() refilled an explicit zero: left=%v", s.LeftPadding)
	}
}

func TestLoadFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "smartview.yml")
	if err := os.WriteFile(name, []byte("labelWidth: 90\n"), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if s.LabelWidth != 90 {
		t.Errorf("LabelWidth = %v, want 90", s.LabelWidth)
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "none.toml")); err == nil {
		t.Error("LoadFile(missing) error = nil")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("SMARTVIEW_LAYOUT_TYPE", "hierarchy")
	t.Setenv("SMARTVIEW_MAX_CHILD_HORIZONTAL_COUNT", "5")
	t.Setenv("SMARTVIEW_SIZE_UNIT", "25")
	t.Setenv("SMARTVIEW_LABEL_HEIGHT", "not-a-number")

	s := Default()
	s.ApplyEnv()
	if s.LayoutType != LayoutHierarchy || s.MaxChildHorizontalCount != 5 || s.SizeUnit != 25 {
		t.Errorf("ApplyEnv() = %+v", s)
	}
	if s.LabelHeight != DefaultLabelHeight {
		t.Errorf("LabelHeight = %v, want default after bad value", s.LabelHeight)
	}
}
