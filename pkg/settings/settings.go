// Package settings holds the tunables of a layout run.
//
// [Default] returns the documented defaults. Settings decoded from a file
// start from them, so absent keys keep their default. Hand-built settings go
// through [Settings.ApplyDefaults] before [Settings.Validate] checks ranges
// with struct tags.
//
// Settings files may be TOML, YAML or JSON; the format follows the file
// extension:
//
//	layoutType = "hierarchy"
//	maxHorizontalCount = 4
//	spaceBetween = 12
package settings

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/smartview/pkg/errors"
	"github.com/matzehuels/smartview/pkg/layout"
	"github.com/matzehuels/smartview/pkg/layout/box"
)

// Layout strategies.
const (
	LayoutNested    = "nested"
	LayoutHierarchy = "hierarchy"
)

// Defaults.
const (
	DefaultLayoutType              = LayoutNested
	DefaultMaxHorizontalCount      = 6
	DefaultMaxChildHorizontalCount = 3
	DefaultSpaceBetween            = 10.0
	DefaultPadding                 = 10.0
	DefaultSpaceToOuterLabel       = 5.0
	DefaultLabelWidth              = 120.0
	DefaultLabelHeight             = 20.0
	DefaultSizeUnit                = layout.DefaultSizeUnit
)

// ValidLayoutTypes is the set of supported strategies.
var ValidLayoutTypes = map[string]bool{
	LayoutNested:    true,
	LayoutHierarchy: true,
}

// Settings configures the assembler and the layout tree.
// See ApplyDefaults for how zero fields are read.
type Settings struct {
	LayoutType              string  `json:"layoutType" yaml:"layoutType" toml:"layoutType" validate:"oneof=nested hierarchy"`
	MaxHorizontalCount      int     `json:"maxHorizontalCount" yaml:"maxHorizontalCount" toml:"maxHorizontalCount" validate:"gte=1"`
	MaxChildHorizontalCount int     `json:"maxChildHorizontalCount" yaml:"maxChildHorizontalCount" toml:"maxChildHorizontalCount" validate:"gte=1"`
	SpaceBetween            float64 `json:"spaceBetween" yaml:"spaceBetween" toml:"spaceBetween" validate:"gte=0"`
	LeftPadding             float64 `json:"leftPadding" yaml:"leftPadding" toml:"leftPadding" validate:"gte=0"`
	RightPadding            float64 `json:"rightPadding" yaml:"rightPadding" toml:"rightPadding" validate:"gte=0"`
	TopPadding              float64 `json:"topPadding" yaml:"topPadding" toml:"topPadding" validate:"gte=0"`
	BottomPadding           float64 `json:"bottomPadding" yaml:"bottomPadding" toml:"bottomPadding" validate:"gte=0"`
	SpaceToOuterLabel       float64 `json:"spaceToOuterLabel" yaml:"spaceToOuterLabel" toml:"spaceToOuterLabel" validate:"gte=0"`
	LabelWidth              float64 `json:"labelWidth" yaml:"labelWidth" toml:"labelWidth" validate:"gte=0"`
	LabelHeight             float64 `json:"labelHeight" yaml:"labelHeight" toml:"labelHeight" validate:"gte=0"`
	SizeUnit                float64 `json:"sizeUnit" yaml:"sizeUnit" toml:"sizeUnit" validate:"gt=0"`
}

// Default returns the default settings.
func Default() Settings {
	return Settings{
		LayoutType:              DefaultLayoutType,
		MaxHorizontalCount:      DefaultMaxHorizontalCount,
		MaxChildHorizontalCount: DefaultMaxChildHorizontalCount,
		SpaceBetween:            DefaultSpaceBetween,
		LeftPadding:             DefaultPadding,
		RightPadding:            DefaultPadding,
		TopPadding:              DefaultPadding,
		BottomPadding:           DefaultPadding,
		SpaceToOuterLabel:       DefaultSpaceToOuterLabel,
		LabelWidth:              DefaultLabelWidth,
		LabelHeight:             DefaultLabelHeight,
		SizeUnit:                DefaultSizeUnit,
	}
}

// ApplyDefaults fills the fields whose zero value is never valid. Spacing,
// paddings and label sizes are filled only when all of them are zero, so a
// hand-built Settings{} gets the defaults while an explicit 0 from a file or
// flag survives.
func (s *Settings) ApplyDefaults() {
	d := Default()
	if s.LayoutType == "" {
		s.LayoutType = d.LayoutType
	}
	s.LayoutType = strings.ToLower(s.LayoutType)
	if s.MaxHorizontalCount == 0 {
		s.MaxHorizontalCount = d.MaxHorizontalCount
	}
	if s.MaxChildHorizontalCount == 0 {
		s.MaxChildHorizontalCount = d.MaxChildHorizontalCount
	}
	if s.SizeUnit == 0 {
		s.SizeUnit = d.SizeUnit
	}
	if s.geometryUnset() {
		s.SpaceBetween = d.SpaceBetween
		s.LeftPadding = d.LeftPadding
		s.RightPadding = d.RightPadding
		s.TopPadding = d.TopPadding
		s.BottomPadding = d.BottomPadding
		s.SpaceToOuterLabel = d.SpaceToOuterLabel
		s.LabelWidth = d.LabelWidth
		s.LabelHeight = d.LabelHeight
	}
}

func (s *Settings) geometryUnset() bool {
	return s.SpaceBetween == 0 && s.LeftPadding == 0 && s.RightPadding == 0 &&
		s.TopPadding == 0 && s.BottomPadding == 0 && s.SpaceToOuterLabel == 0 &&
		s.LabelWidth == 0 && s.LabelHeight == 0
}

var validate = validator.New()

// Validate checks every field against its range. Failures are INVALID_CONFIG.
func (s Settings) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if errors.As(err, &fields) && len(fields) > 0 {
		f := fields[0]
		return errors.New(errors.ErrCodeInvalidConfig,
			"%s: value %v fails %q", f.Field(), f.Value(), constraint(f))
	}
	return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid settings")
}

func constraint(f validator.FieldError) string {
	if f.Param() == "" {
		return f.Tag()
	}
	return fmt.Sprintf("%s=%s", f.Tag(), f.Param())
}

// Padding returns the four paddings as a layout offset.
func (s Settings) Padding() layout.Offset {
	return layout.Offset{Top: s.TopPadding, Left: s.LeftPadding, Bottom: s.BottomPadding, Right: s.RightPadding}
}

// LabelStyle returns the caption sizes for visible groups.
func (s Settings) LabelStyle() layout.LabelStyle {
	return layout.LabelStyle{Width: s.LabelWidth, Height: s.LabelHeight, Gap: s.SpaceToOuterLabel}
}

// Presets returns the element sizes derived from SizeUnit.
func (s Settings) Presets() map[string]box.Dimension {
	return layout.Presets(s.SizeUnit)
}

// ElementSize returns the size of the default element preset.
func (s Settings) ElementSize() box.Dimension {
	return s.Presets()[layout.PresetElement]
}

// DirectorOptions returns the layout options matching these settings.
func (s Settings) DirectorOptions() []layout.Option {
	return []layout.Option{
		layout.WithSpacing(s.SpaceBetween),
		layout.WithPadding(s.Padding()),
		layout.WithLabelStyle(s.LabelStyle()),
		layout.WithPresets(s.Presets()),
	}
}
