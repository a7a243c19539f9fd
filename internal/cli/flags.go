package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/smartview/pkg/layout"
	"github.com/matzehuels/smartview/pkg/pipeline"
	"github.com/matzehuels/smartview/pkg/settings"
)

// settingsFlags holds the layout tunables of the command line. Values are
// applied in order: settings file, SMARTVIEW_* environment, changed flags.
type settingsFlags struct {
	file          string
	viewID        string
	viewName      string
	sequentialIDs bool
	flags         settings.Settings
}

func (f *settingsFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.file, "settings", "", "settings file (.toml, .yaml, .yml or .json)")
	fs.StringVar(&f.viewID, "id", "", "view id (default: random UUID)")
	fs.StringVar(&f.viewName, "name", pipeline.DefaultViewName, "view name")
	fs.BoolVar(&f.sequentialIDs, "sequential-ids", false, "number view nodes n1, n2, ... instead of UUIDs")

	fs.StringVarP(&f.flags.LayoutType, "type", "t", settings.DefaultLayoutType, "layout strategy: nested (default), hierarchy")
	fs.IntVar(&f.flags.MaxHorizontalCount, "max-horizontal", settings.DefaultMaxHorizontalCount, "top-level nodes per row")
	fs.IntVar(&f.flags.MaxChildHorizontalCount, "max-child-horizontal", settings.DefaultMaxChildHorizontalCount, "children per row")
	fs.Float64Var(&f.flags.SpaceBetween, "spacing", settings.DefaultSpaceBetween, "space between siblings")
	fs.Float64Var(&f.flags.LeftPadding, "padding-left", settings.DefaultPadding, "container left padding")
	fs.Float64Var(&f.flags.RightPadding, "padding-right", settings.DefaultPadding, "container right padding")
	fs.Float64Var(&f.flags.TopPadding, "padding-top", settings.DefaultPadding, "container top padding")
	fs.Float64Var(&f.flags.BottomPadding, "padding-bottom", settings.DefaultPadding, "container bottom padding")
	fs.Float64Var(&f.flags.SpaceToOuterLabel, "label-gap", settings.DefaultSpaceToOuterLabel, "space between a label and its content")
	fs.Float64Var(&f.flags.LabelWidth, "label-width", settings.DefaultLabelWidth, "container label width")
	fs.Float64Var(&f.flags.LabelHeight, "label-height", settings.DefaultLabelHeight, "container label height")
	fs.Float64Var(&f.flags.SizeUnit, "size-unit", settings.DefaultSizeUnit, "size of one grid unit")
}

// resolve builds the settings of a run from the defaults, then the file, the
// environment and the flags the user actually set.
func (f *settingsFlags) resolve(cmd *cobra.Command) (settings.Settings, error) {
	s := settings.Default()
	if f.file != "" {
		loaded, err := settings.LoadFile(f.file)
		if err != nil {
			return settings.Settings{}, fmt.Errorf("load settings %s: %w", f.file, err)
		}
		s = loaded
	}
	s.ApplyEnv()

	changed := cmd.Flags().Changed
	if changed("type") {
		s.LayoutType = f.flags.LayoutType
	}
	if changed("max-horizontal") {
		s.MaxHorizontalCount = f.flags.MaxHorizontalCount
	}
	if changed("max-child-horizontal") {
		s.MaxChildHorizontalCount = f.flags.MaxChildHorizontalCount
	}
	floats := []struct {
		name     string
		dst, src *float64
	}{
		{"spacing", &s.SpaceBetween, &f.flags.SpaceBetween},
		{"padding-left", &s.LeftPadding, &f.flags.LeftPadding},
		{"padding-right", &s.RightPadding, &f.flags.RightPadding},
		{"padding-top", &s.TopPadding, &f.flags.TopPadding},
		{"padding-bottom", &s.BottomPadding, &f.flags.BottomPadding},
		{"label-gap", &s.SpaceToOuterLabel, &f.flags.SpaceToOuterLabel},
		{"label-width", &s.LabelWidth, &f.flags.LabelWidth},
		{"label-height", &s.LabelHeight, &f.flags.LabelHeight},
		{"size-unit", &s.SizeUnit, &f.flags.SizeUnit},
	}
	for _, fl := range floats {
		if changed(fl.name) {
			*fl.dst = *fl.src
		}
	}
	return s, nil
}

// options returns pipeline options carrying the resolved settings.
func (f *settingsFlags) options(cmd *cobra.Command) (pipeline.Options, error) {
	s, err := f.resolve(cmd)
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := pipeline.Options{Settings: s, ViewID: f.viewID, ViewName: f.viewName}
	if f.sequentialIDs {
		opts.IDs = layout.NewSequence("n")
	}
	return opts, nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension and a ".view" suffix from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(strings.TrimSuffix(input, filepath.Ext(input)), ".view")
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
