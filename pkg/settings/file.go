package settings

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/smartview/pkg/errors"
)

// EnvPrefix prefixes the environment overrides read by ApplyEnv.
const EnvPrefix = "SMARTVIEW_"

// LoadFile reads settings from a .toml, .yaml, .yml or .json file. Keys
// absent from the file keep their defaults. The result is validated.
func LoadFile(name string) (Settings, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return Settings{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read settings %s", name)
	}
	return Decode(data, filepath.Ext(name))
}

// Decode parses settings in the format named by ext (".toml", ".yaml",
// ".yml" or ".json") on top of the defaults.
func Decode(data []byte, ext string) (Settings, error) {
	s := Default()
	var err error
	switch strings.ToLower(ext) {
	case ".toml":
		_, err = toml.NewDecoder(bytes.NewReader(data)).Decode(&s)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &s)
	case ".json":
		err = json.Unmarshal(data, &s)
	default:
		return Settings{}, errors.New(errors.ErrCodeInvalidConfig, "unsupported settings format %q", ext)
	}
	if err != nil {
		return Settings{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode settings")
	}
	s.ApplyDefaults()
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// ApplyEnv overrides fields from SMARTVIEW_* variables such as
// SMARTVIEW_LAYOUT_TYPE or SMARTVIEW_SPACE_BETWEEN. Unparsable values are
// ignored.
func (s *Settings) ApplyEnv() {
	if v := os.Getenv(EnvPrefix + "LAYOUT_TYPE"); v != "" {
		s.LayoutType = v
	}
	ints := map[string]*int{
		"MAX_HORIZONTAL_COUNT":       &s.MaxHorizontalCount,
		"MAX_CHILD_HORIZONTAL_COUNT": &s.MaxChildHorizontalCount,
	}
	for key, dst := range ints {
		if v := os.Getenv(EnvPrefix + key); v != "" {
			if i, err := strconv.Atoi(v); err == nil {
				*dst = i
			}
		}
	}
	floats := map[string]*float64{
		"SPACE_BETWEEN":        &s.SpaceBetween,
		"LEFT_PADDING":         &s.LeftPadding,
		"RIGHT_PADDING":        &s.RightPadding,
		"TOP_PADDING":          &s.TopPadding,
		"BOTTOM_PADDING":       &s.BottomPadding,
		"SPACE_TO_OUTER_LABEL": &s.SpaceToOuterLabel,
		"LABEL_WIDTH":          &s.LabelWidth,
		"LABEL_HEIGHT":         &s.LabelHeight,
		"SIZE_UNIT":            &s.SizeUnit,
	}
	for key, dst := range floats {
		if v := os.Getenv(EnvPrefix + key); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				*dst = f
			}
		}
	}
}
