package view

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// View Serialization API
// =============================================================================

// Marshal serializes a View to pretty-printed JSON bytes.
func Marshal(v View) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// Unmarshal decodes JSON bytes into a View.
// Node ids must be present and unique.
func Unmarshal(data []byte) (View, error) {
	var v View
	if err := json.Unmarshal(data, &v); err != nil {
		return View{}, fmt.Errorf("unmarshal view: %w", err)
	}
	if err := validate(v); err != nil {
		return View{}, err
	}
	if v.ViewRelationships == nil {
		v.ViewRelationships = []Relationship{}
	}
	return v, nil
}

// Write writes a View as JSON to an io.Writer.
func Write(v View, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Read decodes a JSON view from an io.Reader.
func Read(r io.Reader) (View, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return View{}, fmt.Errorf("read: %w", err)
	}
	return Unmarshal(data)
}

// WriteFile writes a View to a JSON file.
func WriteFile(v View, path string) error {
	data, err := Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a View from a JSON file.
func ReadFile(path string) (View, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return View{}, fmt.Errorf("read %s: %w", path, err)
	}
	return Unmarshal(data)
}

func validate(v View) error {
	seen := make(map[string]bool, len(v.ViewNodes))
	for i, n := range v.ViewNodes {
		if n.ViewNodeID == "" {
			return fmt.Errorf("view node %d: missing viewNodeId", i)
		}
		if seen[n.ViewNodeID] {
			return fmt.Errorf("view node %d: duplicate viewNodeId %q", i, n.ViewNodeID)
		}
		seen[n.ViewNodeID] = true
	}
	return nil
}
