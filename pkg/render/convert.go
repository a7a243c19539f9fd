package render

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
)

// ErrConverterMissing reports that rsvg-convert is not on PATH.
var ErrConverterMissing = errors.New("rsvg-convert not found; install librsvg (brew install librsvg, apt install librsvg2-bin)")

// ToPDF converts SVG to PDF.
func ToPDF(svg []byte) ([]byte, error) {
	return rsvgConvert(svg, "pdf")
}

// ToPNG converts SVG to PNG at the given scale; 2.0 doubles the resolution.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	return rsvgConvert(svg, "png", "-z", fmt.Sprintf("%.2f", scale))
}

// Available reports whether PDF and PNG conversion can run.
func Available() bool {
	_, err := exec.LookPath("rsvg-convert")
	return err == nil
}

func rsvgConvert(svg []byte, format string, extra ...string) ([]byte, error) {
	if !Available() {
		return nil, fmt.Errorf("%s export: %w", format, ErrConverterMissing)
	}
	cmd := exec.Command("rsvg-convert", append([]string{"-f", format}, extra...)...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("rsvg-convert: %v: %s", err, stderr.String())
	}
	return out.Bytes(), nil
}
