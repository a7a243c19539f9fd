package svg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/smartview/pkg/view"
)

func sample() view.View {
	return view.New("v1", "Services", []view.Node{
		{ModelNodeID: "A", ViewNodeID: "n1", Name: "Platform", X: 0, Y: 0, Width: 140, Height: 105},
		{ModelNodeID: "D", ViewNodeID: "n2", Name: "db <primary>", X: 10, Y: 35, Width: 120, Height: 60, ParentID: "n1"},
	})
}

func TestRender(t *testing.T) {
	out := Render(sample())

	if !bytes.HasPrefix(out, []byte("<svg ")) || !bytes.HasSuffix(out, []byte("</svg>\n")) {
		t.Fatalf("Render() is not an svg document:\n%s", out)
	}
	if got := bytes.Count(out, []byte(`class="container"`)); got != 1 {
		t.Errorf("containers = %d, want 1", got)
	}
	if got := bytes.Count(out, []byte(`class="element"`)); got != 1 {
		t.Errorf("elements = %d, want 1", got)
	}
	if !bytes.Contains(out, []byte(`viewBox="-10.0 -10.0 160.0 125.0"`)) {
		t.Errorf("viewBox missing or wrong:\n%s", out)
	}
	if !bytes.Contains(out, []byte("db &lt;primary&gt;")) {
		t.Error("element name not escaped")
	}
	if !bytes.Contains(out, []byte("<title>Services</title>")) {
		t.Error("title missing")
	}
}

func TestRenderParentsFirst(t *testing.T) {
	out := string(Render(sample()))
	if strings.Index(out, `id="node-n1"`) > strings.Index(out, `id="node-n2"`) {
		t.Error("child drawn before its container")
	}
}

func TestRenderOptions(t *testing.T) {
	theme := DefaultTheme
	theme.ElementFill = "#abcdef"
	out := Render(sample(), WithMargin(0), WithTheme(theme))
	if !bytes.Contains(out, []byte(`viewBox="0.0 0.0 140.0 105.0"`)) {
		t.Errorf("WithMargin(0) viewBox wrong:\n%s", out)
	}
	if !bytes.Contains(out, []byte(`fill="#abcdef"`)) {
		t.Error("WithTheme fill missing")
	}
}

func TestRenderEmpty(t *testing.T) {
	out := Render(view.New("v", "", nil))
	if bytes.Contains(out, []byte("<rect class=\"element\"")) {
		t.Error("empty view drew elements")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width float64
		want  string
	}{
		{"short", 120, "short"},
		{"a-very-long-service-name", 60, "a-very-lo.."},
		{"x", 1, "x"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width, 8); got != tt.want {
			t.Errorf("truncate(%q, %v) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
