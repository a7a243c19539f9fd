package svg

import (
	"bytes"
	"encoding/xml"
)

const (
	fontHeightRatio = 0.6
	fontWidthRatio  = 0.85
	fontCharWidth   = 0.55
	fontSizeMin     = 8.0
	fontSizeMax     = 18.0
)

func fontSize(availWidth, availHeight float64, textLen int) float64 {
	n := max(1, textLen)
	byHeight := availHeight * fontHeightRatio
	byWidth := (availWidth * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

// truncate shortens s to what fits in width at size, marking the cut with "..".
func truncate(s string, width, size float64) string {
	r := []rune(s)
	fit := max(3, int(width*fontWidthRatio/(size*fontCharWidth)))
	if len(r) <= fit {
		return s
	}
	return string(r[:fit-2]) + ".."
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
