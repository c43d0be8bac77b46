package render

import (
	"html"
	"math"
	"strconv"
	"strings"
)

// num formats a coordinate with at most three decimals and no trailing
// zeros, so equal inputs always print identically.
func num(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "0"
	}
	r := math.Round(f*1000) / 1000
	if r == 0 {
		return "0" // avoids "-0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// esc escapes s for attribute values and character data. Invalid UTF-8 and
// runes XML 1.0 does not allow are dropped.
func esc(s string) string {
	return html.EscapeString(strings.Map(xmlRune, strings.ToValidUTF8(s, "")))
}

func xmlRune(r rune) rune {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return r
	case r < 0x20, r == 0xFFFE, r == 0xFFFF:
		return -1
	}
	return r
}

// cssString quotes s as a CSS string literal that can sit in <style>
// character data unescaped.
func cssString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range strings.Map(xmlRune, strings.ToValidUTF8(s, "")) {
		switch r {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\a `)
		case '\r':
			b.WriteString(`\d `)
		case '<':
			b.WriteString(`\3c `)
		case '&':
			b.WriteString(`\26 `)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
