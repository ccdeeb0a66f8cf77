package ofxtree

import (
	"strings"
)

// Decide whether the given rune is in the XML Character Range, per
// the Char production of http://www.xml.com/axml/testaxml.htm,
// Section 2.2 Characters.
// Lifted from https://golang.org/src/encoding/xml/xml.go:1102
func isInCharacterRange(r rune) (inrange bool) {
	return r == 0x09 ||
		r == 0x0A ||
		r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}

// escaper replaces the characters OFX requires to be escaped in element text.
var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// escapeString returns s with &, < and > escaped.
func escapeString(s string) string {
	return escaper.Replace(s)
}

// writeStartTag writes <name> to out.
func writeStartTag(out *strings.Builder, name string) {
	out.WriteByte('<')
	out.WriteString(name)
	out.WriteByte('>')
}

// writeEndTag writes </name> to out.
func writeEndTag(out *strings.Builder, name string) {
	out.WriteString("</")
	out.WriteString(name)
	out.WriteByte('>')
}
