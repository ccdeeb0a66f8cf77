package ofxtree

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// escapedAmp is what every literal ampersand becomes before parsing. The XML decoder
	// resolves it to decodedAmp, which leaf finalization turns back into "&".
	escapedAmp = "&amp;amp;"
	decodedAmp = "&amp;"
)

var entityPattern = regexp.MustCompile(`&(lt|gt|amp|quot|apos|#[0-9]+|#[xX][0-9a-fA-F]+);`)

var namedEntities = map[string]string{
	"lt":   "<",
	"gt":   ">",
	"amp":  "&",
	"quot": `"`,
	"apos": "'",
}

// Sanitize escapes every literal ampersand so stray ampersands in free text fields survive
// the XML decoder without disturbing entities around them.
func Sanitize(content string) string {
	return strings.Replace(content, "&", escapedAmp, -1)
}

// unescapeLeaf recovers the source text of a sanitized leaf and resolves the XML entities
// in it once. Ampersands that start no entity are kept as they are.
func unescapeLeaf(s string) string {
	s = strings.Replace(s, decodedAmp, "&", -1)
	if !strings.Contains(s, "&") {
		return s
	}
	return entityPattern.ReplaceAllStringFunc(s, func(m string) string {
		name := m[1 : len(m)-1]
		if v, found := namedEntities[name]; found {
			return v
		}
		var (
			code int64
			err  error
		)
		if name[1] == 'x' || name[1] == 'X' {
			code, err = strconv.ParseInt(name[2:], 16, 32)
		} else {
			code, err = strconv.ParseInt(name[1:], 10, 32)
		}
		if err != nil || !isInCharacterRange(rune(code)) {
			return m
		}
		return string(rune(code))
	})
}
