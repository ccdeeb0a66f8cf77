package ofxtree

import (
	"regexp"
	"strings"
	"sync"

	"github.com/golang/glog"
)

//go:generate mockgen -source=normalize.go -destination=mock_ofxtree/normalizer.go -package=mock_ofxtree

// Normalizer rewrites legacy SGML like markup into well-formed markup.
type Normalizer interface {
	Normalize(body string) string
}

type normalizer struct{}

var normalizerSingleton *normalizer
var initNormalizer sync.Once

// GetNormalizer returns the singleton instance of the default normalizer.
func GetNormalizer() Normalizer {
	initNormalizer.Do(func() {
		normalizerSingleton = &normalizer{}
	})
	return normalizerSingleton
}

var (
	betweenTags = regexp.MustCompile(`>\s+<`)
	beforeTag   = regexp.MustCompile(`\s+<`)
	afterTag    = regexp.MustCompile(`>\s+`)
	dottedLeaf  = regexp.MustCompile(`<([A-Z0-9_]*(?:\.+[A-Z0-9_]*)+)>([^<]+)`)
	textLeaf    = regexp.MustCompile(`<(\w+)>([^<]+)`)
)

// Normalize applies the whitespace, dotted name and leaf closing rewrites in order.
// Each step relies on the ones before it, so they must not be reordered.
func (n normalizer) Normalize(body string) string {
	body = betweenTags.ReplaceAllString(body, "><")
	body = beforeTag.ReplaceAllString(body, "<")
	body = afterTag.ReplaceAllString(body, ">")
	body = dottedLeaf.ReplaceAllStringFunc(body, func(m string) string {
		end := strings.IndexByte(m, '>')
		return strings.Replace(m[:end], ".", "", -1) + m[end:]
	})
	body = closeLeaves(body)
	glog.V(3).Infof("normalized: %s", body)
	return body
}

// closeLeaves rewrites every <NAME>text that is not already followed by </NAME> into
// <NAME>text</NAME>.
func closeLeaves(body string) string {
	var (
		out  strings.Builder
		last int
	)
	for _, m := range textLeaf.FindAllStringSubmatchIndex(body, -1) {
		end, name := m[1], body[m[2]:m[3]]
		closing := "</" + name + ">"
		out.WriteString(body[last:end])
		if !strings.HasPrefix(body[end:], closing) {
			out.WriteString(closing)
		}
		last = end
	}
	out.WriteString(body[last:])
	return out.String()
}
