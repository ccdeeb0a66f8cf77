package ofxtree

import (
	"regexp"

	"github.com/golang/glog"
)

var tagPattern = regexp.MustCompile(`<(/?)(\w+)>`)

// UnpairedTags scans markup and returns the names of tags that appear without a matching
// closing tag, in the order they were first discovered.
//
// On a closing tag every open tag above the matching one is popped and reported. Names still
// open at the end of the scan are appended as they sit on the stack, bottom first. This may
// over-report on badly nested input, which only relaxes the parser.
func UnpairedTags(content string) []string {
	var (
		open     = NewStack()
		unpaired = make([]string, 0)
		seen     = make(map[string]struct{})
	)
	for _, m := range tagPattern.FindAllStringSubmatch(content, -1) {
		isClosing, name := m[1] == "/", m[2]
		if !isClosing {
			open.Push(name)
			continue
		}
		for {
			top, ok := open.Peek()
			if !ok || top == name {
				break
			}
			open.Pop()
			if _, found := seen[top]; !found {
				glog.V(3).Infof("unpaired: <%s> popped by </%s>", top, name)
				seen[top] = struct{}{}
				unpaired = append(unpaired, top)
			}
		}
		open.Pop()
	}
	for _, name := range open.Dump() {
		if _, found := seen[name]; !found {
			seen[name] = struct{}{}
			unpaired = append(unpaired, name)
		}
	}
	return unpaired
}

// unpairedSet indexes the given names for lookup.
func unpairedSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
