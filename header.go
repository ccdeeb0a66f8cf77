package ofxtree

import (
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// RootTag opens the document body. Everything before its first occurrence is header.
const RootTag = "<OFX>"

// UndefinedValue is written for header keys that have no value.
const UndefinedValue = "undefined"

// HeaderKeys is the order header keys are serialized in.
var HeaderKeys = []string{
	"OFXHEADER", "DATA", "VERSION", "SECURITY", "ENCODING", "CHARSET",
	"COMPRESSION", "OLDFILEUID", "NEWFILEUID",
}

// ErrRootNotFound is returned when a document has no <OFX> tag.
var ErrRootNotFound = errors.New("error - invalid file, OFX tag not found")

const (
	ofxProcInstr  = "<?OFX"
	procInstrHead = "<?"
)

var (
	lineSplit  = regexp.MustCompile(`\r?\n`)
	headerAttr = regexp.MustCompile(`(\w+)\s*=\s*"([^"]*)"`)
)

type headerField struct {
	value   string
	present bool
}

// Header is the ordered set of attributes preceding the document body. A key may be present
// without a value when its line had no colon.
type Header struct {
	keys   []string
	fields map[string]headerField
}

// NewHeader returns the usual OFX 1.x SGML header with a fresh NEWFILEUID.
func NewHeader() Header {
	var h Header
	h.Set("OFXHEADER", "100")
	h.Set("DATA", "OFXSGML")
	h.Set("VERSION", "102")
	h.Set("SECURITY", "NONE")
	h.Set("ENCODING", "USASCII")
	h.Set("CHARSET", "1252")
	h.Set("COMPRESSION", "NONE")
	h.Set("OLDFILEUID", "NONE")
	h.Set("NEWFILEUID", strings.ToUpper(strings.Replace(uuid.New().String(), "-", "", -1)))
	return h
}

func (h *Header) put(key string, f headerField) {
	if h.fields == nil {
		h.fields = make(map[string]headerField)
	}
	if _, found := h.fields[key]; !found {
		h.keys = append(h.keys, key)
	}
	h.fields[key] = f
}

// Set stores value under key.
func (h *Header) Set(key, value string) {
	h.put(key, headerField{value: value, present: true})
}

// SetAbsent records key without a value.
func (h *Header) SetAbsent(key string) {
	h.put(key, headerField{})
}

// Get returns the value of key and whether it has one.
func (h Header) Get(key string) (string, bool) {
	f, found := h.fields[key]
	return f.value, found && f.present
}

// Has reports whether key appeared, with or without a value.
func (h Header) Has(key string) bool {
	_, found := h.fields[key]
	return found
}

// Keys returns the keys in the order they were added.
func (h Header) Keys() []string {
	keys := make([]string, len(h.keys))
	copy(keys, h.keys)
	return keys
}

// Len returns the number of keys.
func (h Header) Len() int {
	return len(h.keys)
}

// Merge returns a copy of h with keys of defaults that h lacks added after its own.
func (h Header) Merge(defaults Header) Header {
	var merged Header
	for _, k := range h.keys {
		merged.put(k, h.fields[k])
	}
	for _, k := range defaults.keys {
		if !merged.Has(k) {
			merged.put(k, defaults.fields[k])
		}
	}
	return merged
}

// SplitHeader splits raw into its parsed header and the body starting at <OFX>.
//
// Header lines are KEY:VALUE pairs split at the first colon. A line without a colon maps its
// text to an absent value. Lines of the form <?OFX KEY="VALUE" ...?> contribute their attributes,
// other processing instructions are skipped, as are blank lines.
func SplitHeader(raw string) (Header, string, error) {
	var header Header
	idx := strings.Index(raw, RootTag)
	if idx == -1 {
		return header, "", ErrRootNotFound
	}
	for _, line := range lineSplit.Split(raw[:idx], -1) {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
		case strings.HasPrefix(trimmed, ofxProcInstr):
			for _, m := range headerAttr.FindAllStringSubmatch(trimmed, -1) {
				header.Set(m[1], m[2])
			}
		case strings.HasPrefix(trimmed, procInstrHead):
		default:
			if i := strings.IndexByte(line, ':'); i != -1 {
				header.Set(line[:i], line[i+1:])
			} else {
				header.SetAbsent(line)
			}
		}
	}
	return header, raw[idx:], nil
}
