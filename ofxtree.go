package ofxtree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"strings"

	"github.com/golang/glog"
	"gopkg.in/yaml.v3"
)

// HeaderKey is the key a Document's header is rendered under next to the tree.
const HeaderKey = "header"

// Stage names a parse attempt of the assembler.
type Stage int

const (
	// StageWellFormed parses the body as it is.
	StageWellFormed Stage = iota
	// StageNormalized parses the body after dialect normalization.
	StageNormalized
)

func (s Stage) String() string {
	switch s {
	case StageWellFormed:
		return "well-formed"
	case StageNormalized:
		return "normalized"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// ParseError is a failed parse attempt. When the normalized attempt fails, Previous holds
// the failure of the well-formed attempt before it.
type ParseError struct {
	Stage    Stage
	Err      error
	Previous *ParseError
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("error - %s parse failed: %v", e.Stage, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Dialect is the flavor of OFX a document was written in.
type Dialect int

const (
	DialectUnknown Dialect = iota
	DialectSGML
	DialectXML
)

func (d Dialect) String() string {
	switch d {
	case DialectSGML:
		return "SGML"
	case DialectXML:
		return "XML"
	}
	return "unknown"
}

// Document is a parsed OFX document.
type Document struct {
	Header Header
	// Tree holds the top level elements, normally just OFX.
	Tree *Object
	// Normalized is set when the body only parsed after dialect normalization.
	Normalized bool
}

// Body returns the content of the root OFX element, the shape Serialize expects.
func (d *Document) Body() (Node, bool) {
	return d.Tree.Get(strings.Trim(RootTag, "<>"))
}

// Lookup walks a dotted path from the top of the tree, e.g. "OFX.SIGNONMSGSRSV1.SONRS".
func (d *Document) Lookup(path string) (Node, bool) {
	return Lookup(d.Tree, path)
}

// Dialect reports the dialect declared by the header.
func (d *Document) Dialect() Dialect {
	if data, ok := d.Header.Get("DATA"); ok {
		switch strings.TrimSpace(data) {
		case "OFXSGML":
			return DialectSGML
		case "OFXXML":
			return DialectXML
		}
	}
	if v, ok := d.Header.Get("OFXHEADER"); ok {
		switch strings.TrimSpace(v) {
		case "100":
			return DialectSGML
		case "200":
			return DialectXML
		}
	}
	return DialectUnknown
}

// Decoder parses raw OFX documents of either dialect.
type Decoder struct {
	normalizer Normalizer
}

// NewDecoder returns a decoder that falls back to normalizer for bodies that are not
// well-formed.
func NewDecoder(normalizer Normalizer) *Decoder {
	return &Decoder{normalizer: normalizer}
}

// Parse parses raw with the default normalizer.
func Parse(raw string) (*Document, error) {
	return NewDecoder(GetNormalizer()).Decode(raw)
}

// ParseReader reads all of reader and parses it with the default normalizer.
func ParseReader(reader io.Reader) (*Document, error) {
	return NewDecoder(GetNormalizer()).DecodeReader(reader)
}

// DecodeReader reads all of reader and parses it.
func (d *Decoder) DecodeReader(reader io.Reader) (*Document, error) {
	data, err := ioutil.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	return d.Decode(string(data))
}

// Decode parses raw. The body is first parsed as it is and, only if that fails, again
// after normalization. The error of the second attempt is returned when both fail.
func (d *Decoder) Decode(raw string) (*Document, error) {
	header, body, err := SplitHeader(raw)
	if err != nil {
		return nil, err
	}
	unpaired := UnpairedTags(body)
	glog.V(2).Infof("unpaired tags: %q", unpaired)

	tree, wellFormed := attempt(StageWellFormed, Sanitize(body), unpaired)
	if wellFormed == nil {
		return &Document{Header: header, Tree: tree}, nil
	}
	glog.V(2).Infof("%v, retrying normalized", wellFormed)

	tree, normalized := attempt(StageNormalized, Sanitize(d.normalizer.Normalize(body)), unpaired)
	if normalized != nil {
		normalized.Previous = wellFormed
		glog.V(2).Info(normalized)
		return nil, normalized
	}
	return &Document{Header: header, Tree: tree, Normalized: true}, nil
}

func attempt(stage Stage, content string, unpaired []string) (*Object, *ParseError) {
	tree, err := ParseTree(content, unpaired)
	if err != nil {
		return nil, &ParseError{Stage: stage, Err: err}
	}
	return tree, nil
}

// MarshalYAML renders the tree with the header under HeaderKey. Absent header values are null.
func (d *Document) MarshalYAML() (interface{}, error) {
	tree := d.Tree
	if tree == nil {
		tree = NewObject()
	}
	var m yaml.Node
	if err := m.Encode(tree); err != nil {
		return nil, err
	}
	h := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range d.Header.Keys() {
		value := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
		if v, ok := d.Header.Get(k); ok {
			value = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
		}
		h.Content = append(h.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, value)
	}
	m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: HeaderKey}, h)
	return &m, nil
}

// MarshalJSON renders the tree with the header under HeaderKey. Absent header values are null.
func (d *Document) MarshalJSON() ([]byte, error) {
	tree, err := json.Marshal(d.Tree)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(`{"` + HeaderKey + `":{`)
	for i, k := range d.Header.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(k)
		buf.Write(key)
		buf.WriteByte(':')
		if v, ok := d.Header.Get(k); ok {
			value, _ := json.Marshal(v)
			buf.Write(value)
		} else {
			buf.WriteString("null")
		}
	}
	buf.WriteByte('}')
	if d.Tree.Len() > 0 {
		buf.WriteByte(',')
		buf.Write(tree[1:])
	} else {
		buf.WriteByte('}')
	}
	return buf.Bytes(), nil
}

// UnmarshalYAML reads a document rendered by MarshalYAML or MarshalJSON.
func (d *Document) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.DocumentNode && len(value.Content) > 0 {
		value = value.Content[0]
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("error - expected mapping at line %d", value.Line)
	}
	doc := Document{Tree: NewObject()}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, item := value.Content[i].Value, value.Content[i+1]
		if key == HeaderKey {
			if err := doc.Header.decodeYAML(item); err != nil {
				return err
			}
			continue
		}
		n, err := fromYAML(item)
		if err != nil {
			return err
		}
		doc.Tree.Set(key, n)
	}
	*d = doc
	return nil
}

// decodeYAML adds the fields of a mapping. Null fields become absent values.
func (h *Header) decodeYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("error - %s must be a mapping at line %d", HeaderKey, value.Line)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, item := value.Content[i].Value, value.Content[i+1]
		switch {
		case item.Kind != yaml.ScalarNode:
			return fmt.Errorf("error - header %s must be a scalar at line %d", key, item.Line)
		case item.Tag == "!!null":
			h.SetAbsent(key)
		default:
			h.Set(key, item.Value)
		}
	}
	return nil
}
