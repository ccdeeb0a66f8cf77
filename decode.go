package ofxtree

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/golang/glog"
)

// frame is an element that has been opened but not yet closed.
type frame struct {
	name     string
	unpaired bool
	children *Object
	text     strings.Builder
}

func (f *frame) hasText() bool {
	return strings.TrimSpace(f.text.String()) != ""
}

func (f *frame) leaf() Leaf {
	return Leaf(unescapeLeaf(strings.TrimSpace(f.text.String())))
}

// treeBuilder assembles a ParsedTree from raw XML tokens.
type treeBuilder struct {
	root     *Object
	frames   []*frame
	unpaired map[string]struct{}
}

func (b *treeBuilder) top() *frame {
	if len(b.frames) == 0 {
		return nil
	}
	return b.frames[len(b.frames)-1]
}

// parent returns the object the topmost frame is added to on close.
func (b *treeBuilder) parent() *Object {
	if len(b.frames) < 2 {
		return b.root
	}
	return b.frames[len(b.frames)-2].children
}

// closeTop closes the topmost frame. An explicit close keeps the children of the element.
// An implicit close of an unpaired element turns it into a leaf holding its trailing text
// and hands any children it collected back to the parent as later siblings.
func (b *treeBuilder) closeTop(explicit bool) {
	f, parent := b.top(), b.parent()
	b.frames = b.frames[:len(b.frames)-1]
	if !explicit {
		glog.V(3).Infof("implicitly closing <%s>", f.name)
		parent.Add(f.name, f.leaf())
		for _, k := range f.children.keys {
			hoist(parent, k, f.children.values[k])
		}
		return
	}
	if f.children.Len() == 0 {
		parent.Add(f.name, f.leaf())
		return
	}
	if f.hasText() {
		f.children.Add(TextKey, f.leaf())
	}
	parent.Add(f.name, f.children)
}

// hoist adds value to parent, unrolling a List so repeated siblings keep collapsing.
func hoist(parent *Object, key string, value Node) {
	if l, ok := value.(List); ok {
		for _, item := range l {
			parent.Add(key, item)
		}
		return
	}
	parent.Add(key, value)
}

func (b *treeBuilder) start(name string) {
	// A start tag after an unpaired element's text ends that element.
	if f := b.top(); f != nil && f.unpaired && f.hasText() {
		b.closeTop(false)
	}
	_, unpaired := b.unpaired[name]
	b.frames = append(b.frames, &frame{name: name, unpaired: unpaired, children: NewObject()})
}

func (b *treeBuilder) end(name string) error {
	for {
		f := b.top()
		if f == nil {
			return fmt.Errorf("error - unexpected closing tag </%s>", name)
		}
		if f.name == name {
			b.closeTop(true)
			return nil
		}
		if !f.unpaired {
			return fmt.Errorf("error - element <%s> closed by </%s>", f.name, name)
		}
		b.closeTop(false)
	}
}

func (b *treeBuilder) finish() (*Object, error) {
	for f := b.top(); f != nil; f = b.top() {
		if !f.unpaired {
			return nil, fmt.Errorf("error - element <%s> is not closed", f.name)
		}
		b.closeTop(false)
	}
	return b.root, nil
}

// qualifiedName keeps namespace prefixes as part of the tag name.
func qualifiedName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// ParseTree parses sanitized markup into a tree. Tags named in unpaired may appear without a
// closing tag; such a tag takes the text that follows it as its value. Attributes, comments,
// processing instructions and directives are ignored, and leaf text stays an untyped string.
func ParseTree(content string, unpaired []string) (*Object, error) {
	var (
		decoder = xml.NewDecoder(strings.NewReader(content))
		builder = &treeBuilder{root: NewObject(), unpaired: unpairedSet(unpaired)}
	)
	for {
		token, err := decoder.RawToken()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, err
		}
		switch t := token.(type) {
		case xml.StartElement:
			glog.V(3).Infof("start element %s", qualifiedName(t.Name))
			builder.start(qualifiedName(t.Name))
		case xml.EndElement:
			glog.V(3).Infof("end element %s", qualifiedName(t.Name))
			if err := builder.end(qualifiedName(t.Name)); err != nil {
				return nil, err
			}
		case xml.CharData:
			if f := builder.top(); f != nil {
				f.text.Write(t)
			}
		}
	}
	return builder.finish()
}
