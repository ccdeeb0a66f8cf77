package ofxtree

import (
	"strings"

	"github.com/golang/glog"
)

// Serialize renders header and body as an OFX document. The header keys are written in
// HeaderKeys order followed by a blank line, then body wrapped in the root OFX element.
//
// Elements with children are closed, leaves are not, the way SGML producers write them.
// Leaf text has &, < and > escaped.
func Serialize(header Header, body Node) string {
	var out strings.Builder
	for _, k := range HeaderKeys {
		v, ok := header.Get(k)
		if !ok {
			v = UndefinedValue
		}
		out.WriteString(k)
		out.WriteByte(':')
		out.WriteString(v)
		out.WriteByte('\n')
	}
	out.WriteByte('\n')
	writeNode(&out, strings.Trim(RootTag, "<>"), body)
	glog.V(3).Infof("serialized: %s", out.String())
	return out.String()
}

// SerializeDocument renders a parsed document back to OFX.
func SerializeDocument(d *Document) string {
	body, _ := d.Body()
	return Serialize(d.Header, body)
}

func writeNode(out *strings.Builder, name string, node Node) {
	switch n := node.(type) {
	case List:
		for _, item := range n {
			writeNode(out, name, item)
		}
	case *Object:
		writeStartTag(out, name)
		out.WriteByte('\n')
		for _, k := range n.keys {
			if k == TextKey {
				if leaf, ok := n.values[k].(Leaf); ok {
					out.WriteString(escapeString(string(leaf)))
					out.WriteByte('\n')
					continue
				}
			}
			writeNode(out, k, n.values[k])
		}
		writeEndTag(out, name)
		out.WriteByte('\n')
	case Leaf:
		writeStartTag(out, name)
		out.WriteString(escapeString(string(n)))
		out.WriteByte('\n')
	case nil:
		writeStartTag(out, name)
		out.WriteByte('\n')
	}
}
