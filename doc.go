/*
Package ofxtree converts OFX documents to and from a tree of tagged values.

Both OFX dialects are accepted. The modern XML dialect is parsed as it is, while the legacy
SGML dialect, which leaves leaf elements unclosed, is normalized into well-formed markup
first. Leaf tags lacking a closing tag are discovered per document, so no list of known
aggregates is needed.

	doc, err := ofxtree.Parse(raw)
	name, _ := doc.Lookup("OFX.BANKMSGSRSV1.NAME")

Serialize goes the other way and writes SGML style output.
*/
package ofxtree
