package wsdl

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"aqwari.net/xml/xmltree"
)

// ResolveQName resolves a qualified name such as "tns:Foo" against the
// namespace declarations in scope at el. The innermost declaration of a
// prefix wins. A name without a prefix is returned in defaultNS.
//
// Resolution never fails: a prefix that is not bound at el resolves to
// the empty namespace.
func ResolveQName(el *xmltree.Element, qname, defaultNS string) xml.Name {
	qname = strings.TrimSpace(qname)
	if qname == "" {
		return xml.Name{}
	}
	i := strings.IndexByte(qname, ':')
	if i < 0 {
		return xml.Name{Space: defaultNS, Local: qname}
	}
	local := qname[i+1:]
	if el == nil {
		return xml.Name{Local: local}
	}
	name, ok := el.ResolveNS(qname)
	if !ok {
		return xml.Name{Local: local}
	}
	return xml.Name{Space: name.Space, Local: local}
}

// resolveRef resolves the QName held by attribute attr of el, or returns
// nil when the attribute is absent.
func resolveRef(el *xmltree.Element, attr, defaultNS string) *xml.Name {
	v := localAttr(el, attr)
	if strings.TrimSpace(v) == "" {
		return nil
	}
	name := ResolveQName(el, v, defaultNS)
	return &name
}

// localAttr returns the value of the unqualified attribute local of el.
// Attributes in a namespace, such as xsi:type, never match.
func localAttr(el *xmltree.Element, local string) string {
	for _, a := range el.StartElement.Attr {
		if a.Name.Space == "" && a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// namespaceTable returns the namespace declarations of the root element
// of data. The default namespace is stored under the empty key.
//
// The whole document is read. Anything but white space, comments and
// processing instructions after the root element is a syntax error.
func namespaceTable(data []byte) (map[string]string, error) {
	var ns map[string]string
	depth := 0
	d := newDecoder(bytes.NewReader(data))
	for {
		tok, err := d.Token()
		if err == io.EOF && ns != nil {
			return ns, nil
		}
		if err != nil {
			return nil, err
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			if ns != nil && depth == 0 {
				return nil, trailing(d, "element <"+tok.Name.Local+">")
			}
			if ns == nil {
				ns = rootNamespaces(tok)
			}
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			if ns != nil && depth == 0 && len(bytes.TrimSpace(tok)) > 0 {
				return nil, trailing(d, "text")
			}
		}
	}
}

func rootNamespaces(start xml.StartElement) map[string]string {
	ns := make(map[string]string)
	for _, attr := range start.Attr {
		switch {
		case attr.Name.Space == "xmlns":
			ns[attr.Name.Local] = attr.Value
		case attr.Name.Space == "" && attr.Name.Local == "xmlns":
			ns[""] = attr.Value
		}
	}
	return ns
}

func trailing(d *xml.Decoder, what string) error {
	line, _ := d.InputPos()
	return &xml.SyntaxError{Msg: what + " after root element", Line: line}
}

// Older WSDL documents still use the pre-recommendation schema namespaces.
var xsdNamespaces = map[string]bool{
	XSDNamespace:                          true,
	"http://www.w3.org/2000/10/XMLSchema": true,
	"http://www.w3.org/1999/XMLSchema":    true,
}

func isXSD(el *xmltree.Element, local string) bool {
	return el.Name.Local == local && xsdNamespaces[el.Name.Space]
}

func isWSDL(el *xmltree.Element, local string) bool {
	return el.Name.Local == local && el.Name.Space == WSDLNamespace
}

// children returns the direct children of el matching fn, in document order.
func children(el *xmltree.Element, fn func(*xmltree.Element) bool) []*xmltree.Element {
	var found []*xmltree.Element
	for i := range el.Children {
		if fn(&el.Children[i]) {
			found = append(found, &el.Children[i])
		}
	}
	return found
}

func wsdlChildren(el *xmltree.Element, local string) []*xmltree.Element {
	return children(el, func(c *xmltree.Element) bool { return isWSDL(c, local) })
}

func xsdChildren(el *xmltree.Element, local string) []*xmltree.Element {
	return children(el, func(c *xmltree.Element) bool { return isXSD(c, local) })
}

func firstChild(el *xmltree.Element, space, local string) *xmltree.Element {
	for i := range el.Children {
		c := &el.Children[i]
		if c.Name.Space == space && c.Name.Local == local {
			return c
		}
	}
	return nil
}

// documentation joins the text of the wsdl:documentation children of el.
func documentation(el *xmltree.Element) string {
	var docs []string
	for _, doc := range wsdlChildren(el, "documentation") {
		var text struct {
			Value string `xml:",chardata"`
		}
		if err := xmltree.Unmarshal(doc, &text); err != nil {
			continue
		}
		if s := strings.TrimSpace(text.Value); s != "" {
			docs = append(docs, s)
		}
	}
	return strings.Join(docs, "\n")
}

// IsXSDNamespace reports whether ns is one of the XML Schema namespaces.
func IsXSDNamespace(ns string) bool {
	return xsdNamespaces[ns]
}
