package wsdl

import (
	"fmt"
	"strings"

	"aqwari.net/xml/xmltree"
	"github.com/sourcegraph/conc/iter"
)

// Unqualified attributes whose values are QNames.
var qnameAttrs = []string{"type", "base", "ref", "itemType"}

// checkSchemas re-walks each schema fragment and reports references that
// a strict schema processor would reject. The walk is read-only, so the
// fragments are checked concurrently; issues keep fragment order.
func checkSchemas(fragments []*xmltree.Element) []*SchemaIssue {
	found := iter.Map(fragments, func(frag **xmltree.Element) []*SchemaIssue {
		return checkSchema(*frag)
	})
	var issues []*SchemaIssue
	for i, list := range found {
		for _, issue := range list {
			issue.Fragment = i
			issues = append(issues, issue)
		}
	}
	return issues
}

func checkSchema(schema *xmltree.Element) []*SchemaIssue {
	ns := localAttr(schema, "targetNamespace")
	var issues []*SchemaIssue
	report := func(format string, args ...interface{}) {
		issues = append(issues, &SchemaIssue{
			Namespace: ns,
			Message:   fmt.Sprintf(format, args...),
		})
	}
	for i := range schema.Children {
		top := &schema.Children[i]
		switch {
		case isXSD(top, "complexType"), isXSD(top, "simpleType"), isXSD(top, "element"):
			if localAttr(top, "name") == "" {
				report("top-level <%s> has no name", top.Name.Local)
			}
		}
	}
	nodes := schema.SearchFunc(func(el *xmltree.Element) bool {
		return xsdNamespaces[el.Name.Space]
	})
	for _, el := range nodes {
		for _, attr := range qnameAttrs {
			if v := localAttr(el, attr); !prefixBound(el, v) {
				report("unbound prefix in %s=%q on <%s>", attr, v, el.Name.Local)
			}
		}
		if v := el.Attr(WSDLNamespace, "arrayType"); !prefixBound(el, v) {
			report("unbound prefix in wsdl:arrayType=%q on <%s>", v, el.Name.Local)
		}
		for _, v := range strings.Fields(localAttr(el, "memberTypes")) {
			if !prefixBound(el, v) {
				report("unbound prefix in memberTypes %q on <%s>", v, el.Name.Local)
			}
		}
	}
	return issues
}

// prefixBound reports whether the prefix of qname, if any, is declared
// in the scope of el.
func prefixBound(el *xmltree.Element, qname string) bool {
	qname = strings.TrimSpace(qname)
	if !strings.Contains(qname, ":") {
		return true
	}
	_, ok := el.ResolveNS(qname)
	return ok
}
