package wsdl

import (
	"encoding/xml"
	"regexp"
	"strings"

	"aqwari.net/xml/xmltree"
)

var arrayOfPattern = regexp.MustCompile(`(?i)^ArrayOf(.+)$`)

var soapEncArray = xml.Name{Space: SOAPEncNamespace, Local: "Array"}

// finalizeTypes runs once every schema fragment is walked: element
// references are followed, array types are detected and elements
// whose type is a catalog complex type are flagged.
func finalizeTypes(cat *TypeCatalog) {
	for _, el := range allElements(cat) {
		if el.Ref == nil || el.Type.Local != "" {
			continue
		}
		if top, ok := cat.Element(el.Ref.Local); ok && top != el {
			el.Type = top.Type
		}
	}
	for _, name := range cat.ComplexTypeNames() {
		detectArray(cat.ComplexTypes[name])
	}
	// SOAP-encoded arrays gained their item elements above.
	for _, el := range allElements(cat) {
		if isCatalogComplexType(cat, el.Type) {
			el.IsComplexType = true
		}
	}
}

func allElements(cat *TypeCatalog) []*Element {
	elements := append([]*Element(nil), cat.Elements...)
	for _, name := range cat.ComplexTypeNames() {
		elements = append(elements, cat.ComplexTypes[name].Elements...)
	}
	return elements
}

func isCatalogComplexType(cat *TypeCatalog, t xml.Name) bool {
	if t.Local == "" || xsdNamespaces[t.Space] {
		return false
	}
	_, ok := cat.ComplexTypes[t.Local]
	return ok
}

// detectArray classifies ct as an array when one of these holds:
//
//   - it is a SOAP-encoded array restriction with no member elements; a
//     single "item" member of the declared array type is synthesized.
//   - its name is ArrayOf<X> and it has exactly one member element; the
//     member becomes an array and defaults to type X.
//   - any member element repeats; the first such member gives the item type.
func detectArray(ct *ComplexType) {
	if ct.arrayType != nil && len(ct.Elements) == 0 {
		item := &Element{
			Name:      "item",
			Namespace: ct.Namespace,
			Type:      *ct.arrayType,
			IsArray:   true,
			MinOccurs: 0,
			MaxOccurs: Unbounded,
		}
		item.IsOptional = true
		ct.Elements = []*Element{item}
		ct.IsArray, ct.ItemType = true, item.Type
		return
	}
	if m := arrayOfPattern.FindStringSubmatch(ct.Name); m != nil && len(ct.Elements) == 1 {
		el := ct.Elements[0]
		el.IsArray = true
		if el.Type.Local == "" {
			el.Type = xml.Name{Space: ct.Namespace, Local: m[1]}
		}
		ct.IsArray, ct.ItemType = true, el.Type
		return
	}
	for _, el := range ct.Elements {
		if el.IsArray {
			ct.IsArray, ct.ItemType = true, el.Type
			return
		}
	}
}

// soapArrayType returns the item type named by the wsdl:arrayType
// attribute inside a SOAP-encoded array restriction, e.g. "tns:Foo[]".
func soapArrayType(restriction *xmltree.Element, defaultNS string) *xml.Name {
	for _, attr := range xsdChildren(restriction, "attribute") {
		for _, a := range attr.StartElement.Attr {
			if a.Name.Local != "arrayType" || a.Name.Space == "" {
				continue
			}
			v := a.Value
			if i := strings.IndexByte(v, '['); i >= 0 {
				v = v[:i]
			}
			name := ResolveQName(attr, v, defaultNS)
			if name.Local == "" {
				return nil
			}
			return &name
		}
	}
	return nil
}
