package wsdl

import (
	"encoding/xml"
	"strconv"
	"strings"

	"aqwari.net/xml/xmltree"
	"github.com/rs/zerolog"
)

// buildCtx is threaded through the build stages of one document.
type buildCtx struct {
	targetNS string
	catalog  *TypeCatalog
	log      zerolog.Logger
}

// pendingType is an inline type body waiting to be promoted to a named
// catalog entry.
type pendingType struct {
	name   string
	ns     string
	body   *xmltree.Element
	simple bool
}

// schemaBuilder walks the schema fragments of one document. Inline type
// bodies found while building elements are queued and drained once the
// top-level declarations of every fragment are registered. Declared
// types take precedence over inline bodies of the same name.
type schemaBuilder struct {
	ctx     *buildCtx
	ns      string
	pending []pendingType
}

// buildTypes fills ctx.catalog from every schema fragment of the
// wsdl:types element, then runs the catalog-wide post-pass.
func buildTypes(ctx *buildCtx, types *xmltree.Element) {
	if types != nil {
		fragments := xsdChildren(types, "schema")
		ctx.catalog.Issues = checkSchemas(fragments)
		for _, issue := range ctx.catalog.Issues {
			ctx.log.Warn().
				Int("fragment", issue.Fragment).
				Str("namespace", issue.Namespace).
				Msg(issue.Message)
		}
		b := &schemaBuilder{ctx: ctx}
		for _, schema := range fragments {
			b.schema(schema)
		}
		b.drain()
	}
	finalizeTypes(ctx.catalog)
}

// schema registers the top-level declarations of one fragment.
func (b *schemaBuilder) schema(schema *xmltree.Element) {
	b.ns = localAttr(schema, "targetNamespace")
	ctx, cat := b.ctx, b.ctx.catalog
	for i := range schema.Children {
		el := &schema.Children[i]
		switch {
		case isXSD(el, "import"):
			if ns := localAttr(el, "namespace"); ns != "" {
				cat.Imports[ns] = struct{}{}
			}
		case isXSD(el, "complexType"):
			ct := b.complexType(el, localAttr(el, "name"))
			if !cat.addComplexType(ct) {
				ctx.log.Debug().Str("type", ct.Name).Msg("duplicate complex type ignored")
			}
		case isXSD(el, "simpleType"):
			st := b.simpleType(el, localAttr(el, "name"))
			if !cat.addSimpleType(st) {
				ctx.log.Debug().Str("type", st.Name).Msg("duplicate simple type ignored")
			}
		case isXSD(el, "element"):
			cat.Elements = append(cat.Elements, b.element(el))
		}
	}
}

// drain promotes queued inline bodies in first-in first-out order.
// A body whose synthesized name is already registered is skipped
// without being walked.
func (b *schemaBuilder) drain() {
	cat := b.ctx.catalog
	for len(b.pending) > 0 {
		p := b.pending[0]
		b.pending = b.pending[1:]
		b.ns = p.ns
		if p.simple {
			if _, exists := cat.SimpleTypes[p.name]; exists {
				continue
			}
			cat.addSimpleType(b.simpleType(p.body, p.name))
			continue
		}
		if _, exists := cat.ComplexTypes[p.name]; exists {
			b.ctx.log.Debug().Str("type", p.name).Msg("inline type already registered")
			continue
		}
		ct := b.complexType(p.body, p.name)
		ct.Anonymous = true
		cat.addComplexType(ct)
		b.ctx.log.Debug().Str("type", p.name).Msg("promoted inline complex type")
	}
}

func (b *schemaBuilder) element(el *xmltree.Element) *Element {
	e := &Element{
		Name:      localAttr(el, "name"),
		Namespace: b.ns,
		Nillable:  parseBool(localAttr(el, "nillable")),
		MinOccurs: parseOccurs(localAttr(el, "minOccurs")),
		MaxOccurs: parseOccurs(localAttr(el, "maxOccurs")),
	}
	e.IsOptional = e.MinOccurs == 0
	e.IsArray = e.MaxOccurs == Unbounded || e.MaxOccurs > 1
	if ref := resolveRef(el, "ref", b.ns); ref != nil {
		e.Ref = ref
		if e.Name == "" {
			e.Name = ref.Local
		}
	}
	if t := resolveRef(el, "type", b.ns); t != nil {
		e.Type = *t
		return e
	}
	if body := firstXSDChild(el, "complexType"); body != nil {
		name := localAttr(body, "name")
		if name == "" {
			name = e.Name + "Type"
		}
		e.Type = xml.Name{Space: b.ns, Local: name}
		e.IsComplexType = true
		b.pending = append(b.pending, pendingType{name: name, ns: b.ns, body: body})
		return e
	}
	if body := firstXSDChild(el, "simpleType"); body != nil {
		name := e.Name + "Type"
		e.Type = xml.Name{Space: b.ns, Local: name}
		b.pending = append(b.pending, pendingType{name: name, ns: b.ns, body: body, simple: true})
	}
	return e
}

func (b *schemaBuilder) complexType(el *xmltree.Element, name string) *ComplexType {
	ct := &ComplexType{
		Name:          name,
		Namespace:     b.ns,
		Abstract:      parseBool(localAttr(el, "abstract")),
		Documentation: annotation(el),
	}
	b.members(ct, el)
	for i := range el.Children {
		content := &el.Children[i]
		if !isXSD(content, "complexContent") && !isXSD(content, "simpleContent") {
			continue
		}
		for j := range content.Children {
			derive := &content.Children[j]
			ext, restrict := isXSD(derive, "extension"), isXSD(derive, "restriction")
			if !ext && !restrict {
				continue
			}
			ct.Base = resolveRef(derive, "base", b.ns)
			b.members(ct, derive)
			if restrict && ct.Base != nil && *ct.Base == soapEncArray {
				ct.arrayType = soapArrayType(derive, b.ns)
			}
		}
	}
	return ct
}

// members appends the particles and attributes declared directly in el.
func (b *schemaBuilder) members(ct *ComplexType, el *xmltree.Element) {
	for i := range el.Children {
		c := &el.Children[i]
		switch {
		case isXSD(c, "sequence"), isXSD(c, "all"), isXSD(c, "choice"):
			b.particles(ct, c)
		case isXSD(c, "attribute"):
			ct.Attributes = append(ct.Attributes, b.attribute(c))
		}
	}
}

// particles flattens a model group, nested groups included, in
// document order.
func (b *schemaBuilder) particles(ct *ComplexType, group *xmltree.Element) {
	for i := range group.Children {
		c := &group.Children[i]
		switch {
		case isXSD(c, "element"):
			ct.Elements = append(ct.Elements, b.element(c))
		case isXSD(c, "sequence"), isXSD(c, "all"), isXSD(c, "choice"):
			b.particles(ct, c)
		case isXSD(c, "any"):
			ct.Any = true
		}
	}
}

func (b *schemaBuilder) attribute(el *xmltree.Element) *Attribute {
	a := &Attribute{
		Name: localAttr(el, "name"),
		Use:  localAttr(el, "use"),
	}
	if t := resolveRef(el, "type", b.ns); t != nil {
		a.Type = *t
	}
	if ref := resolveRef(el, "ref", b.ns); ref != nil {
		if a.Name == "" {
			a.Name = ref.Local
		}
		if a.Type.Local == "" {
			a.Type = *ref
		}
	}
	return a
}

func (b *schemaBuilder) simpleType(el *xmltree.Element, name string) *SimpleType {
	st := &SimpleType{Name: name, Namespace: b.ns}
	if r := firstXSDChild(el, "restriction"); r != nil {
		if base := resolveRef(r, "base", b.ns); base != nil {
			st.Base = *base
		}
		for _, e := range xsdChildren(r, "enumeration") {
			st.Enumerations = append(st.Enumerations, localAttr(e, "value"))
		}
	}
	if l := firstXSDChild(el, "list"); l != nil {
		st.List = resolveRef(l, "itemType", b.ns)
	}
	if u := firstXSDChild(el, "union"); u != nil {
		for _, member := range strings.Fields(localAttr(u, "memberTypes")) {
			st.Union = append(st.Union, ResolveQName(u, member, b.ns))
		}
	}
	return st
}

func firstXSDChild(el *xmltree.Element, local string) *xmltree.Element {
	for i := range el.Children {
		if isXSD(&el.Children[i], local) {
			return &el.Children[i]
		}
	}
	return nil
}

// annotation returns the text of xsd:annotation/xsd:documentation.
func annotation(el *xmltree.Element) string {
	var docs []string
	for _, a := range xsdChildren(el, "annotation") {
		for _, doc := range xsdChildren(a, "documentation") {
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
	}
	return strings.Join(docs, "\n")
}

// parseOccurs parses minOccurs and maxOccurs. Absent or malformed values
// default to 1.
func parseOccurs(s string) int {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return 1
	case "unbounded":
		return Unbounded
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 1
	}
	return n
}

func parseBool(s string) bool {
	switch strings.TrimSpace(s) {
	case "1", "true":
		return true
	}
	return false
}
