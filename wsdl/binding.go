package wsdl

import (
	"strings"

	"aqwari.net/xml/xmltree"
)

// defaultStyle is the binding style WSDL 1.1 assumes when soap:binding
// omits it.
const defaultStyle = "document"

// buildBindings transcribes every wsdl:binding and its SOAP extension
// elements. Operation names are disambiguated with the rule used for
// port types so that binding and port type operations pair by name.
func buildBindings(ctx *buildCtx, root *xmltree.Element) []*Binding {
	var bindings []*Binding
	for _, el := range wsdlChildren(root, "binding") {
		b := &Binding{Name: localAttr(el, "name"), Style: defaultStyle}
		if t := resolveRef(el, "type", ctx.targetNS); t != nil {
			b.Type = *t
		}
		if proto, version := soapChild(el, "binding"); proto != nil {
			b.Version = version
			b.Transport = localAttr(proto, "transport")
			if style := localAttr(proto, "style"); style != "" {
				b.Style = style
			}
		}
		ops := wsdlChildren(el, "operation")
		names := make([]string, len(ops))
		for i, op := range ops {
			names[i] = localAttr(op, "name")
		}
		unique := disambiguate(names)
		for i, op := range ops {
			if unique[i] != names[i] {
				ctx.log.Debug().
					Str("binding", b.Name).
					Str("operation", names[i]).
					Str("renamed", unique[i]).
					Msg("overloaded binding operation renamed")
			}
			b.Operations = append(b.Operations, bindingOperation(ctx, op, unique[i], names[i]))
		}
		bindings = append(bindings, b)
	}
	return bindings
}

func bindingOperation(ctx *buildCtx, el *xmltree.Element, name, declared string) *BindingOperation {
	op := &BindingOperation{
		Name:         name,
		DeclaredName: declared,
		Input:        bindingIO(ctx, firstChild(el, WSDLNamespace, "input")),
		Output:       bindingIO(ctx, firstChild(el, WSDLNamespace, "output")),
	}
	if proto, _ := soapChild(el, "operation"); proto != nil {
		op.Action = localAttr(proto, "soapAction")
		op.Style = localAttr(proto, "style")
	}
	for _, f := range wsdlChildren(el, "fault") {
		fault := &BindingFault{Name: localAttr(f, "name")}
		if sf, _ := soapChild(f, "fault"); sf != nil {
			if fault.Name == "" {
				fault.Name = localAttr(sf, "name")
			}
			fault.Use = localAttr(sf, "use")
			fault.Namespace = localAttr(sf, "namespace")
			fault.EncodingStyle = localAttr(sf, "encodingStyle")
		}
		op.Faults = append(op.Faults, fault)
	}
	return op
}

func bindingIO(ctx *buildCtx, el *xmltree.Element) *BindingIO {
	if el == nil {
		return nil
	}
	bio := &BindingIO{Name: localAttr(el, "name")}
	for i := range el.Children {
		c := &el.Children[i]
		if soapVersion(c.Name.Space) == "" {
			continue
		}
		switch c.Name.Local {
		case "body":
			bio.Body = &SOAPBody{
				Use:           localAttr(c, "use"),
				Namespace:     localAttr(c, "namespace"),
				EncodingStyle: localAttr(c, "encodingStyle"),
			}
			if parts := localAttr(c, "parts"); parts != "" {
				bio.Body.Parts = strings.Fields(parts)
			}
		case "header":
			h := &SOAPHeader{
				Part:          localAttr(c, "part"),
				Use:           localAttr(c, "use"),
				Namespace:     localAttr(c, "namespace"),
				EncodingStyle: localAttr(c, "encodingStyle"),
			}
			if msg := resolveRef(c, "message", ctx.targetNS); msg != nil {
				h.Message = *msg
			}
			bio.Headers = append(bio.Headers, h)
		}
	}
	return bio
}

// soapChild returns the first child of el with the given local name in
// one of the SOAP binding namespaces, and the SOAP version it implies.
func soapChild(el *xmltree.Element, local string) (*xmltree.Element, SOAPVersion) {
	for i := range el.Children {
		c := &el.Children[i]
		if c.Name.Local != local {
			continue
		}
		if v := soapVersion(c.Name.Space); v != "" {
			return c, v
		}
	}
	return nil, ""
}

func soapVersion(ns string) SOAPVersion {
	switch ns {
	case SOAP11Namespace:
		return SOAP11
	case SOAP12Namespace:
		return SOAP12
	}
	return ""
}
