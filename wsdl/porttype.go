package wsdl

import (
	"strconv"

	"aqwari.net/xml/xmltree"
)

// buildInterfaces transcribes every wsdl:portType. Operation names are
// made unique within each port type.
func buildInterfaces(ctx *buildCtx, root *xmltree.Element) []*Interface {
	var interfaces []*Interface
	for _, el := range wsdlChildren(root, "portType") {
		it := &Interface{Name: localAttr(el, "name")}
		ops := wsdlChildren(el, "operation")
		names := make([]string, len(ops))
		for i, op := range ops {
			names[i] = localAttr(op, "name")
		}
		unique := disambiguate(names)
		for i, op := range ops {
			o := &Operation{
				Name:          unique[i],
				DeclaredName:  names[i],
				Documentation: documentation(op),
				Input:         ioRef(ctx, firstChild(op, WSDLNamespace, "input")),
				Output:        ioRef(ctx, firstChild(op, WSDLNamespace, "output")),
			}
			for _, f := range wsdlChildren(op, "fault") {
				o.Faults = append(o.Faults, ioRef(ctx, f))
			}
			if o.Name != o.DeclaredName {
				ctx.log.Debug().
					Str("port_type", it.Name).
					Str("operation", o.DeclaredName).
					Str("renamed", o.Name).
					Msg("overloaded operation renamed")
			}
			it.Operations = append(it.Operations, o)
		}
		interfaces = append(interfaces, it)
	}
	return interfaces
}

func ioRef(ctx *buildCtx, el *xmltree.Element) *IORef {
	if el == nil {
		return nil
	}
	ref := &IORef{Name: localAttr(el, "name")}
	if msg := resolveRef(el, "message", ctx.targetNS); msg != nil {
		ref.Message = *msg
	}
	return ref
}

// disambiguate returns names with every repeated name after its first
// occurrence suffixed by _1, _2, ... in order. A suffix that would clash
// with another name in the list is skipped.
func disambiguate(names []string) []string {
	taken := make(map[string]bool, len(names))
	for _, name := range names {
		taken[name] = true
	}
	seen := make(map[string]bool, len(names))
	next := make(map[string]int)
	unique := make([]string, len(names))
	for i, name := range names {
		if !seen[name] {
			seen[name] = true
			unique[i] = name
			continue
		}
		for {
			next[name]++
			candidate := name + "_" + strconv.Itoa(next[name])
			if !taken[candidate] {
				taken[candidate] = true
				unique[i] = candidate
				break
			}
		}
	}
	return unique
}
