package wsdl

import "aqwari.net/xml/xmltree"

// buildMessages transcribes every wsdl:message. Parts are not looked up
// in the type catalog.
func buildMessages(ctx *buildCtx, root *xmltree.Element) []*Message {
	var messages []*Message
	for _, el := range wsdlChildren(root, "message") {
		m := &Message{Name: localAttr(el, "name")}
		for _, p := range wsdlChildren(el, "part") {
			part := &Part{Name: localAttr(p, "name")}
			if ref := resolveRef(p, "element", ctx.targetNS); ref != nil {
				part.Element = *ref
			}
			if ref := resolveRef(p, "type", ctx.targetNS); ref != nil {
				part.Type = *ref
			}
			m.Parts = append(m.Parts, part)
		}
		messages = append(messages, m)
	}
	return messages
}
