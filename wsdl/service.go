package wsdl

import "aqwari.net/xml/xmltree"

// buildServices transcribes every wsdl:service. Binding references are
// recorded as written; they are not checked.
func buildServices(ctx *buildCtx, root *xmltree.Element) []*Service {
	var services []*Service
	for _, el := range wsdlChildren(root, "service") {
		svc := &Service{
			Name:          localAttr(el, "name"),
			Documentation: documentation(el),
		}
		for _, p := range wsdlChildren(el, "port") {
			port := &Port{Name: localAttr(p, "name")}
			if b := resolveRef(p, "binding", ctx.targetNS); b != nil {
				port.Binding = *b
			}
			if addr, version := soapChild(p, "address"); addr != nil {
				port.Address = localAttr(addr, "location")
				port.Version = version
			} else if addr := firstChild(p, HTTPNamespace, "address"); addr != nil {
				port.Address = localAttr(addr, "location")
			}
			svc.Ports = append(svc.Ports, port)
		}
		services = append(services, svc)
	}
	return services
}
