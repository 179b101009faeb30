package wsdl

import (
	"encoding/xml"
	"fmt"
	"sort"
)

// Namespaces of the WSDL 1.1 vocabulary and its SOAP extensions.
const (
	WSDLNamespace    = "http://schemas.xmlsoap.org/wsdl/"
	SOAP11Namespace  = "http://schemas.xmlsoap.org/wsdl/soap/"
	SOAP12Namespace  = "http://schemas.xmlsoap.org/wsdl/soap12/"
	HTTPNamespace    = "http://schemas.xmlsoap.org/wsdl/http/"
	SOAPEncNamespace = "http://schemas.xmlsoap.org/soap/encoding/"
	XSDNamespace     = "http://www.w3.org/2001/XMLSchema"
)

// Unbounded is the MaxOccurs value of maxOccurs="unbounded".
const Unbounded = -1

// SOAPVersion identifies the protocol variant of a binding or port.
type SOAPVersion string

// Supported SOAP versions. A binding without a SOAP protocol element
// has an empty version.
const (
	SOAP11 SOAPVersion = "1.1"
	SOAP12 SOAPVersion = "1.2"
)

// Definition is the resolved semantic model of a WSDL document.
//
// A Definition is built once by Unmarshal and is not modified afterwards.
type Definition struct {
	Name            string            `json:"name,omitempty" yaml:"name,omitempty"`
	TargetNamespace string            `json:"target_namespace" yaml:"target_namespace"`
	Documentation   string            `json:"documentation,omitempty" yaml:"documentation,omitempty"`
	Namespaces      map[string]string `json:"namespaces" yaml:"namespaces"`
	Imports         []*Import         `json:"imports,omitempty" yaml:"imports,omitempty"`
	Types           *TypeCatalog      `json:"types" yaml:"types"`
	Messages        []*Message        `json:"messages" yaml:"messages"`
	Interfaces      []*Interface      `json:"interfaces" yaml:"interfaces"`
	Bindings        []*Binding        `json:"bindings" yaml:"bindings"`
	Services        []*Service        `json:"services" yaml:"services"`
}

// Import is a wsdl:import. Imports are recorded, never fetched.
type Import struct {
	Namespace string `json:"namespace" yaml:"namespace"`
	Location  string `json:"location,omitempty" yaml:"location,omitempty"`
}

// Message returns the message with the given qualified name.
func (d *Definition) Message(name xml.Name) (*Message, bool) {
	for _, m := range d.Messages {
		if m.Name == name.Local && sameNamespace(d.TargetNamespace, name.Space) {
			return m, true
		}
	}
	return nil, false
}

// Interface returns the port type with the given qualified name.
func (d *Definition) Interface(name xml.Name) (*Interface, bool) {
	for _, it := range d.Interfaces {
		if it.Name == name.Local && sameNamespace(d.TargetNamespace, name.Space) {
			return it, true
		}
	}
	return nil, false
}

// Binding returns the binding with the given qualified name.
func (d *Definition) Binding(name xml.Name) (*Binding, bool) {
	for _, b := range d.Bindings {
		if b.Name == name.Local && sameNamespace(d.TargetNamespace, name.Space) {
			return b, true
		}
	}
	return nil, false
}

// BindingOperation returns the operation of b that carries the given
// (disambiguated) operation name.
func (d *Definition) BindingOperation(b *Binding, name string) (*BindingOperation, bool) {
	if b == nil {
		return nil, false
	}
	for _, op := range b.Operations {
		if op.Name == name {
			return op, true
		}
	}
	return nil, false
}

// References written without a prefix, or with an unbound one, carry an
// empty namespace and match any declaration of the same local name.
func sameNamespace(target, ref string) bool {
	return ref == "" || ref == target
}

// TypeCatalog holds the types and top-level elements declared in the
// schema fragments of a WSDL document.
type TypeCatalog struct {
	ComplexTypes map[string]*ComplexType `json:"complex_types" yaml:"complex_types"`
	SimpleTypes  map[string]*SimpleType  `json:"simple_types" yaml:"simple_types"`
	Elements     []*Element              `json:"elements" yaml:"elements"`
	Imports      map[string]struct{}     `json:"-" yaml:"-"`
	Issues       []*SchemaIssue          `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// NewTypeCatalog returns an empty catalog.
func NewTypeCatalog() *TypeCatalog {
	return &TypeCatalog{
		ComplexTypes: make(map[string]*ComplexType),
		SimpleTypes:  make(map[string]*SimpleType),
		Imports:      make(map[string]struct{}),
	}
}

// addComplexType registers ct unless a type with the same name exists.
// It reports whether ct was added.
func (c *TypeCatalog) addComplexType(ct *ComplexType) bool {
	if _, exists := c.ComplexTypes[ct.Name]; exists {
		return false
	}
	c.ComplexTypes[ct.Name] = ct
	return true
}

// addSimpleType registers st unless a type with the same name exists.
func (c *TypeCatalog) addSimpleType(st *SimpleType) bool {
	if _, exists := c.SimpleTypes[st.Name]; exists {
		return false
	}
	c.SimpleTypes[st.Name] = st
	return true
}

// ComplexTypeNames returns the complex type names in lexical order.
func (c *TypeCatalog) ComplexTypeNames() []string {
	return sortedKeys(c.ComplexTypes)
}

// SimpleTypeNames returns the simple type names in lexical order.
func (c *TypeCatalog) SimpleTypeNames() []string {
	return sortedKeys(c.SimpleTypes)
}

// ImportedNamespaces returns the imported namespace URIs in lexical order.
func (c *TypeCatalog) ImportedNamespaces() []string {
	return sortedKeys(c.Imports)
}

// Element returns the first top-level element with the given name.
func (c *TypeCatalog) Element(name string) (*Element, bool) {
	for _, el := range c.Elements {
		if el.Name == name {
			return el, true
		}
	}
	return nil, false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ComplexType describes a record type, or an array when IsArray is set.
type ComplexType struct {
	Name          string       `json:"name" yaml:"name"`
	Namespace     string       `json:"namespace" yaml:"namespace"`
	Documentation string       `json:"documentation,omitempty" yaml:"documentation,omitempty"`
	Abstract      bool         `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	Anonymous     bool         `json:"anonymous,omitempty" yaml:"anonymous,omitempty"`
	Any           bool         `json:"any,omitempty" yaml:"any,omitempty"`
	Base          *xml.Name    `json:"base,omitempty" yaml:"base,omitempty"`
	Elements      []*Element   `json:"elements" yaml:"elements"`
	Attributes    []*Attribute `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	IsArray       bool         `json:"is_array" yaml:"is_array"`
	ItemType      xml.Name     `json:"item_type,omitempty" yaml:"item_type,omitempty"`

	// arrayType is the wsdl:arrayType of a SOAP-encoded array restriction.
	arrayType *xml.Name
}

// SimpleType describes a scalar type, possibly restricted to an
// enumeration of values.
type SimpleType struct {
	Name         string     `json:"name" yaml:"name"`
	Namespace    string     `json:"namespace" yaml:"namespace"`
	Base         xml.Name   `json:"base" yaml:"base"`
	Enumerations []string   `json:"enumerations,omitempty" yaml:"enumerations,omitempty"`
	Union        []xml.Name `json:"union,omitempty" yaml:"union,omitempty"`
	List         *xml.Name  `json:"list,omitempty" yaml:"list,omitempty"`
}

// IsEnumeration reports whether st declares enumeration values.
func (st *SimpleType) IsEnumeration() bool {
	return len(st.Enumerations) > 0
}

// Element is an element declaration, at the top level of a schema or
// as a member of a complex type.
type Element struct {
	Name          string    `json:"name" yaml:"name"`
	Namespace     string    `json:"namespace" yaml:"namespace"`
	Type          xml.Name  `json:"type" yaml:"type"`
	Ref           *xml.Name `json:"ref,omitempty" yaml:"ref,omitempty"`
	IsComplexType bool      `json:"is_complex_type" yaml:"is_complex_type"`
	IsOptional    bool      `json:"is_optional" yaml:"is_optional"`
	IsArray       bool      `json:"is_array" yaml:"is_array"`
	Nillable      bool      `json:"nillable,omitempty" yaml:"nillable,omitempty"`
	MinOccurs     int       `json:"min_occurs" yaml:"min_occurs"`
	MaxOccurs     int       `json:"max_occurs" yaml:"max_occurs"`
}

// Attribute is an attribute declaration of a complex type.
type Attribute struct {
	Name string   `json:"name" yaml:"name"`
	Type xml.Name `json:"type" yaml:"type"`
	Use  string   `json:"use,omitempty" yaml:"use,omitempty"`
}

// SchemaIssue is a problem found while checking a schema fragment.
// Fragments with issues are still used to build the catalog.
type SchemaIssue struct {
	Fragment  int    `json:"fragment" yaml:"fragment"`
	Namespace string `json:"namespace" yaml:"namespace"`
	Message   string `json:"message" yaml:"message"`
}

func (i *SchemaIssue) String() string {
	return fmt.Sprintf("schema %d (%s): %s", i.Fragment, i.Namespace, i.Message)
}

// Message describes the payload of an operation input, output or fault.
type Message struct {
	Name  string  `json:"name" yaml:"name"`
	Parts []*Part `json:"parts" yaml:"parts"`
}

// Part is one slot of a message. Either Element or Type is set.
type Part struct {
	Name    string   `json:"name" yaml:"name"`
	Element xml.Name `json:"element,omitempty" yaml:"element,omitempty"`
	Type    xml.Name `json:"type,omitempty" yaml:"type,omitempty"`
}

// IsElement reports whether p refers to an element declaration.
func (p *Part) IsElement() bool {
	return p.Element.Local != ""
}

// Interface is a WSDL port type.
type Interface struct {
	Name       string       `json:"name" yaml:"name"`
	Operations []*Operation `json:"operations" yaml:"operations"`
}

// Operation is an abstract operation of a port type. Name is unique
// within its port type; DeclaredName is the name found in the document.
type Operation struct {
	Name          string   `json:"name" yaml:"name"`
	DeclaredName  string   `json:"declared_name" yaml:"declared_name"`
	Documentation string   `json:"documentation,omitempty" yaml:"documentation,omitempty"`
	Input         *IORef   `json:"input,omitempty" yaml:"input,omitempty"`
	Output        *IORef   `json:"output,omitempty" yaml:"output,omitempty"`
	Faults        []*IORef `json:"faults,omitempty" yaml:"faults,omitempty"`
}

// IORef links an operation input, output or fault to its message.
type IORef struct {
	Name    string   `json:"name,omitempty" yaml:"name,omitempty"`
	Message xml.Name `json:"message" yaml:"message"`
}

// Binding maps the operations of a port type onto SOAP.
type Binding struct {
	Name       string              `json:"name" yaml:"name"`
	Type       xml.Name            `json:"type" yaml:"type"`
	Transport  string              `json:"transport,omitempty" yaml:"transport,omitempty"`
	Version    SOAPVersion         `json:"version,omitempty" yaml:"version,omitempty"`
	Style      string              `json:"style" yaml:"style"`
	Operations []*BindingOperation `json:"operations" yaml:"operations"`
}

// OperationStyle returns the style of op, falling back to the binding style.
func (b *Binding) OperationStyle(op *BindingOperation) string {
	if op != nil && op.Style != "" {
		return op.Style
	}
	return b.Style
}

// BindingOperation carries the SOAP details of one operation.
type BindingOperation struct {
	Name         string          `json:"name" yaml:"name"`
	DeclaredName string          `json:"declared_name" yaml:"declared_name"`
	Action       string          `json:"action,omitempty" yaml:"action,omitempty"`
	Style        string          `json:"style,omitempty" yaml:"style,omitempty"`
	Input        *BindingIO      `json:"input,omitempty" yaml:"input,omitempty"`
	Output       *BindingIO      `json:"output,omitempty" yaml:"output,omitempty"`
	Faults       []*BindingFault `json:"faults,omitempty" yaml:"faults,omitempty"`
}

// BindingIO describes the wire encoding of an input or output.
type BindingIO struct {
	Name    string        `json:"name,omitempty" yaml:"name,omitempty"`
	Body    *SOAPBody     `json:"body,omitempty" yaml:"body,omitempty"`
	Headers []*SOAPHeader `json:"headers,omitempty" yaml:"headers,omitempty"`
}

// SOAPBody is a soap:body descriptor.
type SOAPBody struct {
	Use           string   `json:"use,omitempty" yaml:"use,omitempty"`
	Namespace     string   `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	EncodingStyle string   `json:"encoding_style,omitempty" yaml:"encoding_style,omitempty"`
	Parts         []string `json:"parts,omitempty" yaml:"parts,omitempty"`
}

// SOAPHeader is a soap:header descriptor referencing a message part.
type SOAPHeader struct {
	Message       xml.Name `json:"message" yaml:"message"`
	Part          string   `json:"part" yaml:"part"`
	Use           string   `json:"use,omitempty" yaml:"use,omitempty"`
	Namespace     string   `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	EncodingStyle string   `json:"encoding_style,omitempty" yaml:"encoding_style,omitempty"`
}

// BindingFault is the soap:fault descriptor of a binding operation fault.
type BindingFault struct {
	Name          string `json:"name" yaml:"name"`
	Use           string `json:"use,omitempty" yaml:"use,omitempty"`
	Namespace     string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	EncodingStyle string `json:"encoding_style,omitempty" yaml:"encoding_style,omitempty"`
}

// Service is a published set of endpoints.
type Service struct {
	Name          string  `json:"name" yaml:"name"`
	Documentation string  `json:"documentation,omitempty" yaml:"documentation,omitempty"`
	Ports         []*Port `json:"ports" yaml:"ports"`
}

// Port is an endpoint: a binding reachable at an address.
type Port struct {
	Name    string      `json:"name" yaml:"name"`
	Binding xml.Name    `json:"binding" yaml:"binding"`
	Address string      `json:"address" yaml:"address"`
	Version SOAPVersion `json:"version,omitempty" yaml:"version,omitempty"`
}
