// Package wsdl builds a semantic model of WSDL 1.1 documents.
//
// The model resolves every qualified name against the namespace scopes
// of the source document, promotes inline schema types to named catalog
// entries, detects array types and makes overloaded operation names
// unique, so that code generators can consume it without looking at
// the XML again.
//
// http://www.w3.org/TR/wsdl
package wsdl

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"aqwari.net/xml/xmltree"
	"golang.org/x/net/html/charset"
)

// Unmarshal reads a WSDL document from r and builds its model.
func Unmarshal(r io.Reader) (*Definition, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// ParseFile builds the model of the WSDL document stored at path.
func ParseFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// ParseString builds the model of the WSDL document s.
func ParseString(s string) (*Definition, error) {
	return Parse([]byte(s))
}

// Parse builds the model of the WSDL document held in data.
//
// Only three conditions fail: input without a root element (ErrNoRoot),
// a root other than wsdl:definitions (*RootError) and malformed XML, in
// which case the error of the XML layer is returned as is. Everything
// else is lenient: unresolvable names, missing attributes and dangling
// references end up as empty values in the model.
func Parse(data []byte) (*Definition, error) {
	data, err := toUTF8(data)
	if err != nil {
		return nil, err
	}
	ns, err := namespaceTable(data)
	if errors.Is(err, io.EOF) {
		return nil, ErrNoRoot
	}
	if err != nil {
		return nil, err
	}
	root, err := xmltree.Parse(data)
	if err != nil {
		return nil, err
	}
	if root.Name.Space != WSDLNamespace || root.Name.Local != "definitions" {
		return nil, &RootError{Name: root.Name}
	}
	return assemble(root, ns), nil
}

// assemble runs the build stages in order. The type catalog is complete
// before any later stage runs.
func assemble(root *xmltree.Element, ns map[string]string) *Definition {
	def := &Definition{
		Name:            localAttr(root, "name"),
		TargetNamespace: localAttr(root, "targetNamespace"),
		Documentation:   documentation(root),
		Namespaces:      ns,
		Types:           NewTypeCatalog(),
	}
	for _, imp := range wsdlChildren(root, "import") {
		def.Imports = append(def.Imports, &Import{
			Namespace: localAttr(imp, "namespace"),
			Location:  localAttr(imp, "location"),
		})
	}
	ctx := &buildCtx{
		targetNS: def.TargetNamespace,
		catalog:  def.Types,
		log:      currentLogger().With().Str("component", "wsdl").Str("definitions", def.Name).Logger(),
	}
	buildTypes(ctx, firstChild(root, WSDLNamespace, "types"))
	def.Messages = buildMessages(ctx, root)
	def.Interfaces = buildInterfaces(ctx, root)
	def.Bindings = buildBindings(ctx, root)
	def.Services = buildServices(ctx, root)
	ctx.log.Debug().
		Int("complex_types", len(def.Types.ComplexTypes)).
		Int("simple_types", len(def.Types.SimpleTypes)).
		Int("messages", len(def.Messages)).
		Int("port_types", len(def.Interfaces)).
		Int("bindings", len(def.Bindings)).
		Int("services", len(def.Services)).
		Msg("model built")
	return def
}

// newDecoder returns an XML decoder that understands the character sets
// known to x/net/html/charset.
func newDecoder(r io.Reader) *xml.Decoder {
	d := xml.NewDecoder(r)
	d.CharsetReader = charset.NewReaderLabel
	return d
}

var (
	utf8BOM     = []byte("\xef\xbb\xbf")
	xmlEncoding = regexp.MustCompile(`^\s*<\?xml[^>]*?\bencoding\s*=\s*["']([^"']*)["']`)
)

// toUTF8 transcodes data to UTF-8 when its XML declaration names another
// encoding. The declaration is rewritten to match the new bytes, since
// the tree parser refuses any encoding other than UTF-8.
func toUTF8(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	m := xmlEncoding.FindSubmatchIndex(data)
	if m == nil {
		return data, nil
	}
	label := strings.ToLower(string(data[m[2]:m[3]]))
	if label == "utf-8" || label == "utf8" {
		return data, nil
	}
	r, err := charset.NewReaderLabel(label, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("wsdl: %w", err)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("wsdl: decoding %s: %w", label, err)
	}
	if m = xmlEncoding.FindSubmatchIndex(out); m != nil {
		var buf bytes.Buffer
		buf.Grow(len(out))
		buf.Write(out[:m[2]])
		buf.WriteString("UTF-8")
		buf.Write(out[m[3]:])
		out = buf.Bytes()
	}
	return out, nil
}
