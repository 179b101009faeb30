// Package wsdlgo provides an encoder from WSDL models to Go code.
package wsdlgo

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"fmt"
	"go/format"
	"go/parser"
	"go/token"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/template"
	"unicode"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fiorix/wsdlmodel/wsdl"
)

const soapPackage = "github.com/fiorix/wsdlmodel/soap"

// An Encoder generates Go code from WSDL definitions.
type Encoder interface {
	// Encode generates Go code from d.
	Encode(d *wsdl.Definition) error

	// SetPackageName sets the package name of the generated code. By
	// default the name is derived from the first binding.
	SetPackageName(name fmt.Stringer)
}

type goEncoder struct {
	// where to write Go code
	w io.Writer

	pkg   fmt.Stringer
	title cases.Caser
	log   zerolog.Logger

	// types cache
	stypes map[string]*wsdl.SimpleType
	ctypes map[string]*wsdl.ComplexType

	// elements cache
	elements map[string]*wsdl.Element

	// messages cache
	messages map[string]*wsdl.Message

	// soap operations of the binding being written
	soapOps map[string]*wsdl.BindingOperation

	// function names already written
	funcnames map[string]bool

	// whether to add supporting types
	needsDateType     bool
	needsTimeType     bool
	needsDateTimeType bool
	needsDurationType bool
	needsTag          map[string]xml.Name
	needsStdPkg       map[string]bool
	needsExtPkg       map[string]bool
}

// NewEncoder creates and initializes an Encoder that generates code to w.
func NewEncoder(w io.Writer) Encoder {
	return &goEncoder{
		w:           w,
		title:       cases.Title(language.Und, cases.NoLower),
		log:         currentLogger().With().Str("component", "wsdlgo").Logger(),
		stypes:      make(map[string]*wsdl.SimpleType),
		ctypes:      make(map[string]*wsdl.ComplexType),
		elements:    make(map[string]*wsdl.Element),
		messages:    make(map[string]*wsdl.Message),
		soapOps:     make(map[string]*wsdl.BindingOperation),
		funcnames:   make(map[string]bool),
		needsTag:    make(map[string]xml.Name),
		needsStdPkg: make(map[string]bool),
		needsExtPkg: make(map[string]bool),
	}
}

func (ge *goEncoder) SetPackageName(name fmt.Stringer) {
	ge.pkg = name
}

func (ge *goEncoder) Encode(d *wsdl.Definition) error {
	if d == nil {
		return nil
	}
	var b bytes.Buffer
	err := ge.encode(&b, d)
	if err != nil {
		return err
	}
	if b.Len() == 0 {
		return nil
	}
	input := b.String()

	// try to parse the generated code
	fset := token.NewFileSet()
	_, err = parser.ParseFile(fset, "", input, parser.ParseComments)
	if err != nil {
		var src bytes.Buffer
		s := bufio.NewScanner(strings.NewReader(input))
		for line := 1; s.Scan(); line++ {
			fmt.Fprintf(&src, "%5d\t%s\n", line, s.Bytes())
		}
		return fmt.Errorf("generated bad code: %w\n%s", err, src.String())
	}
	out, err := format.Source(b.Bytes())
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	_, err = ge.w.Write(out)
	return err
}

func (ge *goEncoder) encode(w io.Writer, d *wsdl.Definition) error {
	ge.cacheTypes(d)
	ge.cacheMessages(d)
	ge.log.Debug().
		Str("definitions", d.Name).
		Int("complex_types", len(ge.ctypes)).
		Int("simple_types", len(ge.stypes)).
		Msg("encoding")

	// Functions come first: they decide which types need XMLName tags.
	var funcs, types bytes.Buffer
	for _, it := range d.Interfaces {
		if err := ge.writePortType(&funcs, d, it); err != nil {
			return err
		}
	}
	if err := ge.writeGoTypes(&types, d); err != nil {
		return err
	}

	pkg := ge.packageName(d)
	fmt.Fprintf(w, "package %s\n\nimport (\n", pkg)
	for _, pkg := range sortedKeys(ge.needsStdPkg) {
		fmt.Fprintf(w, "%q\n", pkg)
	}
	if len(ge.needsStdPkg) > 0 {
		fmt.Fprintf(w, "\n")
	}
	for _, pkg := range sortedKeys(ge.needsExtPkg) {
		fmt.Fprintf(w, "%q\n", pkg)
	}
	fmt.Fprintf(w, ")\n\n")
	if d.TargetNamespace != "" {
		ge.writeComments(w, "Namespace", "")
		fmt.Fprintf(w, "var Namespace = %q\n\n", d.TargetNamespace)
	}
	if _, err := io.Copy(w, &funcs); err != nil {
		return err
	}
	_, err := io.Copy(w, &types)
	return err
}

func (ge *goEncoder) packageName(d *wsdl.Definition) string {
	if ge.pkg != nil {
		if name := ge.pkg.String(); name != "" {
			return name
		}
	}
	if len(d.Bindings) > 0 {
		return BindingPackageName(*d.Bindings[0]).String()
	}
	return fallbackPackageName
}

func (ge *goEncoder) cacheTypes(d *wsdl.Definition) {
	if d.Types == nil {
		return
	}
	for name, st := range d.Types.SimpleTypes {
		ge.stypes[name] = st
	}
	for name, ct := range d.Types.ComplexTypes {
		ge.ctypes[name] = ct
	}
	for _, el := range d.Types.Elements {
		if _, exists := ge.elements[el.Name]; !exists {
			ge.elements[el.Name] = el
		}
	}
}

func (ge *goEncoder) cacheMessages(d *wsdl.Definition) {
	for _, v := range d.Messages {
		ge.messages[v.Name] = v
	}
}

// cacheSOAPOperations caches the operations of the first SOAP binding
// of it, and returns that binding.
func (ge *goEncoder) cacheSOAPOperations(d *wsdl.Definition, it *wsdl.Interface) *wsdl.Binding {
	ge.soapOps = make(map[string]*wsdl.BindingOperation)
	for _, b := range d.Bindings {
		if b.Version == "" || b.Type.Local != it.Name {
			continue
		}
		if b.Type.Space != "" && b.Type.Space != d.TargetNamespace {
			continue
		}
		for _, op := range b.Operations {
			ge.soapOps[op.Name] = op
		}
		return b
	}
	return nil
}

var interfaceTypeT = template.Must(template.New("interfaceType").Parse(`
// New{{.Name}} creates an initializes a {{.Name}}.
func New{{.Name}}(cli *soap.Client) {{.Name}} {
{{- if .Version}}
	if cli.Version == "" {
		cli.Version = {{.Version}}
	}
{{- end}}
	return &{{.Impl}}{cli}
}

// {{.Name}} was auto-generated from WSDL
// and defines interface for the remote service. Useful for testing.
type {{.Name}} interface {
{{- range .Funcs }}
{{.Doc}}{{.Name}}({{.Input}}) ({{.Output}})
{{ end }}
}

// {{.Impl}} implements the {{.Name}} interface.
type {{.Impl}} struct {
	cli *soap.Client
}

`))

type interfaceTypeFunc struct{ Doc, Name, Input, Output string }

// writePortType writes the Go interface of a port type, its SOAP
// implementation, and stub functions for operations that cannot be
// called over SOAP. Operations are written in document order.
func (ge *goEncoder) writePortType(w io.Writer, d *wsdl.Definition, it *wsdl.Interface) error {
	binding := ge.cacheSOAPOperations(d, it)
	name := ge.goName(it.Name)
	if name == "" {
		return nil
	}
	impl := strings.ToLower(name[:1]) + name[1:]

	var funcs []*interfaceTypeFunc
	var methods, stubs bytes.Buffer
	for _, op := range it.Operations {
		inParams, err := ge.inputParams(op)
		if err != nil {
			return err
		}
		outParams, err := ge.outputParams(op)
		if err != nil {
			return err
		}
		in, out := code(inParams), code(outParams)
		ret := make([]string, len(out))
		for i, p := range out {
			parts := strings.SplitN(p, " ", 2)
			if len(parts) == 2 {
				ret[i] = ge.wsdl2goDefault(parts[1])
			}
		}
		bop, ok := ge.soapOps[op.Name]
		if ok && len(in) == 1 && len(out) == 2 {
			fn := ge.goName(op.Name)
			ge.writeSOAPFunc(&methods, impl, fn, bop, in, out, ret, outParams[0].xmlToken)
			var doc bytes.Buffer
			ge.writeComments(&doc, fn, op.Documentation)
			funcs = append(funcs, &interfaceTypeFunc{
				Doc:    doc.String(),
				Name:   fn,
				Input:  strings.Join(in, ","),
				Output: strings.Join(out, ","),
			})
			continue
		}
		ge.needsStdPkg["errors"] = true
		ge.needsStdPkg["context"] = true
		in = append([]string{"ctx context.Context"}, in...)
		ge.fixParamConflicts(in, out)
		fn := ge.fixFuncNameConflicts(ge.goName(op.Name))
		ge.funcnames[fn] = true
		ge.writeComments(&stubs, fn, op.Documentation)
		fmt.Fprintf(&stubs, "func %s(%s) (%s) {\nreturn %s\n}\n\n",
			fn,
			strings.Join(in, ","),
			strings.Join(out, ","),
			strings.Join(ret, ","),
		)
	}
	if len(funcs) > 0 {
		ge.needsExtPkg[soapPackage] = true
		version := ""
		if binding.Version == wsdl.SOAP12 {
			version = "soap.SOAP12"
		}
		err := interfaceTypeT.Execute(w, &struct {
			Name    string
			Impl    string // private type that implements the interface
			Version string
			Funcs   []*interfaceTypeFunc
		}{name, impl, version, funcs})
		if err != nil {
			return err
		}
		ge.funcnames[name] = true
		ge.funcnames["New"+name] = true
	}
	if _, err := io.Copy(w, &methods); err != nil {
		return err
	}
	_, err := io.Copy(w, &stubs)
	return err
}

var soapFuncT = template.Must(template.New("soapFunc").Parse(
	`func (p *{{.PortType}}) {{.Name}}({{.Input}}) ({{.Output}}) {
	γ := struct {
		XMLName xml.Name ` + "`xml:\"Envelope\"`" + `
		Body    struct {
			M {{.OutputType}} ` + "`xml:\"{{.XMLOutputType}}\"`" + `
		}
	}{}
	if err = p.cli.RoundTrip({{printf "%q" .Action}}, α, &γ); err != nil {
		return {{.RetDef}}, err
	}
	return {{if .RetPtr}}&{{end}}γ.Body.M, nil
}

`))

func (ge *goEncoder) writeSOAPFunc(w io.Writer, portType, name string, op *wsdl.BindingOperation, in, out, ret []string, xmlToken string) {
	ge.needsStdPkg["encoding/xml"] = true
	in[0] = renameParam(in[0], "α")
	out[0] = renameParam(out[0], "β")
	typ := strings.SplitN(out[0], " ", 2)
	if strings.HasPrefix(ret[0], "&") {
		ret[0] = "nil"
	}
	soapFuncT.Execute(w, &struct {
		PortType      string
		Name          string
		Action        string
		Input         string
		Output        string
		OutputType    string
		XMLOutputType string
		RetPtr        bool
		RetDef        string
	}{
		portType,
		name,
		op.Action,
		strings.Join(in, ","),
		strings.Join(out, ","),
		strings.TrimPrefix(typ[1], "*"),
		xmlToken,
		typ[1][0] == '*',
		ret[0],
	})
}

func renameParam(p, name string) string {
	v := strings.SplitN(p, " ", 2)
	if len(v) != 2 {
		return p
	}
	return name + " " + v[1]
}

// returns list of function input parameters.
func (ge *goEncoder) inputParams(op *wsdl.Operation) ([]*parameter, error) {
	if op.Input == nil {
		return []*parameter{}, nil
	}
	im := op.Input.Message.Local
	req, ok := ge.messages[im]
	if !ok {
		return nil, fmt.Errorf("operation %q wants input message %q but it's not defined", op.Name, im)
	}
	return ge.genParams(req, true), nil
}

// returns list of function output parameters plus error.
func (ge *goEncoder) outputParams(op *wsdl.Operation) ([]*parameter, error) {
	out := []*parameter{{code: "err error"}}
	if op.Output == nil {
		return out, nil
	}
	om := op.Output.Message.Local
	resp, ok := ge.messages[om]
	if !ok {
		return nil, fmt.Errorf("operation %q wants output message %q but it's not defined", op.Name, om)
	}
	return append(ge.genParams(resp, false), out[0]), nil
}

var isGoKeyword = map[string]bool{
	"break":       true,
	"case":        true,
	"chan":        true,
	"const":       true,
	"continue":    true,
	"default":     true,
	"else":        true,
	"defer":       true,
	"fallthrough": true,
	"for":         true,
	"func":        true,
	"go":          true,
	"goto":        true,
	"if":          true,
	"import":      true,
	"interface":   true,
	"map":         true,
	"package":     true,
	"range":       true,
	"return":      true,
	"select":      true,
	"struct":      true,
	"switch":      true,
	"type":        true,
	"var":         true,
}

var isNumeric = map[string]bool{
	"int":     true,
	"int8":    true,
	"int16":   true,
	"int64":   true,
	"uint":    true,
	"uint8":   true,
	"uint16":  true,
	"uint32":  true,
	"uint64":  true,
	"float64": true,
}

type parameter struct {
	code     string
	xmlToken string
}

func code(list []*parameter) []string {
	code := make([]string, len(list))
	for i, p := range list {
		code[i] = p.code
	}
	return code
}

func (ge *goEncoder) genParams(m *wsdl.Message, needsTag bool) []*parameter {
	params := make([]*parameter, len(m.Parts))
	for i, param := range m.Parts {
		var t, token string
		switch {
		case param.IsElement():
			t = ge.elementGoType(param.Element)
			token = param.Element.Local
			if needsTag && strings.HasPrefix(t, "*") {
				ge.needsTag[strings.TrimPrefix(t, "*")] = param.Element
			}
		default:
			t = ge.wsdl2goType(param.Type)
			token = param.Name
		}
		name := identifier(param.Name)
		if name == "" {
			name = "p" + strconv.Itoa(i)
		}
		if isGoKeyword[name] {
			name = "_" + name
		}
		params[i] = &parameter{code: name + " " + t, xmlToken: token}
	}
	return params
}

// elementGoType returns the Go type of the top-level element name.
func (ge *goEncoder) elementGoType(name xml.Name) string {
	if el, ok := ge.elements[name.Local]; ok && el.Type.Local != "" {
		return ge.wsdl2goType(el.Type)
	}
	return ge.wsdl2goType(name)
}

// Fixes conflicts between function and type names.
func (ge *goEncoder) fixFuncNameConflicts(name string) string {
	if ge.funcnames[name] {
		name += "Func"
		return ge.fixFuncNameConflicts(name)
	}
	for _, st := range ge.stypes {
		if ge.goName(st.Name) == name {
			return ge.fixFuncNameConflicts(name + "Func")
		}
	}
	for _, ct := range ge.ctypes {
		if ge.goName(ct.Name) == name {
			return ge.fixFuncNameConflicts(name + "Func")
		}
	}
	return name
}

// Fixes request and response parameters with the same name, in place.
// Each string in the slice consists of Go's "name Type", we only
// compare names. In case of a conflict, we set the response one
// in the form of respName.
func (ge *goEncoder) fixParamConflicts(req, resp []string) {
	for _, a := range req {
		for j, b := range resp {
			x := strings.SplitN(a, " ", 2)[0]
			y := strings.SplitN(b, " ", 2)
			if len(y) > 1 {
				if x == y[0] {
					n := ge.title.String(y[0])
					resp[j] = "resp" + n + " " + y[1]
				}
			}
		}
	}
}

// Converts types from wsdl type to Go type.
func (ge *goEncoder) wsdl2goType(t xml.Name) string {
	if t.Local == "" {
		return "string"
	}
	if !wsdl.IsXSDNamespace(t.Space) {
		if _, exists := ge.stypes[t.Local]; exists {
			return ge.goName(t.Local)
		}
		if _, exists := ge.ctypes[t.Local]; exists {
			return "*" + ge.goName(t.Local)
		}
		if t.Space != "" {
			ge.log.Debug().Str("type", t.Local).Str("namespace", t.Space).Msg("unknown type mapped to string")
			return "string"
		}
	}
	switch strings.ToLower(t.Local) {
	case "int":
		return "int"
	case "long", "integer":
		return "int64"
	case "short":
		return "int16"
	case "byte":
		return "int8"
	case "unsignedint":
		return "uint32"
	case "unsignedlong":
		return "uint64"
	case "unsignedshort":
		return "uint16"
	case "unsignedbyte":
		return "uint8"
	case "float", "double", "decimal":
		return "float64"
	case "boolean":
		return "bool"
	case "hexbinary", "base64binary":
		return "[]byte"
	case "string", "anyuri", "token", "qname", "normalizedstring", "language", "id", "ncname", "name":
		return "string"
	case "date":
		ge.needsDateType = true
		return "Date"
	case "time":
		ge.needsTimeType = true
		return "Time"
	case "nonnegativeinteger", "positiveinteger":
		return "uint"
	case "datetime":
		ge.needsDateTimeType = true
		return "DateTime"
	case "duration":
		ge.needsDurationType = true
		return "Duration"
	case "anytype", "anysequence":
		return "interface{}"
	default:
		return "string"
	}
}

// Returns the default Go type for the given wsdl type.
func (ge *goEncoder) wsdl2goDefault(t string) string {
	v := t
	if v != "" && v[0] == '*' {
		v = v[1:]
	}
	switch {
	case v == "error":
		return `errors.New("not implemented")`
	case v == "bool":
		return "false"
	case isNumeric[v]:
		return "0"
	case v == "string":
		return `""`
	case v == "[]byte", v == "interface{}", strings.HasPrefix(v, "[]"):
		return "nil"
	case t != "" && t[0] == '*':
		return "&" + v + "{}"
	}
	st := ge.simpleType(v)
	if st == nil {
		return v + `("")`
	}
	base := ge.underlying(st)
	if base == "" {
		return "nil"
	}
	return v + "(" + ge.wsdl2goDefault(base) + ")"
}

// simpleType returns the simple type declared under the Go name v.
func (ge *goEncoder) simpleType(v string) *wsdl.SimpleType {
	for _, st := range ge.stypes {
		if ge.goName(st.Name) == v {
			return st
		}
	}
	return nil
}

// underlying returns the Go type at the bottom of the restriction chain
// of st, or "" for list and union types.
func (ge *goEncoder) underlying(st *wsdl.SimpleType) string {
	seen := make(map[string]bool)
	for !seen[st.Name] {
		seen[st.Name] = true
		if st.List != nil || len(st.Union) > 0 {
			return ""
		}
		if st.Base.Local == "" || wsdl.IsXSDNamespace(st.Base.Space) {
			return ge.wsdl2goType(st.Base)
		}
		next, ok := ge.stypes[st.Base.Local]
		if !ok {
			break
		}
		st = next
	}
	return "string"
}

// goName converts an XML name to an exported Go identifier.
func (ge *goEncoder) goName(s string) string {
	s = identifier(ge.title.String(s))
	if s != "" && unicode.IsDigit(rune(s[0])) {
		s = "X" + s
	}
	return s
}

// identifier drops the characters of s that cannot appear in a Go
// identifier.
func identifier(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return -1
	}, s)
}

// writeGoTypes writes Go types from WSDL types to w.
//
// Types are written in this order, alphabetically: date types that we
// generate, simple types, then complex types.
func (ge *goEncoder) writeGoTypes(w io.Writer, d *wsdl.Definition) error {
	var b bytes.Buffer
	for _, name := range sortedKeys(ge.stypes) {
		ge.genSimpleType(&b, ge.stypes[name])
	}
	for _, name := range sortedKeys(ge.ctypes) {
		if err := ge.genGoStruct(&b, d, ge.ctypes[name]); err != nil {
			return err
		}
	}
	ge.genDateTypes(w) // must be called last
	_, err := io.Copy(w, &b)
	return err
}

func (ge *goEncoder) genSimpleType(w io.Writer, st *wsdl.SimpleType) {
	name := ge.goName(st.Name)
	if name == "" {
		return
	}
	switch {
	case len(st.Union) > 0:
		types := make([]string, len(st.Union))
		for i, t := range st.Union {
			types[i] = ge.wsdl2goType(t)
		}
		doc := name + " is a union of: " + strings.Join(types, ", ")
		ge.writeComments(w, name, doc)
		fmt.Fprintf(w, "type %s interface{}\n\n", name)
	case st.List != nil:
		ge.writeComments(w, name, "")
		fmt.Fprintf(w, "type %s []%s\n\n", name, ge.wsdl2goType(*st.List))
	default:
		base := ge.wsdl2goType(st.Base)
		if base == name || strings.HasPrefix(base, "*") {
			base = "string"
		}
		ge.writeComments(w, name, "")
		fmt.Fprintf(w, "type %s %s\n\n", name, base)
		underlying := ge.underlying(st)
		ge.genEnumConsts(w, name, underlying, st)
		ge.genValidator(w, name, underlying, st)
	}
}

func (ge *goEncoder) genDateTypes(w io.Writer) {
	cases := []struct {
		needs bool
		name  string
		code  string
	}{
		{
			needs: ge.needsDateType,
			name:  "Date",
			code:  "type Date string\n\n",
		},
		{
			needs: ge.needsTimeType,
			name:  "Time",
			code:  "type Time string\n\n",
		},
		{
			needs: ge.needsDateTimeType,
			name:  "DateTime",
			code:  "type DateTime string\n\n",
		},
		{
			needs: ge.needsDurationType,
			name:  "Duration",
			code:  "type Duration string\n\n",
		},
	}
	for _, c := range cases {
		if !c.needs {
			continue
		}
		ge.writeComments(w, c.name, c.name+" in WSDL format.")
		io.WriteString(w, c.code)
	}
}

// genEnumConsts declares one constant per enumeration value of string
// based types. Values that do not yield a usable identifier are skipped.
func (ge *goEncoder) genEnumConsts(w io.Writer, typeName, base string, st *wsdl.SimpleType) {
	if !st.IsEnumeration() || base != "string" {
		return
	}
	seen := make(map[string]bool)
	var consts []string
	for _, v := range st.Enumerations {
		suffix := ge.goName(v)
		if suffix == "" || seen[suffix] {
			continue
		}
		seen[suffix] = true
		consts = append(consts, fmt.Sprintf("%s%s %s = %q", typeName, suffix, typeName, v))
	}
	if len(consts) == 0 {
		return
	}
	fmt.Fprintf(w, "// Values of %s.\nconst (\n%s\n)\n\n", typeName, strings.Join(consts, "\n"))
}

var validatorT = template.Must(template.New("validator").Parse(`
// Validate validates {{.TypeName}}.
func (v {{.TypeName}}) Validate() bool {
	for _, vv := range []{{.TypeName}} {
		{{range .Args}}{{.}},{{"\n"}}{{end}}
	}{
		if reflect.DeepEqual(v, vv) {
			return true
		}
	}
	return false
}

`))

func (ge *goEncoder) genValidator(w io.Writer, typeName, base string, st *wsdl.SimpleType) {
	if !st.IsEnumeration() {
		return
	}
	numeric := base == "bool" || isNumeric[base]
	args := make([]string, len(st.Enumerations))
	for i, v := range st.Enumerations {
		if numeric {
			args[i] = v
		} else {
			args[i] = strconv.Quote(v)
		}
	}
	ge.needsStdPkg["reflect"] = true
	validatorT.Execute(w, &struct {
		TypeName string
		Args     []string
	}{
		typeName,
		args,
	})
}

func (ge *goEncoder) genGoStruct(w io.Writer, d *wsdl.Definition, ct *wsdl.ComplexType) error {
	if ct.Abstract {
		return nil
	}
	name := ge.goName(ct.Name)
	if name == "" {
		return nil
	}
	ge.writeComments(w, name, ct.Documentation)
	if ct.Any && len(ct.Elements) == 0 && len(ct.Attributes) == 0 {
		fmt.Fprintf(w, "type %s []interface{}\n\n", name)
		return nil
	}
	fmt.Fprintf(w, "type %s struct {\n", name)
	if tag, ok := ge.needsTag[name]; ok {
		ge.needsStdPkg["encoding/xml"] = true
		fmt.Fprintf(w, "XMLName xml.Name `xml:\"%s %s\" json:\"-\" yaml:\"-\"`\n",
			tag.Space, tag.Local)
	}
	ge.genStructFields(w, ct, make(map[string]bool))
	fmt.Fprintf(w, "}\n\n")
	return nil
}

// genStructFields writes the fields of ct, the fields inherited from
// its base type first. seen guards against cyclic derivations.
func (ge *goEncoder) genStructFields(w io.Writer, ct *wsdl.ComplexType, seen map[string]bool) {
	if seen[ct.Name] {
		return
	}
	seen[ct.Name] = true
	if ct.Base != nil && !ct.IsArray {
		if base, ok := ge.ctypes[ct.Base.Local]; ok && !wsdl.IsXSDNamespace(ct.Base.Space) {
			ge.genStructFields(w, base, seen)
		} else if len(ct.Elements) == 0 && ct.Base.Space != wsdl.SOAPEncNamespace {
			fmt.Fprintf(w, "Value %s `xml:\",chardata\" json:\"value\" yaml:\"value\"`\n",
				ge.wsdl2goType(*ct.Base))
		}
	}
	for _, a := range ct.Attributes {
		ge.genAttributeField(w, a)
	}
	for _, el := range ct.Elements {
		ge.genElementField(w, el)
	}
}

func (ge *goEncoder) genAttributeField(w io.Writer, a *wsdl.Attribute) {
	name := ge.goName(a.Name)
	if name == "" {
		return
	}
	typ := ge.wsdl2goType(a.Type)
	if strings.HasPrefix(typ, "*") || typ == "interface{}" {
		typ = "string"
	}
	fmt.Fprintf(w, "%s %s `xml:\"%s,attr,omitempty\" json:\"%s,omitempty\" yaml:\"%s,omitempty\"`\n",
		name, typ, a.Name, a.Name, a.Name)
}

func (ge *goEncoder) genElementField(w io.Writer, el *wsdl.Element) {
	name := ge.goName(el.Name)
	if name == "" {
		return
	}
	tag := el.Name
	fmt.Fprintf(w, "%s ", name)
	if el.IsArray {
		fmt.Fprintf(w, "[]")
	}
	typ := ge.wsdl2goType(el.Type)
	if el.Nillable || el.IsOptional {
		tag += ",omitempty"
	}
	fmt.Fprintf(w, "%s `xml:\"%s\" json:\"%s\" yaml:\"%s\"`\n",
		typ, tag, tag, tag)
}

// writeComments writes comments to w, capped at ~80 columns.
func (ge *goEncoder) writeComments(w io.Writer, typeName, comment string) {
	comment = strings.Trim(strings.Replace(comment, "\n", " ", -1), " ")
	if comment == "" {
		comment = ge.title.String(typeName) + " was auto-generated from WSDL."
	}
	count, line := 0, ""
	words := strings.Split(comment, " ")
	for _, word := range words {
		if line == "" {
			count, line = 2, "//"
		}
		count += len(word)
		if count > 60 {
			fmt.Fprintf(w, "%s %s\n", line, word)
			count, line = 0, ""
			continue
		}
		line = line + " " + word
		count++
	}
	if line != "" {
		fmt.Fprintf(w, "%s\n", line)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
