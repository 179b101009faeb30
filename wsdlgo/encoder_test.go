package wsdlgo

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiorix/wsdlmodel/wsdl"
)

func LoadDefinition(t *testing.T, filename string) *wsdl.Definition {
	t.Helper()
	d, err := wsdl.ParseFile(filepath.Join("testdata", filename))
	require.NoError(t, err, filename)
	return d
}

// squash collapses runs of white space so that assertions do not depend
// on gofmt alignment.
func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func encode(t *testing.T, d *wsdl.Definition, pkg string) string {
	t.Helper()
	var b bytes.Buffer
	enc := NewEncoder(&b)
	if pkg != "" {
		enc.SetPackageName(PackageName(pkg))
	}
	require.NoError(t, enc.Encode(d))
	return squash(b.String())
}

func TestEncodeStockQuote(t *testing.T) {
	code := encode(t, LoadDefinition(t, "stockquote.wsdl"), "")

	for _, want := range []string{
		"package stockquotesoap",
		`"encoding/xml"`,
		`"reflect"`,
		`"github.com/fiorix/wsdlmodel/soap"`,
		`var Namespace = "http://example.com/stockquote"`,
		"func NewStockQuotePortType(cli *soap.Client) StockQuotePortType { return &stockQuotePortType{cli} }",
		"type StockQuotePortType interface {",
		"// Returns the latest quote. GetQuote(α *GetQuoteType) (β *GetQuoteResponseType, err error)",
		"GetQuote_1(α *GetQuotesType) (β *GetQuotesResponseType, err error)",
		"type stockQuotePortType struct { cli *soap.Client }",
		"func (p *stockQuotePortType) GetQuote(α *GetQuoteType) (β *GetQuoteResponseType, err error) {",
		`M GetQuoteResponseType ` + "`xml:\"GetQuoteResponse\"`",
		`if err = p.cli.RoundTrip("http://example.com/stockquote/GetQuote", α, &γ); err != nil { return nil, err }`,
		`p.cli.RoundTrip("http://example.com/stockquote/GetQuotes", α, &γ)`,
		"return &γ.Body.M, nil",
		"type GetQuoteType struct { XMLName xml.Name `xml:\"http://example.com/stockquote GetQuote\" json:\"-\" yaml:\"-\"`",
		"Symbol string `xml:\"Symbol,omitempty\" json:\"Symbol,omitempty\" yaml:\"Symbol,omitempty\"`",
		"type GetQuotesResponseType struct { Quote []*Quote `xml:\"Quote\" json:\"Quote\" yaml:\"Quote\"` }",
		"type ArrayOfString struct { String []string `xml:\"string,omitempty\"",
		"Price float64 `xml:\"Price\"",
		"Exchange Exchange `xml:\"Exchange,omitempty\"",
		"type Exchange string",
		`ExchangeNYSE Exchange = "NYSE"`,
		`ExchangeNASDAQ Exchange = "NASDAQ"`,
		"func (v Exchange) Validate() bool { for _, vv := range []Exchange{ \"NYSE\", \"NASDAQ\", } {",
	} {
		assert.Contains(t, code, squash(want))
	}
	// Only request types carry an XMLName.
	assert.NotContains(t, code, "xml:\"http://example.com/stockquote GetQuoteResponse\"")
	// The SOAP 1.1 binding comes first and leaves the client version alone.
	assert.NotContains(t, code, "soap.SOAP12")
}

func TestEncodeSOAP12Constructor(t *testing.T) {
	d, err := wsdl.ParseString(`<definitions name="Echo" targetNamespace="urn:echo"
		xmlns="http://schemas.xmlsoap.org/wsdl/"
		xmlns:tns="urn:echo"
		xmlns:s="http://www.w3.org/2001/XMLSchema"
		xmlns:soap12="http://schemas.xmlsoap.org/wsdl/soap12/">
		<message name="In"><part name="text" type="s:string"/></message>
		<message name="Out"><part name="text" type="s:string"/></message>
		<portType name="Echo">
			<operation name="echo"><input message="tns:In"/><output message="tns:Out"/></operation>
		</portType>
		<binding name="EchoSoap12" type="tns:Echo">
			<soap12:binding transport="http://schemas.xmlsoap.org/soap/http"/>
			<operation name="echo"><soap12:operation soapAction="urn:echo#echo"/></operation>
		</binding>
	</definitions>`)
	require.NoError(t, err)

	code := encode(t, d, "echo")
	assert.Contains(t, code, "package echo")
	assert.Contains(t, code, `if cli.Version == "" { cli.Version = soap.SOAP12 }`)
	assert.Contains(t, code, "Echo(α string) (β string, err error)")
	assert.Contains(t, code, "M string `xml:\"text\"`")
	assert.Contains(t, code, `return "", err`)
	assert.Contains(t, code, "return γ.Body.M, nil")
}

func TestEncodeStubs(t *testing.T) {
	d, err := wsdl.ParseString(`<definitions name="Calc" targetNamespace="urn:calc"
		xmlns="http://schemas.xmlsoap.org/wsdl/"
		xmlns:tns="urn:calc"
		xmlns:s="http://www.w3.org/2001/XMLSchema"
		xmlns:http="http://schemas.xmlsoap.org/wsdl/http/">
		<types>
			<s:schema targetNamespace="urn:calc">
				<s:simpleType name="Mode">
					<s:restriction base="s:int">
						<s:enumeration value="1"/>
						<s:enumeration value="2"/>
					</s:restriction>
				</s:simpleType>
				<s:simpleType name="Modes"><s:list itemType="tns:Mode"/></s:simpleType>
				<s:simpleType name="Either"><s:union memberTypes="s:int s:string"/></s:simpleType>
				<s:complexType name="Stamp">
					<s:simpleContent>
						<s:extension base="s:dateTime">
							<s:attribute name="zone" type="s:string"/>
						</s:extension>
					</s:simpleContent>
				</s:complexType>
			</s:schema>
		</types>
		<message name="AddIn">
			<part name="a" type="s:int"/>
			<part name="b" type="s:int"/>
		</message>
		<message name="AddOut"><part name="result" type="s:int"/></message>
		<message name="ModeOut"><part name="mode" type="tns:Mode"/></message>
		<portType name="Calc">
			<operation name="add"><input message="tns:AddIn"/><output message="tns:AddOut"/></operation>
			<operation name="mode"><output message="tns:ModeOut"/></operation>
		</portType>
		<binding name="CalcGet" type="tns:Calc"><http:binding verb="GET"/></binding>
	</definitions>`)
	require.NoError(t, err)

	code := encode(t, d, "")
	for _, want := range []string{
		"package calcget",
		`"context"`,
		`"errors"`,
		`func Add(ctx context.Context, a int, b int) (result int, err error) { return 0, errors.New("not implemented") }`,
		`func ModeFunc(ctx context.Context) (mode Mode, err error) { return Mode(0), errors.New("not implemented") }`,
		"type Mode int",
		"for _, vv := range []Mode{ 1, 2, }",
		"type Modes []Mode",
		"// Either is a union of: int, string type Either interface{}",
		"type Stamp struct { Value DateTime `xml:\",chardata\" json:\"value\" yaml:\"value\"`",
		"Zone string `xml:\"zone,attr,omitempty\"",
		"type DateTime string",
	} {
		assert.Contains(t, code, squash(want))
	}
	assert.NotContains(t, code, "soap.Client")
	assert.NotContains(t, code, "ModeMode")
}

func TestEncodeErrors(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, NewEncoder(&b).Encode(nil))
	assert.Zero(t, b.Len())

	d, err := wsdl.ParseString(`<definitions xmlns="http://schemas.xmlsoap.org/wsdl/" xmlns:tns="urn:x" targetNamespace="urn:x">
		<portType name="P">
			<operation name="op"><input message="tns:Missing"/></operation>
		</portType>
	</definitions>`)
	require.NoError(t, err)
	err = NewEncoder(&b).Encode(d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `wants input message "Missing"`)
}

func TestGoName(t *testing.T) {
	ge := NewEncoder(nil).(*goEncoder)
	cases := map[string]string{
		"getQuote":     "GetQuote",
		"ArrayOfInt":   "ArrayOfInt",
		"GetQuote_1":   "GetQuote_1",
		"in-progress":  "InProgress",
		"":             "",
		"über":         "Über",
		"NASDAQ":       "NASDAQ",
		"already good": "AlreadyGood",
	}
	for in, want := range cases {
		assert.Equal(t, want, ge.goName(in), "%q", in)
	}
	assert.NotContains(t, ge.goName("with.dot"), ".")
}
