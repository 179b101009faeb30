package wsdl

import (
	"encoding/xml"
	"testing"

	"aqwari.net/xml/xmltree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scopeDoc = `<outer xmlns:s="http://www.w3.org/2001/XMLSchema" xmlns:a="urn:outer">
	<inner xmlns:a="urn:inner">
		<leaf/>
	</inner>
</outer>`

func TestResolveQName(t *testing.T) {
	root, err := xmltree.Parse([]byte(scopeDoc))
	require.NoError(t, err)
	leaves := root.Search("", "leaf")
	require.Len(t, leaves, 1)
	leaf := leaves[0]

	cases := []struct {
		name      string
		el        *xmltree.Element
		qname     string
		defaultNS string
		want      xml.Name
	}{
		{"bound prefix", leaf, "s:string", "urn:default", xml.Name{Space: XSDNamespace, Local: "string"}},
		{"unbound prefix", leaf, "unknown:Foo", "urn:default", xml.Name{Local: "Foo"}},
		{"unqualified", leaf, "Foo", "urn:default", xml.Name{Space: "urn:default", Local: "Foo"}},
		{"innermost wins", leaf, "a:Foo", "", xml.Name{Space: "urn:inner", Local: "Foo"}},
		{"outer scope", root, "a:Foo", "", xml.Name{Space: "urn:outer", Local: "Foo"}},
		{"whitespace", leaf, "  s:int \n", "", xml.Name{Space: XSDNamespace, Local: "int"}},
		{"empty", leaf, "", "urn:default", xml.Name{}},
		{"nil element", nil, "s:string", "", xml.Name{Local: "string"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ResolveQName(tc.el, tc.qname, tc.defaultNS))
		})
	}
}

func TestResolveRef(t *testing.T) {
	root, err := xmltree.Parse([]byte(`<e xmlns:s="http://www.w3.org/2001/XMLSchema" type="s:int" blank="  "/>`))
	require.NoError(t, err)

	assert.Equal(t, &xml.Name{Space: XSDNamespace, Local: "int"}, resolveRef(root, "type", ""))
	assert.Nil(t, resolveRef(root, "missing", ""))
	assert.Nil(t, resolveRef(root, "blank", ""))
}

func TestDocumentation(t *testing.T) {
	root, err := xmltree.Parse([]byte(`<definitions xmlns="http://schemas.xmlsoap.org/wsdl/">
		<documentation>
			first and foremost
		</documentation>
		<documentation/>
		<documentation>second</documentation>
	</definitions>`))
	require.NoError(t, err)
	assert.Equal(t, "first and foremost\nsecond", documentation(root))
}

func TestLocalAttr(t *testing.T) {
	el, err := xmltree.Parse([]byte(`<element xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
		xsi:type="Wrong" type="Right" xsi:nil="true"/>`))
	require.NoError(t, err)
	assert.Equal(t, "Right", localAttr(el, "type"))
	assert.Empty(t, localAttr(el, "nil"))
	assert.Empty(t, localAttr(el, "missing"))
}

func TestForeignAttributesIgnored(t *testing.T) {
	def := mustParse(t, schemaDoc(`
		<s:complexType xmlns:msdata="urn:schemas-microsoft-com:xml-msdata"
			msdata:name="Wrong" name="Row">
			<s:sequence>
				<s:element xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
					xsi:type="s:int" name="Cell" type="s:string"/>
			</s:sequence>
		</s:complexType>`))
	require.Equal(t, []string{"Row"}, def.Types.ComplexTypeNames())
	cell := def.Types.ComplexTypes["Row"].Elements[0]
	assert.Equal(t, "Cell", cell.Name)
	assert.Equal(t, xsd("string"), cell.Type)
}
