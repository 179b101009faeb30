package wsdl

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

const overloaded = `<portType name="Calc">
	<operation name="Add"><input message="tns:In"/></operation>
	<operation name="Add"><input message="tns:In"/></operation>
</portType>`

func TestSetLogger(t *testing.T) {
	defer SetLogger(zerolog.Nop())

	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))
	mustParse(t, wsdlDoc(overloaded))
	assert.Contains(t, buf.String(), `"component":"wsdl"`)
	assert.Contains(t, buf.String(), "overloaded operation renamed")

	buf.Reset()
	SetLogger(zerolog.New(&buf).Level(zerolog.WarnLevel))
	mustParse(t, wsdlDoc(overloaded))
	assert.Zero(t, buf.Len())
}

func TestDefaultLoggerIsSilent(t *testing.T) {
	prev := configured.Swap(nil)
	defer configured.Store(prev)
	assert.Equal(t, zerolog.Disabled, currentLogger().GetLevel())
}
