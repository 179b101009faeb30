package wsdl

import (
	"encoding/xml"
	"errors"
	"fmt"
)

var (
	// ErrNoRoot is returned for input that holds no root element.
	ErrNoRoot = errors.New("wsdl: document has no root element")

	// ErrNotDefinitions is wrapped by RootError.
	ErrNotDefinitions = errors.New("wsdl: root element is not wsdl:definitions")
)

// RootError reports a well-formed document whose root element is not
// {http://schemas.xmlsoap.org/wsdl/}definitions.
type RootError struct {
	Name xml.Name
}

func (e *RootError) Error() string {
	if e.Name.Space == "" {
		return fmt.Sprintf("%v: found <%s>", ErrNotDefinitions, e.Name.Local)
	}
	return fmt.Sprintf("%v: found <%s> in namespace %q", ErrNotDefinitions, e.Name.Local, e.Name.Space)
}

func (e *RootError) Unwrap() error { return ErrNotDefinitions }
