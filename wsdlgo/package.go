package wsdlgo

import (
	"strings"

	"github.com/fiorix/wsdlmodel/wsdl"
)

const (
	fallbackPackageName = "internal"
)

// BindingPackageName formats package name from wsdl binding
type BindingPackageName wsdl.Binding

func (p BindingPackageName) String() string {
	packageName := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		}
		return -1
	}, strings.ToLower(p.Name))
	if packageName == "" || packageName[0] >= '0' && packageName[0] <= '9' {
		packageName = fallbackPackageName
	}
	return packageName
}

// PackageName is just a string with interface
type PackageName string

func (p PackageName) String() string {
	return string(p)
}
