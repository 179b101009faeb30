package wsdl

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

var configured atomic.Pointer[zerolog.Logger]

// SetLogger sets the logger of the wsdl package. Nothing is logged
// until it is called.
func SetLogger(l zerolog.Logger) {
	configured.Store(&l)
}

func currentLogger() zerolog.Logger {
	if l := configured.Load(); l != nil {
		return *l
	}
	return zerolog.Nop()
}
