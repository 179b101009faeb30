package soap

import (
	"bytes"
	"unicode/utf8"
)

var dropRuneError = func(r rune) rune {
	if r == utf8.RuneError {
		return -1
	}
	return r
}

// validUTF8 returns data with every byte that is not part of a valid
// UTF-8 sequence removed. Valid input is returned as is.
func validUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}
	return bytes.Map(dropRuneError, data)
}
