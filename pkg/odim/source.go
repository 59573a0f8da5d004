package odim

import (
	"errors"
	"strings"
)

// ErrBufferTooSmall is returned by ExtractInto when the caller-supplied
// buffer cannot hold the extracted value.
var ErrBufferTooSmall = errors.New("odim: buffer too small")

// ParseSourceIdent extracts the value following key (e.g. "NOD:") from an
// ODIM source string, a comma-separated list of "KEY:value" tokens. It
// reports ok=false if key is not present. Matching is an unanchored
// substring search, mirroring the strstr-based lookup of the format this
// package reads; a key string occurring inside another token's value is
// matched the same way the original does.
func ParseSourceIdent(source, key string) (value string, ok bool) {
	idx := strings.Index(source, key)
	if idx < 0 {
		return "", false
	}
	rest := source[idx+len(key):]
	if end := strings.IndexByte(rest, ','); end >= 0 {
		rest = rest[:end]
	}
	return rest, true
}

// NodOrComment tries "NOD:" first and falls back to "CMT:", matching the
// convention used when a source lacks a registered NOD identifier.
func NodOrComment(source string) (value string, ok bool) {
	if v, ok := ParseSourceIdent(source, "NOD:"); ok {
		return v, true
	}
	return ParseSourceIdent(source, "CMT:")
}

// ExtractInto writes the value associated with key into buf, mirroring the
// fixed-buffer C API this package's source format originates from. It
// returns the number of bytes written, or ErrBufferTooSmall if buf is not
// large enough to hold the value plus a terminator byte.
func ExtractInto(buf []byte, source, key string) (int, error) {
	value, ok := ParseSourceIdent(source, key)
	if !ok {
		return 0, nil
	}
	if len(value)+1 > len(buf) {
		return 0, ErrBufferTooSmall
	}
	n := copy(buf, value)
	return n, nil
}
