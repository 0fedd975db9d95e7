package httpparse

import "github.com/intuitivelabs/bytescase"

// trimOWS trims optional whitespace (SP, HTAB) from both ends of b.
func trimOWS(b []byte) []byte {
	for len(b) > 0 && (b[0] == ' ' || b[0] == '\t') {
		b = b[1:]
	}
	for len(b) > 0 && (b[len(b)-1] == ' ' || b[len(b)-1] == '\t') {
		b = b[:len(b)-1]
	}
	return b
}

// forEachCommaToken splits a comma-separated header value (e.g. a
// Transfer-Encoding or Connection list) into OWS-trimmed tokens and calls fn
// on each one, in order. An empty token between two commas is skipped.
func forEachCommaToken(value []byte, fn func(tok []byte)) {
	start := 0
	for i := 0; i <= len(value); i++ {
		if i == len(value) || value[i] == ',' {
			tok := trimOWS(value[start:i])
			if len(tok) > 0 {
				fn(tok)
			}
			start = i + 1
		}
	}
}

// lastCommaToken returns the last comma-separated, OWS-trimmed token in
// value, or nil if value has no non-empty tokens. Used to implement the
// "chunked must be the last coding" rule (RFC 9112 section 6.1).
func lastCommaToken(value []byte) []byte {
	var last []byte
	forEachCommaToken(value, func(tok []byte) { last = tok })
	return last
}

// containsCommaToken reports whether any comma-separated token in value
// case-insensitively equals needle.
func containsCommaToken(value []byte, needle []byte) bool {
	found := false
	forEachCommaToken(value, func(tok []byte) {
		if bytescase.CmpEq(tok, needle) {
			found = true
		}
	})
	return found
}

// parseDecimalUint parses b as a nonnegative base-10 integer with no sign,
// no leading/trailing junk, and no whitespace. Returns ok=false on any
// malformed input, including an empty slice or a value that overflows
// int64.
func parseDecimalUint(b []byte) (v int64, ok bool) {
	if len(b) == 0 {
		return 0, false
	}
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		d := int64(c - '0')
		if v > (1<<63-1-d)/10 {
			return 0, false // overflow
		}
		v = v*10 + d
	}
	return v, true
}

// parseHexUint parses b as an unsigned base-16 integer (as used by chunk
// size lines). Returns ok=false on empty input, a non-hex digit, or
// overflow.
func parseHexUint(b []byte) (v uint64, ok bool) {
	if len(b) == 0 {
		return 0, false
	}
	for _, c := range b {
		var d uint64
		switch {
		case c >= '0' && c <= '9':
			d = uint64(c - '0')
		case c >= 'a' && c <= 'f':
			d = uint64(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = uint64(c-'A') + 10
		default:
			return 0, false
		}
		if v > (1<<64-1-d)/16 {
			return 0, false // overflow
		}
		v = v*16 + d
	}
	return v, true
}
