package httpparse

import (
	"github.com/intuitivelabs/bytescase"
)

// httpMethod is the subset of request methods the body framer needs to
// distinguish when picking a transfer decoder (see installBodyDecoder in
// body.go). Every other method behaves identically from the parser's point
// of view, so they all collapse to methOther. Events always carry the raw
// method bytes the wire sent, never this numeric form.
type httpMethod uint8

const (
	methUndef httpMethod = iota
	methHead
	methConnect
	methOther
)

var (
	methHeadName    = []byte("HEAD")
	methConnectName = []byte("CONNECT")
)

// getMethodNo classifies raw method bytes case-insensitively, returning
// methOther for anything not needed by the body framer and methUndef only
// for an empty slice.
func getMethodNo(buf []byte) httpMethod {
	if len(buf) == 0 {
		return methUndef
	}
	switch {
	case bytescase.CmpEq(buf, methHeadName):
		return methHead
	case bytescase.CmpEq(buf, methConnectName):
		return methConnect
	default:
		return methOther
	}
}
