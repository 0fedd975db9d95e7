package httpparse

import "bytes"

var (
	chunkedToken = []byte("chunked")
	closeToken   = []byte("close")
)

// isChunkedLast reports whether the last comma-separated token of a
// Transfer-Encoding header value is "chunked": only the last coding in the
// list determines whether the message is chunked (RFC 9112 section 6.1),
// earlier codings (e.g. "gzip, chunked") are framing-irrelevant here.
func isChunkedLast(value []byte) bool {
	return bytes.Equal(lastCommaToken(value), chunkedToken)
}

// connectionHasClose reports whether a Connection header value contains
// the "close" token. The core parser does not act on this itself (that's a
// connection-reuse decision, out of scope), but exposes it for callers that
// are driving a connection loop on top of Feed.
func connectionHasClose(value []byte) bool {
	return containsCommaToken(value, closeToken)
}

// ConnectionClose reports whether the most recently parsed message's
// Connection header requested the connection be closed after this message.
func (p *Parser) ConnectionClose() bool {
	return connectionHasClose(p.connection)
}
