package httpparse

import (
	"bytes"

	"github.com/intuitivelabs/bytescase"
)

var (
	hdrContentLength    = []byte("content-length")
	hdrTransferEncoding = []byte("transfer-encoding")
	hdrConnection       = []byte("connection")
	hdrContentType      = []byte("content-type")
	hdrLocation         = []byte("location")
	colonSpace          = []byte(": ")
)

// scanLine finds the first LF-terminated line in buf, tolerating either a
// bare LF or a CRLF terminator. content excludes the terminator (and any
// trailing CR); consumed is the total byte count including the terminator.
// ok is false when buf has no LF yet.
func scanLine(buf []byte) (content []byte, termStart, termLen, consumed int, ok bool) {
	nl := bytes.IndexByte(buf, '\n')
	if nl < 0 {
		return nil, 0, 0, 0, false
	}
	termStart = nl
	termLen = 1
	if nl > 0 && buf[nl-1] == '\r' {
		termStart = nl - 1
		termLen = 2
	}
	return buf[:termStart], termStart, termLen, nl + 1, true
}

// stepHeader accumulates one header field per call (or HeadersComplete, or
// More, or Error). Obs-folded continuation lines are spliced onto the
// current line in place, by deleting the CRLF/LF between them, before the
// line is considered final: a rewrite-and-retry loop.
func (p *Parser) stepHeader() Event {
	for {
		buf := p.remaining()
		content, termStart, termLen, consumed, ok := scanLine(buf)
		if !ok {
			return Event{Type: EventMore}
		}

		if len(content) == 0 {
			p.consume(consumed)
			p.phase = phaseBody
			return Event{Type: EventHeadersComplete}
		}

		if consumed >= len(buf) {
			// Not enough bytes yet to know whether the next line folds
			// onto this one.
			return Event{Type: EventMore}
		}
		if buf[consumed] == ' ' || buf[consumed] == '\t' {
			p.deleteRange(termStart, termLen)
			continue
		}

		name, value := splitHeaderLine(content)
		if err := p.applyFramingHeader(name, value); err != nil {
			p.consume(consumed)
			return p.errorEventFromParseError(err)
		}
		p.consume(consumed)
		return Event{Type: EventHeader, Name: name, Value: value}
	}
}

// splitHeaderLine splits a header line on the first ": " (colon, single
// space). If no such separator exists the whole line is the name and the
// value is empty, a lenient fallback.
func splitHeaderLine(line []byte) (name, value []byte) {
	if idx := bytes.Index(line, colonSpace); idx >= 0 {
		return line[:idx], line[idx+2:]
	}
	return line, nil
}

// applyFramingHeader updates body-framing state from a recognized header
// name, matched case-insensitively. Name/value are left untouched for the
// emitted event; only the parser's internal framing fields are affected.
func (p *Parser) applyFramingHeader(name, value []byte) *ParseError {
	switch {
	case bytescase.CmpEq(name, hdrContentLength):
		v := trimOWS(value)
		n, ok := parseDecimalUint(v)
		if !ok {
			return newParseError(KindInvalidContentLength, value)
		}
		if p.contentLengthSeen > 0 && p.contentLength != n {
			// RFC 7230 section 3.3.3: distinct Content-Length values are
			// an error; identical repeats are tolerated.
			return newParseError(KindInvalidContentLength, value)
		}
		p.contentLength = n
		p.contentLengthSeen++

	case bytescase.CmpEq(name, hdrTransferEncoding):
		p.transferEncoding = appendLower(p.transferEncoding[:0], value)
		p.transferEncodingChunkedLast = isChunkedLast(p.transferEncoding)

	case bytescase.CmpEq(name, hdrConnection):
		p.connection = appendLower(p.connection[:0], value)

	case bytescase.CmpEq(name, hdrContentType):
		p.contentType = appendLower(p.contentType[:0], value)

	case bytescase.CmpEq(name, hdrLocation):
		p.location = append(p.location[:0], value...)
	}
	return nil
}

func appendLower(dst, src []byte) []byte {
	for _, c := range src {
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		dst = append(dst, c)
	}
	return dst
}
