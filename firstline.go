package httpparse

import "bytes"

// Version is a parsed HTTP version pair, e.g. {1, 1} for "HTTP/1.1".
type Version struct {
	Major int
	Minor int
}

// stepFirstLine scans the unconsumed buffer for the request-line or
// status-line, tolerating and discarding leading empty lines, and
// dispatches on p.mode to pick request-line vs. status-line parsing (or
// try both, in ModeAuto).
func (p *Parser) stepFirstLine() Event {
	for {
		buf := p.remaining()

		lfIdx := bytes.IndexByte(buf, '\n')
		if lfIdx < 0 {
			if len(buf) > int(p.maxLineLength) {
				return p.errorEvent(KindLineTooLong, buf)
			}
			return Event{Type: EventMore}
		}
		if lfIdx > int(p.maxLineLength) {
			return p.errorEvent(KindLineTooLong, buf[:lfIdx])
		}

		if buf[0] == '\n' {
			// Bare LF before any line: empty lines must use CRLF.
			return p.errorEvent(KindBadRequest, buf[:1])
		}

		if lfIdx == 1 && buf[0] == '\r' {
			// A CRLF at offset 0: an empty line preceding the start line.
			if p.emptyLines >= p.maxEmptyLines {
				return p.errorEvent(KindBadRequest, buf[:2])
			}
			p.consume(2)
			p.emptyLines++
			continue
		}

		// A full, non-empty line is present: buf[:lfIdx+1] including its
		// terminator. content is the line with CR (if any) and LF
		// stripped.
		consumed := lfIdx + 1
		content := buf[:lfIdx]
		if len(content) > 0 && content[len(content)-1] == '\r' {
			content = content[:len(content)-1]
		}

		return p.dispatchFirstLine(content, consumed)
	}
}

func (p *Parser) dispatchFirstLine(line []byte, consumed int) Event {
	switch p.mode {
	case ModeRequest:
		return p.finishRequestLine(line, consumed)
	case ModeResponse:
		return p.finishStatusLine(line, consumed)
	default: // ModeAuto
		if ev, ok := p.tryRequestLine(line, consumed); ok {
			return ev
		}
		return p.finishStatusLine(line, consumed)
	}
}

// tryRequestLine attempts a request-line parse for ModeAuto. ok is false
// only when the parse failed with bad_request, signaling the caller to
// fall back to a status-line attempt on the same line.
func (p *Parser) tryRequestLine(line []byte, consumed int) (Event, bool) {
	method, uri, version, kerr, ctx := parseRequestLine(line)
	if ctxIsError(ctx) && kerr == KindBadRequest {
		return Event{}, false
	}
	return p.commitRequestLine(method, uri, version, kerr, ctx, consumed), true
}

func (p *Parser) finishRequestLine(line []byte, consumed int) Event {
	method, uri, version, kerr, ctx := parseRequestLine(line)
	return p.commitRequestLine(method, uri, version, kerr, ctx, consumed)
}

func (p *Parser) commitRequestLine(method, uri []byte, version Version, kerr Kind, ctx []byte, consumed int) Event {
	if ctxIsError(ctx) {
		return p.errorEvent(kerr, ctx)
	}
	p.consume(consumed)
	p.version = version
	p.method = append(p.method[:0], method...)
	p.methodNo = getMethodNo(method)
	p.isRequest = true
	p.phase = phaseHeader
	return Event{Type: EventRequest, Method: method, URI: uri, Version: version}
}

func (p *Parser) finishStatusLine(line []byte, consumed int) Event {
	version, status, reason, kerr, ctx := parseStatusLine(line)
	if ctxIsError(ctx) {
		return p.errorEvent(kerr, ctx)
	}
	p.consume(consumed)
	p.version = version
	p.isRequest = false
	p.statusCode = status
	p.phase = phaseHeader
	return Event{Type: EventResponse, StatusCode: status, Reason: reason, Version: version}
}

// ctxIsError distinguishes a populated error context from "no error" using
// a non-nil (possibly zero-length-but-non-nil) sentinel slice convention:
// parseRequestLine/parseStatusLine return a non-nil ctx exactly on failure.
func ctxIsError(ctx []byte) bool {
	return ctx != nil
}

// errCtx is a tiny non-nil marker used as an error context when there is no
// useful offending byte range to report (e.g. a zero-length field).
var errCtx = []byte{}

// parseRequestLine parses "METHOD SP URI SP HTTP/M.N", with line already
// stripped of its CRLF/LF terminator. ctx is non-nil only on failure.
func parseRequestLine(line []byte) (method, uri []byte, version Version, kerr Kind, ctx []byte) {
	sp1 := bytes.IndexByte(line, ' ')
	if sp1 < 0 {
		return nil, nil, Version{}, KindBadRequest, orMarker(line)
	}
	if bytes.IndexByte(line[:sp1], '\r') >= 0 {
		return nil, nil, Version{}, KindBadRequest, line[:sp1]
	}
	method = line[:sp1]
	if len(method) == 0 {
		return nil, nil, Version{}, KindBadRequest, errCtx
	}

	rest := line[sp1+1:]
	sp2 := bytes.IndexByte(rest, ' ')
	if sp2 < 0 {
		return nil, nil, Version{}, KindBadRequest, orMarker(rest)
	}
	if bytes.IndexByte(rest[:sp2], '\r') >= 0 {
		return nil, nil, Version{}, KindBadRequest, rest[:sp2]
	}
	uri = rest[:sp2]
	if len(uri) == 0 {
		return nil, nil, Version{}, KindBadRequest, errCtx
	}

	verBytes := rest[sp2+1:]
	version, ok := parseVersionToken(verBytes)
	if !ok {
		return nil, nil, Version{}, KindBadRequest, orMarker(verBytes)
	}
	return method, uri, version, 0, nil
}

// parseStatusLine parses "HTTP/M.N SP CODE [SP REASON]", line already
// stripped of its terminator.
func parseStatusLine(line []byte) (version Version, status int, reason []byte, kerr Kind, ctx []byte) {
	sp1 := bytes.IndexByte(line, ' ')
	if sp1 < 0 {
		return Version{}, 0, nil, KindBadRequest, orMarker(line)
	}
	var ok bool
	version, ok = parseVersionToken(line[:sp1])
	if !ok {
		return Version{}, 0, nil, KindBadRequest, line[:sp1]
	}

	rest := line[sp1+1:]
	sp2 := bytes.IndexByte(rest, ' ')
	var codeBytes []byte
	if sp2 < 0 {
		codeBytes = rest
		reason = nil
	} else {
		codeBytes = rest[:sp2]
		reason = rest[sp2+1:]
	}
	code, ok := parseDecimalUint(codeBytes)
	if !ok || len(codeBytes) != 3 {
		return Version{}, 0, nil, KindBadRequest, orMarker(codeBytes)
	}
	return version, int(code), reason, 0, nil
}

// parseVersionToken parses a literal "HTTP/" prefix followed by exactly one
// ASCII digit, '.', and one ASCII digit.
func parseVersionToken(b []byte) (Version, bool) {
	const prefix = "HTTP/"
	if len(b) != len(prefix)+3 {
		return Version{}, false
	}
	if string(b[:len(prefix)]) != prefix {
		return Version{}, false
	}
	maj, min := b[len(prefix)], b[len(prefix)+2]
	dot := b[len(prefix)+1]
	if maj < '0' || maj > '9' || min < '0' || min > '9' || dot != '.' {
		return Version{}, false
	}
	return Version{Major: int(maj - '0'), Minor: int(min - '0')}, true
}

// orMarker returns b if non-nil, else the non-nil zero-length errCtx, so
// the caller can always distinguish "failed" from "succeeded" by nil-ness.
func orMarker(b []byte) []byte {
	if b == nil {
		return errCtx
	}
	return b
}
