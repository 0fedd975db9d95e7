package httpparse

// bodyState tracks progress through the body-framing sub-machine,
// independent of the header/first-line phases.
type bodyState int

const (
	bodyWaiting bodyState = iota
	bodyStreaming
	bodyDone
)

// transferDecoder is the shared shape chunkedDecoder and identityDecoder
// implement: one call, one event's worth of progress. noMoreData carries
// the caller's end-of-stream signal (see Parser.FeedEOF) through to the one
// decoder that needs it.
type transferDecoder interface {
	decode(buf []byte, noMoreData bool) (data []byte, consumed int, terminal bool, moreNeeded bool, perr *ParseError)
}

// identityDecoder implements the identity transfer-coding: either a known
// Content-Length count, or (total < 0) an EOF-delimited body for a response
// carrying neither Content-Length nor Transfer-Encoding.
type identityDecoder struct {
	streamed int64
	total    int64 // -1 means EOF-delimited
}

func (d *identityDecoder) decode(buf []byte, noMoreData bool) (data []byte, consumed int, terminal bool, moreNeeded bool, perr *ParseError) {
	if d.total < 0 {
		if len(buf) == 0 {
			if noMoreData {
				return nil, 0, true, false, nil
			}
			return nil, 0, false, true, nil
		}
		d.streamed += int64(len(buf))
		return buf, len(buf), false, false, nil
	}

	remaining := d.total - d.streamed
	if remaining == 0 {
		return nil, 0, true, false, nil
	}
	if int64(len(buf)) < remaining {
		if len(buf) == 0 {
			return nil, 0, false, true, nil
		}
		d.streamed += int64(len(buf))
		return buf, len(buf), false, false, nil
	}

	n := int(remaining)
	d.streamed = d.total
	if n == 0 {
		return nil, 0, true, false, nil
	}
	return buf[:n], n, false, false, nil
}

// installBodyDecoder picks the transfer decoder for the message just past
// HeadersComplete, applying the response-status and method short-circuits
// that mean a message has no body regardless of its framing headers. It
// reports noBody=true when the body framer should emit Done immediately
// without driving any decoder.
func (p *Parser) installBodyDecoder() (noBody bool) {
	if !p.isRequest {
		sc := p.statusCode
		if (sc >= 100 && sc < 200) || sc == 204 || sc == 304 {
			return true
		}
		if p.previousMethodSet {
			if p.previousMethod == methHead {
				return true
			}
			if p.previousMethod == methConnect && sc >= 200 && sc <= 299 {
				p.decoder = &identityDecoder{total: -1}
				return false
			}
		}
	}

	if p.transferEncodingChunkedLast {
		p.decoder = &chunkedDecoder{}
		return false
	}

	if (p.contentLengthSeen > 0 && p.contentLength == 0) || (p.isRequest && p.methodNo == methHead) {
		// Transfer-Encoding is not chunked here: a zero Content-Length or a
		// HEAD request means no body, whatever Content-Length says.
		return true
	}

	if p.contentLengthSeen > 0 {
		p.decoder = &identityDecoder{total: p.contentLength}
		return false
	}

	if p.isRequest {
		// No Transfer-Encoding, no Content-Length, on the request side: no
		// body.
		return true
	}

	// Response with neither framing header: treated as EOF-delimited.
	p.decoder = &identityDecoder{total: -1}
	return false
}

// stepBody drives the installed transfer decoder one step, then pushes the
// result through the content-decoder hook before surfacing it as an event.
// Exactly one event is produced per call, matching stepFirstLine/stepHeader.
func (p *Parser) stepBody() Event {
	if p.bodyState == bodyWaiting {
		p.bodyState = bodyStreaming
		if p.installBodyDecoder() {
			p.bodyState = bodyDone
			p.phase = phaseDone
			return Event{Type: EventDone, Data: p.remaining()}
		}
	}

	if p.bodyState == bodyDone {
		p.phase = phaseDone
		return Event{Type: EventDone, Data: p.remaining()}
	}

	data, consumed, terminal, moreNeeded, perr := p.decoder.decode(p.remaining(), p.noMoreData)
	if perr != nil {
		return p.errorEventFromParseError(perr)
	}
	if moreNeeded {
		return Event{Type: EventMore}
	}

	if len(data) > 0 {
		decoded, derr := p.contentDecoder.Decode(data)
		if derr != nil {
			return p.errorEventFromParseError(newContentDecodeError(derr))
		}
		p.consume(consumed)
		if terminal {
			// Terminal(data, residual): the Done event itself follows on
			// the next drive, once the caller has consumed this chunk.
			p.bodyState = bodyDone
		}
		return Event{Type: EventBodyChunk, Data: decoded}
	}

	p.consume(consumed)
	if terminal {
		p.bodyState = bodyDone
		p.phase = phaseDone
		return Event{Type: EventDone, Data: p.remaining()}
	}
	return Event{Type: EventMore}
}
