package httpparse

import "bytes"

// chunkedDecoder implements the chunked transfer-coding (RFC 7230 section
// 4.1), minus trailer parsing.
//
// decode is called with the Parser's entire unconsumed buffer on every
// drive, including on a resumed call after a prior moreNeeded result (the
// Parser only advances its read cursor by the returned consumed count when
// moreNeeded is false). So decode must not commit to having seen the size
// line, or any other partial progress, until it can also account for the
// chunk data and trailing CRLF the size line promised. Nothing here may be
// assumed to survive between calls; the whole parse restarts from buf[0]
// each time.
type chunkedDecoder struct{}

func (d *chunkedDecoder) decode(buf []byte, noMoreData bool) (data []byte, consumed int, terminal bool, moreNeeded bool, perr *ParseError) {
	content, _, _, lineConsumed, ok := scanLine(buf)
	if !ok {
		return nil, 0, false, true, nil
	}

	sizeTok := content
	if semi := bytes.IndexByte(content, ';'); semi >= 0 {
		sizeTok = content[:semi]
	}
	sz, ok := parseHexUint(sizeTok)
	if !ok {
		return nil, 0, false, false, newParseError(KindPoorlyFormattedSize, content)
	}
	if sz == 0 {
		// Terminator chunk. Trailers are not parsed by this core;
		// everything after this line's CRLF is residual.
		return nil, lineConsumed, true, false, nil
	}

	rest := buf[lineConsumed:]
	need := int(sz) + 2 // chunk bytes + trailing CRLF
	if len(rest) < need {
		return nil, 0, false, true, nil
	}
	if rest[sz] != '\r' || rest[sz+1] != '\n' {
		return nil, 0, false, false, newParseError(KindPoorlyFormattedChunkedSize, rest[sz:sz+2])
	}
	return rest[:sz], lineConsumed + need, false, false, nil
}
