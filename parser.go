// Package httpparse implements a streaming, incremental HTTP/1.1 message
// parser. It never blocks and never buffers a whole message: callers feed
// bytes as they arrive and drive the parser through a small event surface.
package httpparse

import "github.com/valyala/bytebufferpool"

// Mode selects how Parser disambiguates a request-line from a status-line.
type Mode int

const (
	// ModeAuto tries a request-line first and falls back to a status-line
	// on the same bytes.
	ModeAuto Mode = iota
	ModeRequest
	ModeResponse
)

// phase is the coarse-grained sub-machine currently driving Feed.
type phase int

const (
	phaseFirstLine phase = iota
	phaseHeader
	phaseBody
	phaseDone
)

// EventType discriminates the Event union.
type EventType int

const (
	EventNone EventType = iota
	EventRequest
	EventResponse
	EventHeader
	EventHeadersComplete
	EventBodyChunk
	EventMore
	EventDone
	EventError
)

// Event is the single return value of Feed/FeedEOF. Only the fields
// meaningful for Type are populated; byte-slice fields are views into the
// Parser's internal buffer and are only valid until the next Feed call,
// except on an Error event, where Err.Context is an owned copy.
type Event struct {
	Type EventType

	Method  []byte
	URI     []byte
	Version Version

	StatusCode int
	Reason     []byte

	Name  []byte
	Value []byte

	Data []byte

	Err *ParseError
}

// Options configures a Parser. The zero value is a usable ModeAuto parser
// with default bounds and an identity content decoder.
type Options struct {
	Mode Mode

	// MaxLineLength bounds the request-line/status-line length. Zero means
	// a default of 4096 bytes.
	MaxLineLength int

	// MaxEmptyLines bounds how many CRLF-only lines are tolerated before
	// the start-line. Zero means a default of 10.
	MaxEmptyLines int

	// ContentDecoder post-processes transfer-decoded body bytes. Nil means
	// IdentityContentDecoder.
	ContentDecoder ContentDecoder

	// PreviousMethod optionally names the method of the request this
	// response answers (e.g. "HEAD", "CONNECT"), enabling the reply-to-HEAD
	// (no body) and 2xx-reply-to-CONNECT (EOF-delimited) short-circuits in
	// installBodyDecoder. Left empty, those two are skipped; the 1xx/204/304
	// no-body rule applies either way.
	PreviousMethod string
}

const (
	defaultMaxLineLength = 4096
	defaultMaxEmptyLines = 10
)

// Parser is a streaming HTTP/1.1 message parser. It is not safe for
// concurrent use; one Parser parses one message at a time on one logical
// stream.
type Parser struct {
	mode          Mode
	maxLineLength int
	maxEmptyLines int
	emptyLines    int

	phase     phase
	bodyState bodyState

	buf *bytebufferpool.ByteBuffer
	pos int

	version    Version
	method     []byte
	methodNo   httpMethod
	isRequest  bool
	statusCode int

	contentLength               int64
	contentLengthSeen           int
	transferEncoding            []byte
	transferEncodingChunkedLast bool
	connection                  []byte
	contentType                 []byte
	location                    []byte

	previousMethod    httpMethod
	previousMethodSet bool
	noMoreData        bool

	decoder        transferDecoder
	contentDecoder ContentDecoder
}

// NewParser allocates a Parser ready to parse one message, applying opts'
// defaults for any zero-valued field.
func NewParser(opts Options) *Parser {
	maxLine := opts.MaxLineLength
	if maxLine <= 0 {
		maxLine = defaultMaxLineLength
	}
	maxEmpty := opts.MaxEmptyLines
	if maxEmpty <= 0 {
		maxEmpty = defaultMaxEmptyLines
	}
	cd := opts.ContentDecoder
	if cd == nil {
		cd = IdentityContentDecoder
	}

	p := &Parser{
		mode:           opts.Mode,
		maxLineLength:  maxLine,
		maxEmptyLines:  maxEmpty,
		buf:            bytebufferpool.Get(),
		contentLength:  -1,
		contentDecoder: cd,
	}
	if opts.PreviousMethod != "" {
		p.previousMethod = getMethodNo([]byte(opts.PreviousMethod))
		p.previousMethodSet = true
	}
	return p
}

// Release returns the Parser's backing buffer to the shared pool. Call it
// when the Parser itself is being discarded, not between pipelined
// messages on the same connection (use Reset for that).
func (p *Parser) Release() {
	if p.buf != nil {
		bytebufferpool.Put(p.buf)
		p.buf = nil
	}
}

// Reset prepares p to parse the next message on the same connection,
// preserving any unconsumed bytes (the residual a Done event reported) as
// the start of the next message's buffer.
func (p *Parser) Reset() {
	p.compact()
	p.phase = phaseFirstLine
	p.bodyState = bodyWaiting
	p.emptyLines = 0
	p.version = Version{}
	p.method = p.method[:0]
	p.methodNo = methUndef
	p.isRequest = false
	p.statusCode = 0
	p.contentLength = -1
	p.contentLengthSeen = 0
	p.transferEncoding = p.transferEncoding[:0]
	p.transferEncodingChunkedLast = false
	p.connection = p.connection[:0]
	p.contentType = p.contentType[:0]
	p.location = p.location[:0]
	p.noMoreData = false
	p.decoder = nil
}

// Feed appends data to the parser's buffer and advances the state machine
// by exactly one externally visible event. Buffer compaction (discarding
// already-consumed bytes) happens here, before data is appended, so that
// byte-slice fields on the Event returned by the *previous* Feed call stay
// valid until this call.
func (p *Parser) Feed(data []byte) Event {
	p.compact()
	if len(data) > 0 {
		p.buf.B = append(p.buf.B, data...)
	}
	return p.step()
}

// FeedEOF signals that no further bytes will arrive on this stream,
// resolving an EOF-delimited response body: a subsequent step sees
// noMoreData and finalizes the body with whatever bytes are already
// buffered.
func (p *Parser) FeedEOF() Event {
	p.noMoreData = true
	return p.step()
}

func (p *Parser) step() Event {
	switch p.phase {
	case phaseFirstLine:
		return p.stepFirstLine()
	case phaseHeader:
		return p.stepHeader()
	case phaseBody:
		return p.stepBody()
	default:
		return Event{Type: EventDone, Data: p.remaining()}
	}
}

func (p *Parser) compact() {
	if p.pos == 0 {
		return
	}
	n := copy(p.buf.B, p.buf.B[p.pos:])
	p.buf.B = p.buf.B[:n]
	p.pos = 0
}

// remaining is the unconsumed suffix of the buffer: everything a
// currently-active sub-machine still has to look at.
func (p *Parser) remaining() []byte {
	return p.buf.B[p.pos:]
}

func (p *Parser) consume(n int) {
	p.pos += n
}

// deleteRange removes length bytes starting at relStart (relative to
// remaining()) from the buffer, shifting later bytes down in place. Used to
// splice an obs-fold continuation onto its preceding line by deleting the
// line terminator between them.
func (p *Parser) deleteRange(relStart, length int) {
	abs := p.pos + relStart
	copy(p.buf.B[abs:], p.buf.B[abs+length:])
	p.buf.B = p.buf.B[:len(p.buf.B)-length]
}

// errorEvent builds an Error event from a Kind and a context byte range
// still living in the parser's buffer, copying it out since Error events
// are not subject to the "valid until next Feed" rule other events carry.
func (p *Parser) errorEvent(kind Kind, ctx []byte) Event {
	return Event{Type: EventError, Err: newParseError(kind, append([]byte(nil), ctx...))}
}

func (p *Parser) errorEventFromParseError(err *ParseError) Event {
	if err.Context != nil {
		err.Context = append([]byte(nil), err.Context...)
	}
	return Event{Type: EventError, Err: err}
}
