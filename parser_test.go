package httpparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullRequestWithIdentityBody(t *testing.T) {
	p := NewParser(Options{})
	msg := "POST /upload HTTP/1.1\r\n" +
		"Host: example.com\r\n" +
		"Content-Length: 5\r\n" +
		"\r\n" +
		"howdy"

	ev := p.Feed([]byte(msg))
	require.Equal(t, EventRequest, ev.Type)
	assert.Equal(t, "POST", string(ev.Method))

	ev = p.Feed(nil)
	require.Equal(t, EventHeader, ev.Type)
	assert.Equal(t, "Host", string(ev.Name))

	ev = p.Feed(nil)
	require.Equal(t, EventHeader, ev.Type)
	assert.Equal(t, "Content-Length", string(ev.Name))

	ev = p.Feed(nil)
	require.Equal(t, EventHeadersComplete, ev.Type)

	ev = p.Feed(nil)
	require.Equal(t, EventBodyChunk, ev.Type)
	assert.Equal(t, "howdy", string(ev.Data))

	ev = p.Feed(nil)
	require.Equal(t, EventDone, ev.Type)
	assert.Empty(t, ev.Data)
}

func TestHeadRequestWithContentLengthHasNoBody(t *testing.T) {
	p := NewParser(Options{})
	msg := "HEAD /p HTTP/1.1\r\n" +
		"Content-Length: 42\r\n" +
		"\r\n"

	ev := p.Feed([]byte(msg))
	require.Equal(t, EventRequest, ev.Type)
	assert.Equal(t, "HEAD", string(ev.Method))

	ev = p.Feed(nil)
	require.Equal(t, EventHeader, ev.Type)
	assert.Equal(t, "Content-Length", string(ev.Name))

	ev = p.Feed(nil)
	require.Equal(t, EventHeadersComplete, ev.Type)

	ev = p.Feed(nil)
	require.Equal(t, EventDone, ev.Type)
	assert.Empty(t, ev.Data)
}

func TestFullRequestWithChunkedBody(t *testing.T) {
	msg := "POST /upload HTTP/1.1\r\n" +
		"Transfer-Encoding: chunked\r\n" +
		"\r\n" +
		"4\r\nWiki\r\n5\r\npedia\r\n0\r\n\r\n"

	p2 := NewParser(Options{})
	ev := p2.Feed([]byte(msg))
	require.Equal(t, EventRequest, ev.Type)
	ev = p2.Feed(nil)
	require.Equal(t, EventHeader, ev.Type)
	ev = p2.Feed(nil)
	require.Equal(t, EventHeadersComplete, ev.Type)
	ev = p2.Feed(nil)
	require.Equal(t, EventBodyChunk, ev.Type)
	assert.Equal(t, "Wiki", string(ev.Data))
	ev = p2.Feed(nil)
	require.Equal(t, EventBodyChunk, ev.Type)
	assert.Equal(t, "pedia", string(ev.Data))
	ev = p2.Feed(nil)
	require.Equal(t, EventDone, ev.Type)
}

func TestPipelinedResidualPreservedAcrossDone(t *testing.T) {
	p := NewParser(Options{})
	first := "GET /a HTTP/1.1\r\nContent-Length: 0\r\n\r\n"
	second := "GET /b HTTP/1.1\r\n\r\n"

	ev := p.Feed([]byte(first + second))
	require.Equal(t, EventRequest, ev.Type)
	ev = p.Feed(nil)
	require.Equal(t, EventHeader, ev.Type)
	ev = p.Feed(nil)
	require.Equal(t, EventHeadersComplete, ev.Type)
	ev = p.Feed(nil)
	require.Equal(t, EventDone, ev.Type)
	assert.Equal(t, second, string(ev.Data))

	p.Reset()
	ev = p.Feed(nil)
	require.Equal(t, EventRequest, ev.Type)
	assert.Equal(t, "/b", string(ev.URI))
}

func TestFeedEOFDelimitedResponseBody(t *testing.T) {
	p := NewParser(Options{Mode: ModeResponse})
	ev := p.Feed([]byte("HTTP/1.1 200 OK\r\n\r\n"))
	require.Equal(t, EventResponse, ev.Type)
	ev = p.Feed(nil)
	require.Equal(t, EventHeadersComplete, ev.Type)

	ev = p.Feed([]byte("partial body"))
	require.Equal(t, EventBodyChunk, ev.Type)
	assert.Equal(t, "partial body", string(ev.Data))

	ev = p.FeedEOF()
	require.Equal(t, EventDone, ev.Type)
}

func TestInvalidContentLengthProducesErrorEvent(t *testing.T) {
	p := NewParser(Options{})
	ev := p.Feed([]byte("GET / HTTP/1.1\r\n"))
	require.Equal(t, EventRequest, ev.Type)
	ev = p.Feed([]byte("Content-Length: notanumber\r\n\r\n"))
	require.Equal(t, EventError, ev.Type)
	assert.Equal(t, KindInvalidContentLength, ev.Err.Kind)
}

func TestReleaseIsSafeAfterUse(t *testing.T) {
	p := NewParser(Options{})
	p.Feed([]byte("GET / HTTP/1.1\r\n"))
	p.Release()
}
