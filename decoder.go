package httpparse

// ContentDecoder is the extension seam for a content-coding layer applied
// after transfer decoding (identity or chunked) has produced body bytes.
// The core only ships IdentityContentDecoder; callers that need to strip
// gzip/deflate Content-Encoding inject their own implementation via
// Options.ContentDecoder. A content decoder is stateful across a single
// message the same way a transfer decoder is: Decode may be called once
// per BodyChunk the transfer layer produces.
type ContentDecoder interface {
	// Decode transforms a chunk of transfer-decoded body bytes. It may
	// return less data than it was given (buffering internally, e.g. for
	// a streaming inflate window) and must return any error as-is; the
	// parser wraps it into an Error event with KindContentDecode.
	Decode(chunk []byte) ([]byte, error)
}

// identityContentDecoder implements ContentDecoder by returning its input
// unchanged. It never errors.
type identityContentDecoder struct{}

func (identityContentDecoder) Decode(chunk []byte) ([]byte, error) {
	return chunk, nil
}

// IdentityContentDecoder is the core's only built-in ContentDecoder: a
// pass-through. It is the default when Options.ContentDecoder is nil.
var IdentityContentDecoder ContentDecoder = identityContentDecoder{}
