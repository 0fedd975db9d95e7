package main

import (
	"errors"
	"io"
	"net"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"httpparse"
)

// handleConn drives one Parser over one accepted connection, logging each
// event and feeding bytes as they arrive, grounded on
// Reinis-FTM-go-http-server's Server.handle accept-then-read loop,
// generalized from "parse one request, write one response" to "print the
// event stream for as many pipelined messages as the connection sends".
func handleConn(conn net.Conn, log *zap.Logger, opts httpparse.Options) {
	defer conn.Close()

	id := uuid.New().String()
	log = log.With(zap.String("conn", id), zap.String("remote", conn.RemoteAddr().String()))
	log.Info("connection accepted")

	p := httpparse.NewParser(opts)
	defer p.Release()

	buf := make([]byte, 4096)
	var pending []byte

	for {
		ev := driveOneEvent(p, &pending, conn, buf, log)
		if ev.Type == httpparse.EventNone {
			log.Info("connection closed")
			return
		}
		logEvent(log, ev)
		eventsTotal.WithLabelValues(eventTypeName(ev.Type)).Inc()

		if ev.Type == httpparse.EventDone {
			p.Reset()
		}
		if ev.Type == httpparse.EventError {
			return
		}
	}
}

// driveOneEvent feeds the parser until it produces an event other than
// More, reading more bytes from conn whenever More is returned. A zero
// Event (Type == EventNone) signals the connection ended with nothing left
// to parse.
func driveOneEvent(p *httpparse.Parser, pending *[]byte, conn net.Conn, buf []byte, log *zap.Logger) httpparse.Event {
	var parseTime time.Duration
	defer func() { parseDuration.Observe(parseTime.Seconds()) }()

	for {
		start := time.Now()
		var ev httpparse.Event
		if *pending != nil {
			ev = p.Feed(*pending)
			*pending = nil
		} else {
			ev = p.Feed(nil)
		}
		parseTime += time.Since(start)
		if ev.Type != httpparse.EventMore {
			return ev
		}

		n, err := conn.Read(buf)
		if n > 0 {
			*pending = append([]byte(nil), buf[:n]...)
			continue
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				start = time.Now()
				ev = p.FeedEOF()
				parseTime += time.Since(start)
				if ev.Type == httpparse.EventMore {
					return httpparse.Event{}
				}
				return ev
			}
			log.Warn("read error", zap.Error(err))
			return httpparse.Event{}
		}
	}
}

func logEvent(log *zap.Logger, ev httpparse.Event) {
	switch ev.Type {
	case httpparse.EventRequest:
		log.Info("request", zap.String("method", string(ev.Method)), zap.String("uri", string(ev.URI)))
	case httpparse.EventResponse:
		log.Info("response", zap.Int("status", ev.StatusCode), zap.ByteString("reason", ev.Reason))
	case httpparse.EventHeader:
		log.Info("header", zap.ByteString("name", ev.Name), zap.ByteString("value", ev.Value))
	case httpparse.EventHeadersComplete:
		log.Info("headers complete")
	case httpparse.EventBodyChunk:
		log.Info("body chunk", zap.Int("bytes", len(ev.Data)))
	case httpparse.EventDone:
		log.Info("message done", zap.Int("residual", len(ev.Data)))
	case httpparse.EventError:
		log.Error("parse error", zap.Error(ev.Err))
	}
}

func eventTypeName(t httpparse.EventType) string {
	switch t {
	case httpparse.EventRequest:
		return "request"
	case httpparse.EventResponse:
		return "response"
	case httpparse.EventHeader:
		return "header"
	case httpparse.EventHeadersComplete:
		return "headers_complete"
	case httpparse.EventBodyChunk:
		return "body_chunk"
	case httpparse.EventMore:
		return "more"
	case httpparse.EventDone:
		return "done"
	case httpparse.EventError:
		return "error"
	default:
		return "none"
	}
}
