// Package stream provides incremental frame decoders for streamed completion
// bodies: a line assembler that tolerates frames split across network reads,
// and an SSE scanner layered on top of it.
package stream

import (
	"bytes"
	"io"
	"strings"
)

const readChunkSize = 4 << 10

// LineAssembler yields complete lines from an io.Reader as they arrive.
// A partial trailing line is buffered across reads and only yielded once its
// terminator arrives, so a frame split across two network reads is never
// lost or truncated. At end of body any buffered remainder is yielded as a
// final line before io.EOF.
type LineAssembler struct {
	r     io.Reader
	carry []byte
	chunk []byte
	err   error
}

// NewLineAssembler creates a LineAssembler reading from r.
func NewLineAssembler(r io.Reader) *LineAssembler {
	return &LineAssembler{r: r, chunk: make([]byte, readChunkSize)}
}

// Next returns the next complete line without its terminator. A trailing
// carriage return is stripped. It returns io.EOF once the stream and any
// buffered remainder are exhausted, or the reader's error if the stream
// failed mid-body.
func (a *LineAssembler) Next() (string, error) {
	for {
		if i := bytes.IndexByte(a.carry, '\n'); i >= 0 {
			line := string(bytes.TrimSuffix(a.carry[:i], []byte{'\r'}))
			a.carry = a.carry[i+1:]

			return line, nil
		}

		if a.err != nil {
			if len(a.carry) > 0 {
				line := string(bytes.TrimSuffix(a.carry, []byte{'\r'}))
				a.carry = nil

				return line, nil
			}

			return "", a.err
		}

		n, err := a.r.Read(a.chunk)
		if n > 0 {
			a.carry = append(a.carry, a.chunk[:n]...)
		}
		if err != nil {
			a.err = err
		}
	}
}

const (
	ssePrefix = "data: "
	sseDone   = "[DONE]"
)

// SSEScanner extracts data payloads from a text/event-stream body. Blank
// lines, comment/event lines without the "data: " prefix, and the "[DONE]"
// sentinel are all skipped rather than treated as errors.
type SSEScanner struct {
	lines *LineAssembler
}

// NewSSEScanner creates an SSEScanner reading from r.
func NewSSEScanner(r io.Reader) *SSEScanner {
	return &SSEScanner{lines: NewLineAssembler(r)}
}

// Next returns the next data payload, or io.EOF when the stream ends.
func (s *SSEScanner) Next() (string, error) {
	for {
		line, err := s.lines.Next()
		if err != nil {
			return "", err
		}

		if !strings.HasPrefix(line, ssePrefix) {
			continue
		}

		data := line[len(ssePrefix):]
		if data == sseDone {
			continue
		}

		return data, nil
	}
}
