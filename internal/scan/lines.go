package scan

import (
	"bufio"
	"io"
)

// LineScanner reads physical lines from a stream with a hard per-line byte
// bound. Lines longer than the bound are truncated at it and the remainder
// of the physical line is discarded, so one overlong line cannot corrupt
// the framing of the lines after it. Memory use is one line buffer plus the
// bufio window regardless of input size.
type LineScanner struct {
	br        *bufio.Reader
	max       int
	buf       []byte
	truncated bool
	err       error
	done      bool
}

// NewLineScanner returns a LineScanner reading from r with the given
// maximum line length in bytes. max must be > 0.
func NewLineScanner(r io.Reader, max int) *LineScanner {
	size := 64 * 1024
	if max < size {
		size = max
	}
	if size < 16 {
		size = 16
	}
	return &LineScanner{
		br:  bufio.NewReaderSize(r, size),
		max: max,
		buf: make([]byte, 0, size),
	}
}

// Scan advances to the next line. It returns false at end of input or on a
// read error; Err distinguishes the two.
func (s *LineScanner) Scan() bool {
	if s.done {
		return false
	}
	s.buf = s.buf[:0]
	s.truncated = false
	sawData := false

	for {
		chunk, err := s.br.ReadSlice('\n')
		if len(chunk) > 0 {
			sawData = true
			keep := chunk
			if keep[len(keep)-1] == '\n' {
				keep = keep[:len(keep)-1]
			}
			if room := s.max - len(s.buf); len(keep) > room {
				keep = keep[:room]
				s.truncated = true
			}
			s.buf = append(s.buf, keep...)
		}
		switch err {
		case nil:
			s.buf = chompCR(s.buf)
			return true
		case bufio.ErrBufferFull:
			continue
		case io.EOF:
			s.done = true
			if !sawData {
				return false
			}
			s.buf = chompCR(s.buf)
			return true
		default:
			s.done = true
			s.err = err
			return false
		}
	}
}

// Bytes returns the current line without its terminator. The slice is only
// valid until the next Scan call.
func (s *LineScanner) Bytes() []byte { return s.buf }

// Truncated reports whether the current line exceeded the byte bound.
func (s *LineScanner) Truncated() bool { return s.truncated }

// Err returns the first read error other than io.EOF.
func (s *LineScanner) Err() error { return s.err }

// chompCR strips trailing carriage returns so CRLF input behaves like LF.
func chompCR(b []byte) []byte {
	for len(b) > 0 && b[len(b)-1] == '\r' {
		b = b[:len(b)-1]
	}
	return b
}
