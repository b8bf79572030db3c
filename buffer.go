// Low-level buffered reading primitives for the record parser.
//
// bufReader owns a fixed-capacity byte buffer over an io.Reader and
// exposes exactly three operations: single-byte reads, delimiter scans
// and exact-count copies. All refilling happens here, so the parser in
// parser.go never touches the underlying source directly. A delimiter
// is never assumed to sit inside a single buffer load — lines and
// fields may straddle refills arbitrarily, so each scan is a loop of
// "scan current window, emit prefix, refill, continue".
package readfx

import (
	"fmt"
	"io"
)

// DefaultBufferSize is the read buffer capacity used when Config leaves
// BufferSize zero.
const DefaultBufferSize = 64 * 1024

// Scan modes for readUntil.
const (
	scanByte  = iota // stop at an explicit delimiter byte
	scanField        // stop at any ASCII whitespace (space, tab, CR, LF, VT, FF)
	scanLine         // stop at LF, stripping an immediately preceding CR
)

// maxEmptyReads bounds consecutive zero-byte, nil-error reads from the
// source before the reader gives up with ErrStream.
const maxEmptyReads = 100

type bufReader struct {
	src   io.Reader
	buf   []byte
	start int // first unread byte in buf
	end   int // one past the last valid byte in buf
	eof   bool
	err   error // sticky source failure
}

func newBufReader(src io.Reader, size int) *bufReader {
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &bufReader{src: src, buf: make([]byte, size)}
}

// fill refills the buffer when the window is empty. On return either
// at least one unread byte is available and the error is nil, or no
// byte will ever be available and the error is io.EOF (clean end) or
// the sticky source error. Refilling only happens when start == end;
// valid data is never shifted or discarded.
func (b *bufReader) fill() error {
	if b.start < b.end {
		return nil
	}
	if b.err != nil {
		return b.err
	}
	if b.eof {
		return io.EOF
	}
	b.start, b.end = 0, 0
	for i := 0; i < maxEmptyReads; i++ {
		n, err := b.src.Read(b.buf)
		if n < 0 || n > len(b.buf) {
			b.err = fmt.Errorf("%w: read returned count %d", ErrStream, n)
			return b.err
		}
		b.end = n
		if err == io.EOF {
			b.eof = true
			if n == 0 {
				return io.EOF
			}
			return nil
		}
		if err != nil {
			b.err = fmt.Errorf("%w: %w", ErrRead, err)
			if n > 0 {
				// Hand out the bytes we did get; the error
				// resurfaces on the next refill.
				return nil
			}
			return b.err
		}
		if n > 0 {
			return nil
		}
	}
	b.err = fmt.Errorf("%w: no progress after %d reads", ErrStream, maxEmptyReads)
	return b.err
}

// readByte returns the next byte, refilling as needed. io.EOF marks a
// clean end of stream; source failures are sticky across calls.
func (b *bufReader) readByte() (byte, error) {
	if err := b.fill(); err != nil {
		return 0, err
	}
	c := b.buf[b.start]
	b.start++
	return c, nil
}

// isFieldSep reports whether c terminates a field scan. The set matches
// C isspace so that CRLF header lines do not leak a CR into the name.
func isFieldSep(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

// readUntil appends bytes to dst until a delimiter is reached, refilling
// the buffer as many times as necessary, and returns the grown slice and
// the delimiter byte that was consumed. The delimiter itself is never
// appended. In scanLine mode a CR immediately before the LF is stripped
// from the output.
//
// At end of stream sep is 0; the error is io.EOF only if not a single
// byte (data or delimiter) was consumed, so a final line with no
// trailing newline is still returned cleanly.
func (b *bufReader) readUntil(mode int, delim byte, dst []byte) (out []byte, sep byte, err error) {
	gotAny := false
	for {
		if err := b.fill(); err != nil {
			if err == io.EOF && gotAny {
				return dst, 0, nil
			}
			return dst, 0, err
		}
		window := b.buf[b.start:b.end]
		i := -1
		switch mode {
		case scanLine:
			for j, c := range window {
				if c == '\n' {
					i = j
					break
				}
			}
		case scanField:
			for j, c := range window {
				if isFieldSep(c) {
					i = j
					break
				}
			}
		default:
			for j, c := range window {
				if c == delim {
					i = j
					break
				}
			}
		}
		if i < 0 {
			dst = append(dst, window...)
			if len(window) > 0 {
				gotAny = true
			}
			b.start = b.end
			continue
		}
		dst = append(dst, window[:i]...)
		sep = window[i]
		b.start += i + 1
		if mode == scanLine && len(dst) > 0 && dst[len(dst)-1] == '\r' {
			dst = dst[:len(dst)-1]
		}
		return dst, sep, nil
	}
}

// readExact appends exactly n bytes to dst across as many refills as
// needed, returning the grown slice and the count actually copied. The
// count falls short of n only at end of stream or on a source failure.
func (b *bufReader) readExact(n int, dst []byte) (out []byte, copied int, err error) {
	for copied < n {
		if err := b.fill(); err != nil {
			if err == io.EOF {
				return dst, copied, nil
			}
			return dst, copied, err
		}
		window := b.buf[b.start:b.end]
		if len(window) > n-copied {
			window = window[:n-copied]
		}
		dst = append(dst, window...)
		b.start += len(window)
		copied += len(window)
	}
	return dst, copied, nil
}
