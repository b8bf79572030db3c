// The record parser: a small state machine over bufReader primitives.
//
// Next advances through one record per call. The trick that keeps the
// machine simple is the continuation marker: scanning a sequence
// necessarily consumes the first byte of the next record's header, and
// rather than pushing it back into the stream that byte is cached on
// the Reader and replayed at the start of the following call. Each
// call therefore consumes exactly its own record's bytes plus one
// lookahead byte, and no re-buffering or rescanning ever happens.
package readfx

import (
	"errors"
	"fmt"
	"io"
	"iter"
)

// Config holds reader configuration options.
type Config struct {
	BufferSize int // read buffer capacity in bytes (default 64KB)
}

// Reader parses FASTA and FASTQ records from a byte stream. A Reader
// is not safe for concurrent use; run one Reader per goroutine.
type Reader struct {
	br     *bufReader
	closer io.Closer
	rec    Record // reused backing storage for borrowed records
	plus   []byte // scratch for the discarded '+' separator line
	last   byte   // continuation marker: 0, '>' or '@'
	closed bool
}

// New returns a Reader over src. Pass Config{} for defaults.
func New(src io.Reader, config Config) *Reader {
	return &Reader{br: newBufReader(src, config.BufferSize)}
}

// Open opens path ("-" for stdin), transparently decompressing gzip or
// zstd input, and returns a Reader over it. The caller must Close it.
func Open(path string, config Config) (*Reader, error) {
	src, err := Source(path)
	if err != nil {
		return nil, err
	}
	r := New(src, config)
	r.closer = src
	return r, nil
}

// Close releases the underlying source, if the Reader owns one.
// Further calls to Next return ErrClosed.
func (r *Reader) Close() error {
	r.closed = true
	if r.closer == nil {
		return nil
	}
	c := r.closer
	r.closer = nil
	return c.Close()
}

// Next parses and returns the next record. The returned record and all
// of its byte fields alias the Reader's internal buffers and remain
// valid only until the next Next or Read call; use Clone (or Read) to
// keep a record across iterations. At end of input Next returns io.EOF.
//
// Bytes before the first '>' or '@' are skipped without limit and
// without diagnostic, tolerating stray whitespace or corrupt leading
// bytes. A malformed record (FASTQ quality shorter or longer than its
// sequence) stops iteration with ErrQualityLength rather than being
// skipped.
func (r *Reader) Next() (*Record, error) {
	if r.closed {
		return nil, ErrClosed
	}
	rec := &r.rec
	rec.reset()

	// Seek a header byte unless the previous call already consumed one.
	if r.last == 0 {
		for {
			c, err := r.br.readByte()
			if err != nil {
				return nil, err
			}
			if c == '>' || c == '@' {
				r.last = c
				break
			}
		}
	}
	r.last = 0

	// Header line: name up to the first whitespace, then the comment if
	// the name did not run to end of line.
	var sep byte
	var err error
	rec.Name, sep, err = r.br.readUntil(scanField, 0, rec.Name)
	if err != nil {
		return nil, err
	}
	if sep != '\n' {
		rec.Comment, _, err = r.br.readUntil(scanLine, 0, rec.Comment)
		if err != nil && err != io.EOF {
			return nil, err
		}
	}

	// Sequence lines until the next header byte, a FASTQ separator, or
	// end of stream. Blank lines inside the sequence are tolerated.
	var stop byte
	for {
		c, err := r.br.readByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if c == '\n' {
			continue
		}
		if c == '>' || c == '@' || c == '+' {
			stop = c
			break
		}
		rec.Seq = append(rec.Seq, c)
		rec.Seq, _, err = r.br.readUntil(scanLine, 0, rec.Seq)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	if stop == '>' || stop == '@' {
		// FASTA record ended at the next header; cache the byte.
		r.last = stop
	}
	if stop != '+' {
		return rec, nil
	}

	// FASTQ separator line: the '+' is consumed, the rest of its line
	// is discarded. End of stream here means the quality is missing.
	r.plus, sep, err = r.br.readUntil(scanLine, 0, r.plus[:0])
	if err != nil || sep != '\n' {
		if err != nil && err != io.EOF {
			return nil, err
		}
		return nil, fmt.Errorf("%w: record %q has no quality", ErrQualityLength, rec.Name)
	}

	// Quality lines until the accumulated length reaches the sequence
	// length or the stream ends.
	for len(rec.Qual) < len(rec.Seq) {
		rec.Qual, _, err = r.br.readUntil(scanLine, 0, rec.Qual)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	if len(rec.Qual) != len(rec.Seq) {
		return nil, fmt.Errorf("%w: record %q has %d quality values for %d bases",
			ErrQualityLength, rec.Name, len(rec.Qual), len(rec.Seq))
	}
	// Record fully consumed, including the quality's trailing newline;
	// the next call starts from a clean position.
	r.last = 0
	return rec, nil
}

// Read parses the next record and returns an independent copy that is
// safe to retain across calls. It is Next followed by Clone.
func (r *Reader) Read() (*Record, error) {
	rec, err := r.Next()
	if err != nil {
		return nil, err
	}
	return rec.Clone(), nil
}

// All yields borrowed records until end of input or the first error.
// Each yielded record is only valid for the duration of that iteration
// step. io.EOF terminates the sequence silently; any other error is
// yielded once with a nil record, then iteration stops.
func (r *Reader) All() iter.Seq2[*Record, error] {
	return func(yield func(*Record, error) bool) {
		for {
			rec, err := r.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}
