// Positionally paired reading of two record streams.
//
// Paired-end sequencing produces two files whose records correspond
// line-for-line: record i of R1 mates record i of R2. PairReader makes
// no attempt to match names — pairing is purely positional — but one
// stream ending before the other is a hard error, never a silent
// truncation.
package readfx

import (
	"errors"
	"fmt"
	"io"
)

// PairReader reads two record streams in lockstep.
type PairReader struct {
	r1, r2 *Reader
}

// NewPairReader pairs two existing Readers.
func NewPairReader(r1, r2 *Reader) *PairReader {
	return &PairReader{r1: r1, r2: r2}
}

// OpenPair opens two paths (each may be "-" at most once, and may be
// gzip or zstd compressed independently) as a paired reader.
func OpenPair(path1, path2 string, config Config) (*PairReader, error) {
	r1, err := Open(path1, config)
	if err != nil {
		return nil, err
	}
	r2, err := Open(path2, config)
	if err != nil {
		r1.Close()
		return nil, err
	}
	return &PairReader{r1: r1, r2: r2}, nil
}

// Next returns the next mate pair. Both records are borrowed from
// their respective Readers and are valid only until the next call.
// When both streams end together Next returns io.EOF; when only one
// ends, ErrPairMismatch.
func (p *PairReader) Next() (*Record, *Record, error) {
	a, err1 := p.r1.Next()
	b, err2 := p.r2.Next()

	switch {
	case err1 == nil && err2 == nil:
		return a, b, nil
	case errors.Is(err1, io.EOF) && errors.Is(err2, io.EOF):
		return nil, nil, io.EOF
	case errors.Is(err1, io.EOF) || errors.Is(err2, io.EOF):
		return nil, nil, fmt.Errorf("%w: one input has more records than the other", ErrPairMismatch)
	case err1 != nil:
		return nil, nil, err1
	default:
		return nil, nil, err2
	}
}

// Close closes both underlying readers, returning the first error.
func (p *PairReader) Close() error {
	err := p.r1.Close()
	if cerr := p.r2.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
