// Byte sources with transparent decompression.
//
// Source opens a file (or stdin for "-") and sniffs the leading magic
// bytes to pick a decompressor: gzip (1f 8b) and zstd (28 b5 2f fd)
// are recognised, anything else is passed through raw. Sniffing works
// on the stream itself rather than the filename, so renamed or piped
// compressed data still decompresses. Decompression is invisible to
// the reader layers above: bufReader only ever sees plain bytes.
package readfx

import (
	"bufio"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// sourceReader pairs the decompressing reader with everything that must
// be closed underneath it, in order.
type sourceReader struct {
	io.Reader
	closers []io.Closer
}

func (s *sourceReader) Close() error {
	var err error
	for _, c := range s.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// zstdCloser adapts zstd.Decoder's Close (no return value) to io.Closer.
type zstdCloser struct{ d *zstd.Decoder }

func (z zstdCloser) Close() error {
	z.d.Close()
	return nil
}

// Source opens path for reading, decompressing gzip or zstd content
// transparently. path "-" reads from standard input. The returned
// ReadCloser must be closed by the caller; closing it also closes the
// underlying file.
func Source(path string) (io.ReadCloser, error) {
	var file io.ReadCloser
	if path == "-" {
		file = io.NopCloser(os.Stdin)
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		file = f
	}
	src, err := NewSource(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	return src, nil
}

// NewSource wraps an already-open stream with magic-byte sniffing and
// decompression. The stream need not be seekable.
func NewSource(r io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(4)
	if err != nil && err != io.EOF {
		return nil, err
	}

	switch {
	case len(magic) >= 2 && magic[0] == 0x1f && magic[1] == 0x8b:
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		return &sourceReader{Reader: gz, closers: []io.Closer{gz, r}}, nil

	case len(magic) >= 4 && magic[0] == 0x28 && magic[1] == 0xb5 && magic[2] == 0x2f && magic[3] == 0xfd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, err
		}
		return &sourceReader{Reader: zr.IOReadCloser(), closers: []io.Closer{zstdCloser{zr}, r}}, nil

	default:
		return &sourceReader{Reader: br, closers: []io.Closer{r}}, nil
	}
}
