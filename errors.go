// Package readfx reads FASTA and FASTQ files as a stream of records.
//
// The reader is built around a fixed-capacity buffer and a small state
// machine that delimits records byte by byte, so multi-line sequences,
// CRLF line endings, blank lines and mixed FASTA/FASTQ input are all
// handled without reading past the record currently being parsed.
// Compressed input (gzip, zstd) is decompressed transparently when a
// file is opened through Open or NewFile.
//
// Records returned by Reader.Next alias the reader's internal buffers
// and are only valid until the next call; use Reader.Read or
// Record.Clone when a record must outlive the iteration step.
//
// The interval subpackage provides an independent overlap index over
// genomic coordinates and shares nothing with the parsing path.
package readfx

import "errors"

// Sentinel errors for programmatic handling. Callers can use errors.Is
// to distinguish malformed input (ErrQualityLength, ErrPairMismatch)
// from stream-level failures (ErrRead, ErrStream). End of input is
// io.EOF, which is not an error when it falls between records.
var (
	ErrRead          = errors.New("read failure")
	ErrStream        = errors.New("byte source violated read contract")
	ErrQualityLength = errors.New("quality length differs from sequence length")
	ErrPairMismatch  = errors.New("paired inputs ended at different records")
	ErrClosed        = errors.New("reader is closed")
)
