// The record type shared by every reader and filter in the package.
//
// A Record is one FASTA or FASTQ entry. Records handed out by
// Reader.Next alias the reader's internal buffers — their byte slices
// are overwritten by the following call — while Reader.Read and Clone
// produce independent copies safe to retain. The text and JSON forms
// here are the two output encodings consumed by downstream tools.
package readfx

import (
	"bytes"

	json "github.com/goccy/go-json"
)

// Record is a single FASTA or FASTQ entry. Qual is empty for FASTA; a
// successfully parsed FASTQ record always has len(Qual) == len(Seq).
type Record struct {
	Name    []byte // identifier, up to the first whitespace of the header
	Comment []byte // rest of the header line, empty if absent
	Seq     []byte // sequence bytes, newlines removed
	Qual    []byte // per-base quality bytes, FASTQ only
}

// reset truncates all fields in place, keeping their capacity for the
// next record.
func (r *Record) reset() {
	r.Name = r.Name[:0]
	r.Comment = r.Comment[:0]
	r.Seq = r.Seq[:0]
	r.Qual = r.Qual[:0]
}

// Clone returns an independent deep copy. This is the required escape
// hatch for records obtained from Reader.Next, whose fields alias
// buffer memory valid only until the next call.
func (r *Record) Clone() *Record {
	return &Record{
		Name:    append([]byte(nil), r.Name...),
		Comment: append([]byte(nil), r.Comment...),
		Seq:     append([]byte(nil), r.Seq...),
		Qual:    append([]byte(nil), r.Qual...),
	}
}

// IsFastq reports whether the record carries quality values.
func (r *Record) IsFastq() bool {
	return len(r.Qual) > 0
}

// String renders the record back to FASTA or FASTQ text. The marker is
// chosen by the presence of quality values. A record with an empty
// sequence renders as the empty string, which downstream filters use as
// a "no output" sentinel.
func (r *Record) String() string {
	if len(r.Seq) == 0 {
		return ""
	}
	var b bytes.Buffer
	b.Grow(len(r.Name) + len(r.Comment) + len(r.Seq) + len(r.Qual) + 8)
	if r.IsFastq() {
		b.WriteByte('@')
	} else {
		b.WriteByte('>')
	}
	b.Write(r.Name)
	if len(r.Comment) > 0 {
		b.WriteByte(' ')
		b.Write(r.Comment)
	}
	b.WriteByte('\n')
	b.Write(r.Seq)
	if r.IsFastq() {
		b.WriteString("\n+\n")
		b.Write(r.Qual)
	}
	return b.String()
}

// jsonRecord is the wire shape for MarshalJSON. Fields marshal as
// strings, not base64, which is what []byte would produce.
type jsonRecord struct {
	Name    string `json:"name"`
	Comment string `json:"comment,omitempty"`
	Seq     string `json:"seq"`
	Qual    string `json:"qual,omitempty"`
}

// MarshalJSON renders the record as a single JSON object, one per line
// when used with an encoder. Intended for piping records into tools
// that want structured rather than FASTX output.
func (r *Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonRecord{
		Name:    string(r.Name),
		Comment: string(r.Comment),
		Seq:     string(r.Seq),
		Qual:    string(r.Qual),
	})
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (r *Record) UnmarshalJSON(data []byte) error {
	var j jsonRecord
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	r.Name = []byte(j.Name)
	r.Comment = []byte(j.Comment)
	r.Seq = []byte(j.Seq)
	r.Qual = []byte(j.Qual)
	return nil
}
