// Checksum algorithms for record identity.
//
// A checksum is a 16 hex character digest of a record's name and
// sequence, used by the duplicate filter and by callers comparing
// records across files. Three algorithms are supported, selectable
// per call.
package readfx

import (
	"fmt"
	"hash/fnv"

	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/blake2b"
)

// Checksum algorithm constants.
const (
	AlgXXHash3 = 1 // Default, fastest
	AlgFNV1a   = 2 // No external dependencies
	AlgBlake2b = 3 // Stable across ecosystems
)

// Checksum digests a record's name and sequence into a 16 hex character
// string. Comment and quality are deliberately excluded: two reads with
// the same name and bases are duplicates whatever their scores. alg 0
// means AlgXXHash3.
func Checksum(r *Record, alg int) string {
	if alg == 0 {
		alg = AlgXXHash3
	}
	switch alg {
	case AlgXXHash3:
		h := xxh3.New()
		h.Write(r.Name)
		h.Write([]byte{0})
		h.Write(r.Seq)
		return fmt.Sprintf("%016x", h.Sum64())
	case AlgFNV1a:
		h := fnv.New64a()
		h.Write(r.Name)
		h.Write([]byte{0})
		h.Write(r.Seq)
		return fmt.Sprintf("%016x", h.Sum64())
	case AlgBlake2b:
		h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
		h.Write(r.Name)
		h.Write([]byte{0})
		h.Write(r.Seq)
		return fmt.Sprintf("%016x", h.Sum(nil))
	default:
		return ""
	}
}

// SeqChecksum digests only the sequence, ignoring the name. Useful for
// finding reads that are byte-identical bases under different headers.
func SeqChecksum(seq []byte, alg int) string {
	if alg == 0 {
		alg = AlgXXHash3
	}
	switch alg {
	case AlgXXHash3:
		return fmt.Sprintf("%016x", xxh3.Hash(seq))
	case AlgFNV1a:
		h := fnv.New64a()
		h.Write(seq)
		return fmt.Sprintf("%016x", h.Sum64())
	case AlgBlake2b:
		h, _ := blake2b.New(8, nil)
		h.Write(seq)
		return fmt.Sprintf("%016x", h.Sum(nil))
	default:
		return ""
	}
}
