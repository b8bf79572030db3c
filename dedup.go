// Duplicate-record detection.
//
// Dedup tracks record checksums and reports repeats. Two modes: exact
// (a map of every checksum seen, no false positives, memory grows with
// input) and bloom (fixed memory, a tunable false positive rate, so a
// small fraction of unique reads may be misreported as duplicates).
// The bloom filter uses double hashing — one 64-bit and one 32-bit
// base hash combined as h1 + i*h2 — which is as good as k independent
// hashes for this purpose.
package readfx

import (
	"hash/fnv"
	"math"

	"github.com/zeebo/xxh3"
)

// bloomK is the number of bit positions probed per entry.
const bloomK = 7

type bloom struct {
	bits  []byte
	nbits uint64
}

// newBloom sizes the filter for n entries at roughly rate false
// positives (m = -n ln p / ln2 squared).
func newBloom(n int, rate float64) *bloom {
	if n <= 0 {
		n = 1 << 20
	}
	if rate <= 0 || rate >= 1 {
		rate = 0.01
	}
	m := uint64(math.Ceil(-float64(n) * math.Log(rate) / (math.Ln2 * math.Ln2)))
	if m < 64 {
		m = 64
	}
	return &bloom{bits: make([]byte, (m+7)/8), nbits: m}
}

// add inserts a key and reports whether every probed bit was already
// set, i.e. whether the key was possibly seen before.
func (b *bloom) add(key []byte) bool {
	h1 := xxh3.Hash(key)
	h32 := fnv.New32a()
	h32.Write(key)
	h2 := uint64(h32.Sum32())

	seen := true
	for i := uint64(0); i < bloomK; i++ {
		pos := (h1 + i*h2) % b.nbits
		mask := byte(1) << (pos % 8)
		if b.bits[pos/8]&mask == 0 {
			seen = false
			b.bits[pos/8] |= mask
		}
	}
	return seen
}

// Dedup reports whether records have been seen before, by checksum.
// The zero value is not usable; construct with NewDedup. Not safe for
// concurrent use.
type Dedup struct {
	alg     int
	byName  bool
	exact   map[string]struct{}
	filter  *bloom
	dropped int
}

// NewDedup returns an exact (map-backed) duplicate detector. alg picks
// the checksum algorithm (0 = AlgXXHash3). byName includes the record
// name in the identity; otherwise only the bases count.
func NewDedup(alg int, byName bool) *Dedup {
	return &Dedup{alg: alg, byName: byName, exact: make(map[string]struct{})}
}

// NewBloomDedup returns a fixed-memory detector sized for expected
// entries at the given false positive rate. Unlike NewDedup it may
// flag a small fraction of unique records as duplicates.
func NewBloomDedup(alg int, byName bool, expected int, rate float64) *Dedup {
	return &Dedup{alg: alg, byName: byName, filter: newBloom(expected, rate)}
}

// Seen records r and reports whether an identical record was seen
// earlier in the stream.
func (d *Dedup) Seen(r *Record) bool {
	var key string
	if d.byName {
		key = Checksum(r, d.alg)
	} else {
		key = SeqChecksum(r.Seq, d.alg)
	}
	var dup bool
	if d.filter != nil {
		dup = d.filter.add([]byte(key))
	} else {
		_, dup = d.exact[key]
		if !dup {
			d.exact[key] = struct{}{}
		}
	}
	if dup {
		d.dropped++
	}
	return dup
}

// Dropped returns how many records Seen has reported as duplicates.
func (d *Dedup) Dropped() int {
	return d.dropped
}
