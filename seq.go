// Sequence transforms shared by the filtering front-ends.
//
// Everything here operates on plain byte slices so it composes with
// both borrowed and cloned records. IUPAC ambiguity codes are handled
// throughout: complementing maps each code to its complement, and
// primer matching treats a degenerate base as the set of bases it
// stands for.
package readfx

// comp maps every IUPAC nucleotide code to its complement, preserving
// case. Bytes outside the code set map to themselves.
var comp = func() [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = byte(i)
	}
	pairs := []byte("ATCGRYSWKMBVDHNatcgryswkmbvdhn")
	rev := []byte("TAGCYRSWMKVBHDNtagcyrswmkvbhdn")
	for i, c := range pairs {
		t[c] = rev[i]
	}
	return t
}()

// iupac maps each nucleotide code to a 4-bit set over {A,C,G,T}. Zero
// means the byte is not a valid code.
var iupac = func() [256]byte {
	var t [256]byte
	set := map[byte]byte{
		'A': 1, 'C': 2, 'G': 4, 'T': 8, 'U': 8,
		'R': 1 | 4, 'Y': 2 | 8, 'S': 2 | 4, 'W': 1 | 8,
		'K': 4 | 8, 'M': 1 | 2,
		'B': 2 | 4 | 8, 'D': 1 | 4 | 8, 'H': 1 | 2 | 8, 'V': 1 | 2 | 4,
		'N': 15,
	}
	for c, m := range set {
		t[c] = m
		t[c+'a'-'A'] = m
	}
	return t
}()

// ReverseComplement returns the reverse complement of seq as a new
// slice. The input is not modified.
func ReverseComplement(seq []byte) []byte {
	out := make([]byte, len(seq))
	for i, c := range seq {
		out[len(seq)-1-i] = comp[c]
	}
	return out
}

// ReverseComplementInPlace reverse-complements seq without allocating.
func ReverseComplementInPlace(seq []byte) {
	for i, j := 0, len(seq)-1; i < j; i, j = i+1, j-1 {
		seq[i], seq[j] = comp[seq[j]], comp[seq[i]]
	}
	if len(seq)%2 == 1 {
		mid := len(seq) / 2
		seq[mid] = comp[seq[mid]]
	}
}

// GC returns the GC fraction of seq. G, C and S count as GC; A, T, U
// and W count as AT; every other byte (N, gaps, other ambiguity codes)
// is excluded from the denominator. Returns 0 for an empty or all-N
// sequence.
func GC(seq []byte) float64 {
	var gc, at int
	for _, c := range seq {
		switch c {
		case 'G', 'C', 'S', 'g', 'c', 's':
			gc++
		case 'A', 'T', 'U', 'W', 'a', 't', 'u', 'w':
			at++
		}
	}
	if gc+at == 0 {
		return 0
	}
	return float64(gc) / float64(gc+at)
}

// MatchIUPAC reports the first position in seq where primer matches
// with at most maxMismatch mismatching bases, or -1 if there is none.
// Degenerate codes in either operand match when their base sets
// intersect; a byte that is not a nucleotide code never matches.
func MatchIUPAC(seq, primer []byte, maxMismatch int) int {
	if len(primer) == 0 || len(primer) > len(seq) {
		return -1
	}
	for pos := 0; pos+len(primer) <= len(seq); pos++ {
		mismatches := 0
		for i, p := range primer {
			if iupac[seq[pos+i]]&iupac[p] == 0 {
				mismatches++
				if mismatches > maxMismatch {
					break
				}
			}
		}
		if mismatches <= maxMismatch {
			return pos
		}
	}
	return -1
}
