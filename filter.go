// Record-level filters: quality trimming and homopolymer tails.
package readfx

// DefaultPhredOffset is the quality encoding offset for modern FASTQ
// (Sanger / Illumina 1.8+).
const DefaultPhredOffset = 33

// TrimQuality trims low-quality bases from the 3' end of a FASTQ
// record in place, using the BWA sliding-sum rule: the read is cut at
// the position maximising the running sum of (minQuality - q) taken
// from the tail. Records without quality values are left untouched.
// Returns the new sequence length.
func TrimQuality(r *Record, minQuality, phredOffset int) int {
	if len(r.Qual) != len(r.Seq) || minQuality <= 0 {
		return len(r.Seq)
	}
	if phredOffset <= 0 {
		phredOffset = DefaultPhredOffset
	}
	cut := len(r.Seq)
	sum, best := 0, 0
	for i := len(r.Qual) - 1; i >= 0; i-- {
		sum += minQuality - (int(r.Qual[i]) - phredOffset)
		if sum < 0 {
			break
		}
		if sum > best {
			best = sum
			cut = i
		}
	}
	r.Seq = r.Seq[:cut]
	r.Qual = r.Qual[:cut]
	return cut
}

// HomopolymerTail measures the run of a single base at the 3' end of
// seq. It returns the base and run length when the run is at least
// minRun, otherwise (0, 0). Case-insensitive; N never counts as a
// tail base.
func HomopolymerTail(seq []byte, minRun int) (base byte, run int) {
	if len(seq) == 0 || minRun <= 0 {
		return 0, 0
	}
	last := upper(seq[len(seq)-1])
	if last != 'A' && last != 'C' && last != 'G' && last != 'T' {
		return 0, 0
	}
	run = 1
	for i := len(seq) - 2; i >= 0 && upper(seq[i]) == last; i-- {
		run++
	}
	if run < minRun {
		return 0, 0
	}
	return last, run
}

// TrimHomopolymerTail removes a trailing homopolymer of at least
// minRun bases from the record, quality included when present, and
// returns the run length removed (0 when nothing was trimmed).
func TrimHomopolymerTail(r *Record, minRun int) int {
	_, run := HomopolymerTail(r.Seq, minRun)
	if run == 0 {
		return 0
	}
	cut := len(r.Seq) - run
	r.Seq = r.Seq[:cut]
	if len(r.Qual) > cut {
		r.Qual = r.Qual[:cut]
	}
	return run
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
