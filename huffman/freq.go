// Package huffman implements static Huffman coding over byte alphabets:
// frequency analysis, prefix-tree construction by minimum merging, and
// code assignment.
package huffman

// FrequencyTable holds an occurrence count for each of the 256 byte values.
// A symbol with count 0 is absent. The zero value is an empty table, ready
// to use.
type FrequencyTable [256]uint64

// CountBytes builds a frequency table from data. Empty input yields an
// empty table.
func CountBytes(data []byte) *FrequencyTable {
	var ft FrequencyTable
	for _, b := range data {
		ft[b]++
	}
	return &ft
}

// Count returns the occurrence count recorded for sym.
func (ft *FrequencyTable) Count(sym byte) uint64 {
	return ft[sym]
}

// Add increases the count recorded for sym by n.
func (ft *FrequencyTable) Add(sym byte, n uint64) {
	ft[sym] += n
}

// Distinct returns the number of symbols with a non-zero count.
func (ft *FrequencyTable) Distinct() int {
	distinct := 0
	for _, count := range ft {
		if count > 0 {
			distinct++
		}
	}
	return distinct
}

// Total returns the sum of all counts, which equals the length in bytes of
// the counted input.
func (ft *FrequencyTable) Total() uint64 {
	var total uint64
	for _, count := range ft {
		total += count
	}
	return total
}
