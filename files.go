package zipit

import (
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"
)

// Stats reports the outcome of a whole-file operation.
type Stats struct {
	InputBytes  int64  // Size of the file read
	OutputBytes int64  // Size of the file written
	Checksum    uint64 // XXH64 of the uncompressed payload
}

// Ratio returns the output size as a fraction of the input size.
func (s Stats) Ratio() float64 {
	if s.InputBytes == 0 {
		return 0
	}
	return float64(s.OutputBytes) / float64(s.InputBytes)
}

// CompressFile reads the file at src, compresses it and writes the
// serialized container to dst. The checksum in the returned Stats covers
// the uncompressed payload, so it matches the checksum reported by
// DecompressFile for the same data.
func CompressFile(src, dst string) (Stats, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return Stats{}, fmt.Errorf("read input file: %w", err)
	}
	compressed, err := Compress(data)
	if err != nil {
		return Stats{}, fmt.Errorf("compress %s: %w", src, err)
	}
	if err := os.WriteFile(dst, compressed, 0o644); err != nil {
		return Stats{}, fmt.Errorf("write output file: %w", err)
	}
	return Stats{
		InputBytes:  int64(len(data)),
		OutputBytes: int64(len(compressed)),
		Checksum:    xxhash.Sum64(data),
	}, nil
}

// DecompressFile reads the serialized container at src, decodes it and
// writes the original bytes to dst.
func DecompressFile(src, dst string, opts ...Option) (Stats, error) {
	compressed, err := os.ReadFile(src)
	if err != nil {
		return Stats{}, fmt.Errorf("read input file: %w", err)
	}
	data, err := Decompress(compressed, opts...)
	if err != nil {
		return Stats{}, fmt.Errorf("decompress %s: %w", src, err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return Stats{}, fmt.Errorf("write output file: %w", err)
	}
	return Stats{
		InputBytes:  int64(len(compressed)),
		OutputBytes: int64(len(data)),
		Checksum:    xxhash.Sum64(data),
	}, nil
}
