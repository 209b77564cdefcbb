package zipit

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zstd"
)

type benchInput struct {
	name string
	data []byte
}

// benchmarkInputs mixes generated payloads with the files under testdata
// so the numbers cover synthetic extremes and realistic content.
func benchmarkInputs(tb testing.TB) []benchInput {
	tb.Helper()

	inputs := []benchInput{
		{"skewed_64k", skewedPayload(64 << 10)},
		{"random_64k", randomPayload(64 << 10)},
		{"text_64k", textPayload(64 << 10)},
	}
	for _, file := range []string{"logs_sample.log", "prose.txt"} {
		data, err := os.ReadFile(filepath.Join("testdata", file))
		if err != nil {
			tb.Fatalf("Failed to load %s: %v", file, err)
		}
		inputs = append(inputs, benchInput{file, data})
	}
	return inputs
}

func BenchmarkCompress(b *testing.B) {
	for _, input := range benchmarkInputs(b) {
		b.Run(input.name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(input.data)))
			b.ResetTimer()

			var compressed []byte
			for i := 0; i < b.N; i++ {
				var err error
				compressed, err = Compress(input.data)
				if err != nil {
					b.Fatalf("Compress failed: %v", err)
				}
			}

			if compressed != nil {
				ratio := float64(len(input.data)) / float64(len(compressed))
				b.ReportMetric(ratio, "ratio")
				b.ReportMetric(float64(len(compressed)), "compressed_bytes")
			}
		})
	}
}

func BenchmarkDecompress(b *testing.B) {
	for _, input := range benchmarkInputs(b) {
		compressed, err := Compress(input.data)
		if err != nil {
			b.Fatalf("Compress failed: %v", err)
		}

		b.Run(input.name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(input.data)))
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if _, err := Decompress(compressed); err != nil {
					b.Fatalf("Decompress failed: %v", err)
				}
			}
		})
	}
}

// BenchmarkCodecComparison puts the static Huffman codec next to flate and
// zstd on the same inputs.
func BenchmarkCodecComparison(b *testing.B) {
	zstdEncoder, err := zstd.NewWriter(nil)
	if err != nil {
		b.Fatalf("zstd encoder: %v", err)
	}
	defer zstdEncoder.Close()

	for _, input := range benchmarkInputs(b) {
		b.Run(input.name, func(b *testing.B) {
			b.Run("huffman", func(b *testing.B) {
				b.ReportAllocs()
				b.SetBytes(int64(len(input.data)))
				b.ResetTimer()

				var compressed []byte
				for i := 0; i < b.N; i++ {
					var err error
					compressed, err = Compress(input.data)
					if err != nil {
						b.Fatalf("Compress failed: %v", err)
					}
				}
				b.ReportMetric(float64(len(input.data))/float64(len(compressed)), "ratio")
			})

			b.Run("flate", func(b *testing.B) {
				b.ReportAllocs()
				b.SetBytes(int64(len(input.data)))
				b.ResetTimer()

				var buf bytes.Buffer
				for i := 0; i < b.N; i++ {
					buf.Reset()
					fw, err := flate.NewWriter(&buf, flate.DefaultCompression)
					if err != nil {
						b.Fatalf("flate writer: %v", err)
					}
					if _, err := fw.Write(input.data); err != nil {
						b.Fatalf("flate write: %v", err)
					}
					if err := fw.Close(); err != nil {
						b.Fatalf("flate close: %v", err)
					}
				}
				b.ReportMetric(float64(len(input.data))/float64(buf.Len()), "ratio")
			})

			b.Run("zstd", func(b *testing.B) {
				b.ReportAllocs()
				b.SetBytes(int64(len(input.data)))
				b.ResetTimer()

				var compressed []byte
				for i := 0; i < b.N; i++ {
					compressed = zstdEncoder.EncodeAll(input.data, compressed[:0])
				}
				b.ReportMetric(float64(len(input.data))/float64(len(compressed)), "ratio")
			})
		})
	}
}

// Test compression ratio summary
func TestCompressionRatioSummary(t *testing.T) {
	zstdEncoder, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("zstd encoder: %v", err)
	}
	defer zstdEncoder.Close()

	fmt.Println("\n=== Huffman Compression Ratio Summary ===")
	fmt.Println("Dataset        | Original | Huffman  | Ratio | Flate    | Zstd")
	fmt.Println("---------------|----------|----------|-------|----------|---------")

	for _, input := range benchmarkInputs(t) {
		compressed := mustCompress(input.data)
		decoded, err := Decompress(compressed)
		if err != nil {
			t.Fatalf("Decompress of %s failed: %v", input.name, err)
		}
		if !bytes.Equal(decoded, input.data) {
			t.Fatalf("round trip mismatch for %s", input.name)
		}

		var flateBuf bytes.Buffer
		fw, err := flate.NewWriter(&flateBuf, flate.DefaultCompression)
		if err != nil {
			t.Fatalf("flate writer: %v", err)
		}
		if _, err := fw.Write(input.data); err != nil {
			t.Fatalf("flate write: %v", err)
		}
		if err := fw.Close(); err != nil {
			t.Fatalf("flate close: %v", err)
		}

		zstdOut := zstdEncoder.EncodeAll(input.data, nil)

		ratio := float64(len(input.data)) / float64(len(compressed))
		fmt.Printf("%-14s | %8d | %8d | %5.2fx | %8d | %8d\n",
			input.name, len(input.data), len(compressed), ratio, flateBuf.Len(), len(zstdOut))
	}
	fmt.Println()
}
