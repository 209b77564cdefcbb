// Package zipit compresses byte streams with static Huffman coding and
// serializes the result in a self-describing container: the stream's
// frequency table, a padding count and the packed code bits. The decoder
// rebuilds the coding tree from the table alone, so no tree is transmitted.
package zipit

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/icza/bitio"

	"zipit/huffman"
)

// defaultMaxDecodedBytes bounds the decoded size a container may claim
// before decoding is refused.
const defaultMaxDecodedBytes = 1 << 30 // 1 GiB

var (
	// ErrMalformedContainer indicates a container whose structure is
	// internally inconsistent.
	ErrMalformedContainer = errors.New("malformed container")
	// ErrTruncatedStream indicates packed data that ends before all symbols
	// promised by the frequency table have been decoded.
	ErrTruncatedStream = errors.New("truncated stream")
	// ErrTooLarge indicates data beyond what the container format or the
	// configured decoded-size limit allows.
	ErrTooLarge = errors.New("data too large")
)

// Config holds configuration for decoding.
type Config struct {
	MaxDecodedBytes uint64 // Upper bound on the claimed decoded size (0 = default, 1 GiB)
}

// Option is a functional option for configuring the codec.
type Option func(*Config)

// WithMaxDecodedSize sets an explicit upper bound on the decoded size a
// container may claim before decoding is refused.
func WithMaxDecodedSize(n uint64) Option {
	return func(c *Config) {
		c.MaxDecodedBytes = n
	}
}

func resolveMaxDecodedBytes(cfg Config) uint64 {
	if cfg.MaxDecodedBytes == 0 {
		return defaultMaxDecodedBytes
	}
	return cfg.MaxDecodedBytes
}

// Encode compresses data into a Container. Empty input yields the empty
// container, which decodes back to empty output.
func Encode(data []byte) (*Container, error) {
	ft := huffman.CountBytes(data)
	if ft.Distinct() == 0 {
		return &Container{}, nil
	}
	for sym := 0; sym < len(ft); sym++ {
		if ft[sym] > math.MaxUint32 {
			return nil, fmt.Errorf("%w: count for symbol %#02x exceeds the record limit: %d", ErrTooLarge, sym, ft[sym])
		}
	}

	root, err := huffman.BuildTree(ft)
	if err != nil {
		return nil, fmt.Errorf("build coding tree: %w", err)
	}
	table, err := huffman.NewCodeTable(root)
	if err != nil {
		return nil, fmt.Errorf("assign codes: %w", err)
	}

	// The packed bit length follows from the histogram alone, so the
	// padding count is known before any bit is written.
	var totalBits uint64
	for sym := 0; sym < len(ft); sym++ {
		if ft[sym] == 0 {
			continue
		}
		code, ok := table.Code(byte(sym))
		if !ok {
			return nil, fmt.Errorf("no code assigned for symbol %#02x", sym)
		}
		totalBits += ft[sym] * uint64(code.Len)
	}
	padBits := uint8((8 - totalBits%8) % 8)

	var buf bytes.Buffer
	buf.Grow(int((totalBits + 7) / 8))
	bw := bitio.NewWriter(&buf)
	for _, b := range data {
		code, _ := table.Code(b)
		if err := bw.WriteBits(code.Bits, code.Len); err != nil {
			return nil, fmt.Errorf("pack symbol %#02x: %w", b, err)
		}
	}
	if err := bw.Close(); err != nil {
		return nil, fmt.Errorf("flush packed data: %w", err)
	}
	if packed := uint64(buf.Len()); packed*8 != totalBits+uint64(padBits) {
		return nil, fmt.Errorf("packed size mismatch: %d bytes for %d code bits", packed, totalBits)
	}

	return &Container{Freqs: *ft, PadBits: padBits, Data: buf.Bytes()}, nil
}

// Decode expands the container back into the original byte stream. The
// rebuilt coding tree is identical to the encoder's because both derive it
// from the same frequency table.
func (c *Container) Decode(opts ...Option) ([]byte, error) {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := validateContainerStructure(c); err != nil {
		return nil, fmt.Errorf("invalid container: %w", err)
	}
	if c.Freqs.Distinct() == 0 {
		return []byte{}, nil
	}

	decodedLen := c.Freqs.Total()
	if limit := resolveMaxDecodedBytes(cfg); decodedLen > limit {
		return nil, fmt.Errorf("%w: container claims %d decoded bytes, limit is %d", ErrTooLarge, decodedLen, limit)
	}

	root, err := huffman.BuildTree(&c.Freqs)
	if err != nil {
		return nil, fmt.Errorf("rebuild coding tree: %w", err)
	}

	dataBits := uint64(len(c.Data))*8 - uint64(c.PadBits)
	out := make([]byte, 0, decodedLen)
	br := bitio.NewReader(bytes.NewReader(c.Data))
	node := root
	for consumed := uint64(0); consumed < dataBits; consumed++ {
		bit, err := br.ReadBool()
		if err != nil {
			return nil, fmt.Errorf("read packed bit %d: %w", consumed, classifyReadError(err))
		}
		if bit {
			node = node.Right
		} else {
			node = node.Left
		}
		if node.Leaf() {
			// out never grows past the promised length.
			if uint64(len(out)) == decodedLen {
				return nil, fmt.Errorf("%w: packed data encodes more symbols than the frequency table promises", ErrMalformedContainer)
			}
			out = append(out, node.Symbol)
			node = root
		}
	}
	if node != root {
		return nil, fmt.Errorf("%w: packed data ends mid-code", ErrTruncatedStream)
	}
	if uint64(len(out)) < decodedLen {
		return nil, fmt.Errorf("%w: decoded %d bytes, frequency table promises %d", ErrTruncatedStream, len(out), decodedLen)
	}
	return out, nil
}

// Compress encodes data and serializes the resulting container.
func Compress(data []byte) ([]byte, error) {
	container, err := Encode(data)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := container.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decompress parses a serialized container and decodes it back into the
// original byte stream.
func Decompress(compressed []byte, opts ...Option) ([]byte, error) {
	var container Container
	if _, err := container.ReadFrom(bytes.NewReader(compressed)); err != nil {
		return nil, err
	}
	return container.Decode(opts...)
}
