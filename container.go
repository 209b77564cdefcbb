package zipit

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"zipit/huffman"
)

const (
	symbolCountSize = 2 // big-endian uint16 number of table records
	recordSize      = 5 // symbol byte followed by a big-endian uint32 count
	maxPadBits      = 7
)

// Wire format (all integers big-endian):
//
//	symbolCnt = uint16
//	repeat symbolCnt times:
//	  symbol = uint8
//	  count  = uint32
//	padBits  = uint8            zero bits appended to the last data byte (0-7)
//	data     = remaining bytes  packed code bits, most significant bit first
//
// Records are written in ascending symbol order but accepted in any order.
// A container for empty input has symbolCnt 0, padBits 0 and no data bytes.

// Container is the serialized form of one compressed stream: the frequency
// table the decoder rebuilds the coding tree from, the number of padding
// bits in the final data byte, and the packed code bits.
type Container struct {
	Freqs   huffman.FrequencyTable
	PadBits uint8
	Data    []byte
}

func writeBytes(w io.Writer, b []byte) (int64, error) {
	n, err := w.Write(b)
	if err != nil {
		return int64(n), err
	}
	if n != len(b) {
		return int64(n), io.ErrShortWrite
	}
	return int64(n), nil
}

// classifyReadError maps short-read errors onto ErrTruncatedStream so that
// a cut-off container is distinguishable from other I/O failures.
func classifyReadError(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %v", ErrTruncatedStream, err)
	}
	return err
}

func validateContainerStructure(c *Container) error {
	if c.PadBits > maxPadBits {
		return fmt.Errorf("%w: padding bit count out of range: %d", ErrMalformedContainer, c.PadBits)
	}

	distinct := 0
	for sym := 0; sym < len(c.Freqs); sym++ {
		count := c.Freqs[sym]
		if count == 0 {
			continue
		}
		if count > math.MaxUint32 {
			return fmt.Errorf("%w: count for symbol %#02x exceeds the record limit: %d", ErrTooLarge, sym, count)
		}
		distinct++
	}

	if distinct == 0 {
		if c.PadBits != 0 || len(c.Data) != 0 {
			return fmt.Errorf("%w: empty symbol table with %d padding bits and %d data bytes", ErrMalformedContainer, c.PadBits, len(c.Data))
		}
		return nil
	}
	if len(c.Data) == 0 {
		return fmt.Errorf("%w: symbol table present but no data bytes", ErrMalformedContainer)
	}
	return nil
}

// WriteTo serializes the container to w.
func (c *Container) WriteTo(w io.Writer) (int64, error) {
	if err := validateContainerStructure(c); err != nil {
		return 0, fmt.Errorf("invalid container: %w", err)
	}

	var total int64
	if err := binary.Write(w, binary.BigEndian, uint16(c.Freqs.Distinct())); err != nil {
		return total, err
	}
	total += symbolCountSize

	for sym := 0; sym < len(c.Freqs); sym++ {
		count := c.Freqs[sym]
		if count == 0 {
			continue
		}
		var record [recordSize]byte
		record[0] = byte(sym)
		binary.BigEndian.PutUint32(record[1:], uint32(count))
		n, err := writeBytes(w, record[:])
		total += n
		if err != nil {
			return total, err
		}
	}

	if err := binary.Write(w, binary.BigEndian, c.PadBits); err != nil {
		return total, err
	}
	total++

	n, err := writeBytes(w, c.Data)
	total += n
	if err != nil {
		return total, err
	}
	return total, nil
}

// ReadFrom deserializes a container from r, replacing the receiver's
// contents. It consumes r to the end: every byte after the padding count
// belongs to the packed data.
func (c *Container) ReadFrom(r io.Reader) (int64, error) {
	var total int64

	var symbolCount uint16
	countOffset := total
	if err := binary.Read(r, binary.BigEndian, &symbolCount); err != nil {
		return total, fmt.Errorf("read symbol count at offset %d: %w", countOffset, classifyReadError(err))
	}
	total += symbolCountSize

	var tmp Container
	for i := 0; i < int(symbolCount); i++ {
		recordOffset := total
		var record [recordSize]byte
		n, err := io.ReadFull(r, record[:])
		total += int64(n)
		if err != nil {
			return total, fmt.Errorf("read symbol record %d at offset %d: %w", i, recordOffset, classifyReadError(err))
		}
		sym := record[0]
		count := binary.BigEndian.Uint32(record[1:])
		if count == 0 {
			return total, fmt.Errorf("%w: zero count for symbol %#02x in record %d", ErrMalformedContainer, sym, i)
		}
		if tmp.Freqs.Count(sym) != 0 {
			return total, fmt.Errorf("%w: duplicate record for symbol %#02x in record %d", ErrMalformedContainer, sym, i)
		}
		tmp.Freqs.Add(sym, uint64(count))
	}

	padOffset := total
	if err := binary.Read(r, binary.BigEndian, &tmp.PadBits); err != nil {
		return total, fmt.Errorf("read padding count at offset %d: %w", padOffset, classifyReadError(err))
	}
	total++

	dataOffset := total
	data, err := io.ReadAll(r)
	total += int64(len(data))
	if err != nil {
		return total, fmt.Errorf("read packed data at offset %d: %w", dataOffset, err)
	}
	if len(data) > 0 {
		tmp.Data = data
	}

	if err := validateContainerStructure(&tmp); err != nil {
		return total, fmt.Errorf("invalid container structure: %w", err)
	}

	*c = tmp
	return total, nil
}
