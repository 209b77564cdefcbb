package zipit

// Deterministic payload generators shared by the tests and benchmarks in
// this package.

// simplePRNG is a simple Linear Congruential Generator for cross-platform
// deterministic payload generation.
// Uses multiplier and increment from Numerical Recipes.
type simplePRNG struct {
	state uint64
}

func newSimplePRNG(seed uint64) *simplePRNG {
	return &simplePRNG{state: seed}
}

// next generates the next random number using LCG
func (p *simplePRNG) next() uint64 {
	p.state = p.state*6364136223846793005 + 1442695040888963407
	return p.state
}

// uint64n returns a random number in [0, n)
func (p *simplePRNG) uint64n(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	return p.next() % n
}

// skewedPayload returns n bytes drawn from a four-symbol alphabet with a
// heavily lopsided distribution, the kind of input Huffman coding rewards
// most.
func skewedPayload(n int) []byte {
	prng := newSimplePRNG(42)
	data := make([]byte, n)
	for i := range data {
		switch v := prng.uint64n(16); {
		case v < 9:
			data[i] = 'e'
		case v < 13:
			data[i] = ' '
		case v < 15:
			data[i] = 't'
		default:
			data[i] = 'q'
		}
	}
	return data
}

// randomPayload returns n bytes spread roughly uniformly over all 256
// symbol values. Codes average eight bits on this input, so the packed
// stream never beats the original.
func randomPayload(n int) []byte {
	prng := newSimplePRNG(1234)
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(prng.next() >> 56)
	}
	return data
}

// textPayload returns n bytes of English-like prose stitched from a fixed
// set of phrases.
func textPayload(n int) []byte {
	phrases := []string{
		"the quick brown fox jumps over the lazy dog. ",
		"pack my box with five dozen liquor jugs. ",
		"a stream of bytes is all the encoder ever sees. ",
		"short codes for common symbols, long codes for rare ones. ",
	}
	prng := newSimplePRNG(7)
	data := make([]byte, 0, n)
	for len(data) < n {
		data = append(data, phrases[prng.uint64n(uint64(len(phrases)))]...)
	}
	return data[:n]
}
