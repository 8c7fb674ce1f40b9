package encryption

import "math/bits"

// DefaultChecksumSeed is the initial accumulator of RotatingXor.
const DefaultChecksumSeed uint32 = 0x9E3779B9

// Checksum folds an ordered sequence of words into one word.
type Checksum interface {
	Fold(words []uint32) uint32
	// Begin starts an incremental fold equivalent to Fold over the words later added.
	Begin() Folder
}

// Folder accumulates a checksum one word at a time.
type Folder interface {
	Add(word uint32)
	Sum() uint32
}

// RotatingXor xors each word into an accumulator and rotates the accumulator
// by (step mod 31)+1 bits. The result depends on both values and positions,
// and any change to a single word changes the result.
type RotatingXor struct {
	Seed uint32
}

// Fold implements Checksum.
func (c RotatingXor) Fold(words []uint32) uint32 {
	folder := c.begin()

	for _, word := range words {
		folder.Add(word)
	}

	return folder.Sum()
}

// Begin implements Checksum.
func (c RotatingXor) Begin() Folder {
	return c.begin()
}

func (c RotatingXor) begin() *rotatingFolder {
	return &rotatingFolder{acc: c.Seed}
}

type rotatingFolder struct {
	acc  uint32
	step int
}

func (f *rotatingFolder) Add(word uint32) {
	const period = 31

	f.acc ^= word
	f.acc = bits.RotateLeft32(f.acc, f.step%period+1)
	f.step++
}

func (f *rotatingFolder) Sum() uint32 {
	return f.acc
}
