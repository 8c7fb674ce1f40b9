package encryption

import (
	"fmt"
	"math/bits"
)

// Direction selects which way a transform runs.
type Direction uint8

const (
	// Encrypt transforms plaintext words into ciphertext words.
	Encrypt Direction = iota
	// Decrypt reverses Encrypt.
	Decrypt
)

// String returns the lowercase name of the direction.
func (d Direction) String() string {
	switch d {
	case Encrypt:
		return "encrypt"
	case Decrypt:
		return "decrypt"
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

// ParseDirection converts "encrypt" or "decrypt" (or their short forms) into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "encrypt", "enc":
		return Encrypt, nil
	case "decrypt", "dec":
		return Decrypt, nil
	default:
		return 0, fmt.Errorf("%w: unknown direction %q", ErrInvalidArgument, s)
	}
}

// Codec transforms a single word under a key word.
// Transform with Decrypt must invert Transform with Encrypt for the same key word.
type Codec interface {
	Transform(word, key uint32, dir Direction) uint32
}

// KeySchedule supplies the key word for a position within a block.
type KeySchedule interface {
	WordAt(i int) uint32
}

// XorRotate mixes a word with its key word and rotates the result by Rotation bits.
// It is a placeholder satisfying the inverse law, not a vetted cipher.
type XorRotate struct {
	Rotation int
}

// Transform implements Codec.
func (c XorRotate) Transform(word, key uint32, dir Direction) uint32 {
	if dir == Decrypt {
		return bits.RotateLeft32(word, -c.Rotation) ^ key
	}

	return bits.RotateLeft32(word^key, c.Rotation)
}

// TransformBlock applies codec to every word of block in place.
// The word in slot i is keyed with schedule.WordAt(i).
func TransformBlock(codec Codec, block []uint32, schedule KeySchedule, dir Direction) {
	for i, word := range block {
		block[i] = codec.Transform(word, schedule.WordAt(i), dir)
	}
}
