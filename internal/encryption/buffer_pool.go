package encryption

import (
	"encoding/binary"
	"fmt"
	"sync"
)

// chunk is the working set of one block: its words and their on-disk byte image.
type chunk struct {
	words []uint32
	raw   []byte
}

// chunkPool recycles chunk buffers across operations of one engine.
// A chunk is owned by a single operation between get and put.
type chunkPool struct {
	pool sync.Pool
}

// get returns a chunk holding at least words words.
func (p *chunkPool) get(words int) (*chunk, error) {
	if c, ok := p.pool.Get().(*chunk); ok && len(c.words) >= words {
		return c, nil
	}

	return allocChunk(words)
}

// put wipes the chunk and returns it to the pool.
func (p *chunkPool) put(c *chunk) {
	clear(c.words)
	clear(c.raw)

	p.pool.Put(c)
}

// allocChunk converts allocation panics into ErrResourceExhausted.
func allocChunk(words int) (c *chunk, err error) {
	defer func() {
		if r := recover(); r != nil {
			c = nil
			err = fmt.Errorf("%w: allocating %d-word chunk: %v", ErrResourceExhausted, words, r)
		}
	}()

	return &chunk{
		words: make([]uint32, words),
		raw:   make([]byte, words*WordSize),
	}, nil
}

func decodeWords(dst []uint32, src []byte) {
	for i := range dst {
		dst[i] = binary.LittleEndian.Uint32(src[i*WordSize:])
	}
}

func encodeWords(dst []byte, src []uint32) {
	for i, word := range src {
		binary.LittleEndian.PutUint32(dst[i*WordSize:], word)
	}
}
