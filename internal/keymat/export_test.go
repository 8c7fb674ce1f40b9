package keymat

// Words exposes the retained key storage to tests.
func (b *Buffer) Words() []uint32 {
	return b.words
}
