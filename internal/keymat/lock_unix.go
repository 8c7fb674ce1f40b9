//go:build unix

package keymat

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// lockWords pins the key words into RAM so they are never written to swap.
// Locking is best effort: RLIMIT_MEMLOCK may be too small for large keys.
func lockWords(words []uint32) bool {
	if len(words) == 0 {
		return false
	}

	return unix.Mlock(wordBytes(words)) == nil
}

func unlockWords(words []uint32) {
	_ = unix.Munlock(wordBytes(words))
}

func wordBytes(words []uint32) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), len(words)*WordSize) //nolint:gosec
}
