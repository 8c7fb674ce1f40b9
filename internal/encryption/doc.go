// Package encryption streams files through a keyed, reversible 32-bit word transform.
// Data is processed in bounded chunks; each chunk carries a checksum word that is
// verified, as a checksum of checksums, once decryption has finished.
// Memory use is bounded by the configured chunk size regardless of file size.
package encryption
