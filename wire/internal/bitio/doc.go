// Package bitio provides the bit cursor and width arithmetic used by the wire codecs.
//
// Bit numbering is LSB-first: stream bit k is bit k%8 of byte k/8, and a
// value of width W written at offset O places its bit i at stream bit O+i.
// Multi-byte values default to little-endian. A big-endian access requires a
// width that is a multiple of 8; its bytes are emitted most significant first,
// each byte still placed LSB-first.
//
// # Contents
//
//   - cursor.go: Cursor with bounded read/write of 0..64 bit values
//   - width.go: range, sign-extension and byte-width helpers
//   - coerce.go: numeric coercion for dynamically typed values
//
// This package is internal to the wire codec.
package bitio
