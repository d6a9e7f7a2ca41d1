// Package types defines the wire descriptors shared by the codec layers.
//
// A Descriptor carries everything the packer needs at run time: kind,
// packed width in bits, byte order, parent-relative field offsets and, for
// enums, the variant table sorted by discriminant value. Descriptors are
// built once and treated as read-only afterwards.
//
// This package is internal to wire.
package types
