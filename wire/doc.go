// Package wire packs Go values into bit-exact fieldbus wire formats and back.
//
// A layout is described once with the schema constructors and compiled
// against a Go type. The compiled Codec then converts values to and from
// caller-owned byte buffers without allocating.
//
//	┌────────────────────────────────────────────────────────┐
//	│ Go value ←→ [Codec] ←→ Cursor ←→ caller-owned []byte   │
//	└────────────────────────────────────────────────────────┘
//
// # Bit Numbering
//
// Stream bit k is bit k%8 (0 = least significant) of byte k/8. A field of
// width W at offset O stores value bit i at stream bit O+i. Fields are
// little-endian unless marked BE, which is allowed for byte-sized integers,
// floats and enum discriminants only.
//
// # Layout Rules
//
//	Type            Width
//	───────────────────────────────────────────
//	bool            1
//	uN / iN         N (1..64)
//	f32 / f64       32 / 64, raw IEEE-754 bits
//	pad N           N zero bits
//	struct          sum of field widths, no implicit padding
//	tuple           sum of 2..16 element widths
//	array [N]T      N * width(T)
//	enum            discriminant + widest payload
//
// # Defining Layouts
//
//	var status = wire.Struct("status",
//		wire.Named("flag", wire.Bool()),
//		wire.Named("mode", wire.Uint(3)),
//		wire.Reserved(4),
//	)
//
//	type Status struct {
//		Flag bool
//		Mode uint8
//	}
//
//	codec := wire.MustCompile[Status](status)
//	buf := make([]byte, codec.ByteWidth())
//	err := codec.PackInto(&Status{Flag: true, Mode: 5}, buf) // buf[0] == 0x0B
//
// # Go Binding
//
// Struct fields match by wire:"name" tag, then case-insensitive Go name,
// then kebab-case Go name. Padding binds no Go field. Tuples bind to Go
// structs positionally or to Go arrays. Enums bind to an integer holding
// the raw discriminant, or to a struct with a wire:",tag" field plus one
// field per payload variant:
//
//	type Command struct {
//		Code     uint8 `wire:",tag"`
//		Physical PhysicalAddress
//		Logical  LogicalAddress
//	}
//
// Payload fields of inactive variants are zeroed on unpack.
//
// # Enums
//
// StrictError rejects unmapped discriminants on pack and unpack with
// KindInvalidDiscriminant. CatchAll stores them in the Fallback variant
// and writes them back unchanged.
//
// # Dynamic Values
//
// Pack and Unpack work on any-typed values (map[string]any, []any,
// EnumValue) for tooling. They validate on every call and allocate.
//
// # Errors
//
// All failures are *errors.Error values with Phase, Kind and the dotted
// field path of the failing leaf, e.g. "[unpack] invalid_discriminant at
// status.state".
package wire
