// Package layout computes and checks bit-exact wire layouts.
//
// # Layout Rules
//
//   - Primitives: width is fixed by the descriptor (bool=1, uN/iN=N, f32=32, f64=64)
//   - Structs and tuples: fields are packed back to back, offset = sum of
//     preceding widths, no implicit padding
//   - Arrays: element i starts at i * element width
//   - Enums: discriminant first, then the widest payload; shorter payloads
//     leave zero bits up to the enum width
//
// Compute fills in widths and offsets for one descriptor whose children are
// already computed. Validate walks a whole tree and reports the first rule
// violation with its field path.
//
// This package is internal to wire.
package layout
