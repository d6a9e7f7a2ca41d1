// Package errors provides structured error types for the bitwire codec.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the dotted field path, the offending value and the
// bit bounds involved, so a control loop can log or reject an exchange without
// parsing messages.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseCompile, errors.KindTypeMismatch).
//		Path("status", "state").
//		GoType("string").
//		WireType("u4").
//		Detail("cannot bind string to an integer field").
//		Build()
//
// Or use convenience constructors for the wire taxonomy:
//
//	err := errors.BufferTooSmall(errors.PhaseUnpack, path, 16, 8)
//	err := errors.ValueOutOfRange(errors.PhasePack, path, uint64(9), 7)
//	err := errors.InvalidDiscriminant(errors.PhaseUnpack, path, "al-state", 6)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
