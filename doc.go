// Package bitwire packs Go values into bit-exact fieldbus wire formats and
// back.
//
// Industrial protocols such as EtherCAT describe registers and frame headers
// bit by bit: a 4-bit state, two flags, ten reserved bits, an 11-bit length.
// bitwire lets those layouts be declared once and packed without hand-written
// shifts and masks.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	bitwire/
//	├── wire/            Layout descriptors, typed codecs and dynamic values
//	│   └── internal/
//	│       ├── bitio/   LSB-first bit cursor
//	│       ├── types/   Descriptor and Kind definitions
//	│       └── layout/  Width and offset calculation, validation
//	├── layoutfile/      YAML and TOML layout definitions
//	├── ethercat/        EtherCAT register and PDU layouts
//	├── errors/          Structured error types for debugging
//	└── cmd/wiredump/    Decode and encode frames from the command line
//
// # Quick Start
//
// Declare a layout and bind it to a Go type:
//
//	var status = wire.Struct("status",
//	    wire.Named("flag", wire.Bool()),
//	    wire.Named("mode", wire.Uint(3)),
//	    wire.Reserved(4),
//	)
//
//	type Status struct {
//	    Flag bool
//	    Mode uint8
//	}
//
//	codec := wire.MustCompile[Status](status)
//	buf, err := codec.Pack(&Status{Flag: true, Mode: 5}) // []byte{0x0B}
//
// Bit k of a packed value is bit k%8 of byte k/8. Fields are laid out from
// the least significant bit of the first byte, multi-byte integers are
// little-endian unless declared big-endian.
//
// # Error Handling
//
// All errors are *errors.Error values carrying the phase (compile, pack,
// unpack, load), a kind and the field path:
//
//	[pack] value_out_of_range at mode: value 9 exceeds field maximum 7
//
// Use errors.IsKind to branch on the kind.
package bitwire
