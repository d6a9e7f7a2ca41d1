// Package ethercat defines EtherCAT register and PDU layouts on top of
// package wire.
//
// Every layout comes in three forms: a descriptor (AlControlLayout), a Go
// type (AlControl) and a compiled codec (AlControlCodec). The descriptors
// are also published through Layouts for tools that work with names, such
// as cmd/wiredump.
//
//	buf, err := ethercat.AlControlCodec.Pack(&ethercat.AlControl{
//		State: ethercat.SafeOp,
//		Error: true,
//	})
//	// buf == []byte{0x14, 0x00}
//
// # Frames
//
// A PDU starts with a 10-byte header. The first six bytes are the command:
//
//	+------+-------+--------------------------------+
//	| cmd  | index | address (ADP, ADO) or logical  |
//	| u8   | u8    | u16 + u16          or u32      |
//	+------+-------+--------------------------------+
//
// followed by an 11-bit data length, three reserved bits, the circulated
// and more-follows flags, and the 16-bit IRQ field. All multi-byte fields
// are little-endian.
//
// # Registers
//
// RegisterAddress names the ESC registers a master touches during start-up:
// station addressing, AL control and status, the SII interface, FMMUs and
// sync managers. Fmmu and SyncManager return the address of the nth entry.
package ethercat
