package ethercat

import "github.com/wippyai/bitwire/wire"

// Fmmu is one 16-byte fieldbus memory management unit entry. It maps
// Length bytes of the logical process image, starting at bit
// LogicalStartBit of LogicalStart, onto physical memory of the slave.
type Fmmu struct {
	LogicalStart     uint32
	Length           uint16
	LogicalStartBit  uint8
	LogicalEndBit    uint8
	PhysicalStart    uint16
	PhysicalStartBit uint8
	Read             bool
	Write            bool
	Enable           bool
}

var FmmuLayout = wire.Struct("fmmu",
	wire.Named("logical-start", wire.Uint(32)),
	wire.Named("length", wire.Uint(16)),
	wire.Named("logical-start-bit", wire.Uint(3)),
	wire.Reserved(5),
	wire.Named("logical-end-bit", wire.Uint(3)),
	wire.Reserved(5),
	wire.Named("physical-start", wire.Uint(16)),
	wire.Named("physical-start-bit", wire.Uint(3)),
	wire.Reserved(5),
	wire.Named("read", wire.Bool()),
	wire.Named("write", wire.Bool()),
	wire.Reserved(6),
	wire.Named("enable", wire.Bool()),
	wire.Reserved(7),
	wire.Reserved(24),
)

var FmmuCodec = wire.MustCompile[Fmmu](FmmuLayout)
