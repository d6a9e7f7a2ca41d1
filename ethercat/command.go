package ethercat

import (
	"fmt"

	"github.com/wippyai/bitwire/wire"
)

// CommandCode is the first byte of a PDU.
type CommandCode uint8

const (
	Nop CommandCode = iota
	Aprd
	Apwr
	Aprw
	Fprd
	Fpwr
	Fprw
	Brd
	Bwr
	Brw
	Lrd
	Lwr
	Lrw
	Armw
	Frmw
)

var commandNames = [...]string{
	Nop:  "nop",
	Aprd: "aprd",
	Apwr: "apwr",
	Aprw: "aprw",
	Fprd: "fprd",
	Fpwr: "fpwr",
	Fprw: "fprw",
	Brd:  "brd",
	Bwr:  "bwr",
	Brw:  "brw",
	Lrd:  "lrd",
	Lwr:  "lwr",
	Lrw:  "lrw",
	Armw: "armw",
	Frmw: "frmw",
}

func (c CommandCode) String() string {
	if int(c) < len(commandNames) {
		return commandNames[c]
	}
	return fmt.Sprintf("command(%#x)", uint8(c))
}

// Logical reports whether c addresses the logical process image.
func (c CommandCode) Logical() bool {
	return c == Lrd || c == Lwr || c == Lrw
}

// PhysicalAddress addresses a register of one or more slaves. Address is
// the auto-increment position, the configured station address, or zero for
// broadcasts.
type PhysicalAddress struct {
	Index    uint8
	Address  uint16
	Register uint16
}

// LogicalAddress addresses the 32-bit logical process image.
type LogicalAddress struct {
	Index   uint8
	Address uint32
}

// Command is the 48-bit command part of a PDU header. Only the payload
// matching Code is significant; the other one is zero after unpacking.
type Command struct {
	Code     CommandCode `wire:",tag"`
	Physical PhysicalAddress
	Logical  LogicalAddress
}

func physical(code CommandCode, address, register uint16) Command {
	return Command{Code: code, Physical: PhysicalAddress{Address: address, Register: register}}
}

// AutoIncrement returns the ADP value that reaches the slave at position.
func AutoIncrement(position uint16) uint16 {
	return -position
}

// AprdCommand reads register from the slave at ring position.
func AprdCommand(position uint16, register RegisterAddress) Command {
	return physical(Aprd, AutoIncrement(position), uint16(register))
}

// ApwrCommand writes register of the slave at ring position.
func ApwrCommand(position uint16, register RegisterAddress) Command {
	return physical(Apwr, AutoIncrement(position), uint16(register))
}

// FprdCommand reads register from the slave with the configured station address.
func FprdCommand(station uint16, register RegisterAddress) Command {
	return physical(Fprd, station, uint16(register))
}

// FpwrCommand writes register of the slave with the configured station address.
func FpwrCommand(station uint16, register RegisterAddress) Command {
	return physical(Fpwr, station, uint16(register))
}

// BrdCommand reads register from every slave.
func BrdCommand(register RegisterAddress) Command {
	return physical(Brd, 0, uint16(register))
}

// BwrCommand writes register of every slave.
func BwrCommand(register RegisterAddress) Command {
	return physical(Bwr, 0, uint16(register))
}

// LogicalCommand addresses the process image at address with code,
// which must be one of Lrd, Lwr or Lrw.
func LogicalCommand(code CommandCode, address uint32) Command {
	return Command{Code: code, Logical: LogicalAddress{Address: address}}
}

// WithIndex sets the frame index echoed back by the slaves.
func (c Command) WithIndex(index uint8) Command {
	if c.Code.Logical() {
		c.Logical.Index = index
	} else {
		c.Physical.Index = index
	}
	return c
}

// Index returns the frame index of the active payload.
func (c Command) Index() uint8 {
	if c.Code.Logical() {
		return c.Logical.Index
	}
	return c.Physical.Index
}

func (c Command) String() string {
	if c.Code.Logical() {
		return fmt.Sprintf("%s(%#08x)", c.Code, c.Logical.Address)
	}
	return fmt.Sprintf("%s(%#04x, %#04x)", c.Code, c.Physical.Address, c.Physical.Register)
}

var (
	PhysicalAddressLayout = wire.Struct("physical",
		wire.Named("index", wire.Uint(8)),
		wire.Named("address", wire.Uint(16)),
		wire.Named("register", wire.Uint(16)),
	)

	LogicalAddressLayout = wire.Struct("logical",
		wire.Named("index", wire.Uint(8)),
		wire.Named("address", wire.Uint(32)),
	)

	CommandLayout = commandLayout()
)

func commandLayout() *wire.Descriptor {
	variants := make([]wire.Variant, len(commandNames))
	for code, name := range commandNames {
		payload := PhysicalAddressLayout
		if CommandCode(code).Logical() {
			payload = LogicalAddressLayout
		}
		variants[code] = wire.CaseWith(name, uint64(code), payload)
	}
	return wire.Enum("command", 8, wire.StrictError, variants...)
}

var CommandCodec = wire.MustCompile[Command](CommandLayout)

// MaxDataLength is the largest value of the 11-bit PDU length field.
const MaxDataLength = 1<<11 - 1

// PduHeader precedes the data of every PDU in an EtherCAT frame.
type PduHeader struct {
	Command     Command
	Length      uint16
	Circulated  bool
	MoreFollows bool
	IRQ         uint16
}

var PduHeaderLayout = wire.Struct("pdu-header",
	wire.Named("command", CommandLayout),
	wire.Named("length", wire.Uint(11)),
	wire.Reserved(3),
	wire.Named("circulated", wire.Bool()),
	wire.Named("more-follows", wire.Bool()),
	wire.Named("irq", wire.Uint(16)),
)

var PduHeaderCodec = wire.MustCompile[PduHeader](PduHeaderLayout)
