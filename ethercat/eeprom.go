package ethercat

import "github.com/wippyai/bitwire/wire"

// EepromSizeWord is the SII word holding the EEPROM size.
const EepromSizeWord = 0x003E

// EepromSize is the SII size word: capacity in kilobits, minus one.
type EepromSize uint16

// Bytes returns the EEPROM capacity in bytes.
func (s EepromSize) Bytes() int {
	return (int(s) + 1) * 1024 / 8
}

var EepromSizeLayout = wire.Rename(wire.Uint(16), "eeprom-size")

var EepromSizeCodec = wire.MustCompile[EepromSize](EepromSizeLayout)
