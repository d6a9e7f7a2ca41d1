package ethercat

import (
	"fmt"

	"github.com/wippyai/bitwire/wire"
)

// SlaveState is the AL state nibble of the AL control and status registers.
// Values outside the defined states are kept as read.
type SlaveState uint8

const (
	Init      SlaveState = 0x1
	PreOp     SlaveState = 0x2
	Bootstrap SlaveState = 0x3
	SafeOp    SlaveState = 0x4
	Op        SlaveState = 0x8
)

func (s SlaveState) String() string {
	switch s {
	case Init:
		return "init"
	case PreOp:
		return "pre-op"
	case Bootstrap:
		return "bootstrap"
	case SafeOp:
		return "safe-op"
	case Op:
		return "op"
	}
	return fmt.Sprintf("unknown(%#x)", uint8(s))
}

// Known reports whether s is one of the defined states.
func (s SlaveState) Known() bool {
	switch s {
	case Init, PreOp, Bootstrap, SafeOp, Op:
		return true
	}
	return false
}

var SlaveStateLayout = wire.Enum("slave-state", 4, wire.CatchAll,
	wire.Case("init", uint64(Init)),
	wire.Case("pre-op", uint64(PreOp)),
	wire.Case("bootstrap", uint64(Bootstrap)),
	wire.Case("safe-op", uint64(SafeOp)),
	wire.Case("op", uint64(Op)),
	wire.Fallback("other"),
)

// AlControl is the 16-bit AL control register (0x0120). The AL status
// register (0x0130) shares the layout, with Error reporting a failed
// transition instead of acknowledging one.
type AlControl struct {
	State     SlaveState
	Error     bool
	IDRequest bool
}

// NewAlControl requests a transition to state.
func NewAlControl(state SlaveState) AlControl {
	return AlControl{State: state}
}

// ResetAlControl requests Init and acknowledges any pending error.
func ResetAlControl() AlControl {
	return AlControl{State: Init, Error: true}
}

var AlControlLayout = wire.Struct("al-control",
	wire.Named("state", SlaveStateLayout),
	wire.Named("error", wire.Bool()),
	wire.Named("id-request", wire.Bool()),
	wire.Reserved(10),
)

var AlControlCodec = wire.MustCompile[AlControl](AlControlLayout)
