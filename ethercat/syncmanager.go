package ethercat

import "github.com/wippyai/bitwire/wire"

// OperationMode selects between a three-buffer process data exchange and
// a single mailbox buffer.
type OperationMode uint8

const (
	Buffered OperationMode = 0
	Mailbox  OperationMode = 2
)

func (m OperationMode) String() string {
	if m == Mailbox {
		return "mailbox"
	}
	return "buffered"
}

// Direction is seen from the master: MasterRead means the slave's
// application writes the buffer.
type Direction uint8

const (
	MasterRead  Direction = 0
	MasterWrite Direction = 1
)

func (d Direction) String() string {
	if d == MasterWrite {
		return "master-write"
	}
	return "master-read"
}

type SyncManagerControl struct {
	OperationMode OperationMode
	Direction     Direction
	EcatEvent     bool
	DlsUserEvent  bool
	Watchdog      bool
}

type SyncManagerStatus struct {
	WriteEvent      bool
	ReadEvent       bool
	MailboxFull     bool
	BufferState     uint8
	ReadBufferOpen  bool
	WriteBufferOpen bool
}

type SyncManagerActivate struct {
	Enable    bool
	Repeat    bool
	EcatLatch bool
	PdiLatch  bool
}

type SyncManagerPdiControl struct {
	Deactivate bool
	RepeatAck  bool
}

// SyncManagerChannel is one 8-byte sync manager entry.
type SyncManagerChannel struct {
	PhysicalStart uint16
	Length        uint16
	Control       SyncManagerControl
	Status        SyncManagerStatus
	Activate      SyncManagerActivate
	PdiControl    SyncManagerPdiControl
}

var (
	OperationModeLayout = wire.Enum("operation-mode", 2, wire.StrictError,
		wire.Case("buffered", uint64(Buffered)),
		wire.Case("mailbox", uint64(Mailbox)),
	)

	DirectionLayout = wire.Enum("direction", 2, wire.StrictError,
		wire.Case("master-read", uint64(MasterRead)),
		wire.Case("master-write", uint64(MasterWrite)),
	)

	syncManagerControlLayout = wire.Struct("sm-control",
		wire.Named("operation-mode", OperationModeLayout),
		wire.Named("direction", DirectionLayout),
		wire.Named("ecat-event", wire.Bool()),
		wire.Named("dls-user-event", wire.Bool()),
		wire.Named("watchdog", wire.Bool()),
		wire.Reserved(1),
	)

	syncManagerStatusLayout = wire.Struct("sm-status",
		wire.Named("write-event", wire.Bool()),
		wire.Named("read-event", wire.Bool()),
		wire.Reserved(1),
		wire.Named("mailbox-full", wire.Bool()),
		wire.Named("buffer-state", wire.Uint(2)),
		wire.Named("read-buffer-open", wire.Bool()),
		wire.Named("write-buffer-open", wire.Bool()),
	)

	syncManagerActivateLayout = wire.Struct("sm-activate",
		wire.Named("enable", wire.Bool()),
		wire.Named("repeat", wire.Bool()),
		wire.Reserved(4),
		wire.Named("ecat-latch", wire.Bool()),
		wire.Named("pdi-latch", wire.Bool()),
	)

	syncManagerPdiControlLayout = wire.Struct("sm-pdi-control",
		wire.Named("deactivate", wire.Bool()),
		wire.Named("repeat-ack", wire.Bool()),
		wire.Reserved(6),
	)

	SyncManagerLayout = wire.Struct("sync-manager",
		wire.Named("physical-start", wire.Uint(16)),
		wire.Named("length", wire.Uint(16)),
		wire.Named("control", syncManagerControlLayout),
		wire.Named("status", syncManagerStatusLayout),
		wire.Named("activate", syncManagerActivateLayout),
		wire.Named("pdi-control", syncManagerPdiControlLayout),
	)
)

var SyncManagerCodec = wire.MustCompile[SyncManagerChannel](SyncManagerLayout)
