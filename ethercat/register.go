package ethercat

import "fmt"

// RegisterAddress is an ESC register offset.
type RegisterAddress uint16

const (
	Type                     RegisterAddress = 0x0000
	Revision                 RegisterAddress = 0x0001
	Build                    RegisterAddress = 0x0002
	FmmuCount                RegisterAddress = 0x0004
	SyncManagerChannels      RegisterAddress = 0x0005
	RamSize                  RegisterAddress = 0x0006
	PortDescriptors          RegisterAddress = 0x0007
	SupportFlags             RegisterAddress = 0x0008
	ConfiguredStationAddress RegisterAddress = 0x0010
	ConfiguredStationAlias   RegisterAddress = 0x0012
	DlControl                RegisterAddress = 0x0100
	DlStatus                 RegisterAddress = 0x0110
	AlControlRegister        RegisterAddress = 0x0120
	AlStatus                 RegisterAddress = 0x0130
	AlStatusCode             RegisterAddress = 0x0134
	SiiConfig                RegisterAddress = 0x0500
	SiiControl               RegisterAddress = 0x0502
	SiiAddress               RegisterAddress = 0x0504
	SiiData                  RegisterAddress = 0x0508
	Fmmu0                    RegisterAddress = 0x0600
	Sm0                      RegisterAddress = 0x0800
	DcSystemTime             RegisterAddress = 0x0910
)

const (
	// FmmuStride is the size of one FMMU entry in bytes.
	FmmuStride = 16
	// SyncManagerStride is the size of one sync manager entry in bytes.
	SyncManagerStride = 8

	MaxFmmus        = 16
	MaxSyncManagers = 16
)

// FmmuRegister returns the address of FMMU entry n.
func FmmuRegister(n uint8) RegisterAddress {
	return Fmmu0 + RegisterAddress(n)*FmmuStride
}

// SyncManagerRegister returns the address of sync manager entry n.
func SyncManagerRegister(n uint8) RegisterAddress {
	return Sm0 + RegisterAddress(n)*SyncManagerStride
}

var registerNames = map[RegisterAddress]string{
	Type:                     "type",
	Revision:                 "revision",
	Build:                    "build",
	FmmuCount:                "fmmu-count",
	SyncManagerChannels:      "sync-manager-channels",
	RamSize:                  "ram-size",
	PortDescriptors:          "port-descriptors",
	SupportFlags:             "support-flags",
	ConfiguredStationAddress: "configured-station-address",
	ConfiguredStationAlias:   "configured-station-alias",
	DlControl:                "dl-control",
	DlStatus:                 "dl-status",
	AlControlRegister:        "al-control",
	AlStatus:                 "al-status",
	AlStatusCode:             "al-status-code",
	SiiConfig:                "sii-config",
	SiiControl:               "sii-control",
	SiiAddress:               "sii-address",
	SiiData:                  "sii-data",
	DcSystemTime:             "dc-system-time",
}

func (r RegisterAddress) String() string {
	if name, ok := registerNames[r]; ok {
		return name
	}
	if r >= Fmmu0 && r < Fmmu0+MaxFmmus*FmmuStride {
		n := (r - Fmmu0) / FmmuStride
		if off := (r - Fmmu0) % FmmuStride; off != 0 {
			return fmt.Sprintf("fmmu%d+%d", n, off)
		}
		return fmt.Sprintf("fmmu%d", n)
	}
	if r >= Sm0 && r < Sm0+MaxSyncManagers*SyncManagerStride {
		n := (r - Sm0) / SyncManagerStride
		if off := (r - Sm0) % SyncManagerStride; off != 0 {
			return fmt.Sprintf("sm%d+%d", n, off)
		}
		return fmt.Sprintf("sm%d", n)
	}
	return fmt.Sprintf("%#04x", uint16(r))
}
