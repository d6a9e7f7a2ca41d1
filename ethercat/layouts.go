package ethercat

import (
	"sync"

	"github.com/wippyai/bitwire/layoutfile"
	"github.com/wippyai/bitwire/wire"
)

var layouts = sync.OnceValues(func() (*layoutfile.Registry, error) {
	return layoutfile.NewRegistry(map[string]*wire.Descriptor{
		"slave-state":    SlaveStateLayout,
		"al-control":     AlControlLayout,
		"command":        CommandLayout,
		"physical":       PhysicalAddressLayout,
		"logical":        LogicalAddressLayout,
		"pdu-header":     PduHeaderLayout,
		"fmmu":           FmmuLayout,
		"operation-mode": OperationModeLayout,
		"direction":      DirectionLayout,
		"sync-manager":   SyncManagerLayout,
		"eeprom-size":    EepromSizeLayout,
	})
})

// Layouts returns the built-in layouts by name. Pass it to
// layoutfile.WithBase to reference them from layout files.
func Layouts() *layoutfile.Registry {
	r, err := layouts()
	if err != nil {
		panic("ethercat: invalid built-in layout: " + err.Error())
	}
	return r
}
