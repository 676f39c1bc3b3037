//go:build !windows
// +build !windows

package collectors

import "errors"

// errNotWindows is returned by the inventory and registry sources outside
// Windows. Both queries still run so the pure logic can be exercised anywhere.
var errNotWindows = errors.New("only available on windows")

type noInventory struct{}

func newInventory() Inventory { return noInventory{} }

func (noInventory) Processors() ([]Processor, error)             { return nil, errNotWindows }
func (noInventory) CacheMemory(int) ([]CacheMemory, error)       { return nil, errNotWindows }
func (noInventory) VideoControllers() ([]VideoController, error) { return nil, errNotWindows }
func (noInventory) DisplayDevices() ([]PnPEntity, error)         { return nil, errNotWindows }
func (noInventory) ThermalZoneInformation() ([]uint64, error)    { return nil, errNotWindows }
func (noInventory) ACPIThermalZones() ([]uint64, error)          { return nil, errNotWindows }

type noRegistry struct{}

func newAdapterRegistry() AdapterRegistry { return noRegistry{} }

func (noRegistry) OpenAdapterClass() (AdapterClass, error) { return nil, errNotWindows }
