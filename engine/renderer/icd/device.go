package icd

import (
	"unsafe"

	"github.com/spaghettifunk/dset/engine/core"
)

type Device struct {
	BaseObject

	config    core.DeviceConfig
	allocator *Allocator
	objects   *core.ObjectRegistry
	debug     *DebugReport
}

// NewDevice creates a device with its own allocator, object registry and
// debug report. The device itself takes the first handle.
func NewDevice(cfg core.DeviceConfig) (*Device, error) {
	d := &Device{
		config:    cfg,
		allocator: NewAllocator(cfg.HostMemoryLimit),
		objects:   core.NewObjectRegistry(),
		debug:     NewDebugReport(cfg.Debug, cfg.DebugHistory),
	}
	if err := d.initBase(&d.BaseObject, ObjectTypeDevice, uint64(unsafe.Sizeof(*d)), cfg.Name, d); err != nil {
		return nil, err
	}
	core.LogInfo("device %q ready (bounds check: %t, host memory limit: %d)", d.name, cfg.BoundsCheck, cfg.HostMemoryLimit)
	return d, nil
}

// Destroy releases the device record. Objects still alive are reported as
// leaks; they are not destroyed.
func (d *Device) Destroy() {
	d.objects.Each(func(id uint32, owner interface{}) {
		if id == d.id {
			return
		}
		if o, ok := owner.(interface{ base() *BaseObject }); ok {
			b := o.base()
			core.LogWarn("%s #%d (%s) still alive at device destruction", b.objType, b.id, b.name)
			d.debug.Report(b.message(DebugMessageWarning, "leaked"))
		}
	})
	d.destroyBase(&d.BaseObject)
}

func (d *Device) Config() core.DeviceConfig {
	return d.config
}

func (d *Device) Allocator() *Allocator {
	return d.allocator
}

func (d *Device) Objects() *core.ObjectRegistry {
	return d.objects
}

func (d *Device) DebugReport() *DebugReport {
	return d.debug
}

// DebugMessages returns a snapshot of the retained debug messages.
func (d *Device) DebugMessages() []DebugMessage {
	return d.debug.Messages()
}

// LiveObjects counts registered objects other than the device.
func (d *Device) LiveObjects() int {
	n := d.objects.Len()
	if !d.destroyed {
		n--
	}
	return n
}

func (b *BaseObject) base() *BaseObject {
	return b
}
