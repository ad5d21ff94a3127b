package icd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spaghettifunk/dset/engine/core"
)

type ObjectType uint8

const (
	ObjectTypeDevice ObjectType = iota
	ObjectTypeSampler
	ObjectTypeImageView
	ObjectTypeBufferView
	ObjectTypeDescriptorSet
)

func (t ObjectType) String() string {
	switch t {
	case ObjectTypeDevice:
		return "device"
	case ObjectTypeSampler:
		return "sampler"
	case ObjectTypeImageView:
		return "image_view"
	case ObjectTypeBufferView:
		return "buffer_view"
	case ObjectTypeDescriptorSet:
		return "descriptor_set"
	default:
		return fmt.Sprintf("object_type(%d)", uint8(t))
	}
}

// BaseObject is the device-tracked part every API object carries: its handle
// in the device registry, a debug name and the host allocation of its record.
type BaseObject struct {
	dev       *Device
	id        uint32
	objType   ObjectType
	name      string
	record    *Allocation
	destroyed bool
}

func (b *BaseObject) ID() uint32 {
	return b.id
}

func (b *BaseObject) Type() ObjectType {
	return b.objType
}

// DebugName is the name given at creation or a generated uuid.
func (b *BaseObject) DebugName() string {
	return b.name
}

func (b *BaseObject) Destroyed() bool {
	return b.destroyed
}

func (b *BaseObject) message(msgType DebugMessageType, format string, args ...interface{}) DebugMessage {
	return DebugMessage{
		Type:       msgType,
		ObjectType: b.objType,
		ObjectID:   b.id,
		ObjectName: b.name,
		Text:       fmt.Sprintf(format, args...),
	}
}

// initBase allocates the object record of size bytes and registers owner
// under a new handle. On failure nothing stays allocated or registered.
func (d *Device) initBase(b *BaseObject, objType ObjectType, size uint64, name string, owner interface{}) error {
	if name == "" {
		name = uuid.NewString()
	}
	b.dev = d
	b.objType = objType
	b.name = name

	record, err := d.allocator.Alloc(size, AllocAPIObject)
	if err != nil {
		core.LogError("failed to allocate %s %q: %s", objType, name, err)
		d.debug.Report(b.message(DebugMessageError, "record allocation failed: %s", err))
		return fmt.Errorf("failed to create %s: %w", objType, err)
	}
	b.record = record
	b.id = d.objects.Acquire(owner)

	core.LogDebug("created %s #%d (%s)", objType, b.id, name)
	d.debug.Report(b.message(DebugMessageInfo, "created"))
	return nil
}

// destroyBase unregisters and frees the object record. It returns false when
// the object was already destroyed.
func (d *Device) destroyBase(b *BaseObject) bool {
	if b.destroyed {
		core.LogWarn("%s #%d (%s) destroyed twice", b.objType, b.id, b.name)
		d.debug.Report(b.message(DebugMessageWarning, "destroyed twice"))
		return false
	}
	if err := d.objects.Release(b.id); err != nil {
		core.LogWarn("releasing handle: %s", err)
	}
	d.allocator.Free(b.record)
	b.record = nil
	b.destroyed = true

	core.LogDebug("destroyed %s #%d (%s)", b.objType, b.id, b.name)
	d.debug.Report(b.message(DebugMessageInfo, "destroyed"))
	return true
}
