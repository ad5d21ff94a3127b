package icd

import (
	"fmt"
	"unsafe"

	"github.com/spaghettifunk/dset/engine/core"
)

type DescriptorSetCreateInfo struct {
	Name string
	// Number of slots, fixed for the lifetime of the set.
	Slots uint32
}

// DescriptorSet is a fixed size table of slots, each binding a sampler, an
// image view, a buffer view or a range of another descriptor set.
//
// A DescriptorSet does no locking. Callers sharing one between goroutines
// must serialize attach and clear calls themselves.
type DescriptorSet struct {
	BaseObject

	capacity    uint32
	slots       []Slot
	slotsAlloc  *Allocation
	boundsCheck bool
}

// CreateDescriptorSet allocates the set record and then its slot array. When
// either allocation fails everything allocated so far is released and the
// returned error wraps core.ErrOutOfMemory.
func (d *Device) CreateDescriptorSet(info DescriptorSetCreateInfo) (*DescriptorSet, error) {
	ds := &DescriptorSet{
		capacity:    info.Slots,
		boundsCheck: d.config.BoundsCheck,
	}
	if err := d.initBase(&ds.BaseObject, ObjectTypeDescriptorSet, uint64(unsafe.Sizeof(*ds)), info.Name, ds); err != nil {
		return nil, err
	}

	size := uint64(info.Slots) * uint64(unsafe.Sizeof(Slot{}))
	alloc, err := d.allocator.Alloc(size, AllocInternal)
	if err != nil {
		core.LogError("failed to allocate %d slots for descriptor set %q: %s", info.Slots, ds.name, err)
		d.debug.Report(ds.message(DebugMessageError, "slot array allocation failed: %s", err))
		ds.Destroy()
		return nil, fmt.Errorf("failed to create descriptor set with %d slots: %w", info.Slots, err)
	}
	ds.slotsAlloc = alloc
	ds.slots = make([]Slot, info.Slots)
	for i := range ds.slots {
		ds.slots[i] = unusedSlot
	}
	return ds, nil
}

// Destroy frees the slot array and then the set record. Objects bound in the
// slots are left alone. Destroy must be called once.
func (ds *DescriptorSet) Destroy() {
	if !ds.destroyed {
		ds.dev.allocator.Free(ds.slotsAlloc)
		ds.slotsAlloc = nil
		ds.slots = nil
	}
	ds.dev.destroyBase(&ds.BaseObject)
}

// BeginUpdate marks the start of a batch of attach and clear calls. Updates
// are applied immediately, so this does nothing.
func (ds *DescriptorSet) BeginUpdate() {}

// EndUpdate marks the end of a batch started with BeginUpdate. It does nothing.
func (ds *DescriptorSet) EndUpdate() {}

// AttachSamplers binds samplers[i] at slot start+i. Sampler slots are read-only.
func (ds *DescriptorSet) AttachSamplers(start uint32, samplers []*Sampler) error {
	if err := ds.checkRange("attach samplers", start, len(samplers)); err != nil {
		return err
	}
	for i, sampler := range samplers {
		ds.slots[int(start)+i] = Slot{
			Type:     SlotSampler,
			ReadOnly: true,
			Sampler:  sampler,
		}
	}
	return nil
}

// AttachImageViews binds views[i] at slot start+i. A slot is read-only when
// its layout is, see ImageLayoutReadOnly.
func (ds *DescriptorSet) AttachImageViews(start uint32, views []ImageViewAttachInfo) error {
	if err := ds.checkRange("attach image views", start, len(views)); err != nil {
		return err
	}
	for i, info := range views {
		ds.slots[int(start)+i] = Slot{
			Type:      SlotImageView,
			ReadOnly:  ImageLayoutReadOnly(info.Layout),
			ImageView: info.View,
		}
	}
	return nil
}

// AttachBufferViews binds views[i] at slot start+i. Buffer view slots are
// always writable.
func (ds *DescriptorSet) AttachBufferViews(start uint32, views []BufferViewAttachInfo) error {
	if err := ds.checkRange("attach buffer views", start, len(views)); err != nil {
		return err
	}
	for i, info := range views {
		ds.slots[int(start)+i] = Slot{
			Type:       SlotBufferView,
			ReadOnly:   false,
			BufferView: info.View,
		}
	}
	return nil
}

type DescriptorSetAttachInfo struct {
	Set        *DescriptorSet
	SlotOffset uint32
}

// AttachNested points slot start+i at sets[i]. The nested set is stored as
// is: it is not dereferenced, validated or checked for cycles.
func (ds *DescriptorSet) AttachNested(start uint32, sets []DescriptorSetAttachInfo) error {
	if err := ds.checkRange("attach nested descriptor sets", start, len(sets)); err != nil {
		return err
	}
	for i, info := range sets {
		ds.slots[int(start)+i] = Slot{
			Type:     SlotNested,
			ReadOnly: true,
			Nested: NestedSet{
				Set:        info.Set,
				SlotOffset: info.SlotOffset,
			},
		}
	}
	return nil
}

// ClearSlots resets count slots from start to unused.
func (ds *DescriptorSet) ClearSlots(start, count uint32) error {
	if err := ds.checkRange("clear slots", start, int(count)); err != nil {
		return err
	}
	for i := 0; i < int(count); i++ {
		ds.slots[int(start)+i] = unusedSlot
	}
	return nil
}

// Capacity is the slot count given at creation. It does not change, not even
// after Destroy.
func (ds *DescriptorSet) Capacity() uint32 {
	return ds.capacity
}

// Slot returns slot i. i must be below Capacity and the set must not be
// destroyed: Destroy drops the slot table while Capacity keeps reporting the
// size the set was created with.
func (ds *DescriptorSet) Slot(i uint32) Slot {
	return ds.slots[i]
}

// Slots returns a copy of the slot table, empty once the set is destroyed.
func (ds *DescriptorSet) Slots() []Slot {
	out := make([]Slot, len(ds.slots))
	copy(out, ds.slots)
	return out
}

func (ds *DescriptorSet) Device() *Device {
	return ds.dev
}
