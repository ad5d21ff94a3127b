package icd

import "fmt"

type SlotType uint8

const (
	SlotUnused SlotType = iota
	SlotSampler
	SlotImageView
	SlotBufferView
	SlotNested
)

func (t SlotType) String() string {
	switch t {
	case SlotUnused:
		return "unused"
	case SlotSampler:
		return "sampler"
	case SlotImageView:
		return "image_view"
	case SlotBufferView:
		return "buffer_view"
	case SlotNested:
		return "nested"
	default:
		return fmt.Sprintf("slot_type(%d)", uint8(t))
	}
}

// NestedSet points a slot at another descriptor set. SlotOffset is kept as
// given; translating indices through it is up to whoever resolves bindings.
type NestedSet struct {
	Set        *DescriptorSet
	SlotOffset uint32
}

// Slot is one entry of a descriptor set. Type selects which payload field is
// set; the others are nil. Payload objects are borrowed, never owned.
type Slot struct {
	Type     SlotType
	ReadOnly bool

	Sampler    *Sampler
	ImageView  *ImageView
	BufferView *BufferView
	Nested     NestedSet
}

var unusedSlot = Slot{Type: SlotUnused, ReadOnly: true}

// Object returns the base object of the bound resource, or nil for an unused slot.
func (s Slot) Object() *BaseObject {
	switch s.Type {
	case SlotSampler:
		if s.Sampler != nil {
			return &s.Sampler.BaseObject
		}
	case SlotImageView:
		if s.ImageView != nil {
			return &s.ImageView.BaseObject
		}
	case SlotBufferView:
		if s.BufferView != nil {
			return &s.BufferView.BaseObject
		}
	case SlotNested:
		if s.Nested.Set != nil {
			return &s.Nested.Set.BaseObject
		}
	}
	return nil
}

func (s Slot) String() string {
	ro := "rw"
	if s.ReadOnly {
		ro = "ro"
	}
	o := s.Object()
	switch {
	case s.Type == SlotUnused:
		return fmt.Sprintf("%s %s", s.Type, ro)
	case o == nil:
		return fmt.Sprintf("%s(nil) %s", s.Type, ro)
	case s.Type == SlotNested:
		return fmt.Sprintf("%s(%s+%d) %s", s.Type, o.DebugName(), s.Nested.SlotOffset, ro)
	default:
		return fmt.Sprintf("%s(%s) %s", s.Type, o.DebugName(), ro)
	}
}
