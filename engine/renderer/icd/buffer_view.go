package icd

import (
	"unsafe"

	vk "github.com/goki/vulkan"
)

type BufferViewCreateInfo struct {
	Name   string
	Format vk.Format
	Offset vk.DeviceSize
	Range  vk.DeviceSize
	Stride uint32
}

type BufferView struct {
	BaseObject
	info BufferViewCreateInfo
}

func (d *Device) CreateBufferView(info BufferViewCreateInfo) (*BufferView, error) {
	v := &BufferView{info: info}
	if err := d.initBase(&v.BaseObject, ObjectTypeBufferView, uint64(unsafe.Sizeof(*v)), info.Name, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *BufferView) Info() BufferViewCreateInfo {
	return v.info
}

func (v *BufferView) Destroy() {
	v.dev.destroyBase(&v.BaseObject)
}

type BufferViewAttachInfo struct {
	View *BufferView
}
