package icd

import (
	"unsafe"

	vk "github.com/goki/vulkan"
)

type SamplerCreateInfo struct {
	Name          string
	MagFilter     vk.Filter
	MinFilter     vk.Filter
	AddressModeU  vk.SamplerAddressMode
	AddressModeV  vk.SamplerAddressMode
	AddressModeW  vk.SamplerAddressMode
	MaxAnisotropy float32
}

type Sampler struct {
	BaseObject
	info SamplerCreateInfo
}

func (d *Device) CreateSampler(info SamplerCreateInfo) (*Sampler, error) {
	s := &Sampler{info: info}
	if err := d.initBase(&s.BaseObject, ObjectTypeSampler, uint64(unsafe.Sizeof(*s)), info.Name, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sampler) Info() SamplerCreateInfo {
	return s.info
}

func (s *Sampler) Destroy() {
	s.dev.destroyBase(&s.BaseObject)
}
