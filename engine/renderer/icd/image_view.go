package icd

import (
	"unsafe"

	vk "github.com/goki/vulkan"
)

type ImageViewCreateInfo struct {
	Name           string
	ViewType       vk.ImageViewType
	Format         vk.Format
	BaseMipLevel   uint32
	LevelCount     uint32
	BaseArrayLayer uint32
	LayerCount     uint32
}

type ImageView struct {
	BaseObject
	info ImageViewCreateInfo
}

func (d *Device) CreateImageView(info ImageViewCreateInfo) (*ImageView, error) {
	v := &ImageView{info: info}
	if err := d.initBase(&v.BaseObject, ObjectTypeImageView, uint64(unsafe.Sizeof(*v)), info.Name, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *ImageView) Info() ImageViewCreateInfo {
	return v.info
}

func (v *ImageView) Destroy() {
	v.dev.destroyBase(&v.BaseObject)
}

// ImageViewAttachInfo pairs a view with the layout the image will be in while
// the descriptor set is bound.
type ImageViewAttachInfo struct {
	View   *ImageView
	Layout vk.ImageLayout
}
