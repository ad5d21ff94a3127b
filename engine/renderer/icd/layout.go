package icd

import (
	"fmt"
	"strings"

	vk "github.com/goki/vulkan"
)

// ImageLayoutReadOnly reports whether an image bound in the given layout can
// only be read. Layouts not listed here count as writable.
func ImageLayoutReadOnly(layout vk.ImageLayout) bool {
	switch layout {
	case vk.ImageLayoutDepthStencilReadOnlyOptimal,
		vk.ImageLayoutShaderReadOnlyOptimal,
		vk.ImageLayoutTransferSrcOptimal:
		return true
	default:
		return false
	}
}

var imageLayoutNames = []struct {
	name   string
	layout vk.ImageLayout
}{
	{"undefined", vk.ImageLayoutUndefined},
	{"general", vk.ImageLayoutGeneral},
	{"color_attachment_optimal", vk.ImageLayoutColorAttachmentOptimal},
	{"depth_stencil_attachment_optimal", vk.ImageLayoutDepthStencilAttachmentOptimal},
	{"depth_stencil_read_only_optimal", vk.ImageLayoutDepthStencilReadOnlyOptimal},
	{"shader_read_only_optimal", vk.ImageLayoutShaderReadOnlyOptimal},
	{"transfer_src_optimal", vk.ImageLayoutTransferSrcOptimal},
	{"transfer_dst_optimal", vk.ImageLayoutTransferDstOptimal},
	{"preinitialized", vk.ImageLayoutPreinitialized},
	{"present_src", vk.ImageLayoutPresentSrc},
}

// ParseImageLayout accepts the snake_case layout names used in scenario files,
// with or without the "_optimal" suffix.
func ParseImageLayout(s string) (vk.ImageLayout, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, n := range imageLayoutNames {
		if key == n.name || key+"_optimal" == n.name {
			return n.layout, nil
		}
	}
	return vk.ImageLayoutUndefined, fmt.Errorf("unknown image layout %q", s)
}

func ImageLayoutName(layout vk.ImageLayout) string {
	for _, n := range imageLayoutNames {
		if n.layout == layout {
			return n.name
		}
	}
	return fmt.Sprintf("layout(%d)", int32(layout))
}
