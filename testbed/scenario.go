package testbed

import (
	"fmt"
	"os"
	"strings"

	vk "github.com/goki/vulkan"
	"github.com/pelletier/go-toml/v2"
)

type OpKind string

const (
	OpBeginUpdate       OpKind = "begin_update"
	OpEndUpdate         OpKind = "end_update"
	OpAttachSamplers    OpKind = "attach_samplers"
	OpAttachImageViews  OpKind = "attach_image_views"
	OpAttachBufferViews OpKind = "attach_buffer_views"
	OpAttachNested      OpKind = "attach_nested"
	OpClear             OpKind = "clear"
	OpDestroy           OpKind = "destroy"
)

type SamplerDesc struct {
	Name        string `toml:"name"`
	Filter      string `toml:"filter"`
	AddressMode string `toml:"address_mode"`
}

type ImageViewDesc struct {
	Name   string `toml:"name"`
	Levels uint32 `toml:"levels"`
	Layers uint32 `toml:"layers"`
}

type BufferViewDesc struct {
	Name   string `toml:"name"`
	Offset uint64 `toml:"offset"`
	Range  uint64 `toml:"range"`
	Stride uint32 `toml:"stride"`
}

type SetDesc struct {
	Name  string `toml:"name"`
	Slots uint32 `toml:"slots"`
}

// Op is one step applied to a named descriptor set. Which list fields are read
// depends on Kind.
type Op struct {
	Kind        OpKind   `toml:"kind"`
	Set         string   `toml:"set"`
	Start       uint32   `toml:"start"`
	Count       uint32   `toml:"count"`
	Samplers    []string `toml:"samplers"`
	ImageViews  []string `toml:"image_views"`
	Layouts     []string `toml:"layouts"`
	BufferViews []string `toml:"buffer_views"`
	Nested      []string `toml:"nested"`
	Offsets     []uint32 `toml:"offsets"`
}

type Scenario struct {
	Samplers    []SamplerDesc    `toml:"sampler"`
	ImageViews  []ImageViewDesc  `toml:"image_view"`
	BufferViews []BufferViewDesc `toml:"buffer_view"`
	Sets        []SetDesc        `toml:"set"`
	Ops         []Op             `toml:"op"`
}

func ParseScenario(data []byte) (*Scenario, error) {
	sc := &Scenario{}
	if err := toml.Unmarshal(data, sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario %s: %w", path, err)
	}
	return ParseScenario(data)
}

// Validate checks names and list lengths. Slot ranges are left to the device.
func (sc *Scenario) Validate() error {
	names := map[string]string{}
	declare := func(kind, name string) error {
		if name == "" {
			return fmt.Errorf("%s without a name", kind)
		}
		if prev, ok := names[name]; ok {
			return fmt.Errorf("%s %q: name already used by a %s", kind, name, prev)
		}
		names[name] = kind
		return nil
	}
	for _, s := range sc.Samplers {
		if err := declare("sampler", s.Name); err != nil {
			return err
		}
	}
	for _, v := range sc.ImageViews {
		if err := declare("image_view", v.Name); err != nil {
			return err
		}
	}
	for _, v := range sc.BufferViews {
		if err := declare("buffer_view", v.Name); err != nil {
			return err
		}
	}
	for _, s := range sc.Sets {
		if err := declare("set", s.Name); err != nil {
			return err
		}
	}

	for i, op := range sc.Ops {
		if names[op.Set] != "set" {
			return fmt.Errorf("op %d (%s): unknown set %q", i, op.Kind, op.Set)
		}
		switch op.Kind {
		case OpBeginUpdate, OpEndUpdate, OpClear, OpDestroy, OpAttachSamplers, OpAttachBufferViews:
		case OpAttachImageViews:
			if len(op.Layouts) != len(op.ImageViews) {
				return fmt.Errorf("op %d (%s): %d image views but %d layouts", i, op.Kind, len(op.ImageViews), len(op.Layouts))
			}
		case OpAttachNested:
			if len(op.Offsets) != 0 && len(op.Offsets) != len(op.Nested) {
				return fmt.Errorf("op %d (%s): %d nested sets but %d offsets", i, op.Kind, len(op.Nested), len(op.Offsets))
			}
		default:
			return fmt.Errorf("op %d: unknown kind %q", i, op.Kind)
		}
	}
	return nil
}

func parseFilter(s string) (vk.Filter, error) {
	switch strings.ToLower(s) {
	case "", "linear":
		return vk.FilterLinear, nil
	case "nearest":
		return vk.FilterNearest, nil
	default:
		return vk.FilterLinear, fmt.Errorf("unknown filter %q", s)
	}
}

func parseAddressMode(s string) (vk.SamplerAddressMode, error) {
	switch strings.ToLower(s) {
	case "", "repeat":
		return vk.SamplerAddressModeRepeat, nil
	case "mirrored_repeat":
		return vk.SamplerAddressModeMirroredRepeat, nil
	case "clamp_to_edge":
		return vk.SamplerAddressModeClampToEdge, nil
	case "clamp_to_border":
		return vk.SamplerAddressModeClampToBorder, nil
	default:
		return vk.SamplerAddressModeRepeat, fmt.Errorf("unknown address mode %q", s)
	}
}
