package testbed

import (
	"fmt"
	"io"
	"text/tabwriter"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/dset/engine/core"
	"github.com/spaghettifunk/dset/engine/renderer/icd"
)

// Result holds every object a scenario created, by name.
type Result struct {
	Device      *icd.Device
	Samplers    map[string]*icd.Sampler
	ImageViews  map[string]*icd.ImageView
	BufferViews map[string]*icd.BufferView
	Sets        map[string]*icd.DescriptorSet

	// Set names in declaration order.
	order []string
}

// Run creates the scenario objects on dev and applies its ops in order. On
// error the objects created so far are destroyed.
func Run(dev *icd.Device, sc *Scenario) (res *Result, err error) {
	res = &Result{
		Device:      dev,
		Samplers:    map[string]*icd.Sampler{},
		ImageViews:  map[string]*icd.ImageView{},
		BufferViews: map[string]*icd.BufferView{},
		Sets:        map[string]*icd.DescriptorSet{},
	}
	defer func() {
		if err != nil {
			res.Destroy()
			res = nil
		}
	}()

	if err := res.create(sc); err != nil {
		return res, err
	}
	for i, op := range sc.Ops {
		if err := res.apply(op); err != nil {
			return res, fmt.Errorf("op %d (%s on %q): %w", i, op.Kind, op.Set, err)
		}
	}
	core.LogInfo("scenario applied: %d sets, %d ops", len(sc.Sets), len(sc.Ops))
	return res, nil
}

func (r *Result) create(sc *Scenario) error {
	for _, desc := range sc.Samplers {
		filter, err := parseFilter(desc.Filter)
		if err != nil {
			return fmt.Errorf("sampler %q: %w", desc.Name, err)
		}
		mode, err := parseAddressMode(desc.AddressMode)
		if err != nil {
			return fmt.Errorf("sampler %q: %w", desc.Name, err)
		}
		s, err := r.Device.CreateSampler(icd.SamplerCreateInfo{
			Name:         desc.Name,
			MagFilter:    filter,
			MinFilter:    filter,
			AddressModeU: mode,
			AddressModeV: mode,
			AddressModeW: mode,
		})
		if err != nil {
			return err
		}
		r.Samplers[desc.Name] = s
	}

	for _, desc := range sc.ImageViews {
		v, err := r.Device.CreateImageView(icd.ImageViewCreateInfo{
			Name:       desc.Name,
			ViewType:   vk.ImageViewType2d,
			Format:     vk.FormatR8g8b8a8Unorm,
			LevelCount: max(desc.Levels, 1),
			LayerCount: max(desc.Layers, 1),
		})
		if err != nil {
			return err
		}
		r.ImageViews[desc.Name] = v
	}

	for _, desc := range sc.BufferViews {
		v, err := r.Device.CreateBufferView(icd.BufferViewCreateInfo{
			Name:   desc.Name,
			Format: vk.FormatR32Sfloat,
			Offset: vk.DeviceSize(desc.Offset),
			Range:  vk.DeviceSize(desc.Range),
			Stride: desc.Stride,
		})
		if err != nil {
			return err
		}
		r.BufferViews[desc.Name] = v
	}

	for _, desc := range sc.Sets {
		ds, err := r.Device.CreateDescriptorSet(icd.DescriptorSetCreateInfo{
			Name:  desc.Name,
			Slots: desc.Slots,
		})
		if err != nil {
			return fmt.Errorf("set %q (%s): %w", desc.Name, icd.ResultString(icd.ResultFromError(err), false), err)
		}
		r.Sets[desc.Name] = ds
		r.order = append(r.order, desc.Name)
	}
	return nil
}

func (r *Result) set(name string) (*icd.DescriptorSet, error) {
	ds, ok := r.Sets[name]
	if !ok {
		return nil, fmt.Errorf("unknown set %q: %w", name, core.ErrInvalidObject)
	}
	if ds.Destroyed() {
		return nil, fmt.Errorf("set %q: %w", name, core.ErrObjectDestroyed)
	}
	return ds, nil
}

func lookup[T any](kind string, objects map[string]T, names []string) ([]T, error) {
	out := make([]T, 0, len(names))
	for _, n := range names {
		o, ok := objects[n]
		if !ok {
			return nil, fmt.Errorf("unknown %s %q: %w", kind, n, core.ErrInvalidObject)
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *Result) apply(op Op) error {
	ds, err := r.set(op.Set)
	if err != nil {
		return err
	}

	switch op.Kind {
	case OpBeginUpdate:
		ds.BeginUpdate()
		return nil

	case OpEndUpdate:
		ds.EndUpdate()
		return nil

	case OpAttachSamplers:
		samplers, err := lookup("sampler", r.Samplers, op.Samplers)
		if err != nil {
			return err
		}
		return ds.AttachSamplers(op.Start, samplers)

	case OpAttachImageViews:
		views, err := lookup("image view", r.ImageViews, op.ImageViews)
		if err != nil {
			return err
		}
		infos := make([]icd.ImageViewAttachInfo, len(views))
		for i, v := range views {
			layout, err := icd.ParseImageLayout(op.Layouts[i])
			if err != nil {
				return err
			}
			infos[i] = icd.ImageViewAttachInfo{View: v, Layout: layout}
		}
		return ds.AttachImageViews(op.Start, infos)

	case OpAttachBufferViews:
		views, err := lookup("buffer view", r.BufferViews, op.BufferViews)
		if err != nil {
			return err
		}
		infos := make([]icd.BufferViewAttachInfo, len(views))
		for i, v := range views {
			infos[i] = icd.BufferViewAttachInfo{View: v}
		}
		return ds.AttachBufferViews(op.Start, infos)

	case OpAttachNested:
		sets, err := lookup("set", r.Sets, op.Nested)
		if err != nil {
			return err
		}
		infos := make([]icd.DescriptorSetAttachInfo, len(sets))
		for i, nested := range sets {
			infos[i] = icd.DescriptorSetAttachInfo{Set: nested}
			if len(op.Offsets) > 0 {
				infos[i].SlotOffset = op.Offsets[i]
			}
		}
		return ds.AttachNested(op.Start, infos)

	case OpClear:
		return ds.ClearSlots(op.Start, op.Count)

	case OpDestroy:
		ds.Destroy()
		return nil

	default:
		return fmt.Errorf("unknown op kind %q", op.Kind)
	}
}

// LiveSets returns the sets that were not destroyed, in declaration order.
func (r *Result) LiveSets() []*icd.DescriptorSet {
	var out []*icd.DescriptorSet
	for _, name := range r.order {
		if ds := r.Sets[name]; !ds.Destroyed() {
			out = append(out, ds)
		}
	}
	return out
}

// Dump writes the slot table of every live set.
func (r *Result) Dump(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, ds := range r.LiveSets() {
		fmt.Fprintf(tw, "set %s (#%d, %d slots)\n", ds.DebugName(), ds.ID(), ds.Capacity())
		fmt.Fprintln(tw, "  slot\ttype\taccess\tbinding")
		for i, s := range ds.Slots() {
			access := "rw"
			if s.ReadOnly {
				access = "ro"
			}
			fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\n", i, s.Type, access, binding(s))
		}
	}
	return tw.Flush()
}

func binding(s icd.Slot) string {
	o := s.Object()
	switch {
	case s.Type == icd.SlotUnused:
		return "-"
	case o == nil:
		return "<nil>"
	case s.Type == icd.SlotNested:
		state := ""
		if o.Destroyed() {
			state = " (destroyed)"
		}
		return fmt.Sprintf("%s+%d%s", o.DebugName(), s.Nested.SlotOffset, state)
	default:
		return o.DebugName()
	}
}

// Destroy releases everything the scenario created: sets first, then the
// objects they may reference.
func (r *Result) Destroy() {
	for _, name := range r.order {
		if ds := r.Sets[name]; !ds.Destroyed() {
			ds.Destroy()
		}
	}
	for _, v := range r.BufferViews {
		v.Destroy()
	}
	for _, v := range r.ImageViews {
		v.Destroy()
	}
	for _, s := range r.Samplers {
		s.Destroy()
	}
}
