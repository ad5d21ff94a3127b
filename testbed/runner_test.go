package testbed

import (
	"bytes"
	"testing"

	"github.com/spaghettifunk/dset/engine/core"
	"github.com/spaghettifunk/dset/engine/renderer/icd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleScenario = `
[[sampler]]
name = "S1"
filter = "nearest"
address_mode = "clamp_to_edge"

[[image_view]]
name = "V1"

[[image_view]]
name = "V2"

[[buffer_view]]
name = "B1"
range = 1024
stride = 16

[[set]]
name = "main"
slots = 4

[[set]]
name = "material"
slots = 2

[[op]]
kind = "begin_update"
set = "main"

[[op]]
kind = "attach_samplers"
set = "main"
start = 0
samplers = ["S1"]

[[op]]
kind = "attach_image_views"
set = "main"
start = 1
image_views = ["V1", "V2"]
layouts = ["depth_stencil_read_only", "general"]

[[op]]
kind = "clear"
set = "main"
start = 3
count = 1

[[op]]
kind = "end_update"
set = "main"

[[op]]
kind = "attach_buffer_views"
set = "material"
start = 0
buffer_views = ["B1"]

[[op]]
kind = "attach_nested"
set = "material"
start = 1
nested = ["main"]
offsets = [2]
`

func newDevice(t *testing.T) *icd.Device {
	t.Helper()
	dev, err := icd.NewDevice(core.DefaultDeviceConfig())
	require.NoError(t, err)
	return dev
}

func TestRunScenario(t *testing.T) {
	sc, err := ParseScenario([]byte(exampleScenario))
	require.NoError(t, err)

	dev := newDevice(t)
	res, err := Run(dev, sc)
	require.NoError(t, err)

	main := res.Sets["main"]
	assert.Equal(t, []icd.Slot{
		{Type: icd.SlotSampler, ReadOnly: true, Sampler: res.Samplers["S1"]},
		{Type: icd.SlotImageView, ReadOnly: true, ImageView: res.ImageViews["V1"]},
		{Type: icd.SlotImageView, ReadOnly: false, ImageView: res.ImageViews["V2"]},
		{Type: icd.SlotUnused, ReadOnly: true},
	}, main.Slots())

	material := res.Sets["material"].Slots()
	assert.Equal(t, icd.SlotBufferView, material[0].Type)
	assert.False(t, material[0].ReadOnly)
	assert.Same(t, main, material[1].Nested.Set)
	assert.Equal(t, uint32(2), material[1].Nested.SlotOffset)

	var buf bytes.Buffer
	require.NoError(t, res.Dump(&buf))
	out := buf.String()
	assert.Contains(t, out, "set main")
	assert.Contains(t, out, "sampler")
	assert.Contains(t, out, "S1")
	assert.Contains(t, out, "main+2")

	res.Destroy()
	assert.Zero(t, dev.LiveObjects())
}

func TestRunScenarioDestroyOp(t *testing.T) {
	sc := &Scenario{
		Sets: []SetDesc{{Name: "outer", Slots: 1}, {Name: "inner", Slots: 1}},
		Ops: []Op{
			{Kind: OpAttachNested, Set: "outer", Nested: []string{"inner"}},
			{Kind: OpDestroy, Set: "inner"},
		},
	}
	require.NoError(t, sc.Validate())

	res, err := Run(newDevice(t), sc)
	require.NoError(t, err)
	require.Len(t, res.LiveSets(), 1)

	var buf bytes.Buffer
	require.NoError(t, res.Dump(&buf))
	assert.Contains(t, buf.String(), "inner+0 (destroyed)")
	assert.NotContains(t, buf.String(), "set inner")
	res.Destroy()
}

func TestRunScenarioErrorsCleanUp(t *testing.T) {
	for name, sc := range map[string]*Scenario{
		"out of range": {
			Samplers: []SamplerDesc{{Name: "s"}},
			Sets:     []SetDesc{{Name: "set", Slots: 1}},
			Ops:      []Op{{Kind: OpAttachSamplers, Set: "set", Start: 1, Samplers: []string{"s"}}},
		},
		"unknown sampler": {
			Sets: []SetDesc{{Name: "set", Slots: 1}},
			Ops:  []Op{{Kind: OpAttachSamplers, Set: "set", Samplers: []string{"missing"}}},
		},
		"bad layout": {
			ImageViews: []ImageViewDesc{{Name: "v"}},
			Sets:       []SetDesc{{Name: "set", Slots: 1}},
			Ops:        []Op{{Kind: OpAttachImageViews, Set: "set", ImageViews: []string{"v"}, Layouts: []string{"upside_down"}}},
		},
		"destroyed twice": {
			Sets: []SetDesc{{Name: "set", Slots: 1}},
			Ops:  []Op{{Kind: OpDestroy, Set: "set"}, {Kind: OpDestroy, Set: "set"}},
		},
		"bad filter": {
			Samplers: []SamplerDesc{{Name: "s", Filter: "cubic"}},
		},
	} {
		dev := newDevice(t)
		res, err := Run(dev, sc)
		assert.Error(t, err, name)
		assert.Nil(t, res, name)
		assert.Zero(t, dev.LiveObjects(), name)
	}
}

func TestRunScenarioOutOfMemory(t *testing.T) {
	cfg := core.DefaultDeviceConfig()
	cfg.HostMemoryLimit = 1 << 12
	dev, err := icd.NewDevice(cfg)
	require.NoError(t, err)

	_, err = Run(dev, &Scenario{Sets: []SetDesc{{Name: "huge", Slots: 1 << 20}}})
	require.ErrorIs(t, err, core.ErrOutOfMemory)
	assert.Contains(t, err.Error(), "VK_ERROR_OUT_OF_HOST_MEMORY")
	assert.Zero(t, dev.LiveObjects())
}

func TestScenarioValidate(t *testing.T) {
	for name, doc := range map[string]string{
		"duplicate name": "[[sampler]]\nname = \"x\"\n[[set]]\nname = \"x\"\nslots = 1\n",
		"missing name":   "[[set]]\nslots = 1\n",
		"unknown set":    "[[op]]\nkind = \"clear\"\nset = \"nope\"\n",
		"unknown kind":   "[[set]]\nname = \"s\"\nslots = 1\n[[op]]\nkind = \"explode\"\nset = \"s\"\n",
		"layouts":        "[[set]]\nname = \"s\"\nslots = 1\n[[op]]\nkind = \"attach_image_views\"\nset = \"s\"\nimage_views = [\"a\"]\n",
		"offsets":        "[[set]]\nname = \"s\"\nslots = 2\n[[op]]\nkind = \"attach_nested\"\nset = \"s\"\nnested = [\"s\"]\noffsets = [1, 2]\n",
		"syntax":         "[[set]\n",
	} {
		_, err := ParseScenario([]byte(doc))
		assert.Error(t, err, name)
	}
}

func TestExampleScenarioFile(t *testing.T) {
	sc, err := LoadScenario("../testdata/example.toml")
	require.NoError(t, err)

	res, err := Run(newDevice(t), sc)
	require.NoError(t, err)
	defer res.Destroy()

	require.Len(t, res.LiveSets(), 2)
	assert.Equal(t, icd.SlotNested, res.Sets["material"].Slot(1).Type)
	assert.Equal(t, uint32(1), res.Sets["material"].Slot(1).Nested.SlotOffset)
	assert.True(t, res.Sets["main"].Slot(1).ReadOnly)
	assert.False(t, res.Sets["main"].Slot(2).ReadOnly)
}
