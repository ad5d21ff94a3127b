package icd

import (
	"fmt"

	"github.com/spaghettifunk/dset/engine/core"
	"golang.org/x/exp/constraints"
)

// rangeFits reports whether [start, start+count) lies inside [0, capacity)
// without overflowing T.
func rangeFits[T constraints.Unsigned](start, count, capacity T) bool {
	return start <= capacity && count <= capacity-start
}

// checkRange validates a slot range when the device was created with bounds
// checking. Without it the range is a precondition of the caller.
func (ds *DescriptorSet) checkRange(op string, start uint32, count int) error {
	if !ds.boundsCheck {
		return nil
	}
	if rangeFits(uint64(start), uint64(count), uint64(len(ds.slots))) {
		return nil
	}
	ds.dev.debug.Report(ds.message(DebugMessageError, "%s: slots [%d, %d) out of range", op, start, uint64(start)+uint64(count)))
	return fmt.Errorf("%s: slots [%d, %d) do not fit descriptor set %q with %d slots: %w",
		op, start, uint64(start)+uint64(count), ds.name, len(ds.slots), core.ErrIndexOutOfRange)
}
