package icd

import (
	"fmt"
	"sync"

	"github.com/spaghettifunk/dset/engine/core"
)

// AllocType tags a host allocation with what it backs.
type AllocType uint8

const (
	// Memory backing an API object record.
	AllocAPIObject AllocType = iota
	// Memory owned by an object for its own bookkeeping, e.g. slot arrays.
	AllocInternal
	allocTypeCount
)

func (t AllocType) String() string {
	switch t {
	case AllocAPIObject:
		return "api_object"
	case AllocInternal:
		return "internal"
	default:
		return fmt.Sprintf("alloc_type(%d)", uint8(t))
	}
}

type Allocation struct {
	Size  uint64
	Type  AllocType
	freed bool
}

type AllocStats struct {
	Bytes uint64
	Count int
}

// MaxAllocationSize caps a single host allocation, with or without a limit.
const MaxAllocationSize uint64 = 1 << 30

// Allocator accounts host memory for a device. Allocations beyond the limit
// fail with core.ErrOutOfMemory.
type Allocator struct {
	mu    sync.Mutex
	limit uint64
	used  uint64
	stats [allocTypeCount]AllocStats
}

// NewAllocator returns an allocator capped at limit bytes. A limit of 0
// disables the total cap; single allocations stay below MaxAllocationSize.
func NewAllocator(limit uint64) *Allocator {
	return &Allocator{limit: limit}
}

func (a *Allocator) Alloc(size uint64, allocType AllocType) (*Allocation, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if size > MaxAllocationSize {
		return nil, fmt.Errorf("allocating %d bytes (%s) exceeds the %d byte allocation cap: %w",
			size, allocType, MaxAllocationSize, core.ErrOutOfMemory)
	}
	if a.limit != 0 && (size > a.limit || a.used > a.limit-size) {
		return nil, fmt.Errorf("allocating %d bytes (%s) with %d of %d in use: %w",
			size, allocType, a.used, a.limit, core.ErrOutOfMemory)
	}
	a.used += size
	a.stats[allocType].Bytes += size
	a.stats[allocType].Count++
	return &Allocation{Size: size, Type: allocType}, nil
}

// Free returns the allocation to the budget. Freeing nil or an already freed
// allocation does nothing.
func (a *Allocator) Free(alloc *Allocation) {
	if alloc == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	if alloc.freed {
		core.LogWarn("allocation of %d bytes (%s) freed twice", alloc.Size, alloc.Type)
		return
	}
	alloc.freed = true
	a.used -= alloc.Size
	a.stats[alloc.Type].Bytes -= alloc.Size
	a.stats[alloc.Type].Count--
}

func (a *Allocator) Used() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.used
}

func (a *Allocator) Limit() uint64 {
	return a.limit
}

func (a *Allocator) Stats(allocType AllocType) AllocStats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats[allocType]
}
