package cfb

import "github.com/boljen/go-bitmap"

// allocator is a free-slot index layered over a FAT-shaped slice (the FAT
// itself, or the MiniFAT): bit i is set when entry i is anything other
// than freeSector. It exists purely to accelerate "find the lowest free
// slot" (spec §4.3/§4.4's allocation policy) without changing what that
// scan returns — it is always kept in lockstep with the FAT/MiniFAT slice
// it mirrors, the same way the teacher's drivers/common.Allocator mirrors
// a block device's allocation state in a bitmap.Bitmap.
type allocator struct {
	bits bitmap.Bitmap
	size int
}

func newAllocator() *allocator {
	return &allocator{bits: bitmap.New(0), size: 0}
}

// grow extends the allocator to cover newSize slots, marking the new
// slots according to isUsed.
func (a *allocator) grow(newSize int, isUsed func(index int) bool) {
	if newSize <= a.size {
		return
	}
	grown := bitmap.New(newSize)
	for i := 0; i < a.size; i++ {
		grown.Set(i, a.bits.Get(i))
	}
	for i := a.size; i < newSize; i++ {
		grown.Set(i, isUsed(i))
	}
	a.bits = grown
	a.size = newSize
}

func (a *allocator) markUsed(index int) {
	if index < a.size {
		a.bits.Set(index, true)
	}
}

func (a *allocator) markFree(index int) {
	if index < a.size {
		a.bits.Set(index, false)
	}
}

// firstFree returns the lowest-indexed free slot, and false if every
// tracked slot is in use.
func (a *allocator) firstFree() (int, bool) {
	for i := 0; i < a.size; i++ {
		if !a.bits.Get(i) {
			return i, true
		}
	}
	return 0, false
}
