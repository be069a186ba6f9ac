// Package cfbtest provides in-memory BackingStores for use in tests,
// grounded on the teacher's testing.LoadDiskImage helper.
package cfbtest

import (
	"io"

	"github.com/xaionaro-go/bytesextra"
)

// NewMemoryStore returns an in-memory BackingStore of the given capacity,
// suitable for exercising cfb.Create / cfb.Open without touching disk.
func NewMemoryStore(capacity int) io.ReadWriteSeeker {
	return bytesextra.NewReadWriteSeeker(make([]byte, capacity))
}

// NewMemoryStoreFromBytes wraps an existing byte slice (for example, a
// captured golden CFB image) as a BackingStore.
func NewMemoryStoreFromBytes(data []byte) io.ReadWriteSeeker {
	return bytesextra.NewReadWriteSeeker(data)
}
