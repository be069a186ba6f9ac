package cfb

import "io"

// BackingStore is the byte-addressable container the engine reads and
// writes sectors in. An *os.File satisfies it directly; cfbtest.NewMemoryStore
// builds an in-memory one for tests, the way the teacher's own tests build
// disk images over github.com/xaionaro-go/bytesextra.
type BackingStore interface {
	io.Reader
	io.Writer
	io.Seeker
}

// Flusher is implemented by backing stores that buffer writes and need an
// explicit flush to guarantee durability. Stores that offer a Sync method
// instead, such as *os.File, are synced; stores that don't buffer (e.g. an
// in-memory store) need neither.
type Flusher interface {
	Flush() error
}

func flushStore(store BackingStore) error {
	if f, ok := store.(Flusher); ok {
		return f.Flush()
	}
	if s, ok := store.(interface{ Sync() error }); ok {
		return s.Sync()
	}
	return nil
}
