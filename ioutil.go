package cfb

import (
	"encoding/binary"
	"io"

	cfberr "github.com/dargueta/cfb/errors"
)

// seekAbsolute positions store at an absolute offset from the start.
func seekAbsolute(store BackingStore, offset int64) error {
	if _, err := store.Seek(offset, io.SeekStart); err != nil {
		return cfberr.IO(err)
	}
	return nil
}

func readU16(store BackingStore) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(store, buf[:]); err != nil {
		return 0, cfberr.IO(err)
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

func readU32(store BackingStore) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(store, buf[:]); err != nil {
		return 0, cfberr.IO(err)
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func readU64(store BackingStore) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(store, buf[:]); err != nil {
		return 0, cfberr.IO(err)
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

func writeU16(store BackingStore, v uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	_, err := store.Write(buf[:])
	return cfberr.IO(err)
}

func writeU32(store BackingStore, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := store.Write(buf[:])
	return cfberr.IO(err)
}

func writeU64(store BackingStore, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, err := store.Write(buf[:])
	return cfberr.IO(err)
}

func writeZeros(store BackingStore, n int) error {
	const chunkSize = 4096
	var zeros [chunkSize]byte
	for n > 0 {
		k := n
		if k > chunkSize {
			k = chunkSize
		}
		if _, err := store.Write(zeros[:k]); err != nil {
			return cfberr.IO(err)
		}
		n -= k
	}
	return nil
}
