package cfb

import (
	"io"

	cfberr "github.com/dargueta/cfb/errors"
	"github.com/dargueta/cfb/internal/filetime"
)

// Stream is a cursor into a single stream's data, shared with no other
// Stream: only one may be open against a File at a time (spec §5's
// concurrency model), because every read and write here mutates File
// state (the FAT/MiniFAT allocators, the directory entry) directly.
type Stream struct {
	file     *File
	streamID uint32
	pos      uint64

	// dirty marks that a Write has touched the stream since the last
	// Flush, so the directory entry's modified_time finisher (spec
	// §4.7) has something to rewrite.
	dirty bool
}

// OpenStream opens the stream at path for reading and writing at
// position 0. It fails with cfberr.ErrInvalidInput if another Stream is
// already open, or if path does not name a stream.
func (f *File) OpenStream(path string) (*Stream, error) {
	if f.streamOpen {
		return nil, cfberr.ErrInvalidInput.WithMessage(
			"another stream is already open on this file")
	}
	streamID, err := f.streamIDForPath(path)
	if err != nil {
		return nil, err
	}
	if !f.directory[streamID].isStream() {
		return nil, cfberr.ErrInvalidInput.WithMessage(path + " is not a stream")
	}
	f.streamOpen = true
	return &Stream{file: f, streamID: streamID}, nil
}

func (s *Stream) entry() *dirEntry { return &s.file.directory[s.streamID] }

// isMini reports whether the stream's data currently lives in the
// mini-stream, per the cutoff in spec §4.4: streams shorter than
// miniStreamCutoff bytes use 64-byte mini-sectors; longer ones use
// regular sectors directly.
func (s *Stream) isMini() bool { return s.entry().streamLen < miniStreamCutoff }

// Len returns the stream's current length in bytes.
func (s *Stream) Len() uint64 { return s.entry().streamLen }

// Seek repositions the cursor. The new position must lie between 0 and
// the stream's length inclusive; seeking past the end fails with
// cfberr.ErrInvalidInput, since only Write grows a stream.
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	var newPos int64
	switch whence {
	case io.SeekStart:
		newPos = offset
	case io.SeekCurrent:
		newPos = int64(s.pos) + offset
	case io.SeekEnd:
		newPos = int64(s.entry().streamLen) + offset
	default:
		return 0, cfberr.ErrInvalidInput.WithMessage("invalid whence value")
	}
	if newPos < 0 {
		return 0, cfberr.ErrInvalidInput.WithMessage("negative seek position")
	}
	if uint64(newPos) > s.entry().streamLen {
		return 0, cfberr.ErrInvalidInput.WithMessage("cannot seek past the end of the stream")
	}
	s.pos = uint64(newPos)
	return newPos, nil
}

// sectorForOffset walks chain (the FAT or MiniFAT, as appropriate for
// the stream's current tier) from startSector to find which sector holds
// byte offset, and the offset's position within that sector.
func sectorForOffset(chain []uint32, startSector uint32, unitLen uint64, offset uint64) (uint32, uint32) {
	sector := startSector
	for i := uint64(0); i < offset/unitLen; i++ {
		sector = chain[sector]
	}
	return sector, uint32(offset % unitLen)
}

// Read reads up to len(p) bytes starting at the current position.
func (s *Stream) Read(p []byte) (int, error) {
	entry := s.entry()
	if s.pos >= entry.streamLen {
		return 0, io.EOF
	}
	total := 0
	for total < len(p) && s.pos < entry.streamLen {
		remaining := entry.streamLen - s.pos
		want := uint64(len(p) - total)
		if want > remaining {
			want = remaining
		}

		var unitLen uint64
		var within uint32
		if s.isMini() {
			unitLen = miniSectorLen
			var miniSector uint32
			miniSector, within = sectorForOffset(s.file.minifat, entry.startSector, unitLen, s.pos)
			if err := s.file.seekWithinMiniSector(miniSector, within); err != nil {
				return total, err
			}
		} else {
			unitLen = uint64(s.file.version.SectorLen())
			var sector uint32
			sector, within = sectorForOffset(s.file.fat, entry.startSector, unitLen, s.pos)
			if err := s.file.seekWithinSector(sector, within); err != nil {
				return total, err
			}
		}

		avail := unitLen - uint64(within)
		if want > avail {
			want = avail
		}
		n, err := io.ReadFull(s.file.store, p[total:total+int(want)])
		total += n
		s.pos += uint64(n)
		if err != nil {
			return total, cfberr.IO(err)
		}
	}
	return total, nil
}

// Write writes len(p) bytes starting at the current position, extending
// the stream's chain and length as needed. A write that would cross the
// mini-to-regular tier boundary mid-stream fails with
// cfberr.ErrUnsupported rather than silently migrating the stream's
// data to a new tier (spec §9).
func (s *Stream) Write(p []byte) (int, error) {
	entry := s.entry()
	finalLen := s.pos + uint64(len(p))
	if finalLen < s.pos {
		return 0, cfberr.ErrInvalidInput.WithMessage("write would overflow stream length")
	}
	if entry.streamLen < miniStreamCutoff && finalLen >= miniStreamCutoff {
		return 0, cfberr.ErrUnsupported.WithMessage(
			"write would migrate stream from the mini-stream to regular sectors")
	}
	if len(p) > 0 {
		s.dirty = true
	}

	total := 0
	for total < len(p) {
		if err := s.ensureCapacity(s.pos); err != nil {
			return total, err
		}
		entry = s.entry()

		var unitLen uint64
		var within uint32
		if s.isMini() {
			unitLen = miniSectorLen
			var miniSector uint32
			miniSector, within = sectorForOffset(s.file.minifat, entry.startSector, unitLen, s.pos)
			if err := s.file.seekWithinMiniSector(miniSector, within); err != nil {
				return total, err
			}
		} else {
			unitLen = uint64(s.file.version.SectorLen())
			var sector uint32
			sector, within = sectorForOffset(s.file.fat, entry.startSector, unitLen, s.pos)
			if err := s.file.seekWithinSector(sector, within); err != nil {
				return total, err
			}
		}

		avail := unitLen - uint64(within)
		want := uint64(len(p) - total)
		if want > avail {
			want = avail
		}
		n, err := s.file.store.Write(p[total : total+int(want)])
		total += n
		s.pos += uint64(n)
		if err != nil {
			return total, cfberr.IO(err)
		}
	}

	if s.pos > entry.streamLen {
		if err := s.setStreamLen(s.pos); err != nil {
			return total, err
		}
	}
	return total, nil
}

// ensureCapacity grows the stream's chain, allocating a first sector if
// the stream is currently empty, so that offset falls within an
// allocated unit.
func (s *Stream) ensureCapacity(offset uint64) error {
	entry := s.entry()
	mini := s.isMini()
	var unitLen uint64
	if mini {
		unitLen = miniSectorLen
	} else {
		unitLen = uint64(s.file.version.SectorLen())
	}

	if entry.startSector == endOfChain {
		var first uint32
		var err error
		if mini {
			first, err = s.file.allocateMiniSector(endOfChain)
		} else {
			first, err = s.file.allocateSector(endOfChain)
		}
		if err != nil {
			return err
		}
		if err := s.setStartSector(first); err != nil {
			return err
		}
		entry = s.entry()
	}

	neededUnits := offset/unitLen + 1
	chain := s.file.fat
	if mini {
		chain = s.file.minifat
	}
	haveUnits := uint64(1)
	sector := entry.startSector
	for chain[sector] != endOfChain {
		haveUnits++
		sector = chain[sector]
	}
	for haveUnits < neededUnits {
		var err error
		if mini {
			sector, err = s.file.extendMiniChain(sector)
		} else {
			sector, err = s.file.extendChain(sector)
		}
		if err != nil {
			return err
		}
		haveUnits++
	}
	return nil
}

// setStartSector writes a fresh start_sector for the stream both in
// memory and at its canonical on-disk offset.
func (s *Stream) setStartSector(sector uint32) error {
	if err := s.file.seekWithinDirEntry(s.streamID, 116); err != nil {
		return err
	}
	if err := writeU32(s.file.store, sector); err != nil {
		return err
	}
	s.entry().startSector = sector
	return nil
}

// setStreamLen writes a fresh stream_len for the stream both in memory
// and at its canonical on-disk offset.
func (s *Stream) setStreamLen(length uint64) error {
	if err := s.file.seekWithinDirEntry(s.streamID, 120); err != nil {
		return err
	}
	if err := writeU64(s.file.store, length); err != nil {
		return err
	}
	s.entry().streamLen = length
	return nil
}

// Flush runs the directory-entry finisher: every Write call already
// writes its data through to the backing store, but modified_time is
// only rewritten here, once, rather than on every byte written (spec
// §4.7). It is a no-op if the stream has not been written to since the
// last Flush.
func (s *Stream) Flush() error {
	if !s.dirty {
		return nil
	}
	now := filetime.NowTicks()
	if err := s.file.seekWithinDirEntry(s.streamID, 108); err != nil {
		return err
	}
	if err := writeU64(s.file.store, now); err != nil {
		return err
	}
	s.entry().modifiedTime = now
	s.dirty = false
	return nil
}

// Close runs the finisher best-effort (mirroring the original's Drop,
// which cannot propagate an error) and releases the single-stream-open
// lock, allowing another Stream to be opened on the same File. Callers
// that need to observe a finisher failure should call Flush explicitly
// before Close.
func (s *Stream) Close() error {
	_ = s.Flush()
	s.file.streamOpen = false
	return nil
}
