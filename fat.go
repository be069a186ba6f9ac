package cfb

import cfberr "github.com/dargueta/cfb/errors"

// allocateSector allocates a FAT entry set to value and returns its
// sector number, per spec §4.3's allocation policy: reuse the lowest
// free slot if one exists; otherwise grow the FAT (appending a new FAT
// sector first if the FAT itself has no room) and mint a new,
// zero-filled sector at the end of the file.
func (f *File) allocateSector(value uint32) (uint32, error) {
	if slot, ok := f.fatIx.firstFree(); ok {
		sector := uint32(slot)
		if err := f.setFAT(sector, value); err != nil {
			return 0, err
		}
		return sector, nil
	}

	entriesPerSector := f.version.fatEntriesPerSector()
	if len(f.fat)%entriesPerSector == 0 {
		if err := f.appendFATSector(); err != nil {
			return 0, err
		}
	}

	newSector := uint32(len(f.fat))
	if err := f.setFAT(newSector, value); err != nil {
		return 0, err
	}
	if err := f.seekToSector(newSector); err != nil {
		return 0, err
	}
	if err := writeZeros(f.store, f.version.SectorLen()); err != nil {
		return 0, err
	}
	return newSector, nil
}

// extendChain walks forward from anySectorInChain to the end of its
// chain, allocates a new sector, and repoints the old tail to it,
// returning the new tail.
func (f *File) extendChain(anySectorInChain uint32) (uint32, error) {
	last := anySectorInChain
	for f.fat[last] != endOfChain {
		last = f.fat[last]
	}
	newSector, err := f.allocateSector(endOfChain)
	if err != nil {
		return 0, err
	}
	if err := f.setFAT(last, newSector); err != nil {
		return 0, err
	}
	return newSector, nil
}

// setFAT sets fat[index] = value both in memory and at its canonical
// on-disk offset (write-through). index may equal len(fat), in which
// case the FAT grows by one entry.
func (f *File) setFAT(index uint32, value uint32) error {
	entriesPerSector := f.version.fatEntriesPerSector()
	fatSec := f.difat[int(index)/entriesPerSector]
	offset := 4 * (int(index) % entriesPerSector)
	if err := f.seekWithinSector(fatSec, uint32(offset)); err != nil {
		return err
	}
	if err := writeU32(f.store, value); err != nil {
		return err
	}

	wasUsed := value != freeSector
	if int(index) == len(f.fat) {
		f.fat = append(f.fat, value)
		f.fatIx.grow(len(f.fat), func(i int) bool {
			if i == int(index) {
				return wasUsed
			}
			return f.fat[i] != freeSector
		})
	} else {
		f.fat[index] = value
		if wasUsed {
			f.fatIx.markUsed(int(index))
		} else {
			f.fatIx.markFree(int(index))
		}
	}
	return nil
}

// appendFATSector appends a fresh, zero-filled sector to the file,
// marks it as holding FAT entries, and records it in the DIFAT at its
// canonical location. Only the first 109 DIFAT entries (those living in
// the header) are supported; beyond that this fails with
// cfberr.ErrUnsupported rather than silently mis-writing a DIFAT
// overflow sector (spec §4.3/§9).
func (f *File) appendFATSector() error {
	newFATSector := uint32(len(f.fat))
	if err := f.seekToSector(newFATSector); err != nil {
		return err
	}
	if err := writeZeros(f.store, f.version.SectorLen()); err != nil {
		return err
	}

	difatIndex := len(f.difat)
	if difatIndex >= numDIFATEntriesInHead {
		return cfberr.ErrUnsupported.WithMessage(
			"more than 109 FAT sectors requires DIFAT sector chaining, which is not supported")
	}
	f.difat = append(f.difat, newFATSector)
	if err := seekAbsolute(f.store, 76+4*int64(difatIndex)); err != nil {
		return err
	}
	if err := writeU32(f.store, newFATSector); err != nil {
		return err
	}

	if err := f.setFAT(newFATSector, fatSector); err != nil {
		return err
	}

	if err := seekAbsolute(f.store, 44); err != nil {
		return err
	}
	return writeU32(f.store, uint32(len(f.difat)))
}
