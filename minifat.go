package cfb

// allocateMiniSector allocates a MiniFAT entry set to value and returns
// its mini-sector number, per spec §4.4's allocation policy: reuse the
// lowest free slot if one exists; otherwise grow the MiniFAT (lazily
// creating it, or extending its chain, as needed) and append a new
// mini-sector to the mini-stream.
func (f *File) allocateMiniSector(value uint32) (uint32, error) {
	if slot, ok := f.minifatIx.firstFree(); ok {
		miniSector := uint32(slot)
		if err := f.setMiniFAT(miniSector, value); err != nil {
			return 0, err
		}
		return miniSector, nil
	}

	entriesPerSector := f.version.fatEntriesPerSector()
	numMiniFATSectors := uint32(len(f.minifat) / entriesPerSector)

	if f.minifatStartSector == endOfChain {
		sector, err := f.allocateSector(endOfChain)
		if err != nil {
			return 0, err
		}
		f.minifatStartSector = sector
		if err := seekAbsolute(f.store, 60); err != nil {
			return 0, err
		}
		if err := writeU32(f.store, sector); err != nil {
			return 0, err
		}
		if err := seekAbsolute(f.store, 64); err != nil {
			return 0, err
		}
		if err := writeU32(f.store, numMiniFATSectors+1); err != nil {
			return 0, err
		}
	} else if len(f.minifat)%entriesPerSector == 0 {
		if _, err := f.extendChain(f.minifatStartSector); err != nil {
			return 0, err
		}
		if err := seekAbsolute(f.store, 64); err != nil {
			return 0, err
		}
		if err := writeU32(f.store, numMiniFATSectors+1); err != nil {
			return 0, err
		}
	}

	newMiniSector := uint32(len(f.minifat))
	if err := f.setMiniFAT(newMiniSector, value); err != nil {
		return 0, err
	}
	if err := f.appendMiniSector(); err != nil {
		return 0, err
	}
	return newMiniSector, nil
}

// extendMiniChain walks forward from anyMiniSectorInChain to the end of
// its chain, allocates a new mini-sector, and repoints the old tail to
// it, returning the new tail.
func (f *File) extendMiniChain(anyMiniSectorInChain uint32) (uint32, error) {
	last := anyMiniSectorInChain
	for f.minifat[last] != endOfChain {
		last = f.minifat[last]
	}
	newMiniSector, err := f.allocateMiniSector(endOfChain)
	if err != nil {
		return 0, err
	}
	if err := f.setMiniFAT(last, newMiniSector); err != nil {
		return 0, err
	}
	return newMiniSector, nil
}

// appendMiniSector grows the mini-stream by one 64-byte mini-sector,
// allocating or extending its regular-sector chain as needed, and bumps
// the root entry's stream_len both in memory and on disk.
func (f *File) appendMiniSector() error {
	miniStreamStartSector := f.rootEntry().startSector
	miniStreamLen := f.rootEntry().streamLen
	sectorLen := uint64(f.version.SectorLen())

	if miniStreamStartSector == endOfChain {
		sector, err := f.allocateSector(endOfChain)
		if err != nil {
			return err
		}
		f.rootEntry().startSector = sector
		if err := f.seekWithinSector(f.directoryStartSector, 116); err != nil {
			return err
		}
		if err := writeU32(f.store, sector); err != nil {
			return err
		}
	} else if miniStreamLen%sectorLen == 0 {
		if _, err := f.extendChain(miniStreamStartSector); err != nil {
			return err
		}
	}

	f.rootEntry().streamLen += miniSectorLen
	if err := f.seekWithinSector(f.directoryStartSector, 120); err != nil {
		return err
	}
	return writeU64(f.store, f.rootEntry().streamLen)
}

// setMiniFAT sets minifat[index] = value both in memory and at its
// canonical on-disk offset, walking the MiniFAT's own (regular-sector)
// chain via the FAT to find the hosting sector.
func (f *File) setMiniFAT(index uint32, value uint32) error {
	entriesPerSector := f.version.fatEntriesPerSector()
	sector := f.minifatStartSector
	for i := 0; i < int(index)/entriesPerSector; i++ {
		sector = f.fat[sector]
	}
	offset := 4 * (int(index) % entriesPerSector)
	if err := f.seekWithinSector(sector, uint32(offset)); err != nil {
		return err
	}
	if err := writeU32(f.store, value); err != nil {
		return err
	}

	wasUsed := value != freeSector
	if int(index) == len(f.minifat) {
		f.minifat = append(f.minifat, value)
		f.minifatIx.grow(len(f.minifat), func(i int) bool {
			if i == int(index) {
				return wasUsed
			}
			return f.minifat[i] != freeSector
		})
	} else {
		f.minifat[index] = value
		if wasUsed {
			f.minifatIx.markUsed(int(index))
		} else {
			f.minifatIx.markFree(int(index))
		}
	}
	return nil
}
