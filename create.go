package cfb

// Create creates a new, empty compound file in store, using format
// Version 4. store should be initially empty.
func Create(store BackingStore) (*File, error) {
	return CreateWithVersion(store, V4)
}

// CreateWithVersion creates a new, empty compound file of the given
// version in store. store should be initially empty.
//
// The result is exactly the "Empty file produced by create" layout from
// spec §6: a header sector, one FAT sector, and one directory sector,
// with the root entry's mini-stream empty.
func CreateWithVersion(store BackingStore, version Version) (*File, error) {
	if err := writeInitialHeader(store, version); err != nil {
		return nil, err
	}

	sectorLen := version.SectorLen()
	entriesPerSector := sectorLen / 4

	fat := []uint32{fatSector, endOfChain}
	for _, v := range fat {
		if err := writeU32(store, v); err != nil {
			return nil, err
		}
	}
	for i := len(fat); i < entriesPerSector; i++ {
		if err := writeU32(store, freeSector); err != nil {
			return nil, err
		}
	}

	rootEntry := dirEntry{
		name:         rootDirName,
		objType:      objTypeRoot,
		color:        colorBlack,
		leftSibling:  noStream,
		rightSibling: noStream,
		child:        noStream,
		startSector:  endOfChain,
		streamLen:    0,
	}
	if err := rootEntry.write(store); err != nil {
		return nil, err
	}
	directory := []dirEntry{rootEntry}
	for i := 1; i < version.dirEntriesPerSector(); i++ {
		unalloc := unallocatedDirEntry()
		if err := unalloc.write(store); err != nil {
			return nil, err
		}
		directory = append(directory, unalloc)
	}

	f := &File{
		store:                store,
		version:              version,
		difat:                []uint32{0},
		fat:                  fat,
		minifatStartSector:   endOfChain,
		directory:            directory,
		directoryStartSector: 1,
		fatIx:                newAllocator(),
		minifatIx:            newAllocator(),
	}
	f.fatIx.grow(len(f.fat), func(i int) bool { return f.fat[i] != freeSector })
	return f, nil
}
