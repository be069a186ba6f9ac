package cfb

// Sizes of the fixed-layout structures that make up a compound file.
const (
	headerLen             = 512 // length of the CFB file header, in bytes
	dirEntryLen           = 128 // length of a directory entry, in bytes
	numDIFATEntriesInHead = 109 // DIFAT entries that fit in the header
	miniSectorShift       = 6   // 64-byte mini-sectors
	miniSectorLen         = 1 << miniSectorShift
	miniStreamCutoff      = 4096 // streams >= this live in regular sectors
)

// magicNumber is the CFB file signature, at header offset 0.
var magicNumber = [8]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

const (
	minorVersion  uint16 = 0x003E
	byteOrderMark uint16 = 0xFFFE
)

// Sentinel values used in the FAT, DIFAT, and MiniFAT (MS-CFB 2.1).
const (
	maxRegularSector uint32 = 0xFFFFFFFA // highest valid regular sector number
	difatSector      uint32 = 0xFFFFFFFC // marks a sector that holds DIFAT entries
	fatSector        uint32 = 0xFFFFFFFD // marks a sector that holds FAT entries
	endOfChain       uint32 = 0xFFFFFFFE // terminates a sector chain
	freeSector       uint32 = 0xFFFFFFFF // unallocated sector
)

// Sentinel values and object types used in directory entries.
const (
	rootDirName         = "Root Entry"
	objTypeUnallocated  = uint8(0)
	objTypeStorage      = uint8(1)
	objTypeStream       = uint8(2)
	objTypeRoot         = uint8(5)
	colorRed            = uint8(0)
	colorBlack          = uint8(1)
	rootStreamID        = uint32(0)
	maxRegularStreamID  = uint32(0xFFFFFFFA)
	noStream            = uint32(0xFFFFFFFF)
)
