package source

type (
	// FileID uniquely identifies a source buffer within a FileSet.
	FileID uint32
	// FileFlags encodes how a buffer was obtained and normalised.
	FileFlags uint8
)

const (
	// FileVirtual indicates the buffer came from memory (REPL line, test, stdin).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
	FileNormalizedNFC
)

// NoFile marks spans that belong to no buffer, e.g. a file that failed to load.
const NoFile FileID = ^FileID(0)

// Sentinel is the explicit end-of-input marker every scanned buffer ends with.
const Sentinel byte = 0

// File captures a source buffer and the metadata needed to report positions.
// Content always ends with exactly one Sentinel byte.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source buffer.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
