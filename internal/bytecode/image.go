package bytecode

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when Image format changes
const imageSchemaVersion uint16 = 1

const imageMagic = "LOXC"

// ImageExt is the file extension of compiled chunk images.
const ImageExt = ".loxc"

// ErrBadImage reports a chunk image that cannot be loaded.
var ErrBadImage = errors.New("bad chunk image")

// Image is the on-disk form of a compiled chunk.
type Image struct {
	Magic      string
	Schema     uint16
	Source     string   // путь исходника, только для сообщений
	SourceHash [32]byte // sha256 исходника вместе с сентинелем
	Slots      uint32
	Chunk      *Chunk
}

// NewImage wraps chunk for serialisation.
func NewImage(chunk *Chunk, sourcePath string, hash [32]byte) (*Image, error) {
	slots, err := safecast.Conv[uint32](chunk.Len())
	if err != nil {
		return nil, fmt.Errorf("chunk too large: %w", err)
	}
	return &Image{
		Magic:      imageMagic,
		Schema:     imageSchemaVersion,
		Source:     sourcePath,
		SourceHash: hash,
		Slots:      slots,
		Chunk:      chunk,
	}, nil
}

// EncodeImage serialises img with msgpack.
func EncodeImage(w io.Writer, img *Image) error {
	return msgpack.NewEncoder(w).Encode(img)
}

// DecodeImage reads an image and validates its header and chunk.
func DecodeImage(r io.Reader) (*Image, error) {
	var img Image
	if err := msgpack.NewDecoder(r).Decode(&img); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadImage, err)
	}
	if img.Magic != imageMagic {
		return nil, fmt.Errorf("%w: magic %q", ErrBadImage, img.Magic)
	}
	if img.Schema != imageSchemaVersion {
		return nil, fmt.Errorf("%w: schema %d, want %d", ErrBadImage, img.Schema, imageSchemaVersion)
	}
	if img.Chunk == nil {
		return nil, fmt.Errorf("%w: no chunk", ErrBadImage)
	}
	if int(img.Slots) != img.Chunk.Len() {
		return nil, fmt.Errorf("%w: header says %d slots, chunk has %d", ErrBadImage, img.Slots, img.Chunk.Len())
	}
	if err := img.Chunk.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadImage, err)
	}
	return &img, nil
}

// WriteImageFile writes img to path through a temp file and an atomic rename.
func WriteImageFile(path string, img *Image) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*.loxc")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()

	if err = EncodeImage(f, img); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), path)
}

// ReadImageFile loads and validates an image from path.
func ReadImageFile(path string) (*Image, error) {
	// #nosec G304 -- path is provided by the caller
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeImage(f)
}

// IsImagePath reports whether path names a chunk image.
func IsImagePath(path string) bool {
	return filepath.Ext(path) == ImageExt
}
