// The gifmeta package reads the dimensions and frame count of a GIF image by
// walking its block structure. Pixel data is skipped, never decoded.
//
// The format is described at https://www.w3.org/Graphics/GIF/spec-gif89a.txt.
package gifmeta

import (
	"bytes"
	"io"

	"github.com/link2xt/image-meta/lib/image/meta"
)

var (
	gif87a = [6]byte{'G', 'I', 'F', '8', '7', 'a'}
	gif89a = [6]byte{'G', 'I', 'F', '8', '9', 'a'}
)

// Load reads the metadata of the GIF image at the current position of r.
// r is only ever read forward: seeks are relative and skip bytes which are
// not needed.
func Load(r io.ReadSeeker) (*meta.ImageMeta, error) {
	c := &cursor{r: r}

	if err := readSignature(c); err != nil {
		return nil, err
	}
	dimensions, err := readScreenDescriptor(c)
	if err != nil {
		return nil, err
	}
	frames, err := walkBlocks(c)
	if err != nil {
		return nil, err
	}

	m := &meta.ImageMeta{
		Dimensions: dimensions,
		Format:     meta.Gif,
	}
	if frames > 1 {
		m.AnimationFrames = &frames
	}
	return m, nil
}

// LoadBytes is Load over an in-memory GIF.
func LoadBytes(b []byte) (*meta.ImageMeta, error) {
	return Load(bytes.NewReader(b))
}

func readSignature(c *cursor) error {
	var sig [6]byte
	if err := c.readFull(sig[:]); err != nil {
		return err
	}
	switch sig {
	case gif87a, gif89a:
		return nil
	default:
		return meta.ErrInvalidSignature
	}
}

// Logical screen descriptor:
//
//	2 width
//	2 height
//	1 packed fields
//	1 background color index
//	1 pixel aspect ratio
//
// followed by the global color table, if the packed fields say there is one.
func readScreenDescriptor(c *cursor) (meta.Dimensions, error) {
	width, err := c.readUint16()
	if err != nil {
		return meta.Dimensions{}, err
	}
	height, err := c.readUint16()
	if err != nil {
		return meta.Dimensions{}, err
	}
	flags, err := c.readByte()
	if err != nil {
		return meta.Dimensions{}, err
	}
	if err := c.skip(ColorTableSize(flags) + 2); err != nil {
		return meta.Dimensions{}, err
	}

	return meta.Dimensions{Width: uint32(width), Height: uint32(height)}, nil
}

// ColorTableSize returns the length in bytes of the color table described by
// the packed fields byte of a screen or image descriptor: 0 if there is no
// table, otherwise 2^(n+1) RGB entries where n is the low three bits.
func ColorTableSize(flags byte) int64 {
	if flags&0x80 == 0 {
		return 0
	}
	entries := int64(2) << (flags & 0x07)
	return entries * 3
}
