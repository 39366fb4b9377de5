package gifmeta

import (
	"github.com/link2xt/image-meta/lib/image/meta"
)

type blockType byte

const (
	blockExtension blockType = 0x21
	blockImage     blockType = 0x2c
	blockTrailer   blockType = 0x3b
)

type extensionLabel byte

const (
	extensionPlainText      extensionLabel = 0x01
	extensionGraphicControl extensionLabel = 0xf9
	extensionComment        extensionLabel = 0xfe
	extensionApplication    extensionLabel = 0xff
)

// walkBlocks reads blocks until the trailer, and returns the number of image
// descriptors seen. Each case leaves the cursor on the next block type byte.
func walkBlocks(c *cursor) (uint, error) {
	var frames uint
	for {
		b, err := c.readByte()
		if err != nil {
			return 0, err
		}

		switch blockType(b) {
		case blockExtension:
			if err := skipExtension(c); err != nil {
				return 0, err
			}
		case blockImage:
			if err := skipImage(c); err != nil {
				return 0, err
			}
			frames++
		case blockTrailer:
			return frames, nil
		default:
			return 0, meta.Corrupt("unknown block: 0x%02x", b)
		}
	}
}

// All extensions are skipped the same way, the label only has to be one GIF
// defines.
func skipExtension(c *cursor) error {
	label, err := c.readByte()
	if err != nil {
		return err
	}
	switch extensionLabel(label) {
	case extensionPlainText, extensionGraphicControl, extensionComment, extensionApplication:
	default:
		return meta.Corrupt("unknown extension: 0x%02x", label)
	}
	return skipSubBlocks(c)
}

// Image descriptor, after the separator:
//
//	2 left
//	2 top
//	2 width
//	2 height
//	1 packed fields
//
// then the local color table, the LZW minimum code size and the image data
// sub-blocks.
func skipImage(c *cursor) error {
	if err := c.skip(8); err != nil {
		return err
	}
	flags, err := c.readByte()
	if err != nil {
		return err
	}
	if err := c.skip(ColorTableSize(flags)); err != nil {
		return err
	}
	// LZW minimum code size, present with or without a local table.
	if err := c.skip(1); err != nil {
		return err
	}
	return skipSubBlocks(c)
}

// skipSubBlocks skips a sequence of length prefixed sub-blocks, up to and
// including the zero length terminator.
func skipSubBlocks(c *cursor) error {
	for {
		size, err := c.readByte()
		if err != nil {
			return err
		}
		if size == 0 {
			return nil
		}
		if err := c.skip(int64(size)); err != nil {
			return err
		}
	}
}
