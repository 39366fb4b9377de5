package fastsizer

import (
	"encoding/binary"

	"github.com/link2xt/image-meta/lib/image/meta"
)

// Signature, then the IHDR chunk's length and type.
const pngIHDROffset = 8

// getPNGImageMeta reads the size from IHDR, then walks the chunks before the
// image data looking for an acTL chunk, which marks an animated PNG.
func (f *decoder) getPNGImageMeta() (meta.Dimensions, *uint, error) {
	header, err := f.reader.Slice(pngIHDROffset, 16)
	if err != nil {
		return meta.Dimensions{}, nil, err
	}
	if string(header[4:8]) != "IHDR" {
		return meta.Dimensions{}, nil, meta.Corrupt("first chunk is %q, not IHDR", header[4:8])
	}
	size := meta.Dimensions{
		Width:  binary.BigEndian.Uint32(header[8:12]),
		Height: binary.BigEndian.Uint32(header[12:16]),
	}

	offset := int64(pngIHDROffset)
	for {
		chunk, err := f.reader.Slice(offset, 8)
		if err != nil {
			return meta.Dimensions{}, nil, err
		}
		length := int64(binary.BigEndian.Uint32(chunk[0:4]))

		switch string(chunk[4:8]) {
		case "acTL":
			frames, err := f.reader.Slice(offset+8, 4)
			if err != nil {
				return meta.Dimensions{}, nil, err
			}
			return size, animationFrames(uint(binary.BigEndian.Uint32(frames))), nil
		case "IDAT", "IEND":
			return size, nil, nil
		}

		// length, type, data, crc
		offset += 8 + length + 4
	}
}
