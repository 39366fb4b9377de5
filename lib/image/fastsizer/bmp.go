package fastsizer

import (
	"encoding/binary"

	"github.com/link2xt/image-meta/lib/image/meta"
)

// Size of the BITMAPCOREHEADER, which has 16 bit dimensions. Every later
// header version uses signed 32 bit ones.
const bmpCoreHeaderSize = 12

func (f *decoder) getBMPImageSize() (meta.Dimensions, error) {
	slice, err := f.reader.Slice(14, 12)
	if err != nil {
		return meta.Dimensions{}, err
	}

	if binary.LittleEndian.Uint32(slice[0:4]) == bmpCoreHeaderSize {
		return meta.Dimensions{
			Width:  uint32(binary.LittleEndian.Uint16(slice[4:6])),
			Height: uint32(binary.LittleEndian.Uint16(slice[6:8])),
		}, nil
	}

	// A negative height means rows are stored top down.
	height := int32(binary.LittleEndian.Uint32(slice[8:12]))
	if height < 0 {
		height = -height
	}
	return meta.Dimensions{
		Width:  binary.LittleEndian.Uint32(slice[4:8]),
		Height: uint32(height),
	}, nil
}
