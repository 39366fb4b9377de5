package fastsizer

import (
	"encoding/binary"

	"github.com/link2xt/image-meta/lib/image/meta"
)

// RIFF header, then the first chunk's header.
const webpChunkOffset = 12

const vp8xAnimationFlag = 0x02

func (f *decoder) getWEBPImageMeta() (meta.Dimensions, *uint, error) {
	chunk, err := f.reader.Slice(webpChunkOffset, 8)
	if err != nil {
		return meta.Dimensions{}, nil, err
	}

	switch string(chunk[0:4]) {
	case "VP8 ":
		// Frame tag (3), start code (3), then 14 bit dimensions.
		slice, err := f.reader.Slice(26, 4)
		if err != nil {
			return meta.Dimensions{}, nil, err
		}
		return meta.Dimensions{
			Width:  uint32(slice[1]&0x3f)<<8 | uint32(slice[0]),
			Height: uint32(slice[3]&0x3f)<<8 | uint32(slice[2]),
		}, nil, nil
	case "VP8L":
		// Signature byte 0x2f, then width-1 and height-1 packed into 14 bits each.
		slice, err := f.reader.Slice(20, 5)
		if err != nil {
			return meta.Dimensions{}, nil, err
		}
		if slice[0] != 0x2f {
			return meta.Dimensions{}, nil, meta.Corrupt("bad VP8L signature: 0x%02x", slice[0])
		}
		bits := binary.LittleEndian.Uint32(slice[1:5])
		return meta.Dimensions{
			Width:  bits&0x3fff + 1,
			Height: (bits>>14)&0x3fff + 1,
		}, nil, nil
	case "VP8X":
		return f.getVP8XImageMeta()
	default:
		return meta.Dimensions{}, nil, meta.Corrupt("unknown WebP chunk: %q", chunk[0:4])
	}
}

// Extended format: flags, reserved, then the 24 bit canvas size (minus one).
// Animated files hold one ANMF chunk per frame.
func (f *decoder) getVP8XImageMeta() (meta.Dimensions, *uint, error) {
	slice, err := f.reader.Slice(20, 10)
	if err != nil {
		return meta.Dimensions{}, nil, err
	}
	size := meta.Dimensions{
		Width:  (uint32(slice[4]) | uint32(slice[5])<<8 | uint32(slice[6])<<16) + 1,
		Height: (uint32(slice[7]) | uint32(slice[8])<<8 | uint32(slice[9])<<16) + 1,
	}
	if slice[0]&vp8xAnimationFlag == 0 {
		return size, nil, nil
	}

	riff, err := f.reader.Slice(4, 4)
	if err != nil {
		return meta.Dimensions{}, nil, err
	}
	end := 8 + int64(binary.LittleEndian.Uint32(riff))

	var frames uint
	offset := int64(webpChunkOffset)
	for offset < end {
		chunk, err := f.reader.Slice(offset, 8)
		if err != nil {
			return meta.Dimensions{}, nil, err
		}
		if string(chunk[0:4]) == "ANMF" {
			frames++
		}
		// Chunk payloads are padded to an even length.
		length := int64(binary.LittleEndian.Uint32(chunk[4:8]))
		offset += 8 + length + length&1
	}
	return size, animationFrames(frames), nil
}
