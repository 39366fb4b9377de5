package fastsizer

import (
	"github.com/link2xt/image-meta/lib/image/meta"
)

func (f *decoder) getJPEGImageSize() (meta.Dimensions, error) {
	var offset int64 = 2
	var err error
	tmp := make([]byte, 2)
	for {
		tmp, err = f.reader.Slice(offset, 2)
		if err != nil {
			return meta.Dimensions{}, err
		}
		offset += 2
		for tmp[0] != 0xff {
			tmp[0] = tmp[1]
			tmp[1], err = f.reader.ReadByte()
			if err != nil {
				return meta.Dimensions{}, err
			}
			offset++
		}
		marker := tmp[1]
		if marker == 0 {
			continue
		}
		for marker == 0xff {
			marker, err = f.reader.ReadByte()
			if err != nil {
				return meta.Dimensions{}, err
			}
			offset++
		}
		if marker == eoiMarker {
			break
		}
		if rst0Marker <= marker && marker <= rst7Marker {
			continue
		}
		_, err = f.reader.ReadFull(tmp)
		if err != nil {
			return meta.Dimensions{}, err
		}
		offset += 2
		n := int(tmp[0])<<8 + int(tmp[1]) - 2
		if n < 0 {
			return meta.Dimensions{}, meta.Corrupt("short jpeg segment length")
		}
		switch {
		case isSOFMarker(marker):
			// precision, height, width
			tmp, err = f.reader.Slice(offset, 5)
			if err != nil {
				return meta.Dimensions{}, err
			}
			return meta.Dimensions{
				Width:  uint32(tmp[3])<<8 | uint32(tmp[4]),
				Height: uint32(tmp[1])<<8 | uint32(tmp[2]),
			}, nil
		case marker == sosMarker:
			return meta.Dimensions{}, meta.Corrupt("jpeg scan before frame header")
		case marker < 0xc0:
			return meta.Dimensions{}, meta.Corrupt("unknown jpeg marker: 0x%02x", marker)
		default:
			// DHT, DQT, DRI, APPn, COM and the rest carry nothing we need.
			offset += int64(n)
		}
	}
	return meta.Dimensions{}, meta.Corrupt("jpeg has no frame header")
}

// Start Of Frame markers are 0xc0 to 0xcf, except for DHT, JPG and DAC
// which share that range.
func isSOFMarker(marker byte) bool {
	if marker < sof0Marker || marker > sof15Marker {
		return false
	}
	return marker != dhtMarker && marker != jpgMarker && marker != dacMarker
}

const (
	sof0Marker  = 0xc0 // Start Of Frame (Baseline).
	dhtMarker   = 0xc4 // Define Huffman Table.
	jpgMarker   = 0xc8 // Reserved for JPEG extensions.
	dacMarker   = 0xcc // Define Arithmetic Coding.
	sof15Marker = 0xcf // Start Of Frame (Differential lossless, arithmetic).
	rst0Marker  = 0xd0 // ReSTart (0).
	rst7Marker  = 0xd7 // ReSTart (7).
	eoiMarker   = 0xd9 // End Of Image.
	sosMarker   = 0xda // Start Of Scan.
)
