package fastsizer

import (
	"bytes"
	"io"

	"github.com/link2xt/image-meta/lib/image/meta"
)

// FastImage reads image metadata. It holds no state, and can be used from
// multiple goroutines at once.
type FastImage struct {
}

// NewFastSizer returns a FastImage client
func NewFastSizer() *FastImage {
	return &FastImage{}
}

type decoder struct {
	reader *readerAt
}

// Enough to tell every supported format apart.
const sniffLen = 12

var heifBrands = []string{"heic", "heix", "mif1", "msf1", "avif"}

// Detect the format of an image, and read its metadata.
// The image must start at offset 0 of reader. Returns
// meta.ErrUnsupportedFormat if the format isn't known.
func (f *FastImage) Detect(reader io.Reader) (*meta.ImageMeta, error) {
	d := &decoder{reader: newReaderAt(reader)}

	typebuf := make([]byte, sniffLen)
	n, err := d.reader.ReadAt(typebuf, 0)
	if n == 0 && err != nil {
		return nil, meta.WrapIO(err)
	}
	typebuf = typebuf[:n]

	m := &meta.ImageMeta{Format: sniff(typebuf)}
	switch m.Format {
	case meta.Bmp:
		m.Dimensions, err = d.getBMPImageSize()
	case meta.Gif:
		return d.getGIFImageMeta()
	case meta.Jpeg:
		m.Dimensions, err = d.getJPEGImageSize()
	case meta.Png:
		m.Dimensions, m.AnimationFrames, err = d.getPNGImageMeta()
	case meta.Webp:
		m.Dimensions, m.AnimationFrames, err = d.getWEBPImageMeta()
	case meta.Heif:
		m.Dimensions, err = d.getHEIFImageSize()
	default:
		return nil, meta.ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func sniff(typebuf []byte) meta.Format {
	switch {
	case bytes.HasPrefix(typebuf, []byte("BM")):
		return meta.Bmp
	case bytes.HasPrefix(typebuf, []byte("GIF8")):
		return meta.Gif
	case bytes.HasPrefix(typebuf, []byte{0xff, 0xd8}):
		return meta.Jpeg
	case bytes.HasPrefix(typebuf, []byte{0x89, 'P', 'N', 'G'}):
		return meta.Png
	case len(typebuf) >= 12 && string(typebuf[0:4]) == "RIFF" && string(typebuf[8:12]) == "WEBP":
		return meta.Webp
	case len(typebuf) >= 12 && string(typebuf[4:8]) == "ftyp":
		for _, brand := range heifBrands {
			if string(typebuf[8:12]) == brand {
				return meta.Heif
			}
		}
	}
	return meta.Unknown
}

// Frames pointer for an animation, nil for a still image.
func animationFrames(n uint) *uint {
	if n > 1 {
		return &n
	}
	return nil
}
