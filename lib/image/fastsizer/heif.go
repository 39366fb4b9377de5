package fastsizer

import (
	"go4.org/media/heif"

	"github.com/link2xt/image-meta/lib/image/meta"
)

func (d *decoder) getHEIFImageSize() (meta.Dimensions, error) {
	file := heif.Open(d.reader)
	it, err := file.PrimaryItem()
	if err != nil {
		return meta.Dimensions{}, meta.Corrupt("heif: %s", err)
	}

	w, h, ok := it.VisualDimensions()
	if !ok {
		return meta.Dimensions{}, meta.Corrupt("cannot read heif dimensions")
	}

	return meta.Dimensions{Width: uint32(w), Height: uint32(h)}, nil
}
