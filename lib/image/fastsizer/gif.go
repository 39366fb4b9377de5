package fastsizer

import (
	"github.com/link2xt/image-meta/lib/image/gifmeta"
	"github.com/link2xt/image-meta/lib/image/meta"
)

// GIF needs a walk of the whole block stream to count frames.
func (f *decoder) getGIFImageMeta() (*meta.ImageMeta, error) {
	return gifmeta.Load(f.reader.ReadSeeker())
}
