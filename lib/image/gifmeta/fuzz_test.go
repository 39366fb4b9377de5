package gifmeta

import (
	"errors"
	"testing"

	"github.com/link2xt/image-meta/lib/image/meta"
)

func FuzzLoad(f *testing.F) {
	f.Add([]byte("GIF89a"))
	f.Add(newGif("GIF87a", 1, 1, 0).trailer().Bytes())
	f.Add(newGif("GIF89a", 2, 3, 0x81).extension(0xff, 11, 3).image(0x80, 4).image(0, 1).trailer().Bytes())

	f.Fuzz(func(t *testing.T, data []byte) {
		m, err := LoadBytes(data)
		if err == nil {
			if m == nil || m.Format != meta.Gif {
				t.Fatalf("no metadata without an error: %v", m)
			}
			if m.AnimationFrames != nil && *m.AnimationFrames < 2 {
				t.Fatalf("animation with %d frames", *m.AnimationFrames)
			}
			return
		}

		var corrupt *meta.CorruptImageError
		var ioErr *meta.IOError
		if !errors.Is(err, meta.ErrInvalidSignature) && !errors.As(err, &corrupt) && !errors.As(err, &ioErr) {
			t.Fatalf("unexpected error type %T: %s", err, err)
		}
	})
}
