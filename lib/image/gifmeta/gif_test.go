package gifmeta

import (
	"bytes"
	"errors"
	"image"
	"image/color/palette"
	"image/gif"
	"io"
	"testing"

	"github.com/link2xt/image-meta/lib/image/meta"
	"github.com/stvp/assert"
)

func frames(n uint) *uint {
	return &n
}

func TestSignature(t *testing.T) {
	tests := []struct {
		signature string
		err       error
	}{
		{"GIF87a", nil},
		{"GIF89a", nil},
		{"GIF88a", meta.ErrInvalidSignature},
		{"gif89a", meta.ErrInvalidSignature},
		{"\x89PNG\r\n", meta.ErrInvalidSignature},
		{"GIF89b", meta.ErrInvalidSignature},
	}

	for _, tc := range tests {
		c := &cursor{r: bytes.NewReader([]byte(tc.signature + "rest"))}
		err := readSignature(c)
		assert.Equal(t, err, tc.err, tc.signature)

		// Six bytes are consumed whatever the outcome.
		pos, _ := c.r.Seek(0, io.SeekCurrent)
		assert.Equal(t, pos, int64(6))
	}
}

func TestShortSignature(t *testing.T) {
	_, err := LoadBytes([]byte("GIF"))
	var ioErr *meta.IOError
	assert.True(t, errors.As(err, &ioErr))
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))

	_, err = LoadBytes(nil)
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
}

func TestColorTableSize(t *testing.T) {
	tests := []struct {
		flags byte
		size  int64
	}{
		{0x00, 0},
		{0x07, 0},
		{0x7f, 0},
		{0x80, 6},
		{0x81, 12},
		{0x82, 24},
		{0x85, 192},
		{0x87, 768},
		{0xf7, 768},
		{0x88, 6},
	}

	for _, tc := range tests {
		assert.Equal(t, ColorTableSize(tc.flags), tc.size)
	}
}

func TestColorTableSizeProperties(t *testing.T) {
	for b := 0; b < 256; b++ {
		flags := byte(b)
		size := ColorTableSize(flags)
		assert.True(t, size >= 0)
		assert.Equal(t, size%3, int64(0))
		assert.Equal(t, size, int64(0x80&flags>>7)*3*(2<<(flags&0x07)))

		if flags&0x80 != 0 && flags&0x07 != 0 {
			assert.True(t, size > ColorTableSize(flags-1))
		}
	}
}

func TestMinimal(t *testing.T) {
	b := newGif("GIF87a", 320, 240, 0).trailer()

	m, err := LoadBytes(b.Bytes())
	assert.Nil(t, err)
	assert.Equal(t, m, &meta.ImageMeta{
		Dimensions: meta.Dimensions{Width: 320, Height: 240},
		Format:     meta.Gif,
	})
	assert.False(t, m.IsAnimated())
}

func TestDimensionsAreLittleEndian(t *testing.T) {
	b := newGif("GIF89a", 0xfffe, 0x0102, 0).trailer()

	m, err := LoadBytes(b.Bytes())
	assert.Nil(t, err)
	assert.Equal(t, m.Dimensions, meta.Dimensions{Width: 65534, Height: 258})
}

func TestFrameCount(t *testing.T) {
	for n := uint(0); n <= 10; n++ {
		b := newGif("GIF89a", 10, 10, 0x81)
		for i := uint(0); i < n; i++ {
			b.extension(0xf9, 4)
			b.image(0, 1, 255)
		}
		b.trailer()

		m, err := LoadBytes(b.Bytes())
		assert.Nil(t, err)
		if n > 1 {
			assert.Equal(t, m.AnimationFrames, frames(n))
			assert.Equal(t, m.Frames(), n)
		} else {
			assert.True(t, m.AnimationFrames == nil)
			assert.Equal(t, m.Frames(), uint(1))
		}
	}
}

func TestTwoImagesWithEmptyData(t *testing.T) {
	b := newGif("GIF89a", 1, 1, 0).image(0).image(0).trailer()

	m, err := LoadBytes(b.Bytes())
	assert.Nil(t, err)
	assert.Equal(t, m.AnimationFrames, frames(2))
}

func TestLocalColorTable(t *testing.T) {
	tests := []struct {
		name  string
		flags byte
	}{
		{"absent", 0x00},
		{"absent with size bits", 0x07},
		{"smallest", 0x80},
		{"largest", 0x87},
		{"interlaced", 0xc3},
	}

	for _, tc := range tests {
		b := newGif("GIF89a", 4, 4, 0).image(tc.flags, 3).image(tc.flags, 3).trailer()
		m, err := LoadBytes(b.Bytes())
		assert.Nil(t, err, tc.name)
		assert.Equal(t, m.AnimationFrames, frames(2), tc.name)
	}
}

func TestUnknownBlock(t *testing.T) {
	b := newGif("GIF89a", 1, 1, 0)
	b.WriteByte(0x00)
	b.WriteByte(0x3b)

	r := bytes.NewReader(b.Bytes())
	_, err := Load(r)
	assert.Equal(t, err, error(&meta.CorruptImageError{Detail: "unknown block: 0x00"}))
	assert.Equal(t, err.Error(), "corrupt image: unknown block: 0x00")

	// The bad byte was read, nothing after it.
	assert.Equal(t, r.Len(), 1)
}

func TestUnknownBlockAfterImage(t *testing.T) {
	b := newGif("GIF89a", 1, 1, 0).image(0, 5)
	b.WriteByte(0x2b)

	_, err := LoadBytes(b.Bytes())
	var corrupt *meta.CorruptImageError
	assert.True(t, errors.As(err, &corrupt))
	assert.Equal(t, corrupt.Detail, "unknown block: 0x2b")
}

func TestExtensions(t *testing.T) {
	tests := []struct {
		label byte
		sizes []int
		err   error
	}{
		{0x01, []int{12, 30}, nil},
		{0xf9, []int{4}, nil},
		{0xfe, []int{255, 255, 1}, nil},
		{0xff, []int{11, 3}, nil},
		{0xff, nil, nil},
		{0x02, []int{4}, &meta.CorruptImageError{Detail: "unknown extension: 0x02"}},
		{0x00, nil, &meta.CorruptImageError{Detail: "unknown extension: 0x00"}},
		{0xf8, nil, &meta.CorruptImageError{Detail: "unknown extension: 0xf8"}},
	}

	for _, tc := range tests {
		b := newGif("GIF89a", 7, 9, 0x80).extension(tc.label, tc.sizes...).image(0, 1).trailer()
		m, err := LoadBytes(b.Bytes())
		if tc.err != nil {
			assert.Equal(t, err, tc.err)
			assert.True(t, m == nil)
			continue
		}
		assert.Nil(t, err)
		assert.Equal(t, m.Dimensions, meta.Dimensions{Width: 7, Height: 9})
		assert.True(t, m.AnimationFrames == nil)
	}
}

func TestTruncated(t *testing.T) {
	b := newGif("GIF89a", 16, 16, 0x82).
		extension(0xff, 11, 3).
		extension(0xf9, 4).
		image(0x81, 20, 7).
		extension(0xfe, 5).
		image(0, 9).
		trailer()
	full := b.Bytes()

	m, err := LoadBytes(full)
	assert.Nil(t, err)
	assert.Equal(t, m.AnimationFrames, frames(2))

	for i := 0; i < len(full); i++ {
		m, err := LoadBytes(full[:i])
		assert.True(t, m == nil)

		var ioErr *meta.IOError
		assert.True(t, errors.As(err, &ioErr))
		assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	}
}

type failingSeeker struct {
	*bytes.Reader
	err error
}

func (f *failingSeeker) Seek(offset int64, whence int) (int64, error) {
	return 0, f.err
}

func TestSeekFailure(t *testing.T) {
	seekErr := errors.New("seek failed")
	b := newGif("GIF89a", 1, 1, 0).trailer()

	_, err := Load(&failingSeeker{Reader: bytes.NewReader(b.Bytes()), err: seekErr})
	assert.Equal(t, err, error(&meta.IOError{Err: seekErr}))
	assert.True(t, errors.Is(err, seekErr))
}

func encodeGif(t *testing.T, n int) []byte {
	g := &gif.GIF{}
	for i := 0; i < n; i++ {
		img := image.NewPaletted(image.Rect(0, 0, 40, 30), palette.Plan9)
		img.SetColorIndex(i, i, uint8(i))
		g.Image = append(g.Image, img)
		g.Delay = append(g.Delay, 10)
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		t.Fatalf("encoding gif: %s", err)
	}
	return buf.Bytes()
}

func TestEncodedGif(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		m, err := LoadBytes(encodeGif(t, n))
		assert.Nil(t, err)
		assert.Equal(t, m.Dimensions, meta.Dimensions{Width: 40, Height: 30})
		assert.Equal(t, m.Frames(), uint(n))

		g, err := gif.DecodeAll(bytes.NewReader(encodeGif(t, n)))
		assert.Nil(t, err)
		assert.Equal(t, int(m.Frames()), len(g.Image))
	}
}
