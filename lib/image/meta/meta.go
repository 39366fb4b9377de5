package meta

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Dimensions holds the width and height of an image, in pixels.
type Dimensions struct {
	Width  uint32
	Height uint32
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// Format identifies the container an image was read from.
type Format uint8

const (
	Unknown Format = iota
	Bmp
	Gif
	Heif
	Jpeg
	Png
	Webp
)

var formatNames = [...]string{
	Unknown: "unknown",
	Bmp:     "bmp",
	Gif:     "gif",
	Heif:    "heif",
	Jpeg:    "jpeg",
	Png:     "png",
	Webp:    "webp",
}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("format(%d)", uint8(f))
}

func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Format) UnmarshalText(text []byte) error {
	name := strings.ToLower(string(text))
	for i, n := range formatNames {
		if n == name {
			*f = Format(i)
			return nil
		}
	}
	return fmt.Errorf("unknown image format %q", text)
}

// ImageMeta is the result of reading an image's metadata.
type ImageMeta struct {
	Dimensions Dimensions
	Format     Format

	// Number of frames in an animated image. nil for a still image: a single
	// frame is never reported as an animation of one.
	AnimationFrames *uint
}

// Whether the image has more than one frame.
func (m *ImageMeta) IsAnimated() bool {
	return m.AnimationFrames != nil
}

// Frames returns the number of frames in the image, which is 1 for a still
// image.
func (m *ImageMeta) Frames() uint {
	if m.AnimationFrames == nil {
		return 1
	}
	return *m.AnimationFrames
}

type imageMetaJSON struct {
	Width           uint32 `json:"width"`
	Height          uint32 `json:"height"`
	Format          Format `json:"format"`
	AnimationFrames *uint  `json:"animation_frames,omitempty"`
}

func (m ImageMeta) MarshalJSON() ([]byte, error) {
	return json.Marshal(imageMetaJSON{
		Width:           m.Dimensions.Width,
		Height:          m.Dimensions.Height,
		Format:          m.Format,
		AnimationFrames: m.AnimationFrames,
	})
}

func (m *ImageMeta) UnmarshalJSON(data []byte) error {
	var j imageMetaJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	*m = ImageMeta{
		Dimensions:      Dimensions{Width: j.Width, Height: j.Height},
		Format:          j.Format,
		AnimationFrames: j.AnimationFrames,
	}
	return nil
}

func (m ImageMeta) String() string {
	if m.AnimationFrames != nil {
		return fmt.Sprintf("%s %s frames=%d", m.Format, m.Dimensions, *m.AnimationFrames)
	}
	return fmt.Sprintf("%s %s", m.Format, m.Dimensions)
}
