package gifmeta

import (
	"encoding/binary"
	"io"

	"github.com/link2xt/image-meta/lib/image/meta"
)

// cursor reads forward through a GIF stream. Every failure it returns is a
// *meta.IOError.
type cursor struct {
	r   io.ReadSeeker
	buf [2]byte
}

func (c *cursor) readFull(p []byte) error {
	_, err := io.ReadFull(c.r, p)
	return meta.WrapIO(err)
}

func (c *cursor) readByte() (byte, error) {
	if err := c.readFull(c.buf[:1]); err != nil {
		return 0, err
	}
	return c.buf[0], nil
}

func (c *cursor) readUint16() (uint16, error) {
	if err := c.readFull(c.buf[:2]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(c.buf[:2]), nil
}

// skip moves n bytes forward without reading them. Seeking past the end of
// the stream is not an error in itself; the next read reports it.
func (c *cursor) skip(n int64) error {
	if n == 0 {
		return nil
	}
	_, err := c.r.Seek(n, io.SeekCurrent)
	return meta.WrapIO(err)
}
