package fastsizer

import (
	"errors"
	"io"
	"slices"

	"github.com/link2xt/image-meta/lib/image/meta"
)

// Smallest read made from a stream source, so that sniffing a header does not
// turn into many tiny reads.
const minRead = 512

// Largest read made from a stream source. Offsets come from the file, so the
// buffer only grows by what has actually been received.
const maxRead = 64 << 10

// readerAt gives random access to the image being sized. Sources which
// support it (files, bytes.Reader) are read in place; anything else is
// buffered as far as the furthest offset asked for, and no further.
type readerAt struct {
	at io.ReaderAt

	r   io.Reader
	buf []byte
	err error

	// Position of the sequential ReadByte and ReadFull calls.
	pos int64
}

func newReaderAt(r io.Reader) *readerAt {
	if at, ok := r.(io.ReaderAt); ok {
		return &readerAt{at: at}
	}
	return &readerAt{r: r}
}

func (ra *readerAt) fill(n int64) {
	for int64(len(ra.buf)) < n && ra.err == nil {
		want := n - int64(len(ra.buf))
		if want < minRead {
			want = minRead
		}
		if want > maxRead {
			want = maxRead
		}
		start := len(ra.buf)
		ra.buf = slices.Grow(ra.buf, int(want))
		m, err := ra.r.Read(ra.buf[start : start+int(want)])
		ra.buf = ra.buf[:start+m]
		if err != nil {
			ra.err = err
		}
	}
}

func (ra *readerAt) ReadAt(p []byte, off int64) (int, error) {
	if ra.at != nil {
		return ra.at.ReadAt(p, off)
	}
	if off < 0 {
		return 0, errors.New("fastsizer: negative offset")
	}

	ra.fill(off + int64(len(p)))
	n := 0
	if off < int64(len(ra.buf)) {
		n = copy(p, ra.buf[off:])
	}
	if n < len(p) {
		if ra.err == nil {
			return n, io.ErrUnexpectedEOF
		}
		return n, ra.err
	}
	return n, nil
}

// Slice returns n bytes at offset, and moves the sequential position to the
// end of them.
func (ra *readerAt) Slice(offset int64, n int) ([]byte, error) {
	b := make([]byte, n)
	m, err := ra.ReadAt(b, offset)
	if m < n {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return nil, meta.WrapIO(err)
	}
	ra.pos = offset + int64(n)
	return b, nil
}

func (ra *readerAt) ReadByte() (byte, error) {
	b, err := ra.Slice(ra.pos, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (ra *readerAt) ReadFull(p []byte) (int, error) {
	b, err := ra.Slice(ra.pos, len(p))
	if err != nil {
		return 0, err
	}
	return copy(p, b), nil
}

// ReadSeeker returns a view of the whole source as an io.ReadSeeker, starting
// at offset 0.
func (ra *readerAt) ReadSeeker() io.ReadSeeker {
	return io.NewSectionReader(ra, 0, 1<<63-1)
}
