package gifmeta

import (
	"bytes"
	"encoding/binary"
)

// gifBuilder writes GIF block structure for tests. Payload bytes are filler;
// only the lengths matter to the reader.
type gifBuilder struct {
	bytes.Buffer
}

func newGif(signature string, width, height uint16, flags byte) *gifBuilder {
	b := &gifBuilder{}
	b.WriteString(signature)
	binary.Write(b, binary.LittleEndian, width)
	binary.Write(b, binary.LittleEndian, height)
	b.WriteByte(flags)
	b.WriteByte(0) // background color index
	b.WriteByte(0) // pixel aspect ratio
	b.Write(bytes.Repeat([]byte{0xaa}, int(ColorTableSize(flags))))
	return b
}

func (b *gifBuilder) subBlocks(sizes ...int) *gifBuilder {
	for _, size := range sizes {
		b.WriteByte(byte(size))
		b.Write(bytes.Repeat([]byte{0x55}, size))
	}
	b.WriteByte(0)
	return b
}

func (b *gifBuilder) extension(label byte, sizes ...int) *gifBuilder {
	b.WriteByte(0x21)
	b.WriteByte(label)
	return b.subBlocks(sizes...)
}

func (b *gifBuilder) image(flags byte, sizes ...int) *gifBuilder {
	b.WriteByte(0x2c)
	b.Write(make([]byte, 8))
	b.WriteByte(flags)
	b.Write(bytes.Repeat([]byte{0xcc}, int(ColorTableSize(flags))))
	b.WriteByte(2) // LZW minimum code size
	return b.subBlocks(sizes...)
}

func (b *gifBuilder) trailer() *gifBuilder {
	b.WriteByte(0x3b)
	return b
}
