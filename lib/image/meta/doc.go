// The meta package holds the types shared by the image metadata readers:
// the dimensions of an image, the container format it was found in, and (for
// formats which support it) how many animation frames it has.
//
// Readers never decode pixel data. They walk just enough of the container
// structure to find the values here, and fail with one of three kinds of
// error:
//
//   - ErrInvalidSignature, when the stream is not of the format being read.
//   - *CorruptImageError, when a structure holds a value outside the set the
//     format allows.
//   - *IOError, when reading or seeking the underlying stream failed. A stream
//     that ends early is reported as io.ErrUnexpectedEOF.
package meta
