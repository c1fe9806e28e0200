package legacy

import "encoding/binary"

// byteReader walks a little-endian byte slice and reports truncation with
// the offset at which the missing field starts.
type byteReader struct {
	path string
	data []byte
	off  int
}

func newByteReader(path string, data []byte) *byteReader {
	return &byteReader{path: path, data: data}
}

func (r *byteReader) remaining() int {
	return len(r.data) - r.off
}

func (r *byteReader) offset() int64 {
	return int64(r.off)
}

// need fails with a truncated-format error when fewer than n bytes remain.
func (r *byteReader) need(n int, what string) error {
	if r.remaining() < n {
		return newTruncatedError(r.path, r.offset(), what, n, r.remaining())
	}
	return nil
}

func (r *byteReader) block(n int, what string) ([]byte, error) {
	if err := r.need(n, what); err != nil {
		return nil, err
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *byteReader) int32(what string) (int32, error) {
	b, err := r.block(4, what)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil //nolint:gosec // reinterpretation of a signed field
}

func (r *byteReader) int16(what string) (int16, error) {
	b, err := r.block(2, what)
	if err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(b)), nil //nolint:gosec // reinterpretation of a signed field
}
