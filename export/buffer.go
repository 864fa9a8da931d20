// SPDX-License-Identifier: EPL-2.0

package export

import (
	"fmt"
	"io"
)

// Buffer is an in-memory io.WriteSeeker for the encoders, which patch
// their headers once the data size is known. It lets an export go to a
// pipe: encode into a Buffer, then copy it out with WriteTo.
type Buffer struct {
	data   []byte
	offset int64
}

func (b *Buffer) Write(p []byte) (int, error) {
	end := b.offset + int64(len(p))
	if end > int64(len(b.data)) {
		if end > int64(cap(b.data)) {
			grown := make([]byte, end, max(end, 2*int64(cap(b.data))))
			copy(grown, b.data)
			b.data = grown
		}
		b.data = b.data[:end]
	}

	copy(b.data[b.offset:], p)
	b.offset = end

	return len(p), nil
}

func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = b.offset + offset
	case io.SeekEnd:
		next = int64(len(b.data)) + offset
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidWhence, whence)
	}

	if next < 0 {
		return 0, ErrNegativeOffset
	}

	b.offset = next

	return next, nil
}

// Bytes returns the written data.
func (b *Buffer) Bytes() []byte { return b.data }

// Len returns the size of the written data.
func (b *Buffer) Len() int { return len(b.data) }

// WriteTo copies the written data to w.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.data)

	return int64(n), err
}
