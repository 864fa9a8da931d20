// SPDX-License-Identifier: EPL-2.0

package handle

// generation counts calls that may reuse engine memory. It moves with
// the context when a handle is moved.
type generation struct {
	n uint64
}

// bump is a no-op on a zero Handle, which has no generation.
func (g *generation) bump() {
	if g != nil {
		g.n++
	}
}

// Frame is one decoded MPEG frame. Its samples live in engine memory and
// are only valid until the next DecodeFrame, Read, Close, Open or
// Destroy on the handle that produced it.
type Frame struct {
	Num int64

	samples []byte
	gen     *generation
	issued  uint64
}

// Valid reports whether the samples may still be read.
func (f Frame) Valid() bool {
	return f.gen != nil && f.gen.n == f.issued
}

// Samples returns the borrowed sample bytes, or ErrStaleFrame once the
// handle has moved on. Copy the bytes to keep them.
func (f Frame) Samples() ([]byte, error) {
	if !f.Valid() {
		return nil, ErrStaleFrame
	}

	return f.samples, nil
}

// Len returns the size of the frame in bytes.
func (f Frame) Len() int { return len(f.samples) }
