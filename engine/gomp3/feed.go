// SPDX-License-Identifier: EPL-2.0

package gomp3

import "io"

// feed buffers pushed stream bytes. ICY metadata blocks are removed on
// the way in. The decoder reads through it as an io.Reader but only sees
// the bytes that were released, which is always one whole frame.
type feed struct {
	buf      []byte
	released int

	icy       int // metadata interval, 0 when off
	audioLeft int // audio bytes until the next metadata length byte
	skip      int // metadata bytes still to drop
}

func newFeed(icyInterval int) *feed {
	return &feed{icy: icyInterval, audioLeft: icyInterval}
}

func (f *feed) push(data []byte) {
	for len(data) > 0 {
		switch {
		case f.icy == 0:
			f.buf = append(f.buf, data...)
			return
		case f.skip > 0:
			n := min(f.skip, len(data))
			f.skip -= n
			data = data[n:]
		case f.audioLeft > 0:
			n := min(f.audioLeft, len(data))
			f.buf = append(f.buf, data[:n]...)
			f.audioLeft -= n
			data = data[n:]
		default:
			// length byte, in units of 16
			f.skip = int(data[0]) * 16
			f.audioLeft = f.icy
			data = data[1:]
		}
	}
}

// pending returns the bytes not yet released to the decoder.
func (f *feed) pending() []byte { return f.buf[f.released:] }

// drop discards n pending bytes. Nothing may be released at the time.
func (f *feed) drop(n int) { f.buf = f.buf[n:] }

// release lets the decoder read the next n pending bytes.
func (f *feed) release(n int) { f.released += n }

// reclaim discards whatever the decoder left of the released bytes.
func (f *feed) reclaim() {
	f.buf = f.buf[f.released:]
	f.released = 0
}

// Read hands released bytes to the decoder. Running dry returns io.EOF,
// which only happens on a bug in the frame accounting.
func (f *feed) Read(p []byte) (int, error) {
	if f.released == 0 {
		return 0, io.EOF
	}

	n := copy(p, f.buf[:f.released])
	f.buf = f.buf[n:]
	f.released -= n

	return n, nil
}
