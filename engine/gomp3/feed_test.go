package gomp3

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

// icyStream interleaves a metadata block after every interval audio
// bytes. Odd blocks are empty.
func icyStream(audio []byte, interval int) []byte {
	meta := []byte("StreamTitle='x';")

	var b []byte
	for i := 0; len(audio) > 0; i++ {
		n := min(interval, len(audio))
		b = append(b, audio[:n]...)
		audio = audio[n:]

		if n < interval {
			break
		}
		if i%2 == 0 {
			b = append(b, 1)
			b = append(b, meta...)
		} else {
			b = append(b, 0)
		}
	}

	return b
}

func TestFeed_ICY(t *testing.T) {
	t.Parallel()

	audio := bytes.Repeat([]byte("0123456789"), 20)
	stream := icyStream(audio, 32)

	for _, chunk := range []int{1, 7, 33, len(stream)} {
		f := newFeed(32)
		for data := stream; len(data) > 0; {
			n := min(chunk, len(data))
			f.push(data[:n])
			data = data[n:]
		}

		if !bytes.Equal(f.pending(), audio) {
			t.Errorf("chunk %d: pending() = %q, want %q", chunk, f.pending(), audio)
		}
	}
}

func TestFeed_ReleaseRead(t *testing.T) {
	t.Parallel()

	f := newFeed(0)
	f.push([]byte("abcdef"))

	buf := make([]byte, 4)
	if n, err := f.Read(buf); n != 0 || !errors.Is(err, io.EOF) {
		t.Fatalf("Read() before release = %d, %v, want 0, EOF", n, err)
	}

	f.release(3)
	n, err := f.Read(buf)
	if err != nil || string(buf[:n]) != "abc" {
		t.Fatalf("Read() = %q, %v, want %q", buf[:n], err, "abc")
	}
	if got := string(f.pending()); got != "def" {
		t.Errorf("pending() = %q, want %q", got, "def")
	}

	f.release(2)
	if n, _ := f.Read(buf[:1]); n != 1 {
		t.Fatalf("Read() = %d, want 1", n)
	}
	f.reclaim()
	if got := string(f.pending()); got != "f" {
		t.Errorf("pending() after reclaim = %q, want %q", got, "f")
	}

	f.drop(1)
	if len(f.pending()) != 0 {
		t.Errorf("pending() after drop = %q", f.pending())
	}
}
