package gomp3

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/mpgx/engine"
)

// Silent MPEG-1 Layer III frames, 128 kbps at 44100 Hz. With no main
// data every granule decodes to zero.
var (
	stereoHeader = []byte{0xff, 0xfb, 0x90, 0x00}
	monoHeader   = []byte{0xff, 0xfb, 0x90, 0xc0}
	mpeg25Header = []byte{0xff, 0xe3, 0x90, 0x00}
)

const silentFrameSize = 417

func silent(header []byte, n int) []byte {
	h, ok := parseFrameHeader(header)
	size := silentFrameSize
	if ok {
		size = h.size()
	}

	var b []byte
	for range n {
		f := make([]byte, size)
		copy(f, header)
		b = append(b, f...)
	}

	return b
}

func synchsafe(n int) []byte {
	return []byte{byte(n >> 21 & 0x7f), byte(n >> 14 & 0x7f), byte(n >> 7 & 0x7f), byte(n & 0x7f)}
}

// id3Frame encodes one ID3v2 frame for the given major version.
func id3Frame(major byte, id string, data []byte) []byte {
	var b []byte
	switch major {
	case 2:
		b = append([]byte(id), byte(len(data)>>16), byte(len(data)>>8), byte(len(data)))
	case 3:
		b = binary.BigEndian.AppendUint32([]byte(id), uint32(len(data)))
		b = append(b, 0, 0)
	default:
		b = append([]byte(id), synchsafe(len(data))...)
		b = append(b, 0, 0)
	}

	return append(b, data...)
}

func id3Tag(major, flags byte, frames ...[]byte) []byte {
	body := bytes.Join(frames, nil)
	b := append([]byte("ID3"), major, 0, flags)
	b = append(b, synchsafe(len(body))...)

	return append(b, body...)
}

// latin builds a text frame payload in ISO-8859-1.
func latin(parts ...string) []byte {
	b := []byte{0}
	for i, p := range parts {
		if i > 0 {
			b = append(b, 0)
		}
		b = append(b, p...)
	}

	return b
}

func v1Tag(title, artist string, genre byte) []byte {
	b := make([]byte, id3v1Size)
	copy(b, "TAG")
	copy(b[3:33], title)
	copy(b[33:63], artist)
	copy(b[93:97], "2001")
	b[127] = genre

	return b
}

func writeFile(t *testing.T, parts ...[]byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.mp3")
	if err := os.WriteFile(path, bytes.Join(parts, nil), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	return path
}

func raw(s *engine.RawString) string {
	if s == nil || s.Fill == 0 {
		return ""
	}

	return string(s.P[:s.Fill-1])
}

func newContext(t *testing.T) *Context {
	t.Helper()

	ctx, code := New().NewContext("")
	if code != engine.StatusOK {
		t.Fatalf("NewContext() = %v", code)
	}
	t.Cleanup(ctx.Delete)

	return ctx.(*Context)
}
