// SPDX-License-Identifier: EPL-2.0

package gomp3

import "encoding/binary"

const headerSize = 4

type mpegVersion int

const (
	mpeg1 mpegVersion = iota
	mpeg2
	mpeg25
)

func (v mpegVersion) String() string {
	switch v {
	case mpeg1:
		return "MPEG-1"
	case mpeg2:
		return "MPEG-2"
	default:
		return "MPEG-2.5"
	}
}

// Layer III bitrates in kbit/s, index 0 (free format) and 15 are invalid.
var bitrates = [2][16]int{
	{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0},
	{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0},
}

var sampleRates = [3][3]int{
	mpeg1:  {44100, 48000, 32000},
	mpeg2:  {22050, 24000, 16000},
	mpeg25: {11025, 12000, 8000},
}

// frameHeader is a decoded MPEG audio Layer III frame header.
type frameHeader struct {
	version  mpegVersion
	bitrate  int // kbit/s
	rate     int
	padding  int
	channels int
}

// lsf is 1 for the low sampling frequency versions.
func (h frameHeader) lsf() int {
	if h.version == mpeg1 {
		return 0
	}

	return 1
}

// size returns the frame length in bytes, header included. It matches
// the amount go-mp3 consumes per frame.
func (h frameHeader) size() int {
	return (144*h.bitrate*1000/h.rate + h.padding) >> h.lsf()
}

// samples returns the sample frames per channel in one MPEG frame.
func (h frameHeader) samples() int {
	return 1152 >> h.lsf()
}

// decodedBytes is what go-mp3 produces for the frame: 16-bit stereo.
func (h frameHeader) decodedBytes() int {
	return h.samples() * 4
}

// parseFrameHeader decodes a Layer III header at the start of b.
func parseFrameHeader(b []byte) (frameHeader, bool) {
	if len(b) < headerSize {
		return frameHeader{}, false
	}

	w := binary.BigEndian.Uint32(b)
	if w&0xffe00000 != 0xffe00000 {
		return frameHeader{}, false
	}

	var h frameHeader
	switch (w >> 19) & 3 {
	case 3:
		h.version = mpeg1
	case 2:
		h.version = mpeg2
	case 0:
		h.version = mpeg25
	default:
		return frameHeader{}, false
	}

	if (w>>17)&3 != 1 {
		return frameHeader{}, false
	}

	bi := (w >> 12) & 0xf
	h.bitrate = bitrates[h.lsf()][bi]
	if h.bitrate == 0 {
		return frameHeader{}, false
	}

	ri := (w >> 10) & 3
	if ri == 3 {
		return frameHeader{}, false
	}
	h.rate = sampleRates[h.version][ri]
	h.padding = int((w >> 9) & 1)

	if w&3 == 2 {
		return frameHeader{}, false
	}

	h.channels = 2
	if (w>>6)&3 == 3 {
		h.channels = 1
	}

	return h, true
}

// findFrame returns the offset of the first valid frame header in b, or
// -1.
func findFrame(b []byte) int {
	for i := 0; i+headerSize <= len(b); i++ {
		if b[i] != 0xff {
			continue
		}
		if _, ok := parseFrameHeader(b[i:]); ok {
			return i
		}
	}

	return -1
}
