// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"slices"
	"strconv"
	"strings"
)

// Channels is a bitmask of channel counts.
type Channels int

const (
	Mono   Channels = 1
	Stereo Channels = 2

	AllChannels = Mono | Stereo
)

// Count returns the number of interleaved channels for a single-bit mask.
func (c Channels) Count() int {
	switch c {
	case Mono:
		return 1
	case Stereo:
		return 2
	default:
		return 0
	}
}

// String renders the set bits, comma separated.
func (c Channels) String() string {
	var names []string
	if c&Mono != 0 {
		names = append(names, "mono")
	}
	if c&Stereo != 0 {
		names = append(names, "stereo")
	}
	if c > AllChannels {
		names = append(names, "unknown")
	}

	return strings.Join(names, ",")
}

// Encoding is a sample encoding bitmask, numbered like fmt123.h.
type Encoding int

const (
	enc8     Encoding = 0x00f
	enc16    Encoding = 0x040
	enc24    Encoding = 0x4000
	enc32    Encoding = 0x100
	encFloat Encoding = 0xe00

	EncodingSigned16   Encoding = 0x0d0
	EncodingUnsigned16 Encoding = 0x060
	EncodingUnsigned8  Encoding = 0x001
	EncodingSigned8    Encoding = 0x082
	EncodingULaw8      Encoding = 0x004
	EncodingALaw8      Encoding = 0x008
	EncodingSigned32   Encoding = 0x1180
	EncodingUnsigned32 Encoding = 0x2100
	EncodingSigned24   Encoding = 0x5080
	EncodingUnsigned24 Encoding = 0x6000
	EncodingFloat32    Encoding = 0x200
	EncodingFloat64    Encoding = 0x400
)

var encodingNames = map[Encoding]string{
	EncodingSigned16:   "signed-16-bit",
	EncodingUnsigned16: "unsigned-16-bit",
	EncodingUnsigned8:  "unsigned-8-bit",
	EncodingSigned8:    "signed-8-bit",
	EncodingULaw8:      "ulaw-8-bit",
	EncodingALaw8:      "alaw-8-bit",
	EncodingSigned32:   "signed-32-bit",
	EncodingUnsigned32: "unsigned-32-bit",
	EncodingSigned24:   "signed-24-bit",
	EncodingUnsigned24: "unsigned-24-bit",
	EncodingFloat32:    "float-32-bit",
	EncodingFloat64:    "float-64-bit",
}

// Encodings lists every single encoding in a stable order.
var Encodings = []Encoding{
	EncodingSigned16, EncodingUnsigned16, EncodingUnsigned8, EncodingSigned8,
	EncodingULaw8, EncodingALaw8, EncodingSigned32, EncodingUnsigned32,
	EncodingSigned24, EncodingUnsigned24, EncodingFloat32, EncodingFloat64,
}

// String returns the encoding name, or its decimal value when unknown.
func (e Encoding) String() string {
	if name, ok := encodingNames[e]; ok {
		return name
	}

	return strconv.Itoa(int(e))
}

// ParseEncoding accepts either the full name ("signed-16-bit") or the
// short form used in profiles ("s16", "u8", "f32").
func ParseEncoding(s string) (Encoding, bool) {
	short := map[string]Encoding{
		"s16": EncodingSigned16, "u16": EncodingUnsigned16,
		"s8": EncodingSigned8, "u8": EncodingUnsigned8,
		"s24": EncodingSigned24, "u24": EncodingUnsigned24,
		"s32": EncodingSigned32, "u32": EncodingUnsigned32,
		"f32": EncodingFloat32, "f64": EncodingFloat64,
		"ulaw": EncodingULaw8, "alaw": EncodingALaw8,
	}
	if e, ok := short[strings.ToLower(s)]; ok {
		return e, true
	}
	for e, name := range encodingNames {
		if name == s {
			return e, true
		}
	}

	return 0, false
}

// SampleSize returns the size in bytes of one sample of e, or 0 for an
// encoding without a defined size.
func SampleSize(e Encoding) int {
	switch {
	case e < 1:
		return 0
	case e&enc8 != 0:
		return 1
	case e&enc16 != 0:
		return 2
	case e&enc24 != 0:
		return 3
	case e&enc32 != 0 || e == EncodingFloat32:
		return 4
	case e == EncodingFloat64:
		return 8
	default:
		return 0
	}
}

// IsFloat reports whether e is a floating point encoding.
func (e Encoding) IsFloat() bool { return e&encFloat != 0 }

// Rates are the sample rates MPEG audio layer 1-3 streams can carry.
var Rates = []int64{8000, 11025, 12000, 16000, 22050, 24000, 32000, 44100, 48000}

// ValidRate reports whether rate is one of Rates.
func ValidRate(rate int64) bool { return slices.Contains(Rates, rate) }
