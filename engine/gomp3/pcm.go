// SPDX-License-Identifier: EPL-2.0

package gomp3

import (
	"encoding/binary"
	"math"
	"slices"

	"github.com/ik5/mpgx/engine"
	"github.com/ik5/mpgx/utils"
)

// Encodings the converter can produce, in default preference order.
var producible = []engine.Encoding{
	engine.EncodingSigned16,
	engine.EncodingSigned32,
	engine.EncodingSigned24,
	engine.EncodingFloat32,
	engine.EncodingUnsigned16,
	engine.EncodingUnsigned32,
	engine.EncodingUnsigned24,
	engine.EncodingSigned8,
	engine.EncodingUnsigned8,
	engine.EncodingFloat64,
}

var (
	prefer8Bit  = []engine.Encoding{engine.EncodingUnsigned8, engine.EncodingSigned8}
	preferFloat = []engine.Encoding{engine.EncodingFloat32, engine.EncodingFloat64}
)

func canProduce(enc engine.Encoding) bool {
	return slices.Contains(producible, enc)
}

// preference returns the encodings to try, forced ones first.
func preference(flags engine.Flags) []engine.Encoding {
	switch {
	case flags&engine.FlagForce8Bit != 0:
		return prefer8Bit
	case flags&engine.FlagForceFloat != 0:
		return preferFloat
	default:
		return producible
	}
}

type monoMode int

const (
	monoMix monoMode = iota
	monoLeft
	monoRight
)

func monoModeOf(flags engine.Flags) monoMode {
	switch {
	case flags&engine.FlagMonoLeft != 0:
		return monoLeft
	case flags&engine.FlagMonoRight != 0:
		return monoRight
	default:
		return monoMix
	}
}

var littleEndian = binary.NativeEndian.Uint16([]byte{1, 0}) == 1

// converter turns go-mp3 output (signed 16-bit little endian stereo) into
// the negotiated format in machine byte order.
type converter struct {
	channels int
	encoding engine.Encoding
	mono     monoMode
}

// sampleFrames returns how many sample frames src holds.
func (c converter) sampleFrames(src []byte) int { return len(src) / 4 }

// outputSize returns the converted size of n decoded bytes.
func (c converter) outputSize(n int) int {
	return n / 4 * c.channels * engine.SampleSize(c.encoding)
}

// convert appends the converted samples of src to dst[:0].
func (c converter) convert(dst, src []byte) []byte {
	dst = dst[:0]

	for i := range c.sampleFrames(src) {
		l := int16(binary.LittleEndian.Uint16(src[4*i:]))
		r := int16(binary.LittleEndian.Uint16(src[4*i+2:]))

		if c.channels == 1 {
			var s int16
			switch c.mono {
			case monoLeft:
				s = l
			case monoRight:
				s = r
			default:
				s = utils.MixInt16(l, r)
			}
			dst = appendSample(dst, c.encoding, s)
			continue
		}

		dst = appendSample(dst, c.encoding, l)
		dst = appendSample(dst, c.encoding, r)
	}

	return dst
}

func append24(dst []byte, v uint32) []byte {
	if littleEndian {
		return append(dst, byte(v), byte(v>>8), byte(v>>16))
	}

	return append(dst, byte(v>>16), byte(v>>8), byte(v))
}

func appendSample(dst []byte, enc engine.Encoding, s int16) []byte {
	ne := binary.NativeEndian
	wide := int32(s)

	switch enc {
	case engine.EncodingSigned16:
		return ne.AppendUint16(dst, uint16(s))
	case engine.EncodingUnsigned16:
		return ne.AppendUint16(dst, uint16(wide+32768))
	case engine.EncodingSigned8:
		return append(dst, byte(int8(s>>8)))
	case engine.EncodingUnsigned8:
		return append(dst, byte(int(s>>8)+128))
	case engine.EncodingSigned32:
		return ne.AppendUint32(dst, uint32(wide<<16))
	case engine.EncodingUnsigned32:
		return ne.AppendUint32(dst, uint32(wide<<16)+0x80000000)
	case engine.EncodingSigned24:
		return append24(dst, uint32(wide<<8))
	case engine.EncodingUnsigned24:
		return append24(dst, uint32(wide<<8)+0x800000)
	case engine.EncodingFloat32:
		return ne.AppendUint32(dst, math.Float32bits(utils.Int16ToFloat32(s)))
	case engine.EncodingFloat64:
		return ne.AppendUint64(dst, math.Float64bits(float64(s)/32768.0))
	default:
		return dst
	}
}
