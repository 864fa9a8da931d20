package gomp3

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/ik5/mpgx/engine"
)

// stereoPCM encodes go-mp3 style output: S16LE interleaved stereo.
func stereoPCM(samples ...int16) []byte {
	var b []byte
	for _, s := range samples {
		b = binary.LittleEndian.AppendUint16(b, uint16(s))
	}

	return b
}

func TestConverter(t *testing.T) {
	t.Parallel()

	ne := binary.NativeEndian
	src := stereoPCM(16384, -16384)

	s24 := func(v uint32) []byte {
		if littleEndian {
			return []byte{byte(v), byte(v >> 8), byte(v >> 16)}
		}
		return []byte{byte(v >> 16), byte(v >> 8), byte(v)}
	}

	tests := []struct {
		name string
		conv converter
		want []byte
	}{
		{
			name: "s16 stereo",
			conv: converter{channels: 2, encoding: engine.EncodingSigned16},
			want: ne.AppendUint16(ne.AppendUint16(nil, 16384), uint16(0xc000)),
		},
		{
			name: "s16 mono mix",
			conv: converter{channels: 1, encoding: engine.EncodingSigned16},
			want: ne.AppendUint16(nil, 0),
		},
		{
			name: "s16 mono left",
			conv: converter{channels: 1, encoding: engine.EncodingSigned16, mono: monoLeft},
			want: ne.AppendUint16(nil, 16384),
		},
		{
			name: "s16 mono right",
			conv: converter{channels: 1, encoding: engine.EncodingSigned16, mono: monoRight},
			want: ne.AppendUint16(nil, uint16(0xc000)),
		},
		{
			name: "u16",
			conv: converter{channels: 1, encoding: engine.EncodingUnsigned16, mono: monoLeft},
			want: ne.AppendUint16(nil, 49152),
		},
		{
			name: "u8",
			conv: converter{channels: 2, encoding: engine.EncodingUnsigned8},
			want: []byte{192, 64},
		},
		{
			name: "s8",
			conv: converter{channels: 2, encoding: engine.EncodingSigned8},
			want: []byte{64, 0xc0},
		},
		{
			name: "s32",
			conv: converter{channels: 1, encoding: engine.EncodingSigned32, mono: monoLeft},
			want: ne.AppendUint32(nil, 0x40000000),
		},
		{
			name: "u32",
			conv: converter{channels: 1, encoding: engine.EncodingUnsigned32, mono: monoLeft},
			want: ne.AppendUint32(nil, 0xc0000000),
		},
		{
			name: "s24",
			conv: converter{channels: 1, encoding: engine.EncodingSigned24, mono: monoLeft},
			want: s24(0x400000),
		},
		{
			name: "u24",
			conv: converter{channels: 1, encoding: engine.EncodingUnsigned24, mono: monoRight},
			want: s24(0x400000),
		},
		{
			name: "f32",
			conv: converter{channels: 1, encoding: engine.EncodingFloat32, mono: monoLeft},
			want: ne.AppendUint32(nil, math.Float32bits(0.5)),
		},
		{
			name: "f64",
			conv: converter{channels: 1, encoding: engine.EncodingFloat64, mono: monoRight},
			want: ne.AppendUint64(nil, math.Float64bits(-0.5)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.conv.convert(nil, src)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("convert() = % x, want % x", got, tt.want)
			}
			if n := tt.conv.outputSize(len(src)); n != len(got) {
				t.Errorf("outputSize() = %d, want %d", n, len(got))
			}
		})
	}
}

func TestConverter_ReusesBuffer(t *testing.T) {
	t.Parallel()

	c := converter{channels: 2, encoding: engine.EncodingSigned16}
	buf := make([]byte, 0, 64)

	got := c.convert(buf, stereoPCM(1, 2, 3, 4))
	if len(got) != 8 {
		t.Fatalf("len = %d, want 8", len(got))
	}
	if &got[0] != &buf[:1][0] {
		t.Error("convert() allocated with enough capacity")
	}
}

func TestPreference(t *testing.T) {
	t.Parallel()

	tests := []struct {
		flags engine.Flags
		want  engine.Encoding
	}{
		{0, engine.EncodingSigned16},
		{engine.FlagForce8Bit, engine.EncodingUnsigned8},
		{engine.FlagForceFloat, engine.EncodingFloat32},
	}

	for _, tt := range tests {
		if got := preference(tt.flags)[0]; got != tt.want {
			t.Errorf("preference(%#x)[0] = %v, want %v", tt.flags, got, tt.want)
		}
	}

	for _, enc := range []engine.Encoding{engine.EncodingULaw8, engine.EncodingALaw8} {
		if canProduce(enc) {
			t.Errorf("canProduce(%v) = true, want false", enc)
		}
	}
}
