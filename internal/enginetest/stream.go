// SPDX-License-Identifier: EPL-2.0

package enginetest

import (
	"encoding/binary"
	"math"

	"github.com/ik5/mpgx/engine"
	"github.com/ik5/mpgx/utils"
)

// Stream is what the fake engine decodes for a path: ready made PCM in
// the stream's format plus optional raw tags.
type Stream struct {
	Rate     int64
	Channels engine.Channels
	Encoding engine.Encoding
	PCM      []byte

	// FrameBytes is the size of one DecodeFrame result. Zero means 1152
	// sample frames.
	FrameBytes int

	V1 *engine.RawID3v1
	V2 *engine.RawID3v2
}

func (s Stream) frameBytes() int {
	if s.FrameBytes > 0 {
		return s.FrameBytes
	}

	return 1152 * s.Channels.Count() * engine.SampleSize(s.Encoding)
}

// NewStream generates signed 16-bit PCM. frames is the number of sample
// frames; waveform returns values in [-1, 1] for a frame index and
// channel.
func NewStream(rate int64, channels, frames int, waveform func(frame, channel int) float32) Stream {
	pcm := make([]byte, 0, frames*channels*2)
	for f := range frames {
		for ch := range channels {
			pcm = binary.LittleEndian.AppendUint16(pcm, uint16(utils.Float32ToInt16(waveform(f, ch))))
		}
	}

	return Stream{
		Rate:     rate,
		Channels: engine.Channels(channels),
		Encoding: engine.EncodingSigned16,
		PCM:      pcm,
	}
}

// SilentStream generates silence.
func SilentStream(rate int64, channels, frames int) Stream {
	return NewStream(rate, channels, frames, func(int, int) float32 { return 0 })
}

// SineStream generates a sine wave of the given frequency on every
// channel.
func SineStream(rate int64, channels, frames int, frequency float64) Stream {
	return NewStream(rate, channels, frames, func(frame, _ int) float32 {
		t := float64(frame) / float64(rate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// ConstantStream generates a constant value.
func ConstantStream(rate int64, channels, frames int, value float32) Stream {
	return NewStream(rate, channels, frames, func(int, int) float32 { return value })
}

// RawV1 builds a raw ID3v1 trailer. Fields longer than their array are
// cut; shorter ones are NUL padded.
func RawV1(title, artist, album, year string, comment []byte, genre byte) *engine.RawID3v1 {
	v1 := &engine.RawID3v1{Genre: genre}
	copy(v1.Tag[:], "TAG")
	copy(v1.Title[:], title)
	copy(v1.Artist[:], artist)
	copy(v1.Album[:], album)
	copy(v1.Year[:], year)
	copy(v1.Comment[:], comment)

	return v1
}

// Str builds a raw length-prefixed string.
func Str(s string) *engine.RawString { return engine.NewRawString([]byte(s)) }

func cloneString(s *engine.RawString) *engine.RawString {
	if s == nil {
		return nil
	}

	return &engine.RawString{P: append([]byte(nil), s.P...), Fill: s.Fill}
}

func cloneTexts(in []engine.RawText) []engine.RawText {
	if in == nil {
		return nil
	}

	out := make([]engine.RawText, len(in))
	for i, t := range in {
		out[i] = t
		out[i].Description = *cloneString(&t.Description)
		out[i].Text = *cloneString(&t.Text)
	}

	return out
}

func cloneV2(v2 *engine.RawID3v2) *engine.RawID3v2 {
	if v2 == nil {
		return nil
	}

	out := &engine.RawID3v2{
		Version:     v2.Version,
		Title:       cloneString(v2.Title),
		Artist:      cloneString(v2.Artist),
		Album:       cloneString(v2.Album),
		Year:        cloneString(v2.Year),
		Genre:       cloneString(v2.Genre),
		Comment:     cloneString(v2.Comment),
		CommentList: cloneTexts(v2.CommentList),
		Text:        cloneTexts(v2.Text),
		Extra:       cloneTexts(v2.Extra),
	}
	for _, p := range v2.Picture {
		p.Description = *cloneString(&p.Description)
		p.MIMEType = *cloneString(&p.MIMEType)
		if p.Data != nil {
			p.Data = append([]byte(nil), p.Data...)
		}
		out.Picture = append(out.Picture, p)
	}

	return out
}

func scribble(b []byte) {
	for i := range b {
		b[i] = 'X'
	}
}

func scribbleString(s *engine.RawString) {
	if s != nil {
		scribble(s.P)
	}
}

// scribbleV2 overwrites every byte the tag references, the way a reused
// engine buffer would.
func scribbleV2(v2 *engine.RawID3v2) {
	for _, s := range []*engine.RawString{v2.Title, v2.Artist, v2.Album, v2.Year, v2.Genre, v2.Comment} {
		scribbleString(s)
	}
	for _, list := range [][]engine.RawText{v2.CommentList, v2.Text, v2.Extra} {
		for i := range list {
			scribbleString(&list[i].Description)
			scribbleString(&list[i].Text)
		}
	}
	for i := range v2.Picture {
		scribbleString(&v2.Picture[i].Description)
		scribbleString(&v2.Picture[i].MIMEType)
		scribble(v2.Picture[i].Data)
	}
}

func scribbleV1(v1 *engine.RawID3v1) {
	for _, b := range [][]byte{v1.Tag[:], v1.Title[:], v1.Artist[:], v1.Album[:], v1.Year[:], v1.Comment[:]} {
		scribble(b)
	}
	v1.Genre = 0xFF
}
