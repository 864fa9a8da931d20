// SPDX-License-Identifier: EPL-2.0

package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/mpgx/engine"
	"github.com/ik5/mpgx/handle"
	"github.com/ik5/mpgx/tag"
)

// wavPCM is the WAVE format tag for integer PCM.
const wavPCM = 1

// chunkFrames is the number of sample frames pulled per read.
const chunkFrames = 4096

// encoder is the part of the go-audio encoders the exporter drives.
type encoder interface {
	Write(buf *goaudio.IntBuffer) error
	Close() error
}

type options struct {
	tags tag.Tags
}

type Option func(*options)

// WithTags stores the tags in the WAV output as an INFO list chunk.
func WithTags(t tag.Tags) Option {
	return func(o *options) { o.tags = t }
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WAV decodes the rest of the open stream into w as a 16-bit PCM WAVE
// file and returns the number of sample frames written.
func WAV(h *handle.Handle, w io.WriteSeeker, opts ...Option) (int64, error) {
	o := newOptions(opts)

	n, err := export(h, func(f handle.Format) encoder {
		return wav.NewEncoder(w, int(f.Rate), 16, f.Channels.Count(), wavPCM)
	})
	if err != nil {
		return n, err
	}

	// The encoder's own INFO writer leaves odd sized fields unpadded.
	if m := wavInfo(o.tags); m != nil {
		if err := appendInfo(w, m); err != nil {
			return n, fmt.Errorf("export: %w", err)
		}
	}

	return n, nil
}

// AIFF decodes the rest of the open stream into w as a 16-bit AIFF file
// and returns the number of sample frames written.
func AIFF(h *handle.Handle, w io.WriteSeeker) (int64, error) {
	return export(h, func(f handle.Format) encoder {
		return aiff.NewEncoder(w, int(f.Rate), 16, f.Channels.Count())
	})
}

// wavInfo maps the tags onto INFO fields, preferring ID3v2 values.
func wavInfo(t tag.Tags) *wav.Metadata {
	if t.Empty() {
		return nil
	}

	m := &wav.Metadata{Software: "mpgx"}
	if v1 := t.V1; v1 != nil {
		m.Title, m.Artist, m.Product = v1.Title, v1.Artist, v1.Album
		m.CreationDate, m.Comments = v1.Year, v1.Comment
		if track, ok := v1.TrackNumber(); ok && track > 0 {
			m.TrackNbr = fmt.Sprint(track)
		}
	}
	if v2 := t.V2; v2 != nil {
		m.Title = prefer(v2.Title, m.Title)
		m.Artist = prefer(v2.Artist, m.Artist)
		m.Product = prefer(v2.Album, m.Product)
		m.CreationDate = prefer(v2.Year, m.CreationDate)
		m.Comments = prefer(v2.Comment, m.Comments)
		m.Genre = v2.Genre
	}

	return m
}

func prefer(a, b string) string {
	if a != "" {
		return a
	}

	return b
}

func export(h *handle.Handle, newEncoder func(handle.Format) encoder) (int64, error) {
	f, err := h.Format()
	if err != nil {
		return 0, fmt.Errorf("export: %w", err)
	}
	if f.Encoding != engine.EncodingSigned16 {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedEncoding, f.Encoding)
	}

	ch := f.Channels.Count()
	enc := newEncoder(f)

	pcm := make([]int16, chunkFrames*ch)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: ch, SampleRate: int(f.Rate)},
		Data:           make([]int, 0, len(pcm)),
		SourceBitDepth: 16,
	}

	// an empty write puts the headers out even for an empty stream
	if err := enc.Write(buf); err != nil {
		return 0, fmt.Errorf("export: write: %w", err)
	}

	var frames int64
	for {
		n, rerr := handle.ReadSamples(h, pcm)
		if n > 0 {
			buf.Data = buf.Data[:0]
			for _, s := range pcm[:n] {
				buf.Data = append(buf.Data, int(s))
			}
			if err := enc.Write(buf); err != nil {
				_ = enc.Close()
				return frames, fmt.Errorf("export: write: %w", err)
			}
			frames += int64(n / ch)
		}

		if rerr != nil {
			// a feed that ran dry has nothing more to give either
			if errors.Is(rerr, handle.ErrEndOfStream) || errors.Is(rerr, handle.ErrNeedMore) {
				break
			}
			_ = enc.Close()
			return frames, fmt.Errorf("export: %w", rerr)
		}
	}

	if err := enc.Close(); err != nil {
		return frames, fmt.Errorf("export: close: %w", err)
	}

	return frames, nil
}
