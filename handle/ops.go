// SPDX-License-Identifier: EPL-2.0

package handle

import (
	"unsafe"

	"github.com/ik5/mpgx/engine"
	"github.com/ik5/mpgx/tag"
)

// AddFlags sets the given flags in addition to the current ones.
func (h *Handle) AddFlags(f engine.Flags) error {
	return h.call("add flags", func(c engine.Context) engine.Status {
		return c.Param(engine.ParamAddFlags, int64(f))
	})
}

// RemoveFlags clears the given flags.
func (h *Handle) RemoveFlags(f engine.Flags) error {
	return h.call("remove flags", func(c engine.Context) engine.Status {
		return c.Param(engine.ParamRemoveFlags, int64(f))
	})
}

// SetFlags replaces the whole flag set.
func (h *Handle) SetFlags(f engine.Flags) error {
	return h.call("set flags", func(c engine.Context) engine.Status {
		return c.Param(engine.ParamFlags, int64(f))
	})
}

// Flags returns the current flag set.
func (h *Handle) Flags() (engine.Flags, error) {
	const op = "get flags"

	ctx, err := h.context(op)
	if err != nil {
		return 0, err
	}

	v, code := ctx.GetParam(engine.ParamFlags)
	if code != engine.StatusOK {
		return 0, h.fail(op, ctx, code)
	}

	return engine.Flags(v), nil
}

// SetICYInterval sets the ICY metadata interval in bytes. Zero disables
// ICY stripping.
func (h *Handle) SetICYInterval(n int) error {
	return h.call("set icy interval", func(c engine.Context) engine.Status {
		return c.Param(engine.ParamICYInterval, int64(n))
	})
}

// SetVerbose turns the engine's debug logging on or off.
func (h *Handle) SetVerbose(on bool) error {
	var v int64
	if on {
		v = 1
	}

	return h.call("set verbose", func(c engine.Context) engine.Status {
		return c.Param(engine.ParamVerbose, v)
	})
}

// Format returns the negotiated output format. It fails before a stream
// has been opened and its format negotiated.
func (h *Handle) Format() (Format, error) {
	const op = "get format"

	ctx, err := h.context(op)
	if err != nil {
		return Format{}, err
	}

	rate, ch, enc, code := ctx.GetFormat()
	if code != engine.StatusOK {
		return Format{}, h.fail(op, ctx, code)
	}

	return Format{Rate: rate, Channels: ch, Encoding: enc}, nil
}

// SetFormat restricts the output to a single rate, channel mask and
// encoding.
func (h *Handle) SetFormat(rate int64, ch engine.Channels, enc engine.Encoding) error {
	return h.call("set format", func(c engine.Context) engine.Status {
		return c.SetFormat(rate, ch, enc)
	})
}

// Open opens path for decoding, closing any stream already open. Frames
// from the previous stream become stale.
func (h *Handle) Open(path string) error {
	return h.call("open "+path, func(c engine.Context) engine.Status {
		h.gen.bump()
		return c.Open(path)
	})
}

// OpenFixed opens path with the output channels and encoding pinned.
func (h *Handle) OpenFixed(path string, ch engine.Channels, enc engine.Encoding) error {
	return h.call("open fixed "+path, func(c engine.Context) engine.Status {
		h.gen.bump()
		return c.OpenFixed(path, ch, enc)
	})
}

// OpenFeed prepares the handle for input pushed through Feed.
func (h *Handle) OpenFeed() error {
	return h.call("open feed", func(c engine.Context) engine.Status {
		h.gen.bump()
		return c.OpenFeed()
	})
}

// Feed pushes stream bytes to a handle opened with OpenFeed. The bytes
// are copied.
func (h *Handle) Feed(data []byte) error {
	return h.call("feed", func(c engine.Context) engine.Status {
		return c.Feed(data)
	})
}

// Read decodes PCM into buf in the negotiated format. Short and empty
// reads are not failures. The byte count is valid even when an error is
// returned, e.g. the last bytes before ErrEndOfStream.
func (h *Handle) Read(buf []byte) (int, error) {
	const op = "read"

	ctx, err := h.context(op)
	if err != nil {
		return 0, err
	}

	h.gen.bump()

	n, code := ctx.Read(buf)
	if code != engine.StatusOK {
		return n, h.fail(op, ctx, code)
	}

	return n, nil
}

// Sample is a PCM sample type matching one of the engine encodings.
type Sample interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~float32 | ~float64
}

// ReadSamples reads into a typed region and returns the number of whole
// samples written. T should match the negotiated encoding; the bytes
// are stored in machine order as the engine produced them.
func ReadSamples[T Sample](h *Handle, dst []T) (int, error) {
	if len(dst) == 0 {
		return h.Read(nil)
	}

	size := int(unsafe.Sizeof(dst[0]))
	buf := unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(dst))), len(dst)*size)

	n, err := h.Read(buf)

	return n / size, err
}

// DecodeFrame decodes the next MPEG frame. The end of the stream is
// returned as an error of KindEndOfStream.
func (h *Handle) DecodeFrame() (Frame, error) {
	const op = "decode frame"

	ctx, err := h.context(op)
	if err != nil {
		return Frame{}, err
	}

	h.gen.bump()

	num, audio, code := ctx.DecodeFrame()
	if code != engine.StatusOK {
		return Frame{}, h.fail(op, ctx, code)
	}

	return Frame{Num: num, samples: audio, gen: h.gen, issued: h.gen.n}, nil
}

// Close closes the current source. It fails only if none is open.
func (h *Handle) Close() error {
	return h.call("close", func(c engine.Context) engine.Status {
		h.gen.bump()
		return c.Close()
	})
}

// MetaCheck reports which tags the engine has seen. It never fails and
// returns engine.MetaNone on an empty handle.
func (h *Handle) MetaCheck() engine.Meta {
	if !h.ctx.Valid() {
		return engine.MetaNone
	}

	return h.ctx.Get().MetaCheck()
}

// Tags returns owned copies of the current ID3 tags and then lets the
// engine free its copies, so a second call returns empty Tags.
func (h *Handle) Tags() (tag.Tags, error) {
	const op = "get tags"

	ctx, err := h.context(op)
	if err != nil {
		return tag.Tags{}, err
	}

	v1, v2, code := ctx.ID3()
	if code != engine.StatusOK {
		return tag.Tags{}, h.fail(op, ctx, code)
	}

	tags := tag.FromRaw(v1, v2)
	ctx.MetaFree()

	return tags, nil
}

// Decoders lists the decoder names accepted by Create.
func (h *Handle) Decoders() []string { return h.eng.Decoders() }
