// SPDX-License-Identifier: EPL-2.0

package gomp3

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/ik5/mpgx/engine"
)

// scanSize bounds the search for the first frame header in a file.
const scanSize = 64 * 1024

// stream is an open source.
type stream struct {
	file *os.File // nil in feed mode
	feed *feed    // nil in file mode
	dec  mp3Reader

	header     frameHeader // first frame
	out        output
	negotiated bool
	conv       converter

	scratch []byte
	pending []byte // converted bytes Read has not returned yet
}

// Context decodes one stream with go-mp3.
type Context struct {
	log zerolog.Logger

	flags   engine.Flags
	icy     int64
	verbose int64
	formats formatTable
	fixed   bool

	src      *stream
	frame    []byte
	frameNum int64

	meta engine.Meta
	v1   *engine.RawID3v1
	v2   *engine.RawID3v2

	lastCode engine.Status
	lastMsg  string
}

func (c *Context) debug() *zerolog.Event {
	if c.verbose > 0 {
		return c.log.Debug()
	}

	return nil
}

func (c *Context) warn() *zerolog.Event {
	if c.flags&engine.FlagQuiet != 0 {
		return nil
	}

	return c.log.Warn()
}

// fail records the failure for Strerror and ErrCode.
func (c *Context) fail(code engine.Status, detail string) engine.Status {
	c.lastCode = code
	c.lastMsg = code.Error()
	if detail != "" {
		c.lastMsg = detail + ": " + c.lastMsg
	}

	return code
}

func (c *Context) Delete() {
	c.closeStream()
	c.MetaFree()
}

func (c *Context) Param(p engine.Param, value int64) engine.Status {
	switch p {
	case engine.ParamFlags, engine.ParamAddFlags, engine.ParamRemoveFlags:
		f := engine.Flags(value)
		switch p {
		case engine.ParamAddFlags:
			f |= c.flags
		case engine.ParamRemoveFlags:
			f = c.flags &^ f
		}
		if value < 0 || !f.Validate() {
			return c.fail(engine.StatusBadParam, fmt.Sprintf("flags %#x", value))
		}
		c.flags = f
	case engine.ParamICYInterval:
		if value < 0 {
			return c.fail(engine.StatusBadValue, fmt.Sprintf("icy interval %d", value))
		}
		c.icy = value
	case engine.ParamVerbose:
		if value < 0 {
			return c.fail(engine.StatusBadValue, fmt.Sprintf("verbose %d", value))
		}
		c.verbose = value
	default:
		return c.fail(engine.StatusBadParam, fmt.Sprintf("param %d", p))
	}

	c.debug().Int("param", int(p)).Int64("value", value).Msg("param set")

	return engine.StatusOK
}

func (c *Context) GetParam(p engine.Param) (int64, engine.Status) {
	switch p {
	case engine.ParamFlags:
		return int64(c.flags), engine.StatusOK
	case engine.ParamICYInterval:
		return c.icy, engine.StatusOK
	case engine.ParamVerbose:
		return c.verbose, engine.StatusOK
	default:
		return 0, c.fail(engine.StatusBadParam, fmt.Sprintf("param %d", p))
	}
}

func (c *Context) GetFormat() (int64, engine.Channels, engine.Encoding, engine.Status) {
	if c.src == nil {
		return 0, 0, 0, c.fail(engine.StatusNoReader, "get format")
	}

	if !c.src.negotiated {
		h, code := c.seekFrame(false)
		if code != engine.StatusOK {
			return 0, 0, 0, code
		}
		if code := c.startStream(c.src, h); code != engine.StatusOK {
			return 0, 0, 0, code
		}
	}

	o := c.src.out

	return o.rate, o.channels, o.encoding, engine.StatusOK
}

// SetFormat allows only the given combination. A zero rate accepts any
// stream rate.
func (c *Context) SetFormat(rate int64, ch engine.Channels, enc engine.Encoding) engine.Status {
	if code, detail := validateFormat(rate, ch, enc); code != engine.StatusOK {
		return c.fail(code, detail)
	}

	c.formats = formatTable{only: &formatEntry{rate: rate, channels: ch, encoding: enc}}

	return engine.StatusOK
}

func (c *Context) closeStream() {
	if c.src == nil {
		return
	}

	if c.src.file != nil {
		if err := c.src.file.Close(); err != nil {
			c.warn().Err(err).Msg("close")
		}
	}
	c.src = nil
	c.frameNum = 0
}

func (c *Context) setV1(t *engine.RawID3v1) {
	if t == nil {
		return
	}

	c.v1 = t
	c.meta |= engine.MetaID3v1 | engine.MetaNewID3
}

func (c *Context) readID3v2(b []byte) {
	if c.flags&engine.FlagSkipID3v2 != 0 {
		return
	}

	t, err := parseID3v2(b, c.flags&engine.FlagPicture != 0, func(err error) {
		c.warn().Err(err).Msg("ID3v2 frame skipped")
	})
	if err != nil {
		c.warn().Err(err).Msg("ID3v2 tag ignored")
		return
	}

	c.v2 = t
	c.meta |= engine.MetaID3v2 | engine.MetaNewID3
	c.debug().Uint8("version", t.Version).Int("texts", len(t.Text)).Msg("ID3v2 tag")
}

func (c *Context) startStream(s *stream, h frameHeader) engine.Status {
	if h.version == mpeg25 {
		return c.fail(engine.StatusMissingFeature, "MPEG-2.5 streams")
	}

	// A fixed open takes no channel fallback.
	if c.fixed && c.formats.only != nil && c.formats.only.channels&wantChannels(c.flags, h.channels) == 0 {
		return c.fail(engine.StatusBadChannel, fmt.Sprintf("stream has %d channels, want %d", h.channels, c.formats.only.channels.Count()))
	}

	out, ok := negotiate(c.formats, c.flags, int64(h.rate), h.channels)
	if !ok {
		return c.fail(engine.StatusBadOutFormat, fmt.Sprintf("no allowed output for %d Hz", h.rate))
	}

	s.header = h
	s.out = out
	s.negotiated = true
	s.conv = converter{channels: out.channels.Count(), encoding: out.encoding, mono: monoModeOf(c.flags)}

	c.debug().
		Str("version", h.version.String()).
		Int("rate", h.rate).
		Int("channels", h.channels).
		Str("encoding", out.encoding.String()).
		Int("out_channels", out.channels.Count()).
		Msg("stream format")

	return engine.StatusOK
}

func (c *Context) Open(path string) engine.Status {
	c.closeStream()
	c.MetaFree()

	f, err := os.Open(path)
	if err != nil {
		return c.fail(engine.StatusBadFile, err.Error())
	}

	code := c.openFile(path, f)
	if code != engine.StatusOK {
		_ = f.Close()
	}

	return code
}

func (c *Context) openFile(path string, f *os.File) engine.Status {
	info, err := f.Stat()
	if err != nil {
		return c.fail(engine.StatusBadFile, err.Error())
	}
	size := info.Size()

	start, end := int64(0), size

	head := make([]byte, id3v2HeaderSize)
	if _, err := f.ReadAt(head, 0); err == nil {
		if n, ok := id3v2Size(head); ok {
			tag := make([]byte, n)
			if _, err := f.ReadAt(tag, 0); err == nil {
				c.readID3v2(tag)
			}
			start = int64(n)
		}
	}

	if end-start >= id3v1Size {
		tail := make([]byte, id3v1Size)
		if _, err := f.ReadAt(tail, end-id3v1Size); err == nil && isID3v1(tail) {
			c.setV1(parseID3v1(tail))
			end -= id3v1Size
		}
	}

	lead := make([]byte, min(scanSize, max(end-start, 0)))
	n, err := f.ReadAt(lead, start)
	if err != nil && !errors.Is(err, io.EOF) {
		return c.fail(engine.StatusErrReader, fmt.Sprintf("open %s: %v", path, err))
	}

	i := findFrame(lead[:n])
	if i < 0 {
		return c.fail(engine.StatusResyncFail, fmt.Sprintf("open %s: %v", path, ErrNoFrames))
	}
	h, _ := parseFrameHeader(lead[i:n])

	s := &stream{file: f}
	if code := c.startStream(s, h); code != engine.StatusOK {
		return code
	}

	dec, err := newDecoder(io.NewSectionReader(f, 0, end))
	if err != nil {
		return c.fail(engine.StatusErr, fmt.Sprintf("open %s: %v", path, err))
	}
	s.dec = dec
	c.src = s
	c.debug().Str("path", path).Int64("audio_bytes", end-start).Msg("opened")

	return engine.StatusOK
}

// OpenFixed opens path for output in exactly ch and enc. The format
// table in effect before the call is restored when it returns.
func (c *Context) OpenFixed(path string, ch engine.Channels, enc engine.Encoding) engine.Status {
	saved := c.formats
	if code := c.SetFormat(0, ch, enc); code != engine.StatusOK {
		return code
	}

	c.fixed = true
	defer func() {
		c.formats = saved
		c.fixed = false
	}()

	return c.Open(path)
}

func (c *Context) OpenFeed() engine.Status {
	c.closeStream()
	c.MetaFree()
	c.src = &stream{feed: newFeed(int(c.icy))}
	c.debug().Int64("icy_interval", c.icy).Msg("feed opened")

	return engine.StatusOK
}

func (c *Context) Feed(data []byte) engine.Status {
	if c.src == nil || c.src.feed == nil {
		return c.fail(engine.StatusNoReader, "feed")
	}

	c.src.feed.push(data)

	return engine.StatusOK
}

func (c *Context) Close() engine.Status {
	if c.src == nil {
		return c.fail(engine.StatusNoReader, "close")
	}

	c.closeStream()

	return engine.StatusOK
}

// pump decodes the next frame into c.frame.
func (c *Context) pump() engine.Status {
	if c.src.feed != nil {
		return c.pumpFeed()
	}

	return c.decodeFrame(c.src.header)
}

// decodeFrame has go-mp3 decode exactly one frame. Its output buffer is
// empty at this point and one frame's output fills the request.
func (c *Context) decodeFrame(h frameHeader) engine.Status {
	s := c.src

	n := h.decodedBytes()
	if cap(s.scratch) < n {
		s.scratch = make([]byte, n)
	}

	got, err := s.dec.Read(s.scratch[:n])
	if got == 0 {
		if err == nil || errors.Is(err, io.EOF) {
			return c.fail(engine.StatusDone, "")
		}
		return c.fail(engine.StatusErr, err.Error())
	}

	c.frame = s.conv.convert(c.frame, s.scratch[:got])
	c.frameNum++

	return engine.StatusOK
}

// seekFrame consumes tags and garbage until a frame header is at the
// head of the feed. With whole set the complete frame must be buffered
// too.
func (c *Context) seekFrame(whole bool) (frameHeader, engine.Status) {
	fd := c.src.feed

	for {
		p := fd.pending()
		if len(p) < headerSize {
			return frameHeader{}, c.fail(engine.StatusNeedMore, "")
		}

		switch {
		case bytes.HasPrefix(p, id3v2Magic):
			n, ok := id3v2Size(p)
			if !ok || len(p) < n {
				return frameHeader{}, c.fail(engine.StatusNeedMore, "")
			}
			c.readID3v2(p[:n])
			fd.drop(n)
			continue
		case bytes.HasPrefix(p, id3v1Magic):
			if len(p) < id3v1Size {
				return frameHeader{}, c.fail(engine.StatusNeedMore, "")
			}
			c.setV1(parseID3v1(p[:id3v1Size]))
			fd.drop(id3v1Size)
			continue
		}

		h, ok := parseFrameHeader(p)
		if !ok {
			c.resync(fd, p)
			continue
		}
		if whole && len(p) < h.size() {
			return frameHeader{}, c.fail(engine.StatusNeedMore, "")
		}

		return h, engine.StatusOK
	}
}

// pumpFeed hands go-mp3 exactly one complete frame at a time, so a
// short read never leaves it in the middle of one.
func (c *Context) pumpFeed() engine.Status {
	s := c.src
	fd := s.feed

	for {
		h, code := c.seekFrame(true)
		if code != engine.StatusOK {
			return code
		}

		if !s.negotiated {
			if code := c.startStream(s, h); code != engine.StatusOK {
				return code
			}
		}

		fd.release(h.size())

		if s.dec == nil {
			dec, err := newDecoder(fd)
			if err != nil {
				c.warn().Err(err).Msg("frame skipped")
				fd.reclaim()
				continue
			}
			s.dec = dec
		}

		code = c.decodeFrame(h)
		fd.reclaim()
		if code == engine.StatusOK {
			return code
		}
		c.warn().Str("error", c.lastMsg).Msg("frame skipped")
	}
}

// resync drops bytes up to the next frame header or tag. A short tail is
// kept since it may be the start of one.
func (c *Context) resync(fd *feed, p []byte) {
	next := -1
	for i := 1; i < len(p); i++ {
		if p[i] == 0xff || p[i] == 'I' || p[i] == 'T' {
			rest := p[i:]
			if _, ok := parseFrameHeader(rest); ok ||
				bytes.HasPrefix(rest, id3v2Magic) || bytes.HasPrefix(rest, id3v1Magic) {
				next = i
				break
			}
		}
	}

	if next < 0 {
		next = len(p) - (headerSize - 1)
	}
	c.debug().Int("bytes", next).Msg("resync")
	fd.drop(next)
}

func (c *Context) Read(out []byte) (int, engine.Status) {
	if c.src == nil {
		return 0, c.fail(engine.StatusNoReader, "read")
	}

	s := c.src
	n := 0
	for n < len(out) {
		if len(s.pending) == 0 {
			code := c.pump()
			if code != engine.StatusOK {
				if n > 0 && (code == engine.StatusDone || code == engine.StatusNeedMore) {
					return n, engine.StatusOK
				}
				return n, code
			}
			s.pending = c.frame
		}

		m := copy(out[n:], s.pending)
		s.pending = s.pending[m:]
		n += m
	}

	return n, engine.StatusOK
}

// DecodeFrame decodes the next whole frame. Bytes of the previous frame
// that Read has not returned are dropped.
func (c *Context) DecodeFrame() (int64, []byte, engine.Status) {
	if c.src == nil {
		return 0, nil, c.fail(engine.StatusNoReader, "decode frame")
	}

	c.src.pending = nil
	if code := c.pump(); code != engine.StatusOK {
		return 0, nil, code
	}

	return c.frameNum - 1, c.frame, engine.StatusOK
}

func (c *Context) MetaCheck() engine.Meta { return c.meta }

func (c *Context) ID3() (*engine.RawID3v1, *engine.RawID3v2, engine.Status) {
	c.meta &^= engine.MetaNewID3

	return c.v1, c.v2, engine.StatusOK
}

func (c *Context) MetaFree() {
	c.v1, c.v2 = nil, nil
	c.meta = engine.MetaNone
}

func (c *Context) Strerror() string {
	if c.lastMsg == "" {
		return c.lastCode.Error()
	}

	return c.lastMsg
}

func (c *Context) ErrCode() engine.Status { return c.lastCode }
