// SPDX-License-Identifier: EPL-2.0

// Package enginetest provides a scriptable in-memory engine for tests.
//
// The fake keeps count of live contexts and of calls made on deleted
// ones, reuses a single frame buffer per context, and overwrites its tag
// memory on MetaFree, so tests can catch leaks, double frees and reads
// of engine memory that should have been copied.
package enginetest

import (
	"fmt"
	"sync"

	"github.com/ik5/mpgx/engine"
)

// Decoder is the only decoder name the fake accepts besides "".
const Decoder = "fake"

// Engine is a fake engine.Engine.
type Engine struct {
	mtx *sync.Mutex

	streams     map[string]Stream
	failCreate  engine.Status
	live        int
	created     int
	afterDelete int
}

func New() *Engine {
	return &Engine{
		mtx:     &sync.Mutex{},
		streams: make(map[string]Stream),
	}
}

// AddStream makes path openable.
func (e *Engine) AddStream(path string, s Stream) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	e.streams[path] = s
}

// FailCreate makes every following NewContext fail with code. Pass
// engine.StatusOK to stop failing.
func (e *Engine) FailCreate(code engine.Status) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	e.failCreate = code
}

// Live returns the number of contexts not yet deleted.
func (e *Engine) Live() int {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	return e.live
}

// Created returns the number of contexts ever created.
func (e *Engine) Created() int {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	return e.created
}

// UseAfterDelete counts calls made on deleted contexts, including a
// second Delete.
func (e *Engine) UseAfterDelete() int {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	return e.afterDelete
}

func (e *Engine) NewContext(decoder string) (engine.Context, engine.Status) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if decoder != "" && decoder != Decoder {
		return nil, engine.StatusBadDecoder
	}
	if e.failCreate != engine.StatusOK {
		return nil, e.failCreate
	}

	e.live++
	e.created++

	return &Context{eng: e}, engine.StatusOK
}

func (e *Engine) PlainStrerror(s engine.Status) string { return engine.PlainStrerror(s) }

func (e *Engine) Decoders() []string { return []string{Decoder} }

func (e *Engine) stream(path string) (Stream, bool) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	s, ok := e.streams[path]
	return s, ok
}

// Context is the fake engine.Context.
type Context struct {
	eng     *Engine
	deleted bool

	flags   engine.Flags
	icy     int64
	verbose int64
	allowed *Stream

	open      bool
	feed      bool
	hasFormat bool
	out       Stream
	pos       int
	frameNum  int64
	frame     []byte

	meta engine.Meta
	v1   *engine.RawID3v1
	v2   *engine.RawID3v2

	lastCode engine.Status
	lastMsg  string
}

func (c *Context) gone() bool {
	if !c.deleted {
		return false
	}

	c.eng.mtx.Lock()
	c.eng.afterDelete++
	c.eng.mtx.Unlock()

	return true
}

func (c *Context) fail(code engine.Status, detail string) engine.Status {
	c.lastCode = code
	c.lastMsg = code.Error()
	if detail != "" {
		c.lastMsg = detail + ": " + c.lastMsg
	}

	return code
}

func (c *Context) Delete() {
	if c.gone() {
		return
	}

	c.deleted = true
	c.eng.mtx.Lock()
	c.eng.live--
	c.eng.mtx.Unlock()
}

func (c *Context) Param(p engine.Param, value int64) engine.Status {
	if c.gone() {
		return engine.StatusBadHandle
	}

	switch p {
	case engine.ParamFlags, engine.ParamAddFlags, engine.ParamRemoveFlags:
		f := engine.Flags(value)
		switch p {
		case engine.ParamAddFlags:
			f |= c.flags
		case engine.ParamRemoveFlags:
			f = c.flags &^ f
		}
		if !f.Validate() {
			return c.fail(engine.StatusBadParam, fmt.Sprintf("flags %#x", uint32(f)))
		}
		c.flags = f
	case engine.ParamICYInterval:
		if value < 0 {
			return c.fail(engine.StatusBadValue, "icy interval")
		}
		c.icy = value
	case engine.ParamVerbose:
		c.verbose = value
	default:
		return c.fail(engine.StatusBadParam, fmt.Sprintf("param %d", p))
	}

	return engine.StatusOK
}

func (c *Context) GetParam(p engine.Param) (int64, engine.Status) {
	if c.gone() {
		return 0, engine.StatusBadHandle
	}

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
	if c.gone() {
		return 0, 0, 0, engine.StatusBadHandle
	}
	if !c.open {
		return 0, 0, 0, c.fail(engine.StatusNoReader, "get format")
	}
	if !c.hasFormat {
		return 0, 0, 0, c.fail(engine.StatusNeedMore, "get format")
	}

	return c.out.Rate, c.out.Channels, c.out.Encoding, engine.StatusOK
}

func (c *Context) SetFormat(rate int64, ch engine.Channels, enc engine.Encoding) engine.Status {
	if c.gone() {
		return engine.StatusBadHandle
	}

	switch {
	case rate != 0 && !engine.ValidRate(rate):
		return c.fail(engine.StatusBadRate, fmt.Sprintf("rate %d", rate))
	case ch&^engine.AllChannels != 0 || ch == 0:
		return c.fail(engine.StatusBadChannel, fmt.Sprintf("channels %d", ch))
	case engine.SampleSize(enc) == 0:
		return c.fail(engine.StatusBadOutFormat, fmt.Sprintf("encoding %s", enc))
	}

	c.allowed = &Stream{Rate: rate, Channels: ch, Encoding: enc}

	return engine.StatusOK
}

func (c *Context) reset() {
	scribble(c.frame)
	c.open = false
	c.feed = false
	c.hasFormat = false
	c.out = Stream{}
	c.pos = 0
	c.frameNum = 0
}

func (c *Context) negotiate(s Stream) engine.Status {
	c.out = s
	if a := c.allowed; a != nil {
		if a.Rate != 0 && a.Rate != s.Rate {
			return c.fail(engine.StatusBadOutFormat, fmt.Sprintf("rate %d not allowed", s.Rate))
		}
		if a.Channels.Count() != 0 {
			c.out.Channels = a.Channels
		}
		c.out.Encoding = a.Encoding
	}
	c.hasFormat = true

	return engine.StatusOK
}

func (c *Context) Open(path string) engine.Status {
	if c.gone() {
		return engine.StatusBadHandle
	}

	c.reset()

	s, ok := c.eng.stream(path)
	if !ok {
		return c.fail(engine.StatusBadFile, "open "+path+": no such file")
	}
	if code := c.negotiate(s); code != engine.StatusOK {
		return code
	}

	c.open = true
	c.v1, c.v2 = nil, nil
	c.meta = engine.MetaNone
	if s.V1 != nil {
		v1 := *s.V1
		c.v1 = &v1
		c.meta |= engine.MetaID3v1 | engine.MetaNewID3
	}
	if s.V2 != nil {
		c.v2 = cloneV2(s.V2)
		c.meta |= engine.MetaID3v2 | engine.MetaNewID3
	}

	return engine.StatusOK
}

// OpenFixed fails when the stream's channel count is not in ch. The
// allowed format is restored afterwards.
func (c *Context) OpenFixed(path string, ch engine.Channels, enc engine.Encoding) engine.Status {
	saved := c.allowed
	if code := c.SetFormat(0, ch, enc); code != engine.StatusOK {
		return code
	}
	defer func() { c.allowed = saved }()

	if s, ok := c.eng.stream(path); ok && s.Channels&ch == 0 {
		return c.fail(engine.StatusBadChannel, fmt.Sprintf("stream has %d channels", s.Channels.Count()))
	}

	return c.Open(path)
}

func (c *Context) OpenFeed() engine.Status {
	if c.gone() {
		return engine.StatusBadHandle
	}

	c.reset()
	c.open = true
	c.feed = true

	return engine.StatusOK
}

// Feed appends raw PCM. The first call negotiates 44.1 kHz stereo
// signed 16-bit, narrowed by SetFormat.
func (c *Context) Feed(data []byte) engine.Status {
	if c.gone() {
		return engine.StatusBadHandle
	}
	if !c.feed {
		return c.fail(engine.StatusNoReader, "feed")
	}

	if !c.hasFormat {
		s := Stream{Rate: 44100, Channels: engine.Stereo, Encoding: engine.EncodingSigned16}
		if code := c.negotiate(s); code != engine.StatusOK {
			return code
		}
	}
	c.out.PCM = append(c.out.PCM, data...)

	return engine.StatusOK
}

func (c *Context) Close() engine.Status {
	if c.gone() {
		return engine.StatusBadHandle
	}
	if !c.open {
		return c.fail(engine.StatusNoReader, "close")
	}

	c.reset()

	return engine.StatusOK
}

func (c *Context) ended() engine.Status {
	if c.feed {
		return engine.StatusNeedMore
	}

	return engine.StatusDone
}

func (c *Context) Read(out []byte) (int, engine.Status) {
	if c.gone() {
		return 0, engine.StatusBadHandle
	}
	if !c.open {
		return 0, c.fail(engine.StatusNoReader, "read")
	}
	if c.pos >= len(c.out.PCM) {
		if len(out) == 0 && !c.feed {
			return 0, engine.StatusOK
		}
		return 0, c.fail(c.ended(), "")
	}

	n := copy(out, c.out.PCM[c.pos:])
	c.pos += n

	return n, engine.StatusOK
}

func (c *Context) DecodeFrame() (int64, []byte, engine.Status) {
	if c.gone() {
		return 0, nil, engine.StatusBadHandle
	}
	if !c.open {
		return 0, nil, c.fail(engine.StatusNoReader, "decode frame")
	}
	if c.pos >= len(c.out.PCM) {
		return 0, nil, c.fail(c.ended(), "")
	}

	size := min(c.out.frameBytes(), len(c.out.PCM)-c.pos)
	if cap(c.frame) < size {
		c.frame = make([]byte, size)
	}
	c.frame = c.frame[:size]
	copy(c.frame, c.out.PCM[c.pos:])
	c.pos += size

	num := c.frameNum
	c.frameNum++

	return num, c.frame, engine.StatusOK
}

func (c *Context) MetaCheck() engine.Meta {
	if c.gone() {
		return engine.MetaNone
	}

	return c.meta
}

func (c *Context) ID3() (*engine.RawID3v1, *engine.RawID3v2, engine.Status) {
	if c.gone() {
		return nil, nil, engine.StatusBadHandle
	}

	c.meta &^= engine.MetaNewID3

	return c.v1, c.v2, engine.StatusOK
}

// MetaFree overwrites the tag memory before dropping it.
func (c *Context) MetaFree() {
	if c.gone() {
		return
	}

	if c.v1 != nil {
		scribbleV1(c.v1)
	}
	if c.v2 != nil {
		scribbleV2(c.v2)
	}
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
