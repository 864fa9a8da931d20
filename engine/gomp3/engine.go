// SPDX-License-Identifier: EPL-2.0

package gomp3

import (
	"io"

	mp3 "github.com/hajimehoshi/go-mp3"
	"github.com/rs/zerolog"

	"github.com/ik5/mpgx/engine"
)

// Name is the engine name used in registries.
const Name = "gomp3"

// DecoderGeneric is the only decoder; it is also the default.
const DecoderGeneric = "generic"

// mp3Reader is the part of mp3.Decoder the contexts use, so tests can
// substitute it.
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

var newDecoder = func(r io.Reader) (mp3Reader, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, err
	}

	return dec, nil
}

// Engine creates go-mp3 backed contexts.
type Engine struct {
	log zerolog.Logger
}

type Option func(*Engine)

// WithLogger sets the logger contexts write to. Debug output is only
// produced while a context's verbose level is above zero.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

func New(opts ...Option) *Engine {
	e := &Engine{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

func (e *Engine) NewContext(decoder string) (engine.Context, engine.Status) {
	if decoder != "" && decoder != DecoderGeneric {
		return nil, engine.StatusBadDecoder
	}

	return &Context{log: e.log.With().Str("decoder", DecoderGeneric).Logger()}, engine.StatusOK
}

func (e *Engine) PlainStrerror(s engine.Status) string { return engine.PlainStrerror(s) }

func (e *Engine) Decoders() []string { return []string{DecoderGeneric} }
