// SPDX-License-Identifier: EPL-2.0

package handle

import (
	"github.com/rs/zerolog"

	"github.com/ik5/mpgx/engine"
	"github.com/ik5/mpgx/resource"
)

// Handle owns at most one decoder context. A Handle is not safe for
// concurrent use; distinct handles are independent.
type Handle struct {
	eng     engine.Engine
	ctx     resource.Resource[engine.Context]
	gen     *generation
	log     zerolog.Logger
	decoder string
}

// Option configures a Handle.
type Option func(*Handle)

// WithDecoder selects the decoder by name. The empty name is the engine
// default.
func WithDecoder(name string) Option {
	return func(h *Handle) { h.decoder = name }
}

// WithLogger attaches a logger for lifecycle and failure events.
func WithLogger(l zerolog.Logger) Option {
	return func(h *Handle) { h.log = l }
}

func deleteContext(c engine.Context) { c.Delete() }

func empty(eng engine.Engine) *Handle {
	return &Handle{
		eng: eng,
		ctx: resource.New(deleteContext),
		gen: &generation{},
		log: zerolog.Nop(),
	}
}

// New returns a Handle with a fresh context from eng.
func New(eng engine.Engine, opts ...Option) (*Handle, error) {
	h := empty(eng)
	for _, opt := range opts {
		opt(h)
	}

	if err := h.Create(h.decoder); err != nil {
		return nil, err
	}

	return h, nil
}

// Create allocates a new context with the named decoder and destroys the
// previous one. On failure the handle keeps its previous context.
func (h *Handle) Create(decoder string) error {
	ctx, code := h.eng.NewContext(decoder)
	if ctx == nil || code != engine.StatusOK {
		if ctx != nil {
			ctx.Delete()
		}
		if code == engine.StatusOK {
			code = engine.StatusOutOfMem
		}
		err := newCodeError("create", h.eng, code)
		h.log.Debug().Str("decoder", decoder).Int("code", int(code)).Msg(err.Msg)

		return err
	}

	h.ctx.Reset(ctx)
	h.decoder = decoder
	h.gen.bump()
	h.log.Debug().Str("decoder", decoder).Msg("decoder context created")

	return nil
}

// Destroy releases the context. It is safe in any state and may be
// called repeatedly.
func (h *Handle) Destroy() {
	if !h.ctx.Valid() {
		return
	}

	h.ctx.Destroy()
	h.gen.bump()
	h.log.Debug().Msg("decoder context destroyed")
}

// Valid reports whether the handle owns a context.
func (h *Handle) Valid() bool { return h.ctx.Valid() }

// Decoder returns the name the current context was created with.
func (h *Handle) Decoder() string { return h.decoder }

// Engine returns the engine the handle creates contexts with.
func (h *Handle) Engine() engine.Engine { return h.eng }

// Take moves the context into a new Handle and leaves h empty. Frames
// issued by h stay valid on the new owner.
func (h *Handle) Take() *Handle {
	nh := &Handle{
		eng:     h.eng,
		ctx:     h.ctx.Take(),
		gen:     h.gen,
		log:     h.log,
		decoder: h.decoder,
	}
	h.gen = &generation{}

	return nh
}

// MoveFrom destroys the context h owns and takes over other's, leaving
// other empty. Moving a handle onto itself does nothing.
func (h *Handle) MoveFrom(other *Handle) {
	if h == other {
		return
	}

	h.Destroy()
	h.eng = other.eng
	h.ctx.MoveFrom(&other.ctx)
	h.gen = other.gen
	h.log = other.log
	h.decoder = other.decoder
	other.gen = &generation{}
}

func (h *Handle) context(op string) (engine.Context, error) {
	if !h.ctx.Valid() {
		return nil, newNoContextError(op)
	}

	return h.ctx.Get(), nil
}

func (h *Handle) fail(op string, ctx engine.Context, code engine.Status) error {
	err := newContextError(op, ctx, code)
	h.log.Debug().Str("op", op).Int("code", int(code)).Msg(err.Msg)

	return err
}

// call runs one context operation that reports only a status.
func (h *Handle) call(op string, fn func(engine.Context) engine.Status) error {
	ctx, err := h.context(op)
	if err != nil {
		return err
	}

	if code := fn(ctx); code != engine.StatusOK {
		return h.fail(op, ctx, code)
	}

	return nil
}
