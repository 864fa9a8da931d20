// SPDX-License-Identifier: EPL-2.0

package handle

import (
	"errors"
	"fmt"

	"github.com/ik5/mpgx/engine"
)

var (
	ErrEndOfStream = errors.New("end of stream")
	ErrNeedMore    = errors.New("feed needs more input")
	ErrNoContext   = errors.New("handle has no decoder context")
	ErrStaleFrame  = errors.New("frame samples were invalidated by a later call")
)

// Kind classifies an Error.
type Kind int

const (
	// KindOperation is a failure reported by a live context.
	KindOperation Kind = iota
	// KindCreation means no context could be allocated.
	KindCreation
	// KindEndOfStream is the engine's end of stream message. DecodeFrame
	// and Read report it through the failure channel.
	KindEndOfStream
	// KindNeedMore means a feed mode handle ran out of input.
	KindNeedMore
	// KindNoContext means the handle was destroyed or moved from.
	KindNoContext
)

func (k Kind) String() string {
	switch k {
	case KindCreation:
		return "creation"
	case KindEndOfStream:
		return "end of stream"
	case KindNeedMore:
		return "need more"
	case KindNoContext:
		return "no context"
	default:
		return "operation"
	}
}

// Error is a failed engine call.
type Error struct {
	Op   string
	Kind Kind
	Code engine.Status
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Msg)
}

// Unwrap exposes the kind sentinel and the engine status, so both
// errors.Is(err, ErrEndOfStream) and errors.Is(err, engine.StatusDone)
// work.
func (e *Error) Unwrap() []error {
	var errs []error
	switch e.Kind {
	case KindEndOfStream:
		errs = append(errs, ErrEndOfStream)
	case KindNeedMore:
		errs = append(errs, ErrNeedMore)
	case KindNoContext:
		errs = append(errs, ErrNoContext)
	}
	if e.Code != engine.StatusOK {
		errs = append(errs, e.Code)
	}

	return errs
}

func kindOf(code engine.Status) Kind {
	switch code {
	case engine.StatusDone:
		return KindEndOfStream
	case engine.StatusNeedMore:
		return KindNeedMore
	default:
		return KindOperation
	}
}

// newCodeError builds an error from a bare status. It is the only form
// available when no context exists, i.e. when creation failed.
func newCodeError(op string, eng engine.Engine, code engine.Status) *Error {
	return &Error{
		Op:   op,
		Kind: KindCreation,
		Code: code,
		Msg:  eng.PlainStrerror(code),
	}
}

// newContextError builds an error from a live context, whose diagnostic
// carries more detail than the bare status.
func newContextError(op string, ctx engine.Context, code engine.Status) *Error {
	msg := ctx.Strerror()
	if msg == "" {
		msg = code.Error()
	}

	return &Error{
		Op:   op,
		Kind: kindOf(code),
		Code: code,
		Msg:  msg,
	}
}

func newNoContextError(op string) *Error {
	return &Error{
		Op:   op,
		Kind: KindNoContext,
		Code: engine.StatusBadHandle,
		Msg:  ErrNoContext.Error(),
	}
}
