// SPDX-License-Identifier: EPL-2.0

// Package handle wraps a decoder context behind an owning Handle.
//
// Every engine call returns an integer status. The Handle turns each
// non-OK status into an *Error that carries the operation name, the
// status code and the engine's message:
//
//	h, err := handle.New(gomp3.New())
//	if err != nil {
//	    return err
//	}
//	defer h.Destroy()
//
//	if err := h.Open("song.mp3"); err != nil {
//	    return err
//	}
//	f, err := h.Format()
//	fmt.Println(f) // { rate: 44100 Hz ; channels: stereo ; encoding: signed-16-bit }
//
// # Errors
//
// Creation failures use the engine's plain message for the bare code;
// every later failure uses the live context's diagnostic, which carries
// more detail. Errors match the kind sentinels and the engine status:
//
//	errors.Is(err, handle.ErrEndOfStream)
//	errors.Is(err, engine.StatusBadFile)
//
// # Ownership
//
// A Handle owns zero or one context. Destroy is idempotent. Take and
// MoveFrom transfer the context and leave the source empty; operations on
// an empty handle fail with ErrNoContext and never reach the engine.
// There is no finalizer, so a Handle that is dropped without Destroy
// leaks its context.
//
// # Frames
//
// DecodeFrame returns a Frame whose samples are borrowed from the engine.
// The next DecodeFrame, Read, Open, Close or Destroy invalidates them and
// Samples then returns ErrStaleFrame.
//
// # Panicking style
//
// Must, Check and Recover offer an opt-in panic flow on top of the
// (value, error) methods for code that prefers it.
package handle
