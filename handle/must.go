// SPDX-License-Identifier: EPL-2.0

package handle

import "errors"

// Must returns v or panics with err. Pair it with Recover at a function
// boundary to write straight line code:
//
//	func info(h *handle.Handle) (f handle.Format, err error) {
//		defer handle.Recover(&err)
//		handle.Check(h.Open("a.mp3"))
//		return handle.Must(h.Format()), nil
//	}
func Must[T any](v T, err error) T {
	Check(err)
	return v
}

// Check panics with err when it is not nil.
func Check(err error) {
	if err != nil {
		panic(err)
	}
}

// Recover stores a panic raised by Must or Check in *errp. Panics that do
// not carry an *Error are re-raised.
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}

	if err, ok := r.(error); ok {
		var herr *Error
		if errors.As(err, &herr) {
			*errp = err
			return
		}
	}

	panic(r)
}
