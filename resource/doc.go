// SPDX-License-Identifier: EPL-2.0

// Package resource provides a single-owner wrapper for native handles.
//
// Resource[T] holds one raw value (an interface, pointer or integer
// handle) and the function that destroys it. The zero value of T is the
// "empty" sentinel, so a Resource is valid exactly when it holds a
// non-zero value.
//
//	ctx, status := eng.NewContext("")
//	r := resource.Own(ctx, engine.Context.Delete)
//	defer r.Destroy()
//
// Ownership moves, it is never shared:
//
//	dst := src.Take()   // src is now empty, dst owns the value
//	dst.MoveFrom(&src)  // destroys dst's value first, then takes src's
//
// Release and Acquire hand the raw value in and out without calling the
// destroy function; they exist for types that run their own teardown.
package resource
