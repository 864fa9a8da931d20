// SPDX-License-Identifier: EPL-2.0

// Package engine defines the contract between mpgx and an MPEG audio
// decoding engine.
//
// The contract is deliberately close to a C library: a context is created
// by an Engine, every call returns a Status where zero means success, and
// richer diagnostics are fetched from the live context with Strerror.
// Higher level packages (handle, tag) turn this into Go values and errors.
//
// # Statuses
//
// Status values follow the libmpg123 numbering:
//
//	StatusOK        0    success
//	StatusNeedMore  -10  feed mode wants more input
//	StatusDone      -12  end of stream
//	positive             errors (StatusBadParam, StatusNoReader, ...)
//
// Status implements error, so a bare status can be wrapped or compared
// with errors.Is.
//
// # Formats
//
// Output formats are described by a rate in Hz, a Channels bitmask
// (Mono, Stereo) and an Encoding bitmask numbered like fmt123.h. Use
// SampleSize to find the byte width of an encoding.
//
// # Metadata
//
// The raw tag structures (RawID3v1, RawID3v2) are owned by the context.
// They are only valid until MetaFree or the next call that rescans the
// stream; package tag copies them into owned values.
//
// # Registry
//
// Engines can be registered by name so callers pick one at runtime:
//
//	reg := engine.NewRegistry()
//	reg.Register("gomp3", gomp3.New())
//	eng, _ := reg.Get("gomp3")
package engine
