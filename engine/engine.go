// SPDX-License-Identifier: EPL-2.0

package engine

// Engine creates decoder contexts.
type Engine interface {
	// NewContext allocates a context using the named decoder; an empty
	// name selects the engine default. On failure the context is nil
	// and the status explains why.
	NewContext(decoder string) (Context, Status)

	// PlainStrerror describes a status without any live context.
	PlainStrerror(s Status) string

	// Decoders lists the decoder names NewContext accepts.
	Decoders() []string
}

// Context is the per-stream decoder state. Calls are not safe for
// concurrent use. Memory handed out by DecodeFrame and ID3 stays owned by
// the context and is only valid until the next mutating call.
type Context interface {
	Delete()

	Param(p Param, value int64) Status
	GetParam(p Param) (int64, Status)

	GetFormat() (rate int64, channels Channels, encoding Encoding, status Status)
	SetFormat(rate int64, channels Channels, encoding Encoding) Status

	Open(path string) Status
	OpenFixed(path string, channels Channels, encoding Encoding) Status
	OpenFeed() Status
	Feed(data []byte) Status
	Close() Status

	Read(out []byte) (int, Status)
	DecodeFrame() (num int64, audio []byte, status Status)

	MetaCheck() Meta
	ID3() (*RawID3v1, *RawID3v2, Status)
	MetaFree()

	// Strerror describes the last failure with context detail.
	Strerror() string
	// ErrCode returns the status of the last failure.
	ErrCode() Status
}
