// SPDX-License-Identifier: EPL-2.0

package engine

// Meta is the bitmask returned by Context.MetaCheck.
type Meta int

const (
	MetaNone   Meta = 0
	MetaID3v1  Meta = 0x1
	MetaID3v2  Meta = 0x2
	MetaNewID3 Meta = 0x4

	// MetaID3 matches either tag kind.
	MetaID3 = MetaID3v1 | MetaID3v2
)

// HasID3 reports whether any ID3 tag was seen.
func (m Meta) HasID3() bool { return m&MetaID3 != 0 }

// RawString is a length-prefixed string owned by the engine. Fill counts
// the bytes in use including the trailing terminator, so a non-empty
// value of n bytes has Fill == n+1. P may contain embedded NUL bytes.
type RawString struct {
	P    []byte
	Fill int
}

// NewRawString builds a RawString holding a copy of s plus terminator.
func NewRawString(s []byte) *RawString {
	p := make([]byte, len(s)+1)
	copy(p, s)

	return &RawString{P: p, Fill: len(p)}
}

// RawID3v1 mirrors the 128 byte ID3v1 trailer. The text arrays are not
// guaranteed to be NUL terminated.
type RawID3v1 struct {
	Tag     [3]byte
	Title   [30]byte
	Artist  [30]byte
	Album   [30]byte
	Year    [4]byte
	Comment [30]byte
	Genre   byte
}

// RawText is one ID3v2 text-like frame (COMM, USLT, T***, TXXX).
type RawText struct {
	Lang        [3]byte
	ID          [4]byte
	Description RawString
	Text        RawString
}

// RawPicture is one APIC frame. Data is nil when the engine was not
// asked to keep picture payloads.
type RawPicture struct {
	Type        byte
	Description RawString
	MIMEType    RawString
	Size        int
	Data        []byte
}

// RawID3v2 mirrors the engine's digest of an ID3v2 tag. Any of the
// scalar pointers may be nil.
type RawID3v2 struct {
	Version byte
	Title   *RawString
	Artist  *RawString
	Album   *RawString
	Year    *RawString
	Genre   *RawString
	Comment *RawString

	CommentList []RawText
	Text        []RawText
	Extra       []RawText
	Picture     []RawPicture
}
