// SPDX-License-Identifier: EPL-2.0

package tag

import "fmt"

const (
	v11Sentinel = 28
	v11Track    = 29
)

// ID3v1 is an owned copy of a legacy trailer tag.
type ID3v1 struct {
	Title   string
	Artist  string
	Album   string
	Year    string
	Comment string
	Track   uint8 // only meaningful for ID3v1.1
	Genre   uint8

	// Revision is 1 for ID3v1.1 and 0 for plain ID3v1.0.
	Revision uint8
}

// TrackNumber returns the track and whether the tag carries one.
func (t *ID3v1) TrackNumber() (uint8, bool) {
	return t.Track, t.Revision == 1
}

// Version returns "1.0" or "1.1".
func (t *ID3v1) Version() string {
	return fmt.Sprintf("1.%d", t.Revision)
}

// Text is a comment, text information or user text entry.
type Text struct {
	Lang        string
	ID          string
	Description string
	Text        string
}

// PayloadState tells whether a picture's bytes were extracted.
type PayloadState int

const (
	// PayloadUnavailable means the picture exists but its bytes were not
	// extracted by the engine.
	PayloadUnavailable PayloadState = iota
	// PayloadExtracted means Data holds an owned copy of the raw bytes.
	PayloadExtracted
)

func (s PayloadState) String() string {
	switch s {
	case PayloadExtracted:
		return "extracted"
	default:
		return "unavailable"
	}
}

// Payload is the raw picture content. Data is never decoded.
type Payload struct {
	State PayloadState
	Data  []byte
}

// Available reports whether the payload bytes were extracted.
func (p Payload) Available() bool { return p.State == PayloadExtracted }

// Picture is an attached picture entry.
type Picture struct {
	Type        PictureType
	Description string
	MIMEType    string
	Payload     Payload
}

// ID3v2 is an owned copy of an extended tag.
type ID3v2 struct {
	Version byte
	Title   string
	Artist  string
	Album   string
	Year    string
	Genre   string
	Comment string

	Comments []Text
	Texts    []Text
	Extras   []Text
	Pictures []Picture
}

// Tags holds the optional legacy and extended tags of a stream.
type Tags struct {
	V1 *ID3v1
	V2 *ID3v2
}

// Empty reports whether neither tag is present.
func (t Tags) Empty() bool { return t.V1 == nil && t.V2 == nil }
