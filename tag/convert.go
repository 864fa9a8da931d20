// SPDX-License-Identifier: EPL-2.0

package tag

import (
	"bytes"

	"github.com/ik5/mpgx/engine"
)

// FixedString converts a fixed width text field. The value ends at the
// first NUL byte; when the field has none, the full width is the value.
func FixedString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return string(b[:i])
	}

	return string(b)
}

// LengthPrefixed converts an engine string. Fill counts the terminator,
// so Fill bytes yield Fill-1 characters; nil and Fill == 0 yield "".
// The length drives the conversion, so embedded NUL bytes are kept.
func LengthPrefixed(s *engine.RawString) string {
	if s == nil || s.Fill <= 0 {
		return ""
	}

	n := min(s.Fill-1, len(s.P))

	return string(s.P[:n])
}

// FromRawV1 copies an ID3v1 trailer. A NUL at comment byte 28 marks
// ID3v1.1: byte 29 is the track and the comment is cut to 28 bytes.
func FromRawV1(src *engine.RawID3v1) *ID3v1 {
	if src == nil {
		return nil
	}

	t := &ID3v1{
		Title:  FixedString(src.Title[:]),
		Artist: FixedString(src.Artist[:]),
		Album:  FixedString(src.Album[:]),
		Year:   FixedString(src.Year[:]),
		Genre:  src.Genre,
	}

	if src.Comment[v11Sentinel] == 0 {
		t.Comment = FixedString(src.Comment[:v11Sentinel])
		t.Track = src.Comment[v11Track]
		t.Revision = 1
	} else {
		t.Comment = FixedString(src.Comment[:])
	}

	return t
}

// FromRawText copies one text entry.
func FromRawText(src *engine.RawText) Text {
	if src == nil {
		return Text{}
	}

	return Text{
		Lang:        FixedString(src.Lang[:]),
		ID:          FixedString(src.ID[:]),
		Description: LengthPrefixed(&src.Description),
		Text:        LengthPrefixed(&src.Text),
	}
}

// FromRawPicture copies picture metadata, and the payload when the engine
// extracted one.
func FromRawPicture(src *engine.RawPicture) Picture {
	p := Picture{
		Type:        PictureType(src.Type),
		Description: LengthPrefixed(&src.Description),
		MIMEType:    LengthPrefixed(&src.MIMEType),
	}

	if src.Data != nil {
		n := len(src.Data)
		if src.Size > 0 && src.Size < n {
			n = src.Size
		}
		p.Payload = Payload{
			State: PayloadExtracted,
			Data:  bytes.Clone(src.Data[:n]),
		}
	}

	return p
}

// FromRawV2 copies an ID3v2 digest including every list.
func FromRawV2(src *engine.RawID3v2) *ID3v2 {
	if src == nil {
		return nil
	}

	t := &ID3v2{
		Version: src.Version,
		Title:   LengthPrefixed(src.Title),
		Artist:  LengthPrefixed(src.Artist),
		Album:   LengthPrefixed(src.Album),
		Year:    LengthPrefixed(src.Year),
		Genre:   LengthPrefixed(src.Genre),
		Comment: LengthPrefixed(src.Comment),
	}

	t.Comments = convertTexts(src.CommentList)
	t.Texts = convertTexts(src.Text)
	t.Extras = convertTexts(src.Extra)

	if len(src.Picture) > 0 {
		t.Pictures = make([]Picture, 0, len(src.Picture))
		for i := range src.Picture {
			t.Pictures = append(t.Pictures, FromRawPicture(&src.Picture[i]))
		}
	}

	return t
}

func convertTexts(src []engine.RawText) []Text {
	if len(src) == 0 {
		return nil
	}

	out := make([]Text, 0, len(src))
	for i := range src {
		out = append(out, FromRawText(&src[i]))
	}

	return out
}

// FromRaw converts whichever of the two tags the engine reported.
func FromRaw(v1 *engine.RawID3v1, v2 *engine.RawID3v2) Tags {
	return Tags{
		V1: FromRawV1(v1),
		V2: FromRawV2(v2),
	}
}
