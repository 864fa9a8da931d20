// SPDX-License-Identifier: EPL-2.0

package gomp3

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/bogem/id3v2/v2"

	"github.com/ik5/mpgx/engine"
)

const id3v2HeaderSize = 10

var id3v2Magic = []byte("ID3")

const (
	flagUnsync   = 0x80
	flagExtended = 0x40
	flagFooter   = 0x10
)

// ID3v2.2 uses three character frame ids; only those that have a
// counterpart in the raw tag are mapped.
var v22Frames = map[string]string{
	"TT2": "TIT2",
	"TP1": "TPE1",
	"TP2": "TPE2",
	"TAL": "TALB",
	"TYE": "TYER",
	"TCO": "TCON",
	"TRK": "TRCK",
	"TPA": "TPOS",
	"TCM": "TCOM",
	"TXX": "TXXX",
	"COM": "COMM",
	"ULT": "USLT",
	"PIC": "APIC",
}

var v22ImageFormats = map[string]string{
	"JPG": "image/jpeg",
	"PNG": "image/png",
	"GIF": "image/gif",
	"BMP": "image/bmp",
}

func decodeSynchsafe(b []byte) int {
	return int(b[0]&0x7f)<<21 | int(b[1]&0x7f)<<14 | int(b[2]&0x7f)<<7 | int(b[3]&0x7f)
}

func encodeSynchsafe(n int) []byte {
	return []byte{byte(n>>21) & 0x7f, byte(n>>14) & 0x7f, byte(n>>7) & 0x7f, byte(n) & 0x7f}
}

// id3v2Size returns the full length of the tag starting at b, header
// and footer included. It needs the 10 header bytes.
func id3v2Size(b []byte) (int, bool) {
	if len(b) < id3v2HeaderSize || !bytes.HasPrefix(b, id3v2Magic) {
		return 0, false
	}

	size := id3v2HeaderSize + decodeSynchsafe(b[6:10])
	if b[3] >= 4 && b[5]&flagFooter != 0 {
		size += id3v2HeaderSize
	}

	return size, true
}

func unsynchronise(b []byte) []byte {
	return bytes.ReplaceAll(b, []byte{0xff, 0x00}, []byte{0xff})
}

// frameError is a frame that was skipped.
type frameError struct {
	ID  string
	Err error
}

func (e *frameError) Error() string { return e.ID + ": " + e.Err.Error() }

func (e *frameError) Unwrap() error { return e.Err }

// rawFrame is a frame with its flags applied: plain data under a v2.3
// or v2.4 id.
type rawFrame struct {
	id   string
	data []byte
}

// parseID3v2 parses a complete tag, header included. Only a broken
// header is an error; frames that cannot be decoded are passed to
// skipped, which may be nil, and left out.
func parseID3v2(b []byte, keepPictures bool, skipped func(error)) (*engine.RawID3v2, error) {
	size, ok := id3v2Size(b)
	if !ok {
		return nil, ErrNoID3v2
	}
	if size > len(b) {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrTruncatedID3v2, size, len(b))
	}

	major := b[3]
	if major < 2 || major > 4 {
		return nil, fmt.Errorf("%w: 2.%d", ErrID3v2Version, major)
	}

	if skipped == nil {
		skipped = func(error) {}
	}

	builder := &id3v2Builder{
		tag:          &engine.RawID3v2{Version: major},
		keepPictures: keepPictures,
	}

	frames, errs := splitFrames(b[:size])
	for _, err := range errs {
		skipped(err)
	}

	for _, f := range frames {
		if err := builder.add(major, f); err != nil {
			skipped(&frameError{ID: f.id, Err: err})
		}
	}

	return builder.tag, nil
}

// splitFrames walks the frames of a tag and undoes what the tag reader
// does not: tag and frame level unsynchronisation, the extended header,
// per-frame flags and ID3v2.2's short ids. Frames without a raw tag
// counterpart are dropped here.
func splitFrames(b []byte) ([]rawFrame, []error) {
	major, flags := b[3], b[5]

	body := b[id3v2HeaderSize : id3v2HeaderSize+decodeSynchsafe(b[6:10])]
	if flags&flagUnsync != 0 && major < 4 {
		body = unsynchronise(body)
	}
	if flags&flagExtended != 0 && major > 2 {
		body = skipExtendedHeader(major, body)
	}

	idLen, hdrLen := 4, 10
	if major == 2 {
		idLen, hdrLen = 3, 6
	}

	var (
		frames []rawFrame
		errs   []error
	)
	for len(body) >= hdrLen && body[0] != 0 {
		id := string(body[:idLen])

		var n int
		var fflags uint16
		switch major {
		case 2:
			n = int(body[3])<<16 | int(body[4])<<8 | int(body[5])
		case 3:
			n = int(binary.BigEndian.Uint32(body[4:8]))
			fflags = binary.BigEndian.Uint16(body[8:10])
		default:
			n = decodeSynchsafe(body[4:8])
			fflags = binary.BigEndian.Uint16(body[8:10])
		}

		if n < 0 || n > len(body)-hdrLen {
			errs = append(errs, &frameError{ID: id, Err: ErrShortFrame})
			break
		}
		data := body[hdrLen : hdrLen+n]
		body = body[hdrLen+n:]

		if major == 2 {
			v3 := v22Frames[id]
			if v3 == "" {
				continue
			}
			if v3 == "APIC" {
				data = v22Picture(data)
			}
			id = v3
		}
		if !wanted(id) {
			continue
		}

		data, err := frameData(major, fflags, data)
		if err != nil {
			errs = append(errs, &frameError{ID: id, Err: err})
			continue
		}
		if len(data) == 0 {
			continue
		}
		// The tag reader falls back to UTF-8 on unknown encodings.
		if data[0] > 3 {
			errs = append(errs, &frameError{ID: id, Err: fmt.Errorf("%w: %d", ErrTextEncoding, data[0])})
			continue
		}

		frames = append(frames, rawFrame{id: id, data: data})
	}

	return frames, errs
}

func wanted(id string) bool {
	switch id {
	case "TXXX", "COMM", "USLT", "APIC":
		return true
	}

	return strings.HasPrefix(id, "T")
}

// v22Picture rewrites a PIC body, whose image format is three fixed
// characters, into the APIC layout with a MIME type.
func v22Picture(data []byte) []byte {
	if len(data) < 4 {
		return data
	}

	format := strings.ToUpper(string(data[1:4]))
	mime := v22ImageFormats[format]
	if mime == "" {
		mime = "image/" + strings.ToLower(format)
	}

	out := make([]byte, 0, len(data)+len(mime))
	out = append(out, data[0])
	out = append(out, mime...)
	out = append(out, 0)

	return append(out, data[4:]...)
}

func skipExtendedHeader(major byte, body []byte) []byte {
	if len(body) < 4 {
		return nil
	}

	var n int
	if major == 3 {
		n = int(binary.BigEndian.Uint32(body[:4])) + 4
	} else {
		n = decodeSynchsafe(body[:4])
	}
	if n > len(body) {
		return nil
	}

	return body[n:]
}

// frameData strips per-frame encodings. Compressed and encrypted frames
// cannot be read.
func frameData(major byte, flags uint16, data []byte) ([]byte, error) {
	switch major {
	case 3:
		if flags&0x00c0 != 0 {
			return nil, ErrPackedFrame
		}
		if flags&0x0020 != 0 && len(data) > 0 {
			data = data[1:]
		}
	case 4:
		if flags&0x000c != 0 {
			return nil, ErrPackedFrame
		}
		if flags&0x0040 != 0 && len(data) > 0 {
			data = data[1:]
		}
		if flags&0x0002 != 0 {
			data = unsynchronise(data)
		}
		if flags&0x0001 != 0 {
			if len(data) < 4 {
				return nil, ErrShortFrame
			}
			data = data[4:]
		}
	}

	return data, nil
}

// decodeFrame reads one frame through a single frame tag, so a broken
// frame cannot take the frames after it down.
func decodeFrame(major byte, f rawFrame) (id3v2.Framer, error) {
	if major < 3 {
		major = 3
	}

	var size []byte
	if major == 4 {
		size = encodeSynchsafe(len(f.data))
	} else {
		size = binary.BigEndian.AppendUint32(nil, uint32(len(f.data)))
	}

	b := make([]byte, 0, 2*id3v2HeaderSize+len(f.data))
	b = append(b, 'I', 'D', '3', major, 0, 0)
	b = append(b, encodeSynchsafe(id3v2HeaderSize+len(f.data))...)
	b = append(b, f.id...)
	b = append(b, size...)
	b = append(b, 0, 0)
	b = append(b, f.data...)

	tag, err := id3v2.ParseReader(bytes.NewReader(b), id3v2.Options{Parse: true})
	if err != nil {
		return nil, err
	}

	// A body that ends early is dropped without an error.
	frame := tag.GetLastFrame(f.id)
	if frame == nil {
		return nil, ErrShortFrame
	}

	return frame, nil
}

func rawString(s string) *engine.RawString {
	return engine.NewRawString([]byte(s))
}

// id3v2Builder collects frames into the raw tag.
type id3v2Builder struct {
	tag          *engine.RawID3v2
	keepPictures bool
	bareComment  bool
}

func (b *id3v2Builder) add(major byte, f rawFrame) error {
	frame, err := decodeFrame(major, f)
	if err != nil {
		return err
	}

	switch fr := frame.(type) {
	case id3v2.TextFrame:
		b.addText(f.id, fr)
	case id3v2.UserDefinedTextFrame:
		b.addExtra(fr)
	case id3v2.CommentFrame:
		b.addComment(f.id, fr.Language, fr.Description, fr.Text)
	case id3v2.UnsynchronisedLyricsFrame:
		b.addComment(f.id, fr.Language, fr.ContentDescriptor, fr.Lyrics)
	case id3v2.PictureFrame:
		b.addPicture(fr)
	}

	return nil
}

func (b *id3v2Builder) addText(id string, fr id3v2.TextFrame) {
	value := rawString(strings.TrimRight(fr.Text, "\x00"))
	entry := engine.RawText{Text: *value, Description: *rawString("")}
	copy(entry.ID[:], id)
	b.tag.Text = append(b.tag.Text, entry)

	switch id {
	case "TIT2":
		b.tag.Title = value
	case "TPE1":
		b.tag.Artist = value
	case "TALB":
		b.tag.Album = value
	case "TYER", "TDRC":
		if b.tag.Year == nil || id == "TYER" {
			b.tag.Year = value
		}
	case "TCON":
		b.tag.Genre = value
	}
}

func (b *id3v2Builder) addExtra(fr id3v2.UserDefinedTextFrame) {
	entry := engine.RawText{
		Description: *rawString(fr.Description),
		Text:        *rawString(strings.TrimRight(fr.Value, "\x00")),
	}
	copy(entry.ID[:], "TXXX")
	b.tag.Extra = append(b.tag.Extra, entry)
}

// addComment handles COMM and USLT, which share a layout.
func (b *id3v2Builder) addComment(id, lang, desc, text string) {
	value := rawString(strings.TrimRight(text, "\x00"))
	entry := engine.RawText{Description: *rawString(desc), Text: *value}
	copy(entry.Lang[:], lang)
	copy(entry.ID[:], id)
	b.tag.CommentList = append(b.tag.CommentList, entry)

	// The first comment without a description is the tag's comment;
	// otherwise the first comment at all.
	if id == "COMM" && (b.tag.Comment == nil || (desc == "" && !b.bareComment)) {
		b.tag.Comment = value
		b.bareComment = desc == ""
	}
}

func (b *id3v2Builder) addPicture(fr id3v2.PictureFrame) {
	pic := engine.RawPicture{
		Type:        fr.PictureType,
		Description: *rawString(fr.Description),
		MIMEType:    *rawString(fr.MimeType),
		Size:        len(fr.Picture),
	}
	if b.keepPictures {
		pic.Data = bytes.Clone(fr.Picture)
	}
	b.tag.Picture = append(b.tag.Picture, pic)
}
