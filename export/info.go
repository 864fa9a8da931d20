// SPDX-License-Identifier: EPL-2.0

package export

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-audio/wav"
)

// riffSizeOffset is where the RIFF header keeps the file size less 8.
const riffSizeOffset = 4

type infoField struct {
	id    string
	value string
}

func infoFields(m *wav.Metadata) []infoField {
	return []infoField{
		{"INAM", m.Title},
		{"IART", m.Artist},
		{"IPRD", m.Product},
		{"ICRD", m.CreationDate},
		{"ICMT", m.Comments},
		{"IGNR", m.Genre},
		{"ITRK", m.TrackNbr},
		{"ISFT", m.Software},
	}
}

// encodeInfo builds a LIST chunk of type INFO. Every field is a NUL
// terminated string and odd sized fields get a pad byte, so the chunk
// always has an even size.
func encodeInfo(m *wav.Metadata) []byte {
	var body bytes.Buffer
	body.Write(wav.CIDInfo)

	for _, f := range infoFields(m) {
		if f.value == "" {
			continue
		}

		size := len(f.value) + 1
		body.WriteString(f.id)
		_ = binary.Write(&body, binary.LittleEndian, uint32(size))
		body.WriteString(f.value)
		body.WriteByte(0)
		if size%2 == 1 {
			body.WriteByte(0)
		}
	}

	chunk := make([]byte, 0, 8+body.Len())
	chunk = append(chunk, wav.CIDList[:]...)
	chunk = binary.LittleEndian.AppendUint32(chunk, uint32(body.Len()))

	return append(chunk, body.Bytes()...)
}

// appendInfo adds the INFO list after the last chunk of a finished WAV
// file in w and patches the RIFF size to cover it.
func appendInfo(w io.WriteSeeker, m *wav.Metadata) error {
	end, err := w.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("info: %w", err)
	}

	chunk := encodeInfo(m)
	if _, err := w.Write(chunk); err != nil {
		return fmt.Errorf("info: %w", err)
	}

	if _, err := w.Seek(riffSizeOffset, io.SeekStart); err != nil {
		return fmt.Errorf("info: %w", err)
	}
	size := binary.LittleEndian.AppendUint32(nil, uint32(end+int64(len(chunk))-8))
	if _, err := w.Write(size); err != nil {
		return fmt.Errorf("info: %w", err)
	}

	_, err = w.Seek(0, io.SeekEnd)

	return err
}
