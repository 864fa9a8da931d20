// SPDX-License-Identifier: EPL-2.0

package gomp3

import (
	"bytes"

	"github.com/ik5/mpgx/engine"
)

const id3v1Size = 128

var id3v1Magic = []byte("TAG")

func isID3v1(b []byte) bool {
	return len(b) >= id3v1Size && bytes.HasPrefix(b, id3v1Magic)
}

// parseID3v1 copies a 128 byte trailer into the raw structure. The
// fields are kept as fixed arrays.
func parseID3v1(b []byte) *engine.RawID3v1 {
	if !isID3v1(b) {
		return nil
	}

	var t engine.RawID3v1
	copy(t.Tag[:], b[0:3])
	copy(t.Title[:], b[3:33])
	copy(t.Artist[:], b[33:63])
	copy(t.Album[:], b[63:93])
	copy(t.Year[:], b[93:97])
	copy(t.Comment[:], b[97:127])
	t.Genre = b[127]

	return &t
}
