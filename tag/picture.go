// SPDX-License-Identifier: EPL-2.0

package tag

// PictureType is the APIC picture type byte.
type PictureType byte

const (
	PictureOther      PictureType = 0
	PictureFileIcon   PictureType = 1
	PictureCoverFront PictureType = 3
	PictureCoverBack  PictureType = 4
	PictureArtist     PictureType = 8
)

var pictureTypes = []string{
	"Other",
	"32x32 pixels 'file icon' (PNG only)",
	"Other file icon",
	"Cover (front)",
	"Cover (back)",
	"Leaflet page",
	"Media (e.g. label side of CD)",
	"Lead artist/lead performer/soloist",
	"Artist/performer",
	"Conductor",
	"Band/Orchestra",
	"Composer",
	"Lyricist/text writer",
	"Recording Location",
	"During recording",
	"During performance",
	"Movie/video screen capture",
	"A bright coloured fish",
	"Illustration",
	"Band/artist logotype",
	"Publisher/Studio logotype",
}

func (p PictureType) String() string {
	if int(p) >= len(pictureTypes) {
		return ""
	}

	return pictureTypes[p]
}
