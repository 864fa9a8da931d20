package handle

import (
	"testing"

	"github.com/ik5/mpgx/engine"
	"github.com/ik5/mpgx/internal/enginetest"
)

func taggedEngine(t *testing.T, v1 *engine.RawID3v1, v2 *engine.RawID3v2) *enginetest.Engine {
	t.Helper()

	eng := enginetest.New()
	s := enginetest.SilentStream(44100, 2, 100)
	s.V1 = v1
	s.V2 = v2
	eng.AddStream(songPath, s)

	return eng
}

func openTagged(t *testing.T, v1 *engine.RawID3v1, v2 *engine.RawID3v2) *Handle {
	t.Helper()

	h := newHandle(t, taggedEngine(t, v1, v2))
	if err := h.Open(songPath); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	return h
}

func TestTags_Both(t *testing.T) {
	t.Parallel()

	comment := append([]byte("abc"), make([]byte, 27)...)
	comment[29] = 7
	v1 := enginetest.RawV1("Title", "Artist", "Album", "2001", comment, 12)
	v2 := &engine.RawID3v2{
		Version: 4,
		Title:   enginetest.Str("Long Title"),
		Genre:   enginetest.Str("Rock\x00Pop"),
	}

	h := openTagged(t, v1, v2)

	if got := h.MetaCheck(); got&engine.MetaID3 != engine.MetaID3 {
		t.Errorf("MetaCheck() = %#x, want both ID3 bits", got)
	}

	tags, err := h.Tags()
	if err != nil {
		t.Fatalf("Tags() error = %v", err)
	}
	if tags.V1 == nil || tags.V2 == nil {
		t.Fatalf("Tags() = %+v, want both tags", tags)
	}

	if tags.V1.Comment != "abc" {
		t.Errorf("V1.Comment = %q, want %q", tags.V1.Comment, "abc")
	}
	if track, ok := tags.V1.TrackNumber(); !ok || track != 7 {
		t.Errorf("V1.TrackNumber() = %d, %v, want 7, true", track, ok)
	}
	if tags.V1.Version() != "1.1" {
		t.Errorf("V1.Version() = %q, want 1.1", tags.V1.Version())
	}
	if tags.V2.Title != "Long Title" {
		t.Errorf("V2.Title = %q, want %q", tags.V2.Title, "Long Title")
	}
	if tags.V2.Genre != "Rock\x00Pop" {
		t.Errorf("V2.Genre = %q, want %q", tags.V2.Genre, "Rock\x00Pop")
	}
	if tags.V2.Artist != "" {
		t.Errorf("V2.Artist = %q, want empty", tags.V2.Artist)
	}
}

// The fake engine overwrites its tag memory on free; owned values must
// not change.
func TestTags_OwnedAfterFree(t *testing.T) {
	t.Parallel()

	v2 := &engine.RawID3v2{Version: 3, Title: enginetest.Str("Keep Me")}
	h := openTagged(t, nil, v2)

	tags, err := h.Tags()
	if err != nil {
		t.Fatalf("Tags() error = %v", err)
	}
	if tags.V2.Title != "Keep Me" {
		t.Errorf("V2.Title = %q after free, want %q", tags.V2.Title, "Keep Me")
	}
}

func TestTags_SecondCallEmpty(t *testing.T) {
	t.Parallel()

	v1 := enginetest.RawV1("Title", "", "", "", nil, 0)
	h := openTagged(t, v1, nil)

	if _, err := h.Tags(); err != nil {
		t.Fatalf("Tags() error = %v", err)
	}

	tags, err := h.Tags()
	if err != nil {
		t.Fatalf("second Tags() error = %v", err)
	}
	if !tags.Empty() {
		t.Errorf("second Tags() = %+v, want empty", tags)
	}
	if got := h.MetaCheck(); got != engine.MetaNone {
		t.Errorf("MetaCheck() = %#x after free, want none", got)
	}
}

func TestTags_Presence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		v1     *engine.RawID3v1
		v2     *engine.RawID3v2
		meta   engine.Meta
		wantV1 bool
		wantV2 bool
	}{
		{"none", nil, nil, engine.MetaNone, false, false},
		{"v1 only", enginetest.RawV1("a", "", "", "", nil, 0), nil, engine.MetaID3v1 | engine.MetaNewID3, true, false},
		{"v2 only", nil, &engine.RawID3v2{Version: 4}, engine.MetaID3v2 | engine.MetaNewID3, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := openTagged(t, tt.v1, tt.v2)

			if got := h.MetaCheck(); got != tt.meta {
				t.Errorf("MetaCheck() = %#x, want %#x", got, tt.meta)
			}

			tags, err := h.Tags()
			if err != nil {
				t.Fatalf("Tags() error = %v", err)
			}
			if got := tags.V1 != nil; got != tt.wantV1 {
				t.Errorf("V1 present = %v, want %v", got, tt.wantV1)
			}
			if got := tags.V2 != nil; got != tt.wantV2 {
				t.Errorf("V2 present = %v, want %v", got, tt.wantV2)
			}
		})
	}
}
