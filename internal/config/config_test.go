package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/mpgx/engine"
	"github.com/ik5/mpgx/handle"
	"github.com/ik5/mpgx/internal/enginetest"
)

const fullProfile = `
decoder: fake
flags: [mono-mix, quiet]
icy_interval: 8192
verbose: true
format: {rate: 44100, channels: mono, encoding: f32}
`

func TestParse(t *testing.T) {
	t.Parallel()

	p, err := Parse([]byte(fullProfile))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if p.Decoder != "fake" {
		t.Errorf("Decoder = %q, want %q", p.Decoder, "fake")
	}
	if p.ICYInterval != 8192 || !p.Verbose {
		t.Errorf("ICYInterval, Verbose = %d, %v, want 8192, true", p.ICYInterval, p.Verbose)
	}

	flags, err := p.EngineFlags()
	if err != nil {
		t.Fatalf("EngineFlags() error = %v", err)
	}
	if want := engine.FlagMonoMix | engine.FlagQuiet; flags != want {
		t.Errorf("EngineFlags() = %#x, want %#x", flags, want)
	}

	rate, ch, enc, err := p.Format.parse()
	if err != nil || rate != 44100 || ch != engine.Mono || enc != engine.EncodingFloat32 {
		t.Errorf("Format = %d %v %v %v", rate, ch, enc, err)
	}
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	p, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) error = %v", err)
	}
	if p.Format != nil || len(p.Flags) != 0 || p.Decoder != "" {
		t.Errorf("Parse(nil) = %+v, want the zero profile", p)
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want error
	}{
		{"unknown flag", "flags: [loud]", ErrUnknownFlag},
		{"conflict", "flags: [force-8bit, force-float]", ErrFlagConflict},
		{"two mono modes", "flags: [mono-left, mono-right]", ErrFlagConflict},
		{"negative icy", "icy_interval: -1", ErrNegativeICY},
		{"bad rate", "format: {rate: 44000}", ErrBadRate},
		{"bad channels", "format: {channels: quad}", ErrUnknownChannels},
		{"bad encoding", "format: {encoding: s12}", ErrUnknownEncoding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := Parse([]byte(tt.in)); !errors.Is(err, tt.want) {
				t.Errorf("Parse() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParse_UnknownKey(t *testing.T) {
	t.Parallel()

	if _, err := Parse([]byte("decodr: generic")); err == nil {
		t.Error("Parse() error = nil for a misspelled key")
	}
}

func TestFormat_Defaults(t *testing.T) {
	t.Parallel()

	rate, ch, enc, err := (&Format{}).parse()
	if err != nil {
		t.Fatalf("parse() error = %v", err)
	}
	if rate != 0 || ch != engine.AllChannels || enc != engine.EncodingSigned16 {
		t.Errorf("parse() = %d %v %v, want 0 any s16", rate, ch, enc)
	}
}

func TestApply(t *testing.T) {
	t.Parallel()

	eng := enginetest.New()
	eng.AddStream("song.mp3", enginetest.SilentStream(44100, 2, 100))

	h, err := handle.New(eng)
	if err != nil {
		t.Fatalf("handle.New() error = %v", err)
	}
	defer h.Destroy()

	p, err := Parse([]byte(fullProfile))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if err := p.Apply(h); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if h.Decoder() != enginetest.Decoder {
		t.Errorf("Decoder() = %q, want %q", h.Decoder(), enginetest.Decoder)
	}
	if got := eng.Created(); got != 2 {
		t.Errorf("Created() = %d, want 2", got)
	}
	if got := eng.Live(); got != 1 {
		t.Errorf("Live() = %d, want 1", got)
	}

	flags, err := h.Flags()
	if err != nil {
		t.Fatalf("Flags() error = %v", err)
	}
	if want := engine.FlagMonoMix | engine.FlagQuiet; flags != want {
		t.Errorf("Flags() = %#x, want %#x", flags, want)
	}

	if err := h.Open("song.mp3"); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	f, err := h.Format()
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if f.Channels != engine.Mono || f.Encoding != engine.EncodingFloat32 {
		t.Errorf("Format() = %v, want mono float", f)
	}
}

func TestApply_SameDecoderKeepsContext(t *testing.T) {
	t.Parallel()

	eng := enginetest.New()
	h, err := handle.New(eng, handle.WithDecoder(enginetest.Decoder))
	if err != nil {
		t.Fatalf("handle.New() error = %v", err)
	}
	defer h.Destroy()

	p := &Profile{Decoder: enginetest.Decoder}
	if err := p.Apply(h); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if got := eng.Created(); got != 1 {
		t.Errorf("Created() = %d, want 1", got)
	}
}

func TestApply_BadDecoder(t *testing.T) {
	t.Parallel()

	eng := enginetest.New()
	h, err := handle.New(eng)
	if err != nil {
		t.Fatalf("handle.New() error = %v", err)
	}
	defer h.Destroy()

	p := &Profile{Decoder: "i586"}
	err = p.Apply(h)

	var herr *handle.Error
	if !errors.As(err, &herr) || herr.Code != engine.StatusBadDecoder {
		t.Fatalf("Apply() error = %v, want a bad decoder error", err)
	}
	if !h.Valid() {
		t.Error("handle lost its context after a failed re-create")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(path, []byte(fullProfile), 0o600); err != nil {
		t.Fatalf("write profile: %v", err)
	}

	t.Setenv("MPGX_DECODER", "generic")
	t.Setenv("MPGX_ICY_INTERVAL", "16000")
	t.Setenv("MPGX_VERBOSE", "no")

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.Decoder != "generic" || p.ICYInterval != 16000 || p.Verbose {
		t.Errorf("Load() = %q %d %v, want env overrides", p.Decoder, p.ICYInterval, p.Verbose)
	}
	if len(p.Flags) != 2 {
		t.Errorf("Flags = %v, want the file's flags", p.Flags)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv("MPGX_ICY_INTERVAL", "-5")

	if _, err := Load(""); !errors.Is(err, ErrNegativeICY) {
		t.Errorf("Load() error = %v, want %v", err, ErrNegativeICY)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want %v", err, os.ErrNotExist)
	}
}
