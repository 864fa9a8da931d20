package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bogem/id3v2/v2"
	"github.com/go-audio/wav"
)

func silentFile(t *testing.T, frames int) string {
	t.Helper()

	frame := make([]byte, 417)
	copy(frame, []byte{0xFF, 0xFB, 0x90, 0x00})

	path := filepath.Join(t.TempDir(), "silence.mp3")
	if err := os.WriteFile(path, bytes.Repeat(frame, frames), 0o600); err != nil {
		t.Fatalf("write mp3: %v", err)
	}

	return path
}

// run executes the command tree; flags keep their values between runs,
// so every call names the flags it depends on.
func run(t *testing.T, stdin []byte, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetIn(bytes.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()

	return out.String(), err
}

func TestDecoders(t *testing.T) {
	out, err := run(t, nil, "decoders")
	if err != nil {
		t.Fatalf("decoders error = %v", err)
	}
	if want := "gomp3: [generic]\n"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestInfo(t *testing.T) {
	out, err := run(t, nil, "info", "--engine", "gomp3", silentFile(t, 10))
	if err != nil {
		t.Fatalf("info error = %v", err)
	}

	for _, want := range []string{"frames:   10", "samples:  11520", "id3v2:    false"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestInfo_UnknownEngine(t *testing.T) {
	if _, err := run(t, nil, "info", "--engine", "mpg123", silentFile(t, 1)); err == nil {
		t.Error("info with an unknown engine error = nil")
	}
	engineName = "gomp3"
}

func TestTags(t *testing.T) {
	path := silentFile(t, 2)

	out, err := run(t, nil, "tags", "--engine", "gomp3", "-j", "2", path)
	if err != nil {
		t.Fatalf("tags error = %v", err)
	}
	if !strings.Contains(out, "no tags") {
		t.Errorf("output = %q, want no tags", out)
	}

	if _, err := run(t, nil, "tags", path, filepath.Join(t.TempDir(), "missing.mp3")); err == nil {
		t.Error("tags with a missing file error = nil")
	}
}

func TestTags_Latin1(t *testing.T) {
	v1 := make([]byte, 128)
	copy(v1, "TAG")
	copy(v1[3:], "Caf\xe9")
	copy(v1[33:], "Band")
	v1[127] = 8

	path := silentFile(t, 2)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		t.Fatalf("open mp3: %v", err)
	}
	if _, err := f.Write(v1); err != nil {
		t.Fatalf("append tag: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close mp3: %v", err)
	}

	out, err := run(t, nil, "tags", "--engine", "gomp3", "-j", "1", path)
	if err != nil {
		t.Fatalf("tags error = %v", err)
	}
	if !strings.Contains(out, "title:   Café") {
		t.Errorf("output = %q, want the title decoded from ISO-8859-1", out)
	}
}

func TestDecode(t *testing.T) {
	path := silentFile(t, 4)

	tests := []struct {
		name   string
		format string
		stdin  bool
		bytes  int
	}{
		{"raw", "raw", false, 4 * 4608},
		{"raw feed", "raw", true, 4 * 4608},
		{"aiff", "aiff", false, 0},
		{"wav", "wav", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := filepath.Join(t.TempDir(), "out."+tt.format)

			input, stdin := path, []byte(nil)
			if tt.stdin {
				data, err := os.ReadFile(path)
				if err != nil {
					t.Fatalf("read mp3: %v", err)
				}
				input, stdin = "-", data
			}

			if _, err := run(t, stdin, "decode", "-f", tt.format, "-o", output, input); err != nil {
				t.Fatalf("decode error = %v", err)
			}

			data, err := os.ReadFile(output)
			if err != nil {
				t.Fatalf("read output: %v", err)
			}
			if tt.bytes > 0 && len(data) != tt.bytes {
				t.Errorf("output is %d bytes, want %d", len(data), tt.bytes)
			}
			if tt.format == "aiff" && string(data[:4]) != "FORM" {
				t.Errorf("output starts %q, want FORM", data[:4])
			}
		})
	}
}

func TestDecode_WAVToStdout(t *testing.T) {
	out, err := run(t, nil, "decode", "-f", "wav", "-o", "", silentFile(t, 3))
	if err != nil {
		t.Fatalf("decode error = %v", err)
	}

	d := wav.NewDecoder(bytes.NewReader([]byte(out)))
	buf, err := d.FullPCMBuffer()
	if err != nil {
		t.Fatalf("FullPCMBuffer() error = %v", err)
	}
	if got, want := buf.NumFrames(), 3*1152; got != want {
		t.Errorf("NumFrames() = %d, want %d", got, want)
	}
	if d.SampleRate != 44100 || d.NumChans != 2 {
		t.Errorf("format = %d Hz %d ch, want 44100 Hz 2 ch", d.SampleRate, d.NumChans)
	}
}

func TestDecode_WAVFeedTags(t *testing.T) {
	tag := id3v2.NewEmptyTag()
	tag.SetVersion(3)
	tag.SetTitle("Piped")
	tag.SetArtist("Band")
	tag.SetGenre("Jazz")

	var stdin bytes.Buffer
	if _, err := tag.WriteTo(&stdin); err != nil {
		t.Fatalf("write tag: %v", err)
	}
	data, err := os.ReadFile(silentFile(t, 3))
	if err != nil {
		t.Fatalf("read mp3: %v", err)
	}
	stdin.Write(data)

	output := filepath.Join(t.TempDir(), "out.wav")
	if _, err := run(t, stdin.Bytes(), "decode", "-f", "wav", "--no-tags=false", "-o", output, "-"); err != nil {
		t.Fatalf("decode error = %v", err)
	}

	out, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	d := wav.NewDecoder(bytes.NewReader(out))
	d.ReadMetadata()
	if err := d.Err(); err != nil {
		t.Fatalf("ReadMetadata() error = %v", err)
	}
	m := d.Metadata
	if m == nil {
		t.Fatal("Metadata = nil, want the piped tag")
	}
	if m.Title != "Piped" || m.Artist != "Band" || m.Genre != "Jazz" {
		t.Errorf("Metadata = %q %q %q, want Piped Band Jazz", m.Title, m.Artist, m.Genre)
	}
}

func TestDecode_BadFormat(t *testing.T) {
	if _, err := run(t, nil, "decode", "-f", "flac", silentFile(t, 1)); err == nil {
		t.Error("decode -f flac error = nil")
	}
	decodeFormat = "wav"
}
