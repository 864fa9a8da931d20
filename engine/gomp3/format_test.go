package gomp3

import (
	"testing"

	"github.com/ik5/mpgx/engine"
)

func TestNegotiate(t *testing.T) {
	t.Parallel()

	only := func(rate int64, ch engine.Channels, enc engine.Encoding) formatTable {
		return formatTable{only: &formatEntry{rate: rate, channels: ch, encoding: enc}}
	}

	tests := []struct {
		name   string
		table  formatTable
		flags  engine.Flags
		rate   int64
		native int
		want   output
		ok     bool
	}{
		{
			name: "defaults follow the stream", rate: 44100, native: 2, ok: true,
			want: output{44100, engine.Stereo, engine.EncodingSigned16},
		},
		{
			name: "mono stream", rate: 22050, native: 1, ok: true,
			want: output{22050, engine.Mono, engine.EncodingSigned16},
		},
		{
			name: "force mono", flags: engine.FlagMonoMix, rate: 44100, native: 2, ok: true,
			want: output{44100, engine.Mono, engine.EncodingSigned16},
		},
		{
			name: "force stereo", flags: engine.FlagForceStereo, rate: 44100, native: 1, ok: true,
			want: output{44100, engine.Stereo, engine.EncodingSigned16},
		},
		{
			name: "force 8 bit", flags: engine.FlagForce8Bit, rate: 44100, native: 2, ok: true,
			want: output{44100, engine.Stereo, engine.EncodingUnsigned8},
		},
		{
			name: "force float", flags: engine.FlagForceFloat, rate: 44100, native: 2, ok: true,
			want: output{44100, engine.Stereo, engine.EncodingFloat32},
		},
		{
			name:  "table picks channel count",
			table: only(0, engine.Mono, engine.EncodingFloat32), rate: 48000, native: 2, ok: true,
			want: output{48000, engine.Mono, engine.EncodingFloat32},
		},
		{
			name:  "table rate mismatch",
			table: only(22050, engine.AllChannels, engine.EncodingSigned16), rate: 44100, native: 2,
		},
		{
			name:  "forced encoding not allowed",
			table: only(0, engine.AllChannels, engine.EncodingSigned16), flags: engine.FlagForceFloat,
			rate: 44100, native: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := negotiate(tt.table, tt.flags, tt.rate, tt.native)
			if ok != tt.ok {
				t.Fatalf("negotiate() ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("negotiate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rate int64
		ch   engine.Channels
		enc  engine.Encoding
		want engine.Status
	}{
		{"ok", 44100, engine.Stereo, engine.EncodingSigned16, engine.StatusOK},
		{"any rate", 0, engine.AllChannels, engine.EncodingFloat32, engine.StatusOK},
		{"bad rate", 44000, engine.Stereo, engine.EncodingSigned16, engine.StatusBadRate},
		{"no channels", 44100, 0, engine.EncodingSigned16, engine.StatusBadChannel},
		{"bad channels", 44100, 4, engine.EncodingSigned16, engine.StatusBadChannel},
		{"ulaw", 44100, engine.Mono, engine.EncodingULaw8, engine.StatusBadOutFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got, _ := validateFormat(tt.rate, tt.ch, tt.enc); got != tt.want {
				t.Errorf("validateFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}
