// SPDX-License-Identifier: EPL-2.0

package gomp3

import (
	"fmt"

	"github.com/ik5/mpgx/engine"
)

// formatEntry allows one output combination. A zero rate matches any
// stream rate.
type formatEntry struct {
	rate     int64
	channels engine.Channels
	encoding engine.Encoding
}

// formatTable is the set of allowed output formats. The zero value
// accepts every standard rate, both channel counts and every encoding
// the converter produces.
type formatTable struct {
	only *formatEntry
}

func (t formatTable) allows(rate int64, ch engine.Channels, enc engine.Encoding) bool {
	if t.only == nil {
		return engine.ValidRate(rate) && canProduce(enc)
	}

	e := t.only
	return (e.rate == 0 || e.rate == rate) && e.channels&ch != 0 && e.encoding == enc
}

func validateFormat(rate int64, ch engine.Channels, enc engine.Encoding) (engine.Status, string) {
	switch {
	case rate != 0 && !engine.ValidRate(rate):
		return engine.StatusBadRate, fmt.Sprintf("rate %d", rate)
	case ch == 0 || ch&^engine.AllChannels != 0:
		return engine.StatusBadChannel, fmt.Sprintf("channels %d", ch)
	case !canProduce(enc):
		return engine.StatusBadOutFormat, fmt.Sprintf("encoding %s", enc)
	}

	return engine.StatusOK, ""
}

// wantChannels is the channel count a stream decodes to before any
// fallback: its own, unless a flag forces one.
func wantChannels(flags engine.Flags, native int) engine.Channels {
	switch {
	case flags&engine.FlagForceMono != 0:
		return engine.Mono
	case flags&engine.FlagForceStereo != 0:
		return engine.Stereo
	}

	return engine.Channels(native)
}

// output is a negotiated format.
type output struct {
	rate     int64
	channels engine.Channels
	encoding engine.Encoding
}

// negotiate picks the output for a stream. The rate is never changed;
// the channel count follows the stream unless a flag forces one, and
// falls back to the other count when the table requires it.
func negotiate(t formatTable, flags engine.Flags, rate int64, native int) (output, bool) {
	want := wantChannels(flags, native)
	for _, ch := range []engine.Channels{want, engine.AllChannels &^ want} {
		for _, enc := range preference(flags) {
			if t.allows(rate, ch, enc) {
				return output{rate: rate, channels: ch, encoding: enc}, true
			}
		}
	}

	return output{}, false
}
