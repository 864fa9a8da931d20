// SPDX-License-Identifier: EPL-2.0

package handle

import (
	"fmt"

	"github.com/ik5/mpgx/engine"
)

// Format describes decoded PCM output.
type Format struct {
	Rate     int64
	Channels engine.Channels
	Encoding engine.Encoding
}

func (f Format) String() string {
	return fmt.Sprintf("{ rate: %d Hz ; channels: %s ; encoding: %s }",
		f.Rate, f.Channels, f.Encoding)
}

// FrameSize returns the bytes per sample frame (all channels), or 0 when
// the channel mask is not a single count.
func (f Format) FrameSize() int {
	return f.Channels.Count() * engine.SampleSize(f.Encoding)
}
