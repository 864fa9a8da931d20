// SPDX-License-Identifier: EPL-2.0

// Package export writes the PCM of an open handle to audio files using
// the go-audio encoders.
//
// Only signed 16-bit output is exported; open the stream with
// Handle.OpenFixed or restrict the format with Handle.SetFormat if the
// engine could pick something else.
//
//	f, _ := os.Create("out.wav")
//	defer f.Close()
//	frames, err := export.WAV(h, f)
//
// Both encoders need an io.WriteSeeker. Use a Buffer when the output is a
// pipe.
package export
