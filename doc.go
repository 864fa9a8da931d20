// SPDX-License-Identifier: EPL-2.0

// Package mpgx is a safe Go layer over MPEG audio decoder engines.
//
// The handle package owns a decoder context and turns engine status
// codes into errors; the tag package holds owned copies of ID3 tags;
// engine/gomp3 is a pure Go engine. This package adds convenience
// functions on top:
//
//	eng := gomp3.New()
//
//	tags, err := mpgx.ReadTags(eng, "song.mp3")
//
//	results, err := mpgx.ScanTags(ctx, eng, paths, 8)
//
//	h, _ := handle.New(eng)
//	defer h.Destroy()
//	_ = h.Open("song.mp3")
//	pcm, err := mpgx.DecodeAll(h)
//
// # Concurrency
//
// A handle is used by one goroutine at a time. Distinct handles are
// independent, which is what ScanTags relies on: each file gets its own
// handle.
//
// # Exporting
//
// The export package writes decoded PCM as WAV or AIFF.
package mpgx
