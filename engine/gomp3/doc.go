// SPDX-License-Identifier: EPL-2.0

// Package gomp3 is an engine.Engine backed by github.com/hajimehoshi/go-mp3.
//
// It decodes MPEG-1 and MPEG-2 Layer III audio from files or from bytes
// pushed in feed mode, and parses ID3v1 and ID3v2 tags into the raw
// engine structures.
//
//	eng := gomp3.New(gomp3.WithLogger(log))
//	h, err := handle.New(eng)
//
// # Output format
//
// go-mp3 always produces signed 16-bit little endian stereo. The context
// converts that to the negotiated output: the stream's own rate (there
// is no resampling), its channel count unless a mono or stereo flag
// forces one, and the first allowed encoding in preference order. The
// samples are written in machine byte order.
//
// # Feed mode
//
// Pushed bytes are buffered. ID3 tags are lifted out of the stream as
// they complete and ICY metadata blocks are dropped when an interval is
// set. go-mp3 only sees a frame once all of its bytes are buffered;
// until then Read and DecodeFrame report engine.StatusNeedMore.
//
// # Limits
//
// MPEG-2.5 streams, free format bitrates and Layer I/II are not
// supported by go-mp3 and fail with a status. Compressed or encrypted
// ID3v2 frames are skipped.
package gomp3
