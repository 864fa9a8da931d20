// SPDX-License-Identifier: EPL-2.0

package gomp3

import "errors"

var (
	ErrNoID3v2        = errors.New("no ID3v2 tag")
	ErrTruncatedID3v2 = errors.New("truncated ID3v2 tag")
	ErrID3v2Version   = errors.New("unsupported ID3v2 version")
	ErrTextEncoding   = errors.New("unknown ID3v2 text encoding")
	ErrShortFrame     = errors.New("ID3v2 frame too short")
	ErrPackedFrame    = errors.New("compressed or encrypted ID3v2 frame")
	ErrNoFrames       = errors.New("no MPEG audio frames found")
)
