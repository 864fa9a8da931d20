// SPDX-License-Identifier: EPL-2.0

// Package tag holds owned copies of ID3 metadata.
//
// The decoding engine keeps its tag structures in its own memory and may
// free or rewrite them at any time. The conversions in this package copy
// every field into plain Go values that stay valid forever.
//
// # Fixed width fields
//
// ID3v1 text fields are fixed width arrays that are NUL terminated only
// when the text is shorter than the field. FixedString scans for the
// first NUL and otherwise takes the whole width. It is used for every
// fixed field, including the language and frame id of ID3v2 entries.
//
// # ID3v1.0 and ID3v1.1
//
// ID3v1.1 stores a track number in the last byte of the 30 byte comment
// and marks it with a NUL in byte 28:
//
//	byte 28 == 0  -> v1.1, Track = byte 29, Comment = bytes 0..27
//	byte 28 != 0  -> v1.0, Comment = all 30 bytes, no track
//
// # Length prefixed strings
//
// ID3v2 values arrive as engine strings whose fill count includes the
// terminator. LengthPrefixed trusts that count instead of scanning, so
// multi-value text frames keep their embedded NUL separators. A fill of
// zero is an empty string, never an absent one.
//
// # Pictures
//
// Picture entries always keep their type, description and MIME type.
// The payload is only copied when the engine extracted it; otherwise the
// entry reports PayloadUnavailable so callers can tell "no picture" from
// "picture without bytes". Payloads are never decoded.
package tag
