// SPDX-License-Identifier: EPL-2.0

package engine

import "strconv"

// Status is the result code of every engine call. Zero means success,
// negative values are stream messages, positive values are errors.
// The numbering follows libmpg123 so diagnostics stay recognisable.
type Status int

const (
	StatusDone      Status = -12
	StatusNewFormat Status = -11
	StatusNeedMore  Status = -10
	StatusErr       Status = -1
	StatusOK        Status = 0

	StatusBadOutFormat   Status = 1
	StatusBadChannel     Status = 2
	StatusBadRate        Status = 3
	StatusBadParam       Status = 5
	StatusBadBuffer      Status = 6
	StatusOutOfMem       Status = 7
	StatusNotInitialized Status = 8
	StatusBadDecoder     Status = 9
	StatusBadHandle      Status = 10
	StatusNoSpace        Status = 14
	StatusErrNull        Status = 17
	StatusErrReader      Status = 18
	StatusBadFile        Status = 22
	StatusNoReader       Status = 24
	StatusOutOfSync      Status = 27
	StatusResyncFail     Status = 28
	StatusNo8Bit         Status = 29
	StatusNullBuffer     Status = 31
	StatusNullPointer    Status = 33
	StatusMissingFeature Status = 38
	StatusBadValue       Status = 39
)

var statusMessages = map[Status]string{
	StatusDone:      "track ended, stop decoding",
	StatusNewFormat: "output format will be different on next call",
	StatusNeedMore:  "feed reader needs more input data",
	StatusErr:       "generic error",
	StatusOK:        "no error",

	StatusBadOutFormat:   "unable to set up output format",
	StatusBadChannel:     "invalid channel number specified",
	StatusBadRate:        "invalid sample rate specified",
	StatusBadParam:       "bad parameter id or value",
	StatusBadBuffer:      "bad buffer given, invalid pointer or too small size",
	StatusOutOfMem:       "out of memory",
	StatusNotInitialized: "library not initialized",
	StatusBadDecoder:     "invalid decoder choice",
	StatusBadHandle:      "invalid decoder handle",
	StatusNoSpace:        "not enough space in output buffer",
	StatusErrNull:        "null pointer given where valid storage address needed",
	StatusErrReader:      "error reading the stream",
	StatusBadFile:        "file access error",
	StatusNoReader:       "no stream opened",
	StatusOutOfSync:      "lost track in bytestream and did not try to resync",
	StatusResyncFail:     "resync failed to find valid MPEG data",
	StatusNo8Bit:         "no 8bit encoding possible",
	StatusNullBuffer:     "null input buffer with non-zero size",
	StatusNullPointer:    "null pointer given where valid storage address needed",
	StatusMissingFeature: "feature not built into this engine",
	StatusBadValue:       "some bad value has been provided",
}

// Error implements the error interface with the plain diagnostic for s.
func (s Status) Error() string {
	if msg, ok := statusMessages[s]; ok {
		return msg
	}

	return "unknown error " + strconv.Itoa(int(s))
}

// PlainStrerror returns the context-free diagnostic for s.
func PlainStrerror(s Status) string {
	return s.Error()
}

// OK reports whether s signals success.
func (s Status) OK() bool { return s == StatusOK }
