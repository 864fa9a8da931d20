// SPDX-License-Identifier: EPL-2.0

package engine

// Param selects the parameter addressed by Context.Param and
// Context.GetParam.
type Param int

const (
	ParamVerbose     Param = 0
	ParamFlags       Param = 1
	ParamAddFlags    Param = 2
	ParamICYInterval Param = 10
	ParamRemoveFlags Param = 13
)

// Flags is the decoder flag bitmask.
type Flags uint32

const (
	FlagMonoLeft    Flags = 0x1
	FlagMonoRight   Flags = 0x2
	FlagMonoMix     Flags = 0x4
	FlagForceMono   Flags = FlagMonoLeft | FlagMonoRight | FlagMonoMix
	FlagForceStereo Flags = 0x8
	FlagForce8Bit   Flags = 0x10
	FlagQuiet       Flags = 0x20
	FlagForceFloat  Flags = 0x400
	FlagSkipID3v2   Flags = 0x2000
	FlagPicture     Flags = 0x10000

	// KnownFlags is the union of every flag an engine may accept.
	KnownFlags = FlagForceMono | FlagForceStereo | FlagForce8Bit | FlagQuiet |
		FlagForceFloat | FlagSkipID3v2 | FlagPicture
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{FlagMonoLeft, "mono-left"},
	{FlagMonoRight, "mono-right"},
	{FlagMonoMix, "mono-mix"},
	{FlagForceStereo, "force-stereo"},
	{FlagForce8Bit, "force-8bit"},
	{FlagQuiet, "quiet"},
	{FlagForceFloat, "force-float"},
	{FlagSkipID3v2, "skip-id3v2"},
	{FlagPicture, "picture"},
}

// ParseFlag returns the flag with the given name.
func ParseFlag(name string) (Flags, bool) {
	for _, f := range flagNames {
		if f.name == name {
			return f.flag, true
		}
	}

	return 0, false
}

// Names returns the names of the known flags set in f.
func (f Flags) Names() []string {
	var names []string
	for _, n := range flagNames {
		if f&n.flag != 0 {
			names = append(names, n.name)
		}
	}

	return names
}

// Validate reports whether f is a combination an engine can honour:
// no unknown bits, at most one mono selection, mono and stereo not both
// forced, and 8-bit and float output not both forced.
func (f Flags) Validate() bool {
	if f&^KnownFlags != 0 {
		return false
	}

	mono := f & FlagForceMono
	if mono != 0 && mono&(mono-1) != 0 {
		return false
	}
	if mono != 0 && f&FlagForceStereo != 0 {
		return false
	}

	return f&FlagForce8Bit == 0 || f&FlagForceFloat == 0
}
