// SPDX-License-Identifier: EPL-2.0

// Package utils holds sample value conversions shared by the engines.
package utils

// Float32ToInt16 clamps x to [-1, 1] and scales it to 16 bits.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// 32767 for both signs keeps the scale symmetric
	return int16(x * 32767.0)
}

// Int16ToFloat32 scales a 16-bit sample to [-1, 1).
func Int16ToFloat32(s int16) float32 {
	return float32(s) / 32768.0
}

// MixInt16 averages two channels into one.
func MixInt16(l, r int16) int16 {
	return int16((int32(l) + int32(r)) / 2)
}
