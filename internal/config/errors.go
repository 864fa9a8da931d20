// SPDX-License-Identifier: EPL-2.0

package config

import "errors"

var (
	ErrUnknownFlag     = errors.New("unknown flag")
	ErrFlagConflict    = errors.New("conflicting flags")
	ErrNegativeICY     = errors.New("negative icy interval")
	ErrBadRate         = errors.New("unsupported rate")
	ErrUnknownChannels = errors.New("unknown channel layout")
	ErrUnknownEncoding = errors.New("unknown encoding")
)
