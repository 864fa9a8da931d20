// SPDX-License-Identifier: EPL-2.0

package export

import "errors"

var (
	ErrUnsupportedEncoding = errors.New("only signed 16-bit output can be exported")
	ErrInvalidWhence       = errors.New("invalid whence")
	ErrNegativeOffset      = errors.New("negative position")
)
