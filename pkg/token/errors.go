package token

import "errors"

var ErrInvalidLength = errors.New("token length out of range")
