package mail

import "errors"

var (
	ErrInvalidConfig = errors.New("mail: invalid config")
	ErrInvalidParams = errors.New("mail: invalid send params")
	ErrSendFailed    = errors.New("mail: send failed")
)
