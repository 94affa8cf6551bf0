package message

import "errors"

var ErrInvalidMessage = errors.New("message: invalid message")
