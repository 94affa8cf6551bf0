package ast

import "errors"

var (
	ErrMalformedNode = errors.New("ast: malformed node")
	ErrUnknownKind   = errors.New("ast: unknown node kind")
)
