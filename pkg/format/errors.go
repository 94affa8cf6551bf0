package format

import "errors"

var (
	ErrMissingRequiredValue = errors.New("format: missing required value")
	ErrInvalidSelectorValue = errors.New("format: invalid selector value")
	ErrInvalidPluralValue   = errors.New("format: invalid plural value")
	ErrInvalidHookValue     = errors.New("format: invalid hook value")
	ErrUnknownRichTextTag   = errors.New("format: unknown rich text tag")
	ErrInvalidFormatValue   = errors.New("format: invalid format value")
	ErrInvalidFormatStyle   = errors.New("format: invalid format style")
)
