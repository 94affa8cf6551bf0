// Package render turns markdown produced by the markdown builder into
// sanitized HTML or plain text. Conversion uses goldmark with the
// strikethrough extension. Sanitization uses bluemonday.
package render
